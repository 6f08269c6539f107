package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/config"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/planner"
)

// AIClient calls the Anthropic Messages API to draft an initial study plan
// and to review plan quality. The model's output is never trusted for rule
// checking; every generated plan goes back through the validation engine.
type AIClient struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewAIClient(cfg config.AIConfig) *AIClient {
	return &AIClient{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// QualityReport is the structured outcome of an AI quality review.
type QualityReport struct {
	OverallQuality  string   `json:"overallQuality"`
	QualityScore    int      `json:"qualityScore"`
	Recommendations []string `json:"recommendations"`
	Warnings        []string `json:"warnings"`
	Strengths       []string `json:"strengths"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AIClient) complete(prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     c.Model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	request, err := http.NewRequest("POST", c.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("x-api-key", c.APIKey)
	request.Header.Set("anthropic-version", "2023-06-01")

	response, err := c.HTTPClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	defer response.Body.Close()

	var parsed messagesResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode anthropic response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("anthropic API error: %s", parsed.Error.Message)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return parsed.Content[0].Text, nil
}

var (
	jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayPattern  = regexp.MustCompile(`(?s)\[.*\]`)
)

// ExtractJSON pulls the first JSON object (or array) out of a model reply
// that may wrap it in explanatory text or a code fence.
func ExtractJSON(text string) string {
	if m := jsonObjectPattern.FindString(text); m != "" {
		return m
	}
	return jsonArrayPattern.FindString(text)
}

// GeneratePlan drafts a six-semester plan for a major. Without an API key it
// falls back to a deterministic rule-based layout, so the application works
// offline.
func (c *AIClient) GeneratePlan(major *models.Major, majorUnits []*models.MajorUnit) (map[string][]string, error) {
	if c.APIKey == "" {
		return FallbackPlan(majorUnits), nil
	}

	reply, err := c.complete(planGenerationPrompt(major, majorUnits), 4096)
	if err != nil {
		return nil, err
	}

	raw := ExtractJSON(reply)
	if raw == "" {
		return nil, fmt.Errorf("no JSON plan in model reply")
	}

	var plan map[string][]string
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("invalid plan format from model: %w", err)
	}
	return plan, nil
}

// ReviewPlan asks the model for a qualitative assessment. Structural rule
// checking stays with the validation engine; the review covers progression,
// coherence, and pathway value only.
func (c *AIClient) ReviewPlan(major *models.Major, planData map[string][]string, validation *planner.Result) (*QualityReport, error) {
	if c.APIKey == "" {
		return fallbackReport(validation), nil
	}

	reply, err := c.complete(qualityReviewPrompt(major, planData, validation), 2000)
	if err != nil {
		return nil, err
	}

	raw := ExtractJSON(reply)
	if raw == "" {
		return nil, fmt.Errorf("no JSON report in model reply")
	}

	report := &QualityReport{}
	if err := json.Unmarshal([]byte(raw), report); err != nil {
		return nil, fmt.Errorf("invalid report format from model: %w", err)
	}
	if report.OverallQuality == "" {
		report.OverallQuality = "fair"
	}
	return report, nil
}

func planGenerationPrompt(major *models.Major, majorUnits []*models.MajorUnit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an academic advisor creating a 3-year study plan for the %s major (%s).\n\n", major.Name, major.Code)
	b.WriteString("Requirements: exactly 24 units, 4 per semester across 6 semesters; at most 12 Level 1 units; at least 12 Level 2/3 units; at least 3 Level 3 units. Prerequisites must sit in earlier semesters than the units that need them, and units offered in only one teaching period must be placed accordingly.\n\nUnits for this major:\n")
	for _, majorUnit := range majorUnits {
		unit := majorUnit.Unit
		if unit == nil || unit.IsBridging {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s, level %d)", unit.Code, majorUnit.RequirementType, unit.Level)
		if text := strings.TrimSpace(unit.Prerequisites); text != "" && !strings.EqualFold(text, "nil") {
			fmt.Fprintf(&b, " needs: %s", text)
		}
		if text := strings.TrimSpace(unit.Availabilities); text != "" {
			fmt.Fprintf(&b, " offered: %s", text)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nRespond with only a JSON object keyed by the labels ")
	b.WriteString(`"Year 1, Semester 1" through "Year 3, Semester 2"`)
	b.WriteString(", each mapping to an array of unit codes.")
	return b.String()
}

func qualityReviewPrompt(major *models.Major, planData map[string][]string, validation *planner.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assess the quality of this study plan for the %s major (%s).\n\nPlan:\n", major.Name, major.Code)
	for _, label := range planner.SlotLabels {
		fmt.Fprintf(&b, "%s: %s\n", label, strings.Join(planData[label], ", "))
	}
	if validation != nil && (len(validation.Errors) > 0 || len(validation.Warnings) > 0) {
		b.WriteString("\nRule-engine findings already known (do not re-derive them):\n")
		for _, message := range validation.Errors {
			fmt.Fprintf(&b, "- error: %s\n", message)
		}
		for _, message := range validation.Warnings {
			fmt.Fprintf(&b, "- warning: %s\n", message)
		}
	}
	b.WriteString("\nFocus on academic progression, major coherence, and career pathway value. Respond with only JSON: ")
	b.WriteString(`{"overallQuality": "excellent|good|fair|poor", "qualityScore": 0-100, "recommendations": [], "warnings": [], "strengths": []}`)
	return b.String()
}

// FallbackPlan lays out the major's units without AI: core units first,
// then options, sorted by level and code, four to a semester, lower levels
// in earlier years.
func FallbackPlan(majorUnits []*models.MajorUnit) map[string][]string {
	var candidates []*models.Unit
	for _, majorUnit := range majorUnits {
		if majorUnit.Unit == nil || majorUnit.Unit.IsBridging {
			continue
		}
		candidates = append(candidates, majorUnit.Unit)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Level != candidates[j].Level {
			return candidates[i].Level < candidates[j].Level
		}
		return candidates[i].Code < candidates[j].Code
	})

	plan := make(map[string][]string, planner.NumSlots)
	for _, label := range planner.SlotLabels {
		plan[label] = []string{}
	}

	slot := 0
	for _, unit := range candidates {
		if slot >= planner.NumSlots {
			break
		}
		label := planner.SlotLabels[slot]
		// respect single-semester offerings in the simple layout too
		if !offeredInSlot(unit.Availabilities, slot) {
			if alternative := slot + 1; alternative < planner.NumSlots && offeredInSlot(unit.Availabilities, alternative) && len(plan[planner.SlotLabels[alternative]]) < planner.UnitsPerSemester {
				plan[planner.SlotLabels[alternative]] = append(plan[planner.SlotLabels[alternative]], unit.Code)
				continue
			}
			continue
		}
		plan[label] = append(plan[label], unit.Code)
		if len(plan[label]) >= planner.UnitsPerSemester {
			slot++
		}
	}
	return plan
}

func offeredInSlot(availabilities string, slot int) bool {
	text := strings.TrimSpace(availabilities)
	if text == "" {
		return true
	}
	offersS1 := strings.Contains(text, "Semester 1")
	offersS2 := strings.Contains(text, "Semester 2")
	if offersS1 == offersS2 {
		return true
	}
	if planner.SemesterForSlot(slot) == "Semester 1" {
		return offersS1
	}
	return offersS2
}

func fallbackReport(validation *planner.Result) *QualityReport {
	report := &QualityReport{
		OverallQuality:  "fair",
		QualityScore:    70,
		Recommendations: []string{"AI review unavailable; configure ANTHROPIC_API_KEY for a full assessment"},
		Warnings:        []string{},
		Strengths:       []string{},
	}
	if validation != nil {
		report.Warnings = append(report.Warnings, validation.Warnings...)
		if validation.IsValid && len(validation.Warnings) == 0 {
			report.OverallQuality = "good"
			report.QualityScore = 85
			report.Strengths = append(report.Strengths, "Plan meets all structural degree requirements")
		}
		if !validation.IsValid {
			report.OverallQuality = "poor"
			report.QualityScore = 40
			report.Warnings = append(report.Warnings, validation.Errors...)
		}
	}
	return report
}
