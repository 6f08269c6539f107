package planner

import (
	"regexp"
	"strconv"
	"strings"
)

// Handbook prerequisite text is free-form. The parser extracts the boolean
// structure it can find (unit codes, and/or keywords, parentheses, credit
// point thresholds) and fails open on anything else, so unparsable metadata
// never blocks a student's plan.

// Expression is the parsed form of one prerequisite string. Parsing is pure
// and deterministic; identical text always yields an identical tree.
type Expression struct {
	Root Node

	// Structured is false when the text had content but no recognizable
	// prerequisite structure, in which case Root is the true literal.
	Structured bool
}

// EvalContext carries everything a tree needs to evaluate itself: the units
// completed before the target semester (already expanded with equivalences),
// the credit points accumulated, and the catalog's equivalence relation.
type EvalContext struct {
	Completed    map[string]bool
	CreditPoints int
	Equivalent   func(a, b string) bool
}

// Node is one node of the boolean expression tree.
type Node interface {
	// Satisfied reports whether the subtree holds under ctx.
	Satisfied(ctx *EvalContext) bool
	// collectMissing appends the unit codes and point thresholds of
	// unsatisfied leaves, used to build the finding message.
	collectMissing(ctx *EvalContext, missing *missingSet)
}

type missingSet struct {
	Units       []string
	PointsShort []int
}

type literalNode struct {
	value bool
}

func (n literalNode) Satisfied(*EvalContext) bool { return n.value }

func (n literalNode) collectMissing(*EvalContext, *missingSet) {}

type atomNode struct {
	code string
}

func (n atomNode) Satisfied(ctx *EvalContext) bool {
	if ctx.Completed[n.code] {
		return true
	}
	if ctx.Equivalent == nil {
		return false
	}
	for done := range ctx.Completed {
		if ctx.Equivalent(done, n.code) {
			return true
		}
	}
	return false
}

func (n atomNode) collectMissing(ctx *EvalContext, missing *missingSet) {
	if !n.Satisfied(ctx) {
		missing.Units = append(missing.Units, n.code)
	}
}

type pointsNode struct {
	required int
}

func (n pointsNode) Satisfied(ctx *EvalContext) bool {
	return ctx.CreditPoints >= n.required
}

func (n pointsNode) collectMissing(ctx *EvalContext, missing *missingSet) {
	if !n.Satisfied(ctx) {
		missing.PointsShort = append(missing.PointsShort, n.required)
	}
}

type andNode struct {
	children []Node
}

func (n andNode) Satisfied(ctx *EvalContext) bool {
	for _, child := range n.children {
		if !child.Satisfied(ctx) {
			return false
		}
	}
	return true
}

func (n andNode) collectMissing(ctx *EvalContext, missing *missingSet) {
	for _, child := range n.children {
		child.collectMissing(ctx, missing)
	}
}

type orNode struct {
	children []Node
}

func (n orNode) Satisfied(ctx *EvalContext) bool {
	for _, child := range n.children {
		if child.Satisfied(ctx) {
			return true
		}
	}
	return false
}

func (n orNode) collectMissing(ctx *EvalContext, missing *missingSet) {
	if n.Satisfied(ctx) {
		return
	}
	for _, child := range n.children {
		child.collectMissing(ctx, missing)
	}
}

var (
	unitCodePattern  = regexp.MustCompile(`\b[A-Za-z]{4}[0-9]{4}\b`)
	pointsPattern    = regexp.MustCompile(`(\d+)\s*(?:credit\s+)?points?`)
	prereqTokenRegex = regexp.MustCompile(`(?i)\(|\)|\b[a-z]{4}[0-9]{4}\b|\band\b|\bor\b`)
)

type tokenKind int

const (
	tokCode tokenKind = iota
	tokAnd
	tokOr
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	code string
}

// Parse converts prerequisite text into an Expression. It is total: any
// input yields a tree, malformed structure is reduced best-effort, and text
// with no recognizable structure parses to the true literal with Structured
// set false.
func Parse(text string) *Expression {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" || strings.Contains(normalized, "nil") || normalized == "none" {
		return &Expression{Root: literalNode{value: true}, Structured: true}
	}

	var points Node
	if m := pointsPattern.FindStringSubmatch(normalized); m != nil {
		if required, err := strconv.Atoi(m[1]); err == nil && required > 0 {
			points = pointsNode{required: required}
		}
	}

	tokens := tokenize(text)
	pos := 0
	codeTree := parseGroup(tokens, &pos, false)

	switch {
	case codeTree != nil && points != nil:
		return &Expression{Root: andNode{children: []Node{points, codeTree}}, Structured: true}
	case codeTree != nil:
		return &Expression{Root: codeTree, Structured: true}
	case points != nil:
		return &Expression{Root: points, Structured: true}
	default:
		// descriptive prose with no structured prerequisite found
		return &Expression{Root: literalNode{value: true}, Structured: false}
	}
}

func tokenize(text string) []token {
	var tokens []token
	for _, raw := range prereqTokenRegex.FindAllString(text, -1) {
		switch lowered := strings.ToLower(raw); lowered {
		case "(":
			tokens = append(tokens, token{kind: tokLParen})
		case ")":
			tokens = append(tokens, token{kind: tokRParen})
		case "and":
			tokens = append(tokens, token{kind: tokAnd})
		case "or":
			tokens = append(tokens, token{kind: tokOr})
		default:
			tokens = append(tokens, token{kind: tokCode, code: strings.ToUpper(raw)})
		}
	}
	return tokens
}

// parseGroup reduces tokens strictly left to right: each operator combines
// the accumulated tree with the next operand, with no precedence between
// "and" and "or" beyond encounter order. Adjacent atoms with no keyword
// between them are treated as conjoined. Parenthesized groups recurse.
func parseGroup(tokens []token, pos *int, nested bool) Node {
	var acc Node
	pendingOr := false

	combine := func(next Node) {
		if acc == nil {
			acc = next
			return
		}
		if pendingOr {
			acc = orNode{children: []Node{acc, next}}
		} else {
			acc = andNode{children: []Node{acc, next}}
		}
		pendingOr = false
	}

	for *pos < len(tokens) {
		t := tokens[*pos]
		switch t.kind {
		case tokRParen:
			*pos++
			if nested {
				return acc
			}
			// stray close at top level, skip it
		case tokLParen:
			*pos++
			if sub := parseGroup(tokens, pos, true); sub != nil {
				combine(sub)
			}
		case tokAnd:
			*pos++
			pendingOr = false
		case tokOr:
			*pos++
			pendingOr = true
		case tokCode:
			*pos++
			combine(atomNode{code: t.code})
		}
	}
	return acc
}
