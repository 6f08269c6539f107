package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/config"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/database"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/planner"
)

var quiet bool

var rootCmd = &cobra.Command{
	Use:   "plancheck [plan-file]",
	Short: "Validate a study plan from the command line",
	Long: `plancheck reads a study plan as text, runs it through the same
validation engine as the web planner, and prints every finding.

The plan format is one semester heading per line ("Year 1, Semester 1"
through "Year 3, Semester 2") followed by unit codes. Reads stdin when no
file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the verdict")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := readPlanText(args)
	if err != nil {
		return err
	}

	plan, err := planner.ParsePlanText(text)
	if err != nil {
		return fmt.Errorf("could not parse plan: %w", err)
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	units, err := database.GetAllUnits(db)
	if err != nil {
		return fmt.Errorf("could not load unit catalog: %w", err)
	}
	catalog := planner.NewCatalog(units)

	result, err := planner.Validate(plan, catalog)
	if err != nil {
		return err
	}

	if !quiet {
		printPlan(cmd.OutOrStdout(), plan)
		printFindings(cmd.OutOrStdout(), result)
	}

	if result.IsValid {
		fmt.Fprintln(cmd.OutOrStdout(), "VALID")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "INVALID")
	os.Exit(1)
	return nil
}

func readPlanText(args []string) (string, error) {
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("could not read %s: %w", args[0], err)
		}
		return string(content), nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("could not read stdin: %w", err)
	}
	return string(content), nil
}

func printPlan(out io.Writer, plan *planner.Plan) {
	for i, label := range planner.SlotLabels {
		fmt.Fprintf(out, "%s:", label)
		for _, code := range plan.Slots[i] {
			fmt.Fprintf(out, " %s", code)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)
}

func printFindings(out io.Writer, result *planner.Result) {
	for _, message := range result.Errors {
		fmt.Fprintf(out, "error:   %s\n", message)
	}
	for _, message := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", message)
	}
	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		fmt.Fprintln(out, "No findings.")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
