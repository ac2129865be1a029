package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/takt"
)

var planFile string

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute a takt grid from a JSON plan definition and print it",
	RunE:  computeGrid,
}

func init() {
	computeCmd.Flags().StringVarP(&planFile, "plan", "p", "plan.json", "plan definition file")
	rootCmd.AddCommand(computeCmd)
}

func computeGrid(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(planFile)
	if err != nil {
		return fmt.Errorf("read plan: %w", err)
	}
	var in model.PlanInput
	if err := json.Unmarshal(b, &in); err != nil {
		return fmt.Errorf("decode plan: %w", err)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	plan, err := takt.BuildPlan(in.Zones, in.Wagons, in.StartDate.Time, in.TaktTime, in.BufferSize)
	if err != nil {
		return err
	}
	conflicts := takt.DetectStacking(plan.Assignments)

	out := struct {
		Plan      *model.Plan      `json:"plan"`
		Conflicts []model.Conflict `json:"conflicts"`
	}{plan, conflicts}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
