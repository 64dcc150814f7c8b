package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plans",
		Aliases: []string{"plan"},
		Short:   "Inspect subscription plans and usage",
	}

	cmd.AddCommand(newPlanListCmd())
	cmd.AddCommand(newPlanCurrentCmd())
	cmd.AddCommand(newPlanUsageCmd())

	return cmd
}

func newPlanListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plans, err := apiClient.Plans().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(plans)
			}

			table := NewTable("TIER", "NAME", "MONTHLY", "YEARLY")
			for _, p := range plans {
				table.AddRow(
					p.Tier,
					p.Name,
					formatPrice(p.MonthlyPrice),
					formatPrice(p.YearlyPrice),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newPlanCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the account's current plan and capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			current, err := apiClient.Plans().Current(ctx)
			if err != nil {
				return fmt.Errorf("failed to get current plan: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(current)
			}

			name := current.Tier
			if current.Plan != nil && current.Plan.Name != "" {
				name = current.Plan.Name
			}
			fmt.Printf("Plan: %s (%s)\n", name, current.Tier)

			if len(current.Can) > 0 {
				actions := make([]string, 0, len(current.Can))
				for action := range current.Can {
					actions = append(actions, action)
				}
				sort.Strings(actions)

				fmt.Println("\nAvailable actions:")
				for _, action := range actions {
					mark := "[-]"
					if current.Can[action] {
						mark = "[+]"
					}
					fmt.Printf("  %s %s\n", mark, action)
				}
			}
			return nil
		},
	}
}

func newPlanUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show current-period usage counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			usage, err := apiClient.Plans().Usage(ctx)
			if err != nil {
				return fmt.Errorf("failed to get usage: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(usage)
			}

			fmt.Printf("Usage since %s:\n", usage.PeriodStart.Format("2006-01-02"))
			table := NewTable("COUNTER", "USED")
			table.AddRow("audits", strconv.FormatInt(usage.AuditsThisMonth, 10))
			table.AddRow("citations", strconv.FormatInt(usage.CitationsUsed, 10))
			table.AddRow("content_generations", strconv.FormatInt(usage.ContentGenerations, 10))
			table.AddRow("content_optimizations", strconv.FormatInt(usage.ContentOptimizations, 10))
			table.AddRow("prompt_suggestions", strconv.FormatInt(usage.PromptSuggestions, 10))
			table.Render()
			return nil
		},
	}
}

func formatPrice(dollars float64) string {
	if dollars == 0 {
		return "free"
	}
	return fmt.Sprintf("$%.0f", dollars)
}
