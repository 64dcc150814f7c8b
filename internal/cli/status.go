package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}

				sites, err := apiClient.Sites().List(ctx)
				if err == nil {
					summary["sites"] = len(sites)
				}
				current, err := apiClient.Plans().Current(ctx)
				if err == nil {
					summary["tier"] = current.Tier
					if current.Usage != nil {
						summary["audits_this_month"] = current.Usage.AuditsThisMonth
					}
				}
				return printOutput(summary)
			}

			fmt.Println("SEOgenix Dashboard")
			fmt.Println(strings.Repeat("=", 40))

			// Plan
			current, err := apiClient.Plans().Current(ctx)
			if err != nil {
				fmt.Printf("  Plan:       (error: %v)\n", err)
			} else {
				name := current.Tier
				if current.Plan != nil && current.Plan.Name != "" {
					name = current.Plan.Name
				}
				fmt.Printf("  Plan:       %s\n", name)
				if current.Usage != nil {
					fmt.Printf("  Audits:     %d this month\n", current.Usage.AuditsThisMonth)
					fmt.Printf("  Citations:  %d checked\n", current.Usage.CitationsUsed)
				}
			}

			// Sites
			sites, err := apiClient.Sites().List(ctx)
			if err != nil {
				fmt.Printf("  Sites:      (error: %v)\n", err)
				return nil
			}
			fmt.Printf("  Sites:      %d tracked\n", len(sites))

			// Latest audit per site
			for _, s := range sites {
				latest, err := apiClient.Audits().Latest(ctx, s.ID)
				if err != nil || latest.Audit == nil {
					continue
				}
				fmt.Printf("    %s  %s\n", formatScore(latest.OverallScore), truncate(s.URL, 50))
			}

			return nil
		},
	}
}
