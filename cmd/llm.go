package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/memty/internal/llm"
	"github.com/abhisek/memty/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM requests made while generating quizzes",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			opts := store.QueryOpts{Limit: limit}
			if since > 0 {
				opts.From = time.Now().Add(-since)
			}
			events, err := e.store.EventRepo().QueryLLMRequests(ctx, opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}

			if len(events) == 0 {
				fmt.Println("No LLM requests found.")
				return nil
			}

			fmt.Printf("%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
				"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			fmt.Println(strings.Repeat("─", 96))

			for _, ev := range events {
				if purpose != "" && ev.Purpose != purpose {
					continue
				}
				ok := "✓"
				if !ev.Success {
					ok = "✗ " + truncate(ev.ErrorMessage, 40)
				}
				fmt.Printf("%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
					ev.ID,
					ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
					ev.Purpose,
					truncate(ev.Model, 28),
					ev.InputTokens,
					ev.OutputTokens,
					ev.LatencyMs,
					ok,
				)
			}
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			usage, err := e.store.EventRepo().LLMUsage(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}

			if len(usage) == 0 {
				fmt.Println("No LLM usage recorded yet.")
				return nil
			}

			fmt.Println("Usage by Model")
			fmt.Println(strings.Repeat("─", 84))
			fmt.Printf("%-28s  %6s  %6s  %10s  %10s  %7s  %9s\n",
				"Model", "Calls", "Failed", "Input", "Output", "Avg Ms", "Cost")
			fmt.Println(strings.Repeat("─", 84))

			var totalCost float64
			var totalCalls, totalIn, totalOut int
			var unknownModels []string
			for _, u := range usage {
				totalCalls += u.Requests
				totalIn += u.InputTokens
				totalOut += u.OutputTokens

				costStr := "?"
				if cost := llm.LookupCost(u.Model); cost != nil {
					c := cost.Cost(u.InputTokens, u.OutputTokens)
					totalCost += c
					costStr = formatCost(c)
				} else {
					unknownModels = append(unknownModels, u.Model)
				}
				fmt.Printf("%-28s  %6d  %6d  %10d  %10d  %7d  %9s\n",
					truncate(u.Model, 28), u.Requests, u.Failures, u.InputTokens, u.OutputTokens, u.AvgLatencyMs, costStr)
			}

			fmt.Println(strings.Repeat("─", 84))
			label := "TOTAL"
			if len(unknownModels) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Printf("%-28s  %6d  %6s  %10d  %10d  %7s  %9s\n",
				label, totalCalls, "", totalIn, totalOut, "", formatCost(totalCost))

			if len(unknownModels) > 0 {
				fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
			}
			return nil
		})
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. quiz-gen)")
	llmListCmd.Flags().Duration("since", 0, "Only show requests newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
