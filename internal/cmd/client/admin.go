package client

import (
	"github.com/spf13/cobra"
)

// NewStatsCommand constructs the `stats` command.
func NewStatsCommand(baseURL BaseURLFunc) *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache totals and per-region counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp map[string]any
			if err := getJSON(baseURL()+"/v1/stats", &resp); err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	return statsCmd
}

// NewQueueCommand constructs the `queue` command.
func NewQueueCommand(baseURL BaseURLFunc) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Show fetch queue occupancy and outstanding claims",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp map[string]any
			if err := getJSON(baseURL()+"/v1/queue", &resp); err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	return queueCmd
}

// NewHealthCommand constructs the `health` command.
func NewHealthCommand(baseURL BaseURLFunc) *cobra.Command {
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp map[string]any
			if err := getJSON(baseURL()+"/v1/healthz", &resp); err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	return healthCmd
}
