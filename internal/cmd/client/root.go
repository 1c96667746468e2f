package client

import (
	"github.com/spf13/cobra"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// NewRoot constructs a root Cobra command for the rolo client.
// It registers the record commands and the operational commands.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "rolo",
		Short: "Rolo client commands",
	}
	root.AddCommand(NewGetCommand(baseURL))
	root.AddCommand(NewResolveCommand(baseURL))
	root.AddCommand(NewListCommand(baseURL))
	root.AddCommand(NewStatsCommand(baseURL))
	root.AddCommand(NewQueueCommand(baseURL))
	root.AddCommand(NewHealthCommand(baseURL))
	return root
}
