package client

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewGetCommand constructs the `get` command.
func NewGetCommand(baseURL BaseURLFunc) *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a cached user record (no upstream fetch)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}
			var rec map[string]any
			if err := getJSON(fmt.Sprintf("%s/v1/users/%d", baseURL(), id), &rec); err != nil {
				return err
			}
			return printJSON(cmd, rec)
		},
	}
	return getCmd
}

// NewResolveCommand constructs the `resolve` command.
func NewResolveCommand(baseURL BaseURLFunc) *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve <id...>",
		Short: "Resolve users, fetching uncached ids from the upstream",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDArgs(args)
			if err != nil {
				return err
			}
			var resp map[string]any
			if err := postJSON(baseURL()+"/v1/users/resolve", map[string]any{"ids": ids}, &resp); err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	return resolveCmd
}

// NewListCommand constructs the `list` command.
func NewListCommand(baseURL BaseURLFunc) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cached user records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			limit, _ := cmd.Flags().GetInt("limit")

			q := url.Values{}
			if filter != "" {
				q.Set("filter", filter)
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			u := baseURL() + "/v1/users"
			if len(q) > 0 {
				u += "?" + q.Encode()
			}
			var resp map[string]any
			if err := getJSON(u, &resp); err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	listCmd.Flags().String("filter", "", "CEL filter over id, display_name, region, created_ms")
	listCmd.Flags().Int("limit", 0, "Max records to return")
	return listCmd
}
