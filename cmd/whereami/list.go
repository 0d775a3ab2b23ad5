package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chess10kp/whereami/internal/hypr"
	"github.com/chess10kp/whereami/internal/search"
)

type listItem struct {
	Address   string `json:"address" yaml:"address"`
	Title     string `json:"title" yaml:"title"`
	Class     string `json:"class" yaml:"class"`
	Workspace string `json:"workspace" yaml:"workspace"`
	Status    string `json:"status" yaml:"status"`
	Score     int    `json:"score,omitempty" yaml:"score,omitempty"`
}

func newListCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		query  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the window list once",
		Long: `Take one snapshot of the Hyprland client list, filter it the same way the
switcher does and print it. Does not take the instance lock.`,
		Example: `  # Table of every window
  whereami list

  # Windows matching "term" as JSON
  whereami list --query term --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			wm := hypr.NewHyprctl(newCommander(cfg.Hyprctl.Command))
			snap, err := newPoller(cfg, wm).Refresh(cmd.Context())
			if err != nil {
				return err
			}
			list := search.Filter(snap, query, searchOptions(cfg))
			return printList(cmd.OutOrStdout(), list, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, json or yaml)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "fuzzy filter to apply")
	return cmd
}

func toItems(list search.DisplayList) []listItem {
	items := make([]listItem, 0, list.Len())
	for _, entry := range list {
		items = append(items, listItem{
			Address:   entry.Client.Address,
			Title:     entry.Label,
			Class:     entry.Client.Class,
			Workspace: entry.Client.WorkspaceLabel(),
			Status:    entry.Client.Status(),
			Score:     entry.Score,
		})
	}
	return items
}

func printList(w io.Writer, list search.DisplayList, format string) error {
	items := toItems(list)
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(items)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(items); err != nil {
			return err
		}
		return encoder.Close()
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TITLE\tWORKSPACE\tSTATUS\tCLASS\tADDRESS")
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", it.Title, it.Workspace, it.Status, it.Class, it.Address)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported format: %s (use 'table', 'json' or 'yaml')", format)
	}
}
