package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/costarnet/core/internal/models"
	"github.com/spf13/cobra"
)

func newGraphCmd(opts *options) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the network as nodes and weighted edges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			graph, err := cat.Graph()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), graph, pretty)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print node, edge and issue totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			status, err := cat.Status()
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), status.Stats, true)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Nodes:  %d\n", status.Stats.TotalNodes)
			fmt.Fprintf(out, "Edges:  %d\n", status.Stats.TotalEdges)
			fmt.Fprintf(out, "Issues: %d\n", status.Stats.TotalIssues)
			fmt.Fprintf(out, "Weight: %d\n", status.Stats.TotalWeight)
			return nil
		},
	}
}

func newCostarsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "costars NAME",
		Short: "List who a character appeared with, most frequent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			costars, err := cat.AppearedWith(args[0])
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), costars, true)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "COSTAR\tCOUNT\tISSUES")
			for _, c := range costars {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", c.Costar, c.Count, strings.Join(c.Issues, ", "))
			}
			return tw.Flush()
		},
	}
}

func newCharacterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "character NAME",
		Short: "Show the detail view of a character in the network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			net, err := cat.Network()
			if err != nil {
				return err
			}
			id, ok := net.NodeID(args[0])
			if !ok {
				return &models.LookupError{Kind: "node", Key: args[0]}
			}
			detail, err := cat.Detail(id)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), detail, true)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (node %d)\n", detail.Name, detail.ID)
			fmt.Fprintf(out, "Image: %s\n", detail.Image)

			if len(detail.Alternates) > 0 {
				names := make([]string, 0, len(detail.Alternates))
				for _, a := range detail.Alternates {
					names = append(names, a.Name)
				}
				fmt.Fprintf(out, "Also: %s\n", strings.Join(names, ", "))
			}

			fmt.Fprintln(out, "\nAppearances:")
			for _, a := range detail.Appearances {
				fmt.Fprintf(out, "  %s  %s\n", a.Comic, a.Link)
			}

			fmt.Fprintln(out, "\nAppeared with:")
			for _, c := range detail.AppearedWith {
				fmt.Fprintf(out, "  %s (%d)\n", c.Costar, c.Count)
			}
			return nil
		},
	}
}

func newLinkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "link COMIC",
		Short: "Print the link of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			link, err := cat.ResolveLink(args[0])
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), models.IssueLink{Comic: args[0], Link: link}, true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [TEXT]",
		Short: "Find characters by name or alternate name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			hits, err := cat.Search(query, limit)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), hits, true)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTITLE")
			for _, h := range hits {
				id := "-"
				if h.ID != nil {
					id = strconv.Itoa(*h.ID)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", id, h.Name, h.Title)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results, 0 for all")
	return cmd
}
