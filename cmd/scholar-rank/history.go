// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-rank/internal/report"
	"github.com/pdiddy/scholar-rank/internal/store"
	"github.com/pdiddy/scholar-rank/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List ranking runs stored with --db",
	Long: `History lists the runs saved in the SQLite database given by --db (or
the db config key). Use "history show <id>" to print a stored ranking.`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored ranking ordered by citations",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyShowCmd.Flags().StringP("file", "f", "", "write the stored ranking to FILE as CSV")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*store.Store, error) {
	path := viper.GetString("db")
	if path == "" {
		return nil, fmt.Errorf("no history database: set --db or the db config key")
	}
	return store.Open(path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.List(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if types.OutputFormat(viper.GetString("format")) == types.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	formatRuns(runs, w)
	return nil
}

func formatRuns(runs []store.Run, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %9s  %7s  %s\n", "ID", "Query", "Requested", "Results", "Fetched")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Fprintf(w, "%-4d  %-40s  %9d  %7d  %s\n",
			r.ID, r.Query, r.Requested, r.Records, r.FetchedAt.Local().Format(time.DateTime))
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", args[0], err)
	}

	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	run, byRank, err := db.Load(cmd.Context(), id)
	if err != nil {
		return err
	}
	logger.Info().Int64("run", run.ID).Str("query", run.Query).Time("fetched_at", run.FetchedAt).Msg("stored run")

	ranked := byRank.SortByCitations()
	if err := report.Format(ranked, types.OutputFormat(viper.GetString("format")), cmd.OutOrStdout()); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return report.WriteCSV(ranked, path)
	}
	return nil
}
