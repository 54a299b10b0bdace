// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-rank CLI. It searches a
// scholarly results engine for a query, ranks the results by citation count
// and prints or exports the ranking.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-rank/internal/aggregate"
	"github.com/pdiddy/scholar-rank/internal/fetch"
	"github.com/pdiddy/scholar-rank/internal/httputil"
	"github.com/pdiddy/scholar-rank/internal/rank"
	"github.com/pdiddy/scholar-rank/internal/report"
	"github.com/pdiddy/scholar-rank/internal/secrets"
	"github.com/pdiddy/scholar-rank/internal/store"
	"github.com/pdiddy/scholar-rank/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultCount      = 100
	defaultUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) scholar-rank/0.1"
	defaultSecretsDir = ".secrets/"
)

// logger is configured in PersistentPreRunE and shared by all subcommands.
var logger = zerolog.Nop()

// rootCmd searches, ranks and prints; subcommands work on stored runs.
var rootCmd = &cobra.Command{
	Use:   "scholar-rank <query...>",
	Short: "Rank scholarly search results by citation count",
	Long: `scholar-rank queries Google Scholar result pages for a keyword, extracts
author, title, citation count, year and link for every result, and prints the
results ordered by citation count. The Rank column keeps the position at which
each result was found.

Pages of 10 results are requested one after another until -n results have
been asked for. Use -f to export the ranking as CSV and --db to keep a
history of runs in SQLite.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	RunE:          runRank,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if viper.GetBool("verbose") {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
			Level(level).With().Timestamp().Logger()
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./scholar-rank.yaml or ~/.config/scholar-rank/config.yaml)")
	pf.String("format", string(types.OutputTable), "output format: table, json, or yaml")
	pf.String("db", "", "SQLite run history database (disabled when empty)")
	pf.BoolP("verbose", "v", false, "log every page")

	f := rootCmd.Flags()
	f.IntP("count", "n", defaultCount, "number of results to request")
	f.StringP("file", "f", "", "write the ranking to FILE as CSV")
	f.String("on-malformed", string(types.PolicyAbort), "malformed result policy: abort or skip")
	f.String("parser", "positional", "byline parser: positional or grammar")
	f.String("base-url", fetch.DefaultBaseURL, "results page endpoint")
	f.String("user-agent", defaultUserAgent, "User-Agent header")
	f.Duration("timeout", 0, "HTTP request timeout (default none)")
	f.String("secrets-dir", defaultSecretsDir, "directory of credential header files (e.g. cookie)")

	for key, flag := range map[string]string{
		"format": "format", "db": "db", "verbose": "verbose",
	} {
		viper.BindPFlag(key, pf.Lookup(flag))
	}
	for key, flag := range map[string]string{
		"count": "count", "csv_path": "file", "on_malformed": "on-malformed",
		"parser": "parser", "base_url": "base-url", "user_agent": "user-agent",
		"timeout": "timeout", "secrets_dir": "secrets-dir",
	} {
		viper.BindPFlag(key, f.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-rank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-rank"))
		}
	}

	viper.SetEnvPrefix("SCHOLAR_RANK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// scholarConfig assembles the run settings from flags, config and env.
func scholarConfig(args []string) (types.ScholarConfig, error) {
	cfg := types.ScholarConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		BaseURL:     viper.GetString("base_url"),
		Query:       strings.Join(args, " "),
		Count:       viper.GetInt("count"),
		PageSize:    fetch.DefaultPageSize,
		OnMalformed: types.MalformedPolicy(viper.GetString("on_malformed")),
		Parser:      viper.GetString("parser"),
	}

	if strings.TrimSpace(cfg.Query) == "" {
		return cfg, fmt.Errorf("query is empty: provide one or more search keywords")
	}
	if cfg.Count < 0 {
		return cfg, fmt.Errorf("-n must not be negative, got %d", cfg.Count)
	}
	if !cfg.OnMalformed.Valid() {
		return cfg, fmt.Errorf("unknown --on-malformed policy %q: use abort or skip", cfg.OnMalformed)
	}
	return cfg, nil
}

func exportConfig() types.ExportConfig {
	return types.ExportConfig{
		Format:  types.OutputFormat(viper.GetString("format")),
		CSVPath: viper.GetString("csv_path"),
		DBPath:  viper.GetString("db"),
	}
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := scholarConfig(args)
	if err != nil {
		return err
	}
	exp := exportConfig()
	ctx := cmd.Context()

	headers, err := secrets.LoadHeaders(viper.GetString("secrets_dir"), logger)
	if err != nil {
		return err
	}
	if len(headers) > 0 {
		logger.Info().Strs("headers", secrets.Names(headers)).Msg("loaded credential headers")
	}
	cfg.Headers = headers

	client, err := httputil.NewSession(cfg.HTTPConfig)
	if err != nil {
		return err
	}

	started := time.Now()
	agg := aggregate.New(cfg.OnMalformed, logger)
	sum, err := rank.Run(ctx, fetch.New(client, cfg.BaseURL), cfg, agg, logger)
	if err != nil {
		return err
	}
	logger.Info().Int("pages", sum.Pages).Int("failed_pages", sum.FailedPages).
		Int("results", sum.Records).Int("skipped", sum.Skipped).
		Dur("elapsed", time.Since(started)).Msg("search complete")

	byRank := agg.Finalize()
	ranked := byRank.SortByCitations()

	if err := report.Format(ranked, exp.Format, cmd.OutOrStdout()); err != nil {
		return err
	}

	if exp.CSVPath != "" {
		if err := report.WriteCSV(ranked, exp.CSVPath); err != nil {
			return err
		}
		logger.Info().Str("path", exp.CSVPath).Int("rows", ranked.Len()).Msg("wrote CSV")
	}

	if exp.DBPath != "" {
		db, err := store.Open(exp.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := db.Save(ctx, cfg.Query, cfg.Count, started, byRank)
		if err != nil {
			return err
		}
		logger.Info().Int64("run", id).Str("db", exp.DBPath).Msg("saved run")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
