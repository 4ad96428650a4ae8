package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"PaperDigest/config"
	storage "PaperDigest/db"
	dbsqlite "PaperDigest/db/sqlite"
	"PaperDigest/internal/core"
	"PaperDigest/internal/metrics"
	"PaperDigest/internal/platform"
	"PaperDigest/pkg/logger"
)

var (
	runOutput     string
	runFormat     string
	runDateOffset int
	runMaxResults int
	runDryRun     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, filter and write the digest",
	Long: `Issues one API query per configured keyword and researcher (sequentially,
honouring arxiv.request_delay), filters the entries by recency and filter
keywords, removes duplicates and writes the digest.

A query that fails or returns a malformed document is skipped; the run only
fails when every query fails.`,
	Args: cobra.NoArgs,
	RunE: runDigest,
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output file (overrides output.path)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "", "output format: markdown, json, csv")
	runCmd.Flags().IntVar(&runDateOffset, "date-offset", 0, "recency cutoff in days relative to now (overrides filter.date_offset)")
	runCmd.Flags().IntVar(&runMaxResults, "max-results", 0, "results per query (overrides arxiv.max_results)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print the digest to stdout instead of writing a file")
	rootCmd.AddCommand(runCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg := *config.Get()
	if cmd.Flags().Changed("max-results") {
		cfg.Arxiv.MaxResults = runMaxResults
	}
	if err := cfg.Arxiv.Validate(); err != nil {
		return fmt.Errorf("arxiv 配置不合法: %w", err)
	}

	app, err := newApp(&cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	opts := runOptions(&cfg)
	if runOutput != "" {
		opts.OutputPath = runOutput
	}
	if runFormat != "" {
		opts.Format = runFormat
	}
	if cmd.Flags().Changed("date-offset") {
		opts.DateOffsetDays = runDateOffset
	}
	opts.DryRun = runDryRun
	opts.Stdout = cmd.OutOrStdout()

	run, err := app.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	logger.Info("运行完成 %s: 检索 %d 次（失败 %d），共 %d 条，过滤后 %d 条，输出 %d 条，用时 %v",
		run.ID, run.Queries, run.FailedDocs, run.Fetched, run.Filtered, run.Kept, run.Duration())
	return nil
}

func runOptions(cfg *config.AppConfig) core.RunOptions {
	return core.RunOptions{
		Source:          cfg.Source,
		Keywords:        cfg.Query.Keywords,
		Researchers:     cfg.Query.Researchers,
		KeywordField:    cfg.Query.Field,
		ResearcherField: cfg.Query.ResearcherField,
		FilterKeywords:  cfg.Filter.Keywords,
		DateOffsetDays:  cfg.Filter.DateOffset,
		Format:          cfg.Output.Format,
		OutputPath:      cfg.Output.Path,
	}
}

// newApp 按配置装配运行历史与指标，database.path 为空时不记录历史
func newApp(cfg *config.AppConfig) (*core.App, error) {
	var runs storage.RunStorage
	if cfg.Database.Path != "" {
		sqliteDB, err := dbsqlite.NewSQLiteDB(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		runs = sqliteDB
	}

	app := core.NewApp(runs, map[string]platform.Config{
		"arxiv": &cfg.Arxiv,
	})
	if cfg.Metrics.Textfile != "" {
		app.WithMetrics(metrics.New(), cfg.Metrics.Textfile)
	}
	return app, nil
}
