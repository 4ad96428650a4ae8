package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"PaperDigest/config"
	"PaperDigest/internal/core"
	exporter "PaperDigest/internal/core/export"
	"PaperDigest/internal/digest"
	"PaperDigest/internal/models"
	"PaperDigest/internal/platform/arxiv"
	"PaperDigest/pkg/logger"
)

var (
	parseOutput     string
	parseFormat     string
	parseDateOffset int
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.xml>...",
	Short: "Build a digest from saved Atom documents",
	Long: `Parses previously saved arXiv API responses instead of querying the network.
Files are processed in the given order; a malformed file is reported and skipped.
The filter and output settings are the same as for "run".`,
	Args: cobra.MinimumNArgs(1),
	RunE: parseDigest,
}

func init() {
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "output file, stdout if empty")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: markdown, json, csv")
	parseCmd.Flags().IntVar(&parseDateOffset, "date-offset", 0, "recency cutoff in days relative to now (overrides filter.date_offset)")
	rootCmd.AddCommand(parseCmd)
}

func parseDigest(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	format := cfg.Output.Format
	if parseFormat != "" {
		format = parseFormat
	}
	exp, err := core.NewExporter(format)
	if err != nil {
		return err
	}

	records, failed := parseFiles(args)
	if failed == len(args) {
		return fmt.Errorf("%d 个文件全部解析失败", failed)
	}

	offset := cfg.Filter.DateOffset
	if cmd.Flags().Changed("date-offset") {
		offset = parseDateOffset
	}
	res := core.Digest(records, digest.FilterOptions{
		Keywords:       cfg.Filter.Keywords,
		DateOffsetDays: offset,
		Now:            time.Now(),
	})

	if parseOutput == "" {
		return exp.Export(cmd.OutOrStdout(), res.Kept)
	}
	if err := exporter.ToFile(exp, res.Kept, parseOutput); err != nil {
		return err
	}
	logger.Info("已写出 %d 条到 %s", len(res.Kept), parseOutput)
	return nil
}

// parseFiles 按参数顺序拼接各文件的条目，坏文件跳过
func parseFiles(paths []string) ([]models.Record, int) {
	var (
		all    []models.Record
		failed int
	)
	for _, p := range paths {
		records, err := arxiv.ParseFile(p)
		if err != nil {
			logger.Warn("跳过 %v", err)
			failed++
			continue
		}
		logger.Debug("%s: %d 条", p, len(records))
		all = append(all, records...)
	}
	return all, failed
}
