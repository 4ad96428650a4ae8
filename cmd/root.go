package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"PaperDigest/config"
	"PaperDigest/pkg/logger"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "paperdigest",
	Short: "Build a digest of recent arXiv preprints",
	Long: `paperdigest queries the arXiv API once per configured keyword and researcher,
keeps entries updated within the configured window whose title or abstract
mention one of the filter keywords, drops duplicates and writes a markdown digest.

Configuration is read from config.yaml (./config, ., ~/.paperdigest/config) and
PDG_* environment variables, e.g. PDG_FILTER_DATE_OFFSET=-7.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Init(cfgFile)
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		if cfg.Log.File != "" {
			logger.InitWithFile(level, cfg.Log.File)
		} else {
			logger.Init(level, cfg.Log.Color)
		}
		if path := config.GetConfigPath(); path != "" {
			logger.Debug("使用配置文件: %s", path)
		} else {
			logger.Debug("未找到配置文件，使用默认配置")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file or directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute 运行根命令，Ctrl-C 会取消正在进行的请求
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
