package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"PaperDigest/internal/platform/arxiv"
	"PaperDigest/pkg/logger"
)

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // debug / info / warn / error
	File  string `mapstructure:"file" yaml:"file"`   // 为空时输出到 stderr
	Color bool   `mapstructure:"color" yaml:"color"`
}

// QueryConfig 决定抓取哪些文档：每个关键词、每位作者各发一次请求
type QueryConfig struct {
	Keywords        []string `mapstructure:"keywords" yaml:"keywords"`
	Researchers     []string `mapstructure:"researchers" yaml:"researchers"`
	Field           string   `mapstructure:"field" yaml:"field"`                       // 关键词检索字段：all / ti / abs / au
	ResearcherField string   `mapstructure:"researcher_field" yaml:"researcher_field"` // 作者检索字段，默认和关键词一样用 all
}

// FilterConfig 决定保留哪些条目，与 QueryConfig 相互独立
type FilterConfig struct {
	Keywords   []string `mapstructure:"keywords" yaml:"keywords"`       // 标题或摘要至少包含其一
	DateOffset int      `mapstructure:"date_offset" yaml:"date_offset"` // 截止时间 = 现在 + date_offset 天
}

// OutputConfig 输出配置
type OutputConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	Format string `mapstructure:"format" yaml:"format"` // markdown / json / csv
}

// DatabaseConfig 运行历史数据库
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // 为空则不记录
}

// MetricsConfig 指标输出
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" yaml:"textfile"` // node_exporter textfile 路径，为空则不写
}

// AppConfig 应用总配置(全局 + 平台)
type AppConfig struct {
	Env      string         `mapstructure:"env" yaml:"env"`       // 运行环境:dev/prod
	Source   string         `mapstructure:"source" yaml:"source"` // 平台名
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Arxiv    arxiv.Config   `mapstructure:"arxiv" yaml:"arxiv"`
	Query    QueryConfig    `mapstructure:"query" yaml:"query"`
	Filter   FilterConfig   `mapstructure:"filter" yaml:"filter"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
}

var (
	global     *AppConfig
	once       sync.Once
	globalErr  error
	configPath string // 存储当前使用的配置文件路径
)

var defaultQueryKeywords = []string{
	"fracture",
	"phase-field",
	"phase field",
	"variational energy",
	"computational mechanics",
	"brittle fracture",
}

var defaultResearchers = []string{
	"Somdatta Goswami",
	"George em Karniadakis",
	"Laura de Lorenzis",
}

var defaultFilterKeywords = []string{
	"deep operator",
	"deeponet",
	"neural operator",
	"physics informed",
	"physics-informed",
	"neural network",
	"PINN",
	"operator networks",
}

// ConfigDir 默认配置目录 ~/.paperdigest/config
func ConfigDir() string {
	homedir, _ := os.UserHomeDir()
	return filepath.Join(homedir, ".paperdigest", "config")
}

func setDefaults(v *viper.Viper) {
	homedir, _ := os.UserHomeDir()
	a := arxiv.DefaultConfig()

	v.SetDefault("env", "prod")
	v.SetDefault("source", "arxiv")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.color", true)

	v.SetDefault("arxiv.use_api", a.UseAPI)
	v.SetDefault("arxiv.proxy", a.Proxy)
	v.SetDefault("arxiv.timeout", a.Timeout)
	v.SetDefault("arxiv.api_base", a.APIBase)
	v.SetDefault("arxiv.web_base", a.WebBase)
	v.SetDefault("arxiv.max_results", a.MaxResults)
	v.SetDefault("arxiv.start", a.Start)
	v.SetDefault("arxiv.sort_by", a.SortBy)
	v.SetDefault("arxiv.sort_order", a.SortOrder)
	v.SetDefault("arxiv.request_delay", a.RequestDelay)
	v.SetDefault("arxiv.retries", a.Retries)
	v.SetDefault("arxiv.retry_wait", a.RetryWait)
	v.SetDefault("arxiv.user_agent", a.UserAgent)

	v.SetDefault("query.keywords", defaultQueryKeywords)
	v.SetDefault("query.researchers", defaultResearchers)
	v.SetDefault("query.field", "all")
	v.SetDefault("query.researcher_field", "all")

	v.SetDefault("filter.keywords", defaultFilterKeywords)
	v.SetDefault("filter.date_offset", -30)

	v.SetDefault("output.path", "output.md")
	v.SetDefault("output.format", "markdown")

	v.SetDefault("database.path", filepath.Join(homedir, ".paperdigest", "data", "runs.db"))
	v.SetDefault("metrics.textfile", "")
}

// Load 读取配置（不缓存）。可额外传入目录或具体文件路径；找不到配置文件时只使用默认值与环境变量。
func Load(configPaths ...string) (*AppConfig, string, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath(ConfigDir())

	for _, p := range configPaths {
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
			v.SetConfigFile(p)
		} else {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix("PDG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	used := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, "", fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, "", fmt.Errorf("配置解析失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, used, nil
}

// Validate 校验各部分配置
func (c *AppConfig) Validate() error {
	if err := c.Arxiv.Validate(); err != nil {
		return fmt.Errorf("arxiv 配置不合法: %w", err)
	}
	if len(c.Query.Keywords) == 0 && len(c.Query.Researchers) == 0 {
		return fmt.Errorf("query 配置不合法: keywords 与 researchers 不能同时为空")
	}
	switch strings.ToLower(c.Output.Format) {
	case "markdown", "md", "json", "csv":
	default:
		return fmt.Errorf("output 配置不合法: 不支持的格式 %q", c.Output.Format)
	}
	if len(c.Filter.Keywords) == 0 {
		logger.Warn("filter.keywords 为空，所有条目都会被过滤掉")
	}
	return nil
}

// Init 全局只加载一次
func Init(configPaths ...string) (*AppConfig, error) {
	once.Do(func() {
		cfg, used, err := Load(configPaths...)
		if err != nil {
			globalErr = err
			return
		}
		global = cfg
		configPath = used
	})
	return global, globalErr
}

// Get 返回已加载的全局配置，尚未加载时按默认路径加载一次
func Get() *AppConfig {
	if global == nil {
		_, _ = Init()
	}
	return global
}

// GetConfigPath 当前使用的配置文件，没有则为空
func GetConfigPath() string {
	return configPath
}

// Default 只含默认值的配置（不读文件和环境变量）
func Default() *AppConfig {
	v := viper.New()
	setDefaults(v)
	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Marshal 把配置序列化成 YAML
func Marshal(cfg *AppConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteExampleConfig 把默认配置写到 path；文件已存在且 force=false 时不覆盖
func WriteExampleConfig(path string, force bool) error {
	if path == "" {
		path = filepath.Join(ConfigDir(), "config.yaml")
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("配置文件已存在: %s", path)
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("检查配置文件时出错: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := Marshal(Default())
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	header := "# PaperDigest 配置文件\n# 环境变量同样生效，例如 PDG_FILTER_DATE_OFFSET=-7\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	logger.Info("已在 %s 中创建配置文件", path)
	return nil
}
