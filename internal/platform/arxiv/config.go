package arxiv

import (
	"fmt"
)

type Config struct {
	UseAPI  bool   `mapstructure:"use_api" yaml:"use_api"` // 使用官方 API（true）或网页搜索（false）
	Proxy   string `mapstructure:"proxy" yaml:"proxy"`     // 代理地址，如 "http://127.0.0.1:7890"
	Timeout int    `mapstructure:"timeout" yaml:"timeout"` // 超时时间（秒）

	APIBase string `mapstructure:"api_base" yaml:"api_base"` // API 基础 URL
	WebBase string `mapstructure:"web_base" yaml:"web_base"` // 网页基础 URL

	MaxResults int    `mapstructure:"max_results" yaml:"max_results"` // 每个查询返回的条数（API 上限 2000）
	Start      int    `mapstructure:"start" yaml:"start"`
	SortBy     string `mapstructure:"sort_by" yaml:"sort_by"`       // relevance / lastUpdatedDate / submittedDate
	SortOrder  string `mapstructure:"sort_order" yaml:"sort_order"` // ascending / descending

	RequestDelay float64 `mapstructure:"request_delay" yaml:"request_delay"` // 两次请求之间的最小间隔（秒），arXiv 要求 3 秒
	Retries      int     `mapstructure:"retries" yaml:"retries"`             // 失败后的重试次数
	RetryWait    float64 `mapstructure:"retry_wait" yaml:"retry_wait"`       // 首次重试等待（秒），之后指数增长
	UserAgent    string  `mapstructure:"user_agent" yaml:"user_agent"`
}

func DefaultConfig() *Config {
	return &Config{
		UseAPI:       true,
		Timeout:      30,
		APIBase:      "http://export.arxiv.org/api/query",
		WebBase:      "https://arxiv.org/search/advanced",
		MaxResults:   20,
		Start:        0,
		SortBy:       "submittedDate",
		SortOrder:    "descending",
		RequestDelay: 3,
		Retries:      3,
		RetryWait:    1,
		UserAgent:    "PaperDigest/1.0 (+https://arxiv.org/help/api)",
	}
}

var (
	validSortBy    = map[string]bool{"relevance": true, "lastUpdatedDate": true, "submittedDate": true}
	validSortOrder = map[string]bool{"ascending": true, "descending": true}
)

func (c *Config) Validate() error {
	if c.MaxResults <= 0 || c.MaxResults > 2000 {
		return fmt.Errorf("max_results must be between 1 and 2000, got %d", c.MaxResults)
	}
	if c.Start < 0 {
		return fmt.Errorf("start must not be negative, got %d", c.Start)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.Timeout)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request_delay must not be negative, got %v", c.RequestDelay)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.APIBase == "" {
		return fmt.Errorf("api_base cannot be empty")
	}
	if c.WebBase == "" {
		return fmt.Errorf("web_base cannot be empty")
	}
	if !validSortBy[c.SortBy] {
		return fmt.Errorf("unknown sort_by %q", c.SortBy)
	}
	if !validSortOrder[c.SortOrder] {
		return fmt.Errorf("unknown sort_order %q", c.SortOrder)
	}
	return nil
}
