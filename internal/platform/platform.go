package platform

import (
	"context"

	"PaperDigest/internal/models"
)

// Query 一次检索请求：一个关键词或一位作者，对应一篇返回文档
type Query struct {
	Term  string
	Field string // arXiv 检索字段前缀，如 all / ti / au / abs
}

// Result 一次检索的结果（一篇文档解析后的条目）
type Result struct {
	Total   int
	Records []models.Record
}

// Platform 预印本平台接口
type Platform interface {
	Name() string

	// Search 发起一次请求并解析返回文档；文档不合法时返回 *arxiv.ParseError 之类的结构错误
	Search(ctx context.Context, q Query) (Result, error)

	GetConfig() Config
}

type Config interface {
	Validate() error
}
