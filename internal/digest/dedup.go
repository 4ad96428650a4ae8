package digest

import (
	"PaperDigest/internal/models"

	"github.com/samber/lo"
)

// Dedup 按 ID 去重，保留第一次出现的条目及其顺序。没有 ID 的条目直接丢弃。
func Dedup(records []models.Record) []models.Record {
	withID := lo.Filter(records, func(r models.Record, _ int) bool {
		return r.ID != ""
	})
	return lo.UniqBy(withID, func(r models.Record) string {
		return r.ID
	})
}
