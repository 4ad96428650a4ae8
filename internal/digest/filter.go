package digest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"PaperDigest/internal/models"

	"github.com/samber/lo"
)

// ErrBadTimestamp updated 字段缺失或不是 YYYY-MM-DDThh:mm:ssZ
var ErrBadTimestamp = errors.New("bad updated timestamp")

// FilterOptions 过滤参数
type FilterOptions struct {
	// Keywords 标题或摘要中至少包含其一（不区分大小写）
	Keywords []string
	// DateOffsetDays 截止时间 = Now + DateOffsetDays 天，updated 早于它的条目被排除；
	// 负数表示往回看 N 天，正数会把截止点推到未来
	DateOffsetDays int
	// Now 一批条目共用的当前时间，零值时取一次 time.Now()
	Now time.Time
}

// Cutoff 返回本批次的截止时间
func (o FilterOptions) Cutoff() time.Time {
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}
	return now.UTC().AddDate(0, 0, o.DateOffsetDays)
}

// ParseUpdated 按固定格式解析时间戳，不接受小数秒和时区偏移
func ParseUpdated(value string) (time.Time, error) {
	if len(value) != len(models.TimestampLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, value)
	}
	t, err := time.Parse(models.TimestampLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, value)
	}
	return t, nil
}

// Filter 保留 updated 不早于截止时间、且标题或摘要命中任一关键词的条目，顺序不变
func Filter(records []models.Record, opts FilterOptions) []models.Record {
	cutoff := opts.Cutoff()

	keywords := lo.Map(opts.Keywords, func(k string, _ int) string {
		return strings.ToLower(k)
	})

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		updated, err := ParseUpdated(r.Updated)
		if err != nil {
			continue
		}
		if updated.Before(cutoff) {
			continue
		}
		if matchesAny(r, keywords) {
			out = append(out, r)
		}
	}
	return out
}

// matchesAny keywords 需已转成小写
func matchesAny(r models.Record, keywords []string) bool {
	title := strings.ToLower(r.Title)
	summary := strings.ToLower(r.Summary)
	return lo.SomeBy(keywords, func(k string) bool {
		return strings.Contains(title, k) || strings.Contains(summary, k)
	})
}
