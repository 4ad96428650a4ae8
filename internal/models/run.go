package models

import "time"

// Run 一次 digest 执行的统计信息（只记录元数据，不保存条目本身）
type Run struct {
	ID         string    `db:"id"`
	StartedAt  time.Time `db:"started_at"`
	FinishedAt time.Time `db:"finished_at"`
	Queries    int       `db:"queries"`
	FailedDocs int       `db:"failed_docs"`
	Fetched    int       `db:"fetched"`
	Filtered   int       `db:"filtered"`
	Kept       int       `db:"kept"`
	Format     string    `db:"format"`
	OutputPath string    `db:"output_path"`
	DateOffset int       `db:"date_offset"`
}

// Duration 执行耗时
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
