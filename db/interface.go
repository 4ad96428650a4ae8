package db

import (
	"PaperDigest/internal/models"
)

// RunStorage 运行记录存储。只保存每次运行的统计信息，不保存条目，
// 所以不会影响下一次运行的去重结果。
type RunStorage interface {
	SaveRun(run *models.Run) error

	// ListRuns 按开始时间倒序返回最近的运行记录，limit<=0 表示全部
	ListRuns(limit int) ([]*models.Run, error)

	GetRun(id string) (*models.Run, error)

	Close() error
}
