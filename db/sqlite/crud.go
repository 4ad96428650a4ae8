package db

import (
	"database/sql"
	"fmt"

	"PaperDigest/internal/models"
)

func (s *SQLiteDB) SaveRun(r *models.Run) error {
	query := `
	INSERT INTO runs (
		id, started_at, finished_at, queries, failed_docs,
		fetched, filtered, kept, format, output_path, date_offset
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		finished_at = excluded.finished_at,
		queries = excluded.queries,
		failed_docs = excluded.failed_docs,
		fetched = excluded.fetched,
		filtered = excluded.filtered,
		kept = excluded.kept,
		format = excluded.format,
		output_path = excluded.output_path,
		date_offset = excluded.date_offset
	`

	_, err := s.db.Exec(query,
		r.ID, r.StartedAt.UTC(), r.FinishedAt.UTC(), r.Queries, r.FailedDocs,
		r.Fetched, r.Filtered, r.Kept, r.Format, r.OutputPath, r.DateOffset,
	)
	if err != nil {
		return fmt.Errorf("保存运行记录失败: %w", err)
	}
	return nil
}

const runColumns = `id, started_at, finished_at, queries, failed_docs,
	fetched, filtered, kept, format, output_path, date_offset`

func (s *SQLiteDB) ListRuns(limit int) ([]*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteDB) GetRun(id string) (*models.Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("运行记录不存在: %s", id)
	}
	return r, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (*models.Run, error) {
	var (
		r          models.Run
		finishedAt sql.NullTime
		format     sql.NullString
		outputPath sql.NullString
		dateOffset sql.NullInt64
	)
	err := sc.Scan(
		&r.ID, &r.StartedAt, &finishedAt, &r.Queries, &r.FailedDocs,
		&r.Fetched, &r.Filtered, &r.Kept, &format, &outputPath, &dateOffset,
	)
	if err != nil {
		return nil, err
	}
	r.FinishedAt = finishedAt.Time
	r.Format = format.String
	r.OutputPath = outputPath.String
	r.DateOffset = int(dateOffset.Int64)
	return &r, nil
}
