package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"PaperDigest/internal/models"
)

type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Export(w io.Writer, records []models.Record) error {
	// 带 BOM，方便 Excel 直接打开
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("写入 BOM 失败: %w", err)
	}

	writer := csv.NewWriter(w)

	headers := []string{
		"ID", "Title", "Authors", "Summary", "Updated", "Published",
		"Categories", "PrimaryCategory", "Link", "DOI",
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Title,
			strings.Join(r.Authors, "; "),
			truncate(r.Summary, 500),
			r.Updated,
			r.Published,
			strings.Join(r.Categories.Terms(), "; "),
			strings.Join(r.PrimaryCategories.Terms(), "; "),
			r.Links.PrimaryHref(),
			r.DOI,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("写入数据失败: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// truncate 按字符截断，避免切断多字节字符
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
