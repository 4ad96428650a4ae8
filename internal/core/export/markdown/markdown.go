package markdown

import (
	"fmt"
	"io"

	"PaperDigest/internal/digest"
	"PaperDigest/internal/models"
)

type MarkdownExporter struct{}

func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export 输出内容与 digest.Render 完全一致
func (e *MarkdownExporter) Export(w io.Writer, records []models.Record) error {
	if _, err := io.WriteString(w, digest.Render(records)); err != nil {
		return fmt.Errorf("写入 markdown 失败: %w", err)
	}
	return nil
}
