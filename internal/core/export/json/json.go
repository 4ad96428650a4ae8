package json

import (
	"encoding/json"
	"fmt"
	"io"

	"PaperDigest/internal/models"
)

type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Export(w io.Writer, records []models.Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if records == nil {
		records = []models.Record{}
	}
	data := map[string]interface{}{
		"total":   len(records),
		"records": records,
	}

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("写入 JSON 失败: %w", err)
	}
	return nil
}
