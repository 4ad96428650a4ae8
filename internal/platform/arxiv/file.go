package arxiv

import (
	"fmt"
	"os"

	"PaperDigest/internal/models"
)

// ParseFile 读取本地保存的 API 响应并解析
func ParseFile(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	records, _, err := ParseAtomFeed(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
