package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"PaperDigest/internal/models"
)

// Exporter 导出器接口
type Exporter interface {
	// Export 把条目写入 w
	Export(w io.Writer, records []models.Record) error
}

// ToFile 导出到文件（覆盖写），必要时创建目录
func ToFile(exp Exporter, records []models.Record, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	if err := exp.Export(file, records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
