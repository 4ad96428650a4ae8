package digest

import (
	"strings"

	"PaperDigest/internal/models"
)

// Render 把条目渲染成 markdown：每个字段一行，缺失的字段整行省略，条目之间空一行
func Render(records []models.Record) string {
	var sb strings.Builder
	for i := range records {
		writeRecord(&sb, &records[i])
	}
	return sb.String()
}

func writeRecord(sb *strings.Builder, r *models.Record) {
	writeLine(sb, "Title", r.Title)
	writeLine(sb, "Authors", r.AuthorsCSV())
	writeLine(sb, "Summary", r.Summary)
	writeLine(sb, "Published", r.Updated)
	writeLine(sb, "Link", r.Links.PrimaryHref())
	sb.WriteString("\n")
}

func writeLine(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString("**")
	sb.WriteString(label)
	sb.WriteString("**: ")
	sb.WriteString(value)
	sb.WriteString("\n")
}
