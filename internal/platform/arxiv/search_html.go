package arxiv

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"PaperDigest/internal/models"

	"github.com/PuerkitoBio/goquery"
)

var (
	totalRe     = regexp.MustCompile(`of\s+([\d,]+)\s+results`)
	submittedRe = regexp.MustCompile(`Submitted\s*(.+?);\s*originally`)
	v1Re        = regexp.MustCompile(`v1\s*submitted\s+(.+?);\s*originally`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// ParseSearchHTML 解析 arxiv.org/search/advanced 的结果页（use_api=false 时的兜底方式），
// 输出与 Atom 解析相同形状的条目。
func ParseSearchHTML(htmlContent string) ([]models.Record, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, 0, &ParseError{Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	total := 0
	candidates := []string{
		"#main-container h1",
		"h1.title",
		"h1",
	}
	for _, sel := range candidates {
		doc.Find(sel).EachWithBreak(func(i int, s *goquery.Selection) bool {
			text := cleanText(s.Text())
			if strings.Contains(text, "Sorry") {
				return false
			}
			if m := totalRe.FindStringSubmatch(text); len(m) > 1 {
				fmt.Sscanf(strings.ReplaceAll(m[1], ",", ""), "%d", &total)
				return false
			}
			return true
		})
		if total > 0 {
			break
		}
	}

	var records []models.Record
	doc.Find("li.arxiv-result").Each(func(i int, s *goquery.Selection) {
		records = append(records, parseResultItem(s))
	})

	if total == 0 && len(records) > 0 {
		total = len(records)
	}
	return records, total, nil
}

func parseResultItem(s *goquery.Selection) models.Record {
	var rec models.Record

	if link := s.Find("p.list-title a").First(); link.Length() > 0 {
		if href, ok := link.Attr("href"); ok {
			rec.ID = href
			rec.Links = models.Links{{
				{Key: "href", Value: href},
				{Key: "rel", Value: "alternate"},
				{Key: "type", Value: "text/html"},
			}}
		}
	}

	if title := s.Find("p.title"); title.Length() > 0 {
		rec.Title = cleanText(title.Text())
	}

	if authors := s.Find("p.authors a"); authors.Length() > 0 {
		authors.Each(func(i int, a *goquery.Selection) {
			if name := cleanText(a.Text()); name != "" {
				rec.Authors = append(rec.Authors, name)
			}
		})
	}

	if abstract := s.Find("span.abstract-full"); abstract.Length() > 0 {
		text := cleanText(abstract.Text())
		text = strings.TrimSuffix(text, "△ Less")
		rec.Summary = strings.TrimSpace(text)
	}

	s.Find("span.tag.tooltip").Each(func(i int, tag *goquery.Selection) {
		if term := strings.TrimSpace(tag.Text()); term != "" {
			rec.Categories = append(rec.Categories, models.Attributes{{Key: "term", Value: term}})
		}
	})

	if comments := s.Find("p.comments"); comments.Length() > 0 {
		rec.Comment = cleanText(strings.TrimPrefix(strings.TrimSpace(comments.Text()), "Comments:"))
	}

	if dateElem := s.Find("p.is-size-7"); dateElem.Length() > 0 {
		if t := parseSubmittedDate(dateElem.Text()); !t.IsZero() {
			rec.Updated = t.Format(models.TimestampLayout)
			rec.Published = rec.Updated
		}
	}

	return rec
}

// parseSubmittedDate 从 "Submitted 3 January, 2024; originally announced ..." 中取日期，优先 v1
func parseSubmittedDate(text string) time.Time {
	var dateStr string
	if m := v1Re.FindStringSubmatch(text); len(m) > 1 {
		dateStr = m[1]
	} else if m := submittedRe.FindStringSubmatch(text); len(m) > 1 {
		dateStr = m[1]
	}

	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}
	}
	t, err := time.Parse("2 January, 2006", dateStr)
	if err != nil {
		t, _ = time.Parse("2 Jan, 2006", dateStr)
	}
	return t
}

func cleanText(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}
