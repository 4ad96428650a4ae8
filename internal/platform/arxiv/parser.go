package arxiv

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"PaperDigest/internal/models"
)

const atomNS = "http://www.w3.org/2005/Atom"

// lineBreakRe 硬换行及其后的缩进
var lineBreakRe = regexp.MustCompile("\n *")

// ParseError 文档本身不是合法的 XML，整篇文档作废，不返回部分结果
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed atom document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// xmlNode 通用元素节点，保留属性、文本与子元素的文档顺序
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

type atomFeed struct {
	Total   int       `xml:"http://a9.com/-/spec/opensearch/1.1/ totalResults"`
	Entries []xmlNode `xml:"http://www.w3.org/2005/Atom entry"`
}

// fieldKind 子元素的处理方式
type fieldKind int

const (
	kindScalar     fieldKind = iota // 纯文本字段，后出现的覆盖先出现的
	kindAuthor                      // author/name
	kindAttributed                  // 带属性（可能带文本）的重复字段
)

var fieldKinds = map[string]fieldKind{
	"author":           kindAuthor,
	"link":             kindAttributed,
	"category":         kindAttributed,
	"primary_category": kindAttributed,
}

type fieldHandler func(b *recordBuilder, name string, n *xmlNode)

var fieldHandlers = map[fieldKind]fieldHandler{
	kindScalar:     handleScalar,
	kindAuthor:     handleAuthor,
	kindAttributed: handleAttributed,
}

// ParseAtomFeed 把一篇 Atom 文档解析成条目列表（文档顺序），同时返回 opensearch:totalResults
func ParseAtomFeed(xmlContent string) ([]models.Record, int, error) {
	var feed atomFeed
	dec := xml.NewDecoder(strings.NewReader(xmlContent))
	if err := dec.Decode(&feed); err != nil {
		return nil, 0, &ParseError{Err: err}
	}
	if err := expectEOF(dec); err != nil {
		return nil, 0, &ParseError{Err: err}
	}

	records := make([]models.Record, 0, len(feed.Entries))
	for i := range feed.Entries {
		records = append(records, parseEntry(&feed.Entries[i]))
	}
	return records, feed.Total, nil
}

// expectEOF 根元素之后只允许空白、注释和处理指令
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return fmt.Errorf("unexpected text after root element")
			}
		default:
			return fmt.Errorf("unexpected %T after root element", tok)
		}
	}
}

func parseEntry(entry *xmlNode) models.Record {
	b := &recordBuilder{}
	for i := range entry.Children {
		child := &entry.Children[i]
		name := child.XMLName.Local
		fieldHandlers[fieldKinds[name]](b, name, child)
	}
	return b.build()
}

type recordBuilder struct {
	rec               models.Record
	authors           models.Authors
	links             models.Links
	categories        models.Categories
	primaryCategories models.Categories
}

// build 只挂载出现过的重复字段，没出现的保持 nil
func (b *recordBuilder) build() models.Record {
	rec := b.rec
	if len(b.authors) > 0 {
		rec.Authors = b.authors
	}
	if len(b.links) > 0 {
		rec.Links = b.links
	}
	if len(b.categories) > 0 {
		rec.Categories = b.categories
	}
	if len(b.primaryCategories) > 0 {
		rec.PrimaryCategories = b.primaryCategories
	}
	return rec
}

func handleScalar(b *recordBuilder, name string, n *xmlNode) {
	value := normalizeText(n.Text)
	r := &b.rec
	switch name {
	case "id":
		r.ID = value
	case "title":
		r.Title = value
	case "summary":
		r.Summary = value
	case "updated":
		r.Updated = value
	case "published":
		r.Published = value
	case "comment":
		r.Comment = value
	case "journal_ref":
		r.JournalRef = value
	case "doi":
		r.DOI = value
	default:
		for i := range r.Extra {
			if r.Extra[i].Name == name {
				r.Extra[i].Value = value
				return
			}
		}
		r.Extra = append(r.Extra, models.Field{Name: name, Value: value})
	}
}

func handleAuthor(b *recordBuilder, _ string, n *xmlNode) {
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Space != atomNS || c.XMLName.Local != "name" {
			continue
		}
		if name := normalizeText(c.Text); name != "" {
			b.authors = append(b.authors, name)
		}
		return
	}
}

func handleAttributed(b *recordBuilder, name string, n *xmlNode) {
	attrs := make(models.Attributes, 0, len(n.Attrs)+1)
	for _, a := range n.Attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		attrs = append(attrs, models.Attribute{Key: attrKey(a.Name), Value: a.Value})
	}
	if text := normalizeText(n.Text); text != "" {
		attrs = append(attrs, models.Attribute{Key: models.TextKey, Value: text})
	}

	switch name {
	case "link":
		b.links = append(b.links, attrs)
	case "category":
		b.categories = append(b.categories, attrs)
	case "primary_category":
		b.primaryCategories = append(b.primaryCategories, attrs)
	}
}

// attrKey 无命名空间的属性用裸名，否则写成 {ns}local
func attrKey(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// normalizeText 折叠 Atom 文本里的硬换行：换行连同其后的缩进换成单个空格，再去掉首尾空白
func normalizeText(s string) string {
	return strings.TrimSpace(lineBreakRe.ReplaceAllString(s, " "))
}
