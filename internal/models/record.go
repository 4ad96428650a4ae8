package models

import "strings"

// TimestampLayout updated/published 字段的固定格式（UTC，无小数秒）
const TimestampLayout = "2006-01-02T15:04:05Z"

// TextKey 属性型元素（link/category）若带有文本内容，则以该保留键存入 Attributes
const TextKey = "text"

// Attribute 元素上的一个属性（保持文档顺序）
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Attributes 有序的属性集合，对应 link / category / primary_category 的一次出现
type Attributes []Attribute

// Get 按键查找属性值
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Text 返回元素文本（保留键 "text"），没有则为空
func (a Attributes) Text() string {
	v, _ := a.Get(TextKey)
	return v
}

// Authors 作者显示名列表
type Authors []string

// Links 链接列表，每项是 link 元素的属性（rel/href/type/title ...）
type Links []Attributes

// PrimaryHref 返回第一个链接的 href，没有则为空
func (l Links) PrimaryHref() string {
	if len(l) == 0 {
		return ""
	}
	href, _ := l[0].Get("href")
	return href
}

// Categories 分类列表，每项是 category 元素的属性（term/scheme ...）
type Categories []Attributes

// Terms 返回所有分类的 term
func (c Categories) Terms() []string {
	terms := make([]string, 0, len(c))
	for _, cat := range c {
		if term, ok := cat.Get("term"); ok && term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// Field 未单独建模的标量字段
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record 一条文献条目的扁平化表示，由解析器一次构造，之后只读。
// 标量字段空字符串即视为不存在；重复字段没有出现时为 nil，出现过则一定非空。
type Record struct {
	ID         string `json:"id,omitempty"`
	Title      string `json:"title,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Updated    string `json:"updated,omitempty"`
	Published  string `json:"published,omitempty"`
	Comment    string `json:"comment,omitempty"`
	JournalRef string `json:"journal_ref,omitempty"`
	DOI        string `json:"doi,omitempty"`

	// Extra 其他标量字段，按首次出现的顺序
	Extra []Field `json:"extra,omitempty"`

	Authors           Authors    `json:"authors,omitempty"`
	Links             Links      `json:"links,omitempty"`
	Categories        Categories `json:"categories,omitempty"`
	PrimaryCategories Categories `json:"primary_category,omitempty"`
}

// Get 按裸字段名读取标量值（包括 Extra）
func (r *Record) Get(name string) (string, bool) {
	switch name {
	case "id":
		return r.ID, r.ID != ""
	case "title":
		return r.Title, r.Title != ""
	case "summary":
		return r.Summary, r.Summary != ""
	case "updated":
		return r.Updated, r.Updated != ""
	case "published":
		return r.Published, r.Published != ""
	case "comment":
		return r.Comment, r.Comment != ""
	case "journal_ref":
		return r.JournalRef, r.JournalRef != ""
	case "doi":
		return r.DOI, r.DOI != ""
	}
	for _, f := range r.Extra {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// AuthorsCSV 返回以逗号分隔的作者名
func (r *Record) AuthorsCSV() string {
	return strings.Join(r.Authors, ", ")
}
