package models

import "testing"

func TestAttributesGet(t *testing.T) {
	attrs := Attributes{{Key: "href", Value: "http://x"}, {Key: TextKey, Value: "see also"}}

	if v, ok := attrs.Get("href"); !ok || v != "http://x" {
		t.Errorf("Get(href) = %q, %v", v, ok)
	}
	if _, ok := attrs.Get("rel"); ok {
		t.Error("Get(rel) should be absent")
	}
	if attrs.Text() != "see also" {
		t.Errorf("Text() = %q", attrs.Text())
	}
}

func TestLinksPrimaryHref(t *testing.T) {
	var empty Links
	if empty.PrimaryHref() != "" {
		t.Error("empty links should have no href")
	}

	links := Links{{{Key: "rel", Value: "alternate"}}, {{Key: "href", Value: "http://y"}}}
	if links.PrimaryHref() != "" {
		t.Error("only the first link is considered")
	}
}

func TestCategoriesTerms(t *testing.T) {
	cats := Categories{{{Key: "term", Value: "cs.LG"}}, {{Key: "scheme", Value: "s"}}, {{Key: "term", Value: "math.NA"}}}
	got := cats.Terms()
	if len(got) != 2 || got[0] != "cs.LG" || got[1] != "math.NA" {
		t.Errorf("Terms() = %v", got)
	}
}

func TestRecordGet(t *testing.T) {
	r := &Record{ID: "1", Title: "t", Extra: []Field{{Name: "rights", Value: "cc0"}}}

	if v, ok := r.Get("title"); !ok || v != "t" {
		t.Errorf("Get(title) = %q, %v", v, ok)
	}
	if _, ok := r.Get("summary"); ok {
		t.Error("empty summary should be absent")
	}
	if v, ok := r.Get("rights"); !ok || v != "cc0" {
		t.Errorf("Get(rights) = %q, %v", v, ok)
	}
}

func TestAuthorsCSV(t *testing.T) {
	r := &Record{Authors: Authors{"A", "B", "C"}}
	if got := r.AuthorsCSV(); got != "A, B, C" {
		t.Errorf("AuthorsCSV() = %q", got)
	}
}

func TestRunDuration(t *testing.T) {
	var r Run
	if r.Duration() != 0 {
		t.Error("unfinished run should have zero duration")
	}
}
