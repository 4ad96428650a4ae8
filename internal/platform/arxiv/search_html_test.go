package arxiv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<div id="main-container">
  <h1 class="title is-clearfix">Showing 1&ndash;2 of 1,234 results for all: fracture</h1>
</div>
<ol class="breathe-horizontal">
  <li class="arxiv-result">
    <div class="is-marginless">
      <p class="list-title is-inline-block"><a href="https://arxiv.org/abs/2401.00001">arXiv:2401.00001</a></p>
      <div class="tags is-inline-block">
        <span class="tag is-small is-link tooltip is-tooltip-top" data-tooltip="Machine Learning">cs.LG</span>
        <span class="tag is-small is-grey tooltip is-tooltip-top" data-tooltip="Computational Physics">physics.comp-ph</span>
      </div>
    </div>
    <p class="title is-5 mathjax">
      Phase-field   fracture
      with neural operators
    </p>
    <p class="authors">
      <span class="search-hit">Authors:</span>
      <a href="/a/1">Somdatta Goswami</a>,
      <a href="/a/2">George Em Karniadakis</a>
    </p>
    <p class="abstract mathjax">
      <span class="abstract-full has-text-grey-dark mathjax">We train a DeepONet. △ Less</span>
    </p>
    <p class="is-size-7"><span>Submitted</span> 3 January, 2024; <span>originally announced</span> January 2024.</p>
    <p class="comments is-size-7">Comments: 10 pages</p>
  </li>
  <li class="arxiv-result">
    <p class="title is-5 mathjax">No link here</p>
  </li>
</ol>
</body></html>`

func TestParseSearchHTML(t *testing.T) {
	records, total, err := ParseSearchHTML(searchPage)
	require.NoError(t, err)
	assert.Equal(t, 1234, total)
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "https://arxiv.org/abs/2401.00001", r.ID)
	assert.Equal(t, "Phase-field fracture with neural operators", r.Title)
	assert.Equal(t, []string{"Somdatta Goswami", "George Em Karniadakis"}, []string(r.Authors))
	assert.Equal(t, "We train a DeepONet.", r.Summary)
	assert.Equal(t, []string{"cs.LG", "physics.comp-ph"}, r.Categories.Terms())
	assert.Equal(t, "2024-01-03T00:00:00Z", r.Updated)
	assert.Equal(t, "10 pages", r.Comment)
	assert.Equal(t, "https://arxiv.org/abs/2401.00001", r.Links.PrimaryHref())

	assert.Equal(t, "", records[1].ID)
	assert.Nil(t, records[1].Links)
}

func TestParseSearchHTML_NoResults(t *testing.T) {
	records, total, err := ParseSearchHTML(`<html><body><h1>Sorry, your query returned no results</h1></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, total)
}

func TestParseSubmittedDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Submitted 3 January, 2024; originally announced January 2024.", "2024-01-03"},
		{"Submitted 9 May, 2024; v1 submitted 2 Feb, 2024; originally announced February 2024.", "2024-02-02"},
		{"no date", ""},
	}
	for _, tt := range tests {
		got := parseSubmittedDate(tt.in)
		if tt.want == "" {
			assert.True(t, got.IsZero(), tt.in)
			continue
		}
		assert.Equal(t, tt.want, got.Format("2006-01-02"), tt.in)
	}
}
