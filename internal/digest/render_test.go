package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"PaperDigest/internal/models"
)

func TestRender_AllFields(t *testing.T) {
	records := []models.Record{{
		ID:        "http://arxiv.org/abs/2401.00001v1",
		Title:     "Phase-field fracture model",
		Summary:   "We study brittle fracture.",
		Updated:   "2024-01-01T00:00:00Z",
		Published: "2023-12-30T00:00:00Z",
		Authors:   models.Authors{"A. One", "B. Two"},
		Links: models.Links{
			{{Key: "href", Value: "http://arxiv.org/abs/2401.00001v1"}, {Key: "rel", Value: "alternate"}},
			{{Key: "href", Value: "http://arxiv.org/pdf/2401.00001v1"}, {Key: "rel", Value: "related"}},
		},
	}}

	want := "**Title**: Phase-field fracture model\n" +
		"**Authors**: A. One, B. Two\n" +
		"**Summary**: We study brittle fracture.\n" +
		"**Published**: 2024-01-01T00:00:00Z\n" +
		"**Link**: http://arxiv.org/abs/2401.00001v1\n" +
		"\n"
	assert.Equal(t, want, Render(records))
}

func TestRender_MissingSummary(t *testing.T) {
	records := []models.Record{{
		ID:      "1",
		Title:   "No abstract",
		Updated: "2024-01-01T00:00:00Z",
		Authors: models.Authors{"A. One"},
		Links:   models.Links{{{Key: "href", Value: "http://x"}}},
	}}

	want := "**Title**: No abstract\n" +
		"**Authors**: A. One\n" +
		"**Published**: 2024-01-01T00:00:00Z\n" +
		"**Link**: http://x\n" +
		"\n"
	assert.Equal(t, want, Render(records))
}

func TestRender_LinkWithoutHref(t *testing.T) {
	records := []models.Record{{
		Title: "t",
		Links: models.Links{{{Key: "rel", Value: "alternate"}}, {{Key: "href", Value: "http://second"}}},
	}}
	assert.Equal(t, "**Title**: t\n\n", Render(records))
}

func TestRender_MultipleRecords(t *testing.T) {
	records := []models.Record{{Title: "a"}, {Title: "b"}}
	assert.Equal(t, "**Title**: a\n\n**Title**: b\n\n", Render(records))
	assert.Equal(t, "", Render(nil))
}
