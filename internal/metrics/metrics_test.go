package metrics

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaperDigest/internal/models"
)

func textfile(t *testing.T, m *Metrics) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paperdigest.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestObserve(t *testing.T) {
	m := New()
	started := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	m.Observe(&models.Run{
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Queries:    9,
		FailedDocs: 1,
		Fetched:    100,
		Filtered:   10,
		Kept:       8,
	})

	out := textfile(t, m)
	assert.Contains(t, out, `paperdigest_last_run_records{stage="fetched"} 100`)
	assert.Contains(t, out, `paperdigest_last_run_records{stage="filtered"} 10`)
	assert.Contains(t, out, `paperdigest_last_run_records{stage="kept"} 8`)
	assert.Contains(t, out, "paperdigest_last_run_queries 9")
	assert.Contains(t, out, "paperdigest_last_run_failed_documents 1")
	assert.Contains(t, out, "paperdigest_last_run_duration_seconds 2")
	assert.Contains(t, out, "# TYPE paperdigest_last_run_queries gauge")
}

func TestObserve_FailedRunKeepsLastSuccess(t *testing.T) {
	m := New()
	ok := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	m.Observe(&models.Run{StartedAt: ok, FinishedAt: ok, Kept: 5})
	m.Observe(&models.Run{StartedAt: ok.Add(time.Hour)})

	out := textfile(t, m)
	assert.Contains(t, out, "paperdigest_last_success_timestamp_seconds "+strconv.FormatFloat(float64(ok.Unix()), 'g', -1, 64))
	assert.Contains(t, out, `paperdigest_last_run_records{stage="kept"} 0`)
}

func TestRegistry(t *testing.T) {
	families, err := New().Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
