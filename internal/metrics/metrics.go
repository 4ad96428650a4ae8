// Package metrics 记录单次运行的统计，写成 node_exporter textfile collector 可读的文件。
package metrics

import (
	"fmt"

	"PaperDigest/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	registry *prometheus.Registry

	records     *prometheus.GaugeVec
	queries     prometheus.Gauge
	failedDocs  prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		records: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "paperdigest_last_run_records",
			Help: "Records seen by the last run, by pipeline stage",
		}, []string{"stage"}),
		queries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "paperdigest_last_run_queries",
			Help: "Queries issued by the last run",
		}),
		failedDocs: factory.NewGauge(prometheus.GaugeOpts{
			Name: "paperdigest_last_run_failed_documents",
			Help: "Documents that could not be fetched or parsed in the last run",
		}),
		duration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "paperdigest_last_run_duration_seconds",
			Help: "Wall time of the last run",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "paperdigest_last_success_timestamp_seconds",
			Help: "Unix time of the last run that wrote a digest",
		}),
	}
}

// Observe 用一次运行的统计覆盖各指标
func (m *Metrics) Observe(run *models.Run) {
	m.records.WithLabelValues("fetched").Set(float64(run.Fetched))
	m.records.WithLabelValues("filtered").Set(float64(run.Filtered))
	m.records.WithLabelValues("kept").Set(float64(run.Kept))
	m.queries.Set(float64(run.Queries))
	m.failedDocs.Set(float64(run.FailedDocs))
	m.duration.Set(run.Duration().Seconds())
	if !run.FinishedAt.IsZero() {
		m.lastSuccess.Set(float64(run.FinishedAt.Unix()))
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile 原子地写出 .prom 文件
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("写入指标文件失败: %w", err)
	}
	return nil
}
