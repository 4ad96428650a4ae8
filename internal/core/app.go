package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	storage "PaperDigest/db"
	exporter "PaperDigest/internal/core/export"
	csv "PaperDigest/internal/core/export/csv"
	json "PaperDigest/internal/core/export/json"
	markdown "PaperDigest/internal/core/export/markdown"
	"PaperDigest/internal/digest"
	"PaperDigest/internal/metrics"
	"PaperDigest/internal/models"
	"PaperDigest/internal/platform"
	"PaperDigest/pkg/logger"

	"github.com/google/uuid"
)

// RunOptions 一次运行的全部输入，由配置与命令行参数拼出
type RunOptions struct {
	Source string // 平台名，如 "arxiv"

	Keywords        []string // 检索关键词，每个发一次请求
	Researchers     []string // 关注的作者，同样每人一次请求
	KeywordField    string
	ResearcherField string

	FilterKeywords []string // 标题/摘要至少命中其一
	DateOffsetDays int

	Format     string // markdown / json / csv
	OutputPath string
	DryRun     bool      // 不写文件，输出到 Stdout
	Stdout     io.Writer // DryRun 时的输出
	Now        time.Time // 过滤用的当前时间，零值取 time.Now()
}

// Queries 按配置顺序展开成检索请求：先关键词，后作者
func (o RunOptions) Queries() []platform.Query {
	var qs []platform.Query
	for _, kw := range o.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			qs = append(qs, platform.Query{Term: kw, Field: o.KeywordField})
		}
	}
	for _, r := range o.Researchers {
		if r = strings.TrimSpace(r); r != "" {
			qs = append(qs, platform.Query{Term: r, Field: o.ResearcherField})
		}
	}
	return qs
}

type App struct {
	runs        storage.RunStorage // 可为 nil，表示不记录运行历史
	metrics     *metrics.Metrics   // 可为 nil
	metricsFile string
	platformCfg map[string]platform.Config
}

func NewApp(runs storage.RunStorage, pCfg map[string]platform.Config) *App {
	if pCfg == nil {
		pCfg = map[string]platform.Config{}
	}
	return &App{
		runs:        runs,
		platformCfg: pCfg,
	}
}

// WithMetrics 每次运行后把统计写到 textfile
func (a *App) WithMetrics(m *metrics.Metrics, textfile string) *App {
	a.metrics = m
	a.metricsFile = textfile
	return a
}

func (a *App) Close() error {
	if a == nil || a.runs == nil {
		return nil
	}
	return a.runs.Close()
}

func (a *App) GetPlatform(platformName string) (platform.Platform, error) {
	prov, ok := Get(platformName)
	if !ok {
		return nil, fmt.Errorf("未知或未实现的平台: %s (可用: %s)", platformName, strings.Join(List(), ", "))
	}

	pcfg, ok := a.platformCfg[platformName]
	if !ok {
		logger.Debug("使用平台默认配置: %s", platformName)
		pcfg = prov.DefaultConfig()
	}

	return prov.New(pcfg)
}

// CollectStats 抓取阶段的统计
type CollectStats struct {
	Queries    int
	FailedDocs int
}

// Collect 逐个发起检索并按顺序拼接条目。单篇文档抓取或解析失败只记一次失败，不影响其他文档；
// 全部失败时返回错误。
func (a *App) Collect(ctx context.Context, plat platform.Platform, queries []platform.Query) ([]models.Record, CollectStats, error) {
	var (
		all   []models.Record
		stats CollectStats
		last  error
	)

	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return all, stats, err
		}
		stats.Queries++

		logger.Info("[%d/%d] 检索 %s:%q", i+1, len(queries), q.Field, q.Term)
		res, err := plat.Search(ctx, q)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return all, stats, err
			}
			logger.Warn("检索 %q 失败，跳过该文档: %v", q.Term, err)
			stats.FailedDocs++
			last = err
			continue
		}
		all = append(all, res.Records...)
	}

	if stats.Queries > 0 && stats.FailedDocs == stats.Queries {
		return all, stats, fmt.Errorf("所有检索均失败: %w", last)
	}
	return all, stats, nil
}

// DigestResult 过滤与去重各阶段的结果
type DigestResult struct {
	Fetched  int
	Filtered []models.Record
	Kept     []models.Record
}

// Digest 先过滤再去重（与抓取顺序无关的纯内存处理）
func Digest(records []models.Record, opts digest.FilterOptions) DigestResult {
	filtered := digest.Filter(records, opts)
	kept := digest.Dedup(filtered)
	logger.Info("共 %d 条，过滤后 %d 条，去重后 %d 条", len(records), len(filtered), len(kept))
	return DigestResult{
		Fetched:  len(records),
		Filtered: filtered,
		Kept:     kept,
	}
}

func NewExporter(format string) (exporter.Exporter, error) {
	switch strings.ToLower(format) {
	case "", "markdown", "md":
		return markdown.NewMarkdownExporter(), nil
	case "csv":
		return csv.NewCSVExporter(), nil
	case "json":
		return json.NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("不支持的导出格式: %s", format)
	}
}

// Run 完整执行一次：抓取 -> 过滤 -> 去重 -> 渲染 -> 写出，并记录运行历史与指标
func (a *App) Run(ctx context.Context, opts RunOptions) (*models.Run, error) {
	run := &models.Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		Format:     opts.Format,
		OutputPath: opts.OutputPath,
		DateOffset: opts.DateOffsetDays,
	}

	exp, err := NewExporter(opts.Format)
	if err != nil {
		return nil, err
	}

	queries := opts.Queries()
	if len(queries) == 0 {
		return nil, fmt.Errorf("没有配置任何检索关键词或作者")
	}

	plat, err := a.GetPlatform(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("创建平台实例失败: %w", err)
	}

	logger.Info("开始运行 %s: 平台=%s, 检索 %d 次", run.ID, plat.Name(), len(queries))
	records, stats, err := a.Collect(ctx, plat, queries)
	run.Queries = stats.Queries
	run.FailedDocs = stats.FailedDocs
	if err != nil {
		a.record(run)
		return run, err
	}

	now := opts.Now
	if now.IsZero() {
		now = run.StartedAt
	}
	res := Digest(records, digest.FilterOptions{
		Keywords:       opts.FilterKeywords,
		DateOffsetDays: opts.DateOffsetDays,
		Now:            now,
	})
	run.Fetched = res.Fetched
	run.Filtered = len(res.Filtered)
	run.Kept = len(res.Kept)

	if opts.DryRun {
		run.OutputPath = "-"
	}
	if err := a.write(exp, res.Kept, opts); err != nil {
		a.record(run)
		return run, err
	}
	run.FinishedAt = time.Now()

	a.record(run)
	return run, nil
}

func (a *App) write(exp exporter.Exporter, records []models.Record, opts RunOptions) error {
	if opts.DryRun {
		if opts.Stdout == nil {
			return fmt.Errorf("dry-run 需要提供输出")
		}
		return exp.Export(opts.Stdout, records)
	}
	if opts.OutputPath == "" {
		return fmt.Errorf("未指定输出文件")
	}
	if err := exporter.ToFile(exp, records, opts.OutputPath); err != nil {
		return fmt.Errorf("写出 digest 失败: %w", err)
	}
	logger.Info("已写出 %d 条到 %s", len(records), opts.OutputPath)
	return nil
}

// record 运行历史与指标写失败只告警，不影响本次结果；失败的运行 FinishedAt 为零值
func (a *App) record(run *models.Run) {
	if a.runs != nil {
		if err := a.runs.SaveRun(run); err != nil {
			logger.Warn("保存运行记录失败: %v", err)
		}
	}
	if a.metrics != nil {
		a.metrics.Observe(run)
		if a.metricsFile != "" {
			if err := a.metrics.WriteTextfile(a.metricsFile); err != nil {
				logger.Warn("%v", err)
			}
		}
	}
}

// History 最近的运行记录
func (a *App) History(limit int) ([]*models.Run, error) {
	if a.runs == nil {
		return nil, fmt.Errorf("未配置 database.path，没有运行历史")
	}
	return a.runs.ListRuns(limit)
}
