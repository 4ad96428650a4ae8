package arxiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PaperDigest/internal/core"
	"PaperDigest/internal/platform"
	"PaperDigest/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

type Adapter struct {
	config     *Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewAdapter(config *Config) (*Adapter, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := core.NewHTTPClient(config.Timeout, config.Proxy)

	return &Adapter{
		config:     config,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Every(seconds(config.RequestDelay)), 1),
	}, nil
}

func (a *Adapter) Name() string { return "arxiv" }

func (a *Adapter) GetConfig() platform.Config { return a.config }

func (a *Adapter) Search(ctx context.Context, q platform.Query) (platform.Result, error) {
	if strings.TrimSpace(q.Term) == "" {
		return platform.Result{}, fmt.Errorf("empty query term")
	}
	if a.config.UseAPI {
		return a.searchViaAPI(ctx, q)
	}
	return a.searchViaWeb(ctx, q)
}

// searchViaAPI 使用官方 API，一个检索词对应一次请求
func (a *Adapter) searchViaAPI(ctx context.Context, q platform.Query) (platform.Result, error) {
	apiURL := a.buildAPIURL(q)
	logger.Debug("[arXiv] API 请求: %s", apiURL)

	content, err := a.request(ctx, apiURL)
	if err != nil {
		return platform.Result{}, fmt.Errorf("API request failed: %w", err)
	}

	records, total, err := ParseAtomFeed(content)
	if err != nil {
		return platform.Result{}, fmt.Errorf("failed to parse API response for %q: %w", q.Term, err)
	}

	logger.Info("[arXiv] %q 返回 %d 条（共 %d 条匹配）", q.Term, len(records), total)
	return platform.Result{Total: total, Records: records}, nil
}

// searchViaWeb 使用网页搜索，只取第一页
func (a *Adapter) searchViaWeb(ctx context.Context, q platform.Query) (platform.Result, error) {
	webURL := a.buildWebURL(q)
	logger.Debug("[arXiv] Web 请求: %s", webURL)

	content, err := a.request(ctx, webURL)
	if err != nil {
		return platform.Result{}, fmt.Errorf("web request failed: %w", err)
	}

	records, total, err := ParseSearchHTML(content)
	if err != nil {
		return platform.Result{}, fmt.Errorf("failed to parse web response for %q: %w", q.Term, err)
	}

	if len(records) > a.config.MaxResults {
		records = records[:a.config.MaxResults]
	}

	logger.Info("[arXiv] %q 网页返回 %d 条（共 %d 条匹配）", q.Term, len(records), total)
	return platform.Result{Total: total, Records: records}, nil
}

// buildAPIURL 构造 search_query=<field>:"<term>"，并附带分页与排序参数
func (a *Adapter) buildAPIURL(q platform.Query) string {
	field := q.Field
	if field == "" {
		field = "all"
	}
	term := strings.TrimSpace(q.Term)
	if !(strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`)) {
		term = fmt.Sprintf(`"%s"`, term)
	}

	params := url.Values{}
	params.Set("search_query", fmt.Sprintf("%s:%s", field, term))
	params.Set("start", fmt.Sprintf("%d", a.config.Start))
	params.Set("max_results", fmt.Sprintf("%d", a.config.MaxResults))
	params.Set("sortBy", a.config.SortBy)
	params.Set("sortOrder", a.config.SortOrder)

	return a.config.APIBase + "?" + params.Encode()
}

// webFields API 字段前缀到网页检索字段的映射
var webFields = map[string]string{
	"all": "all",
	"ti":  "title",
	"au":  "author",
	"abs": "abstract",
}

func (a *Adapter) buildWebURL(q platform.Query) string {
	field, ok := webFields[q.Field]
	if !ok {
		field = "all"
	}

	term := strings.TrimSpace(q.Term)
	if strings.Contains(term, " ") && !(strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`)) {
		term = fmt.Sprintf(`"%s"`, term)
	}

	// 网页检索只接受固定的几档 size
	size := 200
	for _, s := range []int{25, 50, 100, 200} {
		if a.config.MaxResults <= s {
			size = s
			break
		}
	}

	order := "-announced_date_first"
	if a.config.SortOrder == "ascending" {
		order = "announced_date_first"
	}

	params := url.Values{}
	params.Add("advanced", "1")
	params.Add("terms-0-term", term)
	params.Add("terms-0-field", field)
	params.Add("classification-include_cross_list", "include")
	params.Add("abstracts", "show")
	params.Add("size", fmt.Sprintf("%d", size))
	params.Add("order", order)
	if a.config.Start > 0 {
		params.Add("start", fmt.Sprintf("%d", a.config.Start))
	}

	return a.config.WebBase + "?" + params.Encode()
}

// request 发起 GET 请求：每次尝试前先过限流器，网络错误、429 与 5xx 指数退避重试，其余 4xx 直接失败
func (a *Adapter) request(ctx context.Context, target string) (string, error) {
	var body string

	op := func() error {
		if err := a.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("User-Agent", a.config.UserAgent)

		resp, err := a.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("HTTP error: %d", resp.StatusCode)
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		body = string(data)
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = seconds(a.config.RetryWait)
	b.MaxInterval = 30 * time.Second
	b.Multiplier = 2
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(a.config.Retries)), ctx)
	notify := func(err error, wait time.Duration) {
		logger.Warn("[arXiv] 请求失败，%v 后重试: %v", wait, err)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return "", err
	}
	return body, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
