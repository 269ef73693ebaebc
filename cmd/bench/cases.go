// README: Bench cases: health, metrics, weather cache, plan shape, quota table and concurrent plan latency.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusSkip Status = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  Status
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

// planShape is the subset of a plan response the checks look at.
type planShape struct {
	ID                    string                       `json:"id"`
	Days                  []struct{ Day int }          `json:"days"`
	DayWiseAccommodations map[string][]json.RawMessage `json:"dayWiseAccommodations"`
	AIGenerated           bool                         `json:"aiGenerated"`
	HotelsAIGenerated     bool                         `json:"hotelsAiGenerated"`
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 4 * time.Minute},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	return []TestCase{
		{Name: "HTTP: health", Run: checkHealth},
		{Name: "HTTP: metrics exposed", Run: checkMetrics},
		{Name: "HTTP: weather snapshot", Run: checkWeather},
		{Name: "HTTP: plan rejects invalid input", Run: checkBadRequest},
		{Name: "HTTP: plan shape", Run: checkPlanShape},
		{Name: "Redis: weather cached", Run: checkWeatherCached},
		{Name: "Postgres: quota table migrated", Run: checkQuotaTable},
		{Name: "Load: concurrent plans", Run: checkConcurrentPlans},
	}
}

func checkHealth(ctx context.Context, r *Runner) Result {
	status, body, latency, err := r.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if status != http.StatusOK || strings.TrimSpace(string(body)) != "OK" {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status %d", status)}
	}
	return Result{Status: StatusPass, Latency: latency}
}

func checkMetrics(ctx context.Context, r *Runner) Result {
	status, body, latency, err := r.do(ctx, http.MethodGet, "/metrics", nil)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if status != http.StatusOK || !bytes.Contains(body, []byte("tripsmith_")) {
		return Result{Status: StatusFail, Latency: latency, Note: "tripsmith collectors missing"}
	}
	return Result{Status: StatusPass, Latency: latency}
}

func checkWeather(ctx context.Context, r *Runner) Result {
	path := "/api/weather?city=" + url.QueryEscape(r.cfg.Destination)
	status, body, latency, err := r.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	var snap struct {
		Location   string `json:"location"`
		APISuccess bool   `json:"apiSuccess"`
	}
	if status != http.StatusOK || json.Unmarshal(body, &snap) != nil || snap.Location == "" {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status %d", status)}
	}
	return Result{Status: StatusPass, Latency: latency, Note: fmt.Sprintf("apiSuccess=%t", snap.APISuccess)}
}

func checkBadRequest(ctx context.Context, r *Runner) Result {
	status, _, latency, err := r.do(ctx, http.MethodPost, "/api/trips/plan", map[string]any{"destination": "", "days": 0})
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if status != http.StatusBadRequest {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("expected 400, got %d", status)}
	}
	return Result{Status: StatusPass, Latency: latency}
}

func checkPlanShape(ctx context.Context, r *Runner) Result {
	plan, latency, note := r.plan(ctx)
	if note != "" {
		return Result{Status: StatusFail, Latency: latency, Note: note}
	}
	if len(plan.Days) != r.cfg.Days {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("got %d days, want %d", len(plan.Days), r.cfg.Days)}
	}
	for day := 1; day <= r.cfg.Days; day++ {
		if n := len(plan.DayWiseAccommodations[fmt.Sprint(day)]); n != 3 {
			return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("day %d has %d hotels", day, n)}
		}
	}
	return Result{
		Status:  StatusPass,
		Latency: latency,
		Note:    fmt.Sprintf("ai=%t hotelsAi=%t", plan.AIGenerated, plan.HotelsAIGenerated),
	}
}

func checkWeatherCached(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: StatusSkip, Note: "redis not configured"}
	}
	key := "weather:" + strings.ToLower(r.cfg.Destination)
	ttl, err := r.redis.TTL(ctx, key).Result()
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if ttl < 0 {
		return Result{Status: StatusSkip, Note: "no cached snapshot (weather api may be unavailable)"}
	}
	return Result{Status: StatusPass, Note: fmt.Sprintf("ttl %s", ttl)}
}

func checkQuotaTable(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: StatusSkip, Note: "db not configured"}
	}
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT to_regclass('public.generation_quota') IS NOT NULL`).Scan(&exists)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if !exists {
		return Result{Status: StatusFail, Note: "generation_quota missing"}
	}
	return Result{Status: StatusPass}
}

func checkConcurrentPlans(ctx context.Context, r *Runner) Result {
	var (
		mu        sync.Mutex
		latencies []time.Duration
		failures  int
		wg        sync.WaitGroup
	)
	sem := make(chan struct{}, r.cfg.Concurrency)
	for i := 0; i < r.cfg.Requests; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			_, latency, note := r.plan(ctx)
			mu.Lock()
			defer mu.Unlock()
			if note != "" {
				failures++
				return
			}
			latencies = append(latencies, latency)
		}()
	}
	wg.Wait()

	if len(latencies) == 0 {
		return Result{Status: StatusFail, Note: fmt.Sprintf("all %d requests failed", failures)}
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	p50 := latencies[len(latencies)/2]
	p95 := latencies[(len(latencies)*95+99)/100-1]
	res := Result{
		Status:  StatusPass,
		Latency: p50,
		Note:    fmt.Sprintf("ok=%d failed=%d p50=%s p95=%s", len(latencies), failures, p50.Round(time.Millisecond), p95.Round(time.Millisecond)),
	}
	if failures > 0 {
		res.Status = StatusFail
	}
	return res
}

func (r *Runner) plan(ctx context.Context) (planShape, time.Duration, string) {
	req := map[string]any{
		"destination": r.cfg.Destination,
		"days":        r.cfg.Days,
		"budget":      10000,
		"travelers":   2,
	}
	status, body, latency, err := r.do(ctx, http.MethodPost, "/api/trips/plan", req)
	if err != nil {
		return planShape{}, latency, err.Error()
	}
	if status != http.StatusOK {
		return planShape{}, latency, fmt.Sprintf("status %d: %s", status, truncate(body, 120))
	}
	var plan planShape
	if err := json.Unmarshal(body, &plan); err != nil {
		return planShape{}, latency, err.Error()
	}
	return plan, latency, ""
}

func (r *Runner) do(ctx context.Context, method, path string, body any) (int, []byte, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, 0, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, time.Since(start), err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	return resp.StatusCode, data, time.Since(start), err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
