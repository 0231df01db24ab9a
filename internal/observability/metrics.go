package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/platform/envutil"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

// Metrics is the process wide registry, exposed in Prometheus text format.
// All methods are no-ops on a nil receiver so callers never need to check Enabled.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqTotal *Counter
	apiReqError *Counter
	apiReqGood  *Counter

	scoreComputes *CounterVec
	scoreLatency  *HistogramVec
	narratives    *CounterVec
	narratorTime  *HistogramVec
	whatIfRuns    *CounterVec
	draftsApplied *Counter
	tasksCreated  *Counter

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge

	sloLatencyThreshold float64
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

func Current() *Metrics {
	return instance
}

func scrapeInterval() time.Duration {
	return envutil.Seconds("METRICS_SCRAPE_INTERVAL_SECONDS", 10*time.Second)
}

// Init builds the registry once when METRICS_ENABLED is set and returns nil otherwise.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = newMetrics()
		if f := envutil.Float("SLO_API_LATENCY_THRESHOLD_SECONDS", 0); f > 0 {
			instance.sloLatencyThreshold = f
		}
		if log != nil {
			log.Info("metrics enabled", "slo_latency_threshold_seconds", instance.sloLatencyThreshold)
		}
	})
	return instance
}

func newMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("lt_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"lt_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		),
		apiInflight: NewGauge("lt_api_inflight_requests", "In-flight API requests."),
		apiReqTotal: NewCounter("lt_api_requests_total_all", "Total API requests (all)."),
		apiReqError: NewCounter("lt_api_requests_error_total", "Total API requests with 5xx status."),
		apiReqGood:  NewCounter("lt_api_requests_good_latency_total", "Total API requests under SLO latency threshold."),

		scoreComputes: NewCounterVec("lt_life_score_computations_total", "Life score computations by status.", []string{"status"}),
		scoreLatency: NewHistogramVec(
			"lt_life_score_computation_seconds",
			"Aggregation plus scoring latency in seconds.",
			[]string{"status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		),
		narratives: NewCounterVec("lt_twinny_summaries_total", "Twinny summaries by narrative source and risk level.", []string{"source", "risk_level"}),
		narratorTime: NewHistogramVec(
			"lt_twinny_narrator_seconds",
			"Narrator latency in seconds by source.",
			[]string{"source"},
			[]float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		),
		whatIfRuns:    NewCounterVec("lt_what_if_runs_total", "What-if simulations by horizon and warning presence.", []string{"horizon_days", "warned"}),
		draftsApplied: NewCounter("lt_plan_drafts_applied_total", "Schedule drafts applied."),
		tasksCreated:  NewCounter("lt_plan_tasks_created_total", "Tasks created from applied drafts."),

		dbStats:   NewGaugeVec("lt_db_pool", "Database pool statistics.", []string{"stat"}),
		redisUp:   NewGauge("lt_redis_up", "1 when the narrative cache answered the last ping."),
		redisPing: NewGauge("lt_redis_ping_seconds", "Last narrative cache ping latency in seconds."),

		sloLatencyThreshold: 0.5,
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiReqTotal, m.apiReqError, m.apiReqGood,
		m.scoreComputes, m.scoreLatency, m.narratives, m.narratorTime, m.whatIfRuns,
		m.draftsApplied, m.tasksCreated,
		m.dbStats, m.redisUp, m.redisPing,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	method, route, status = orLabel(method, "UNKNOWN"), orLabel(route, "unknown"), orLabel(status, "0")
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
	m.apiReqTotal.Inc()
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
	if m.sloLatencyThreshold > 0 && dur.Seconds() <= m.sloLatencyThreshold {
		m.apiReqGood.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveScoreCompute(err error, dur time.Duration) {
	if m == nil {
		return
	}
	status := statusOf(err)
	m.scoreComputes.Inc(status)
	m.scoreLatency.Observe(dur.Seconds(), status)
}

func (m *Metrics) ObserveNarrative(source, riskLevel string, dur time.Duration) {
	if m == nil {
		return
	}
	source, riskLevel = orLabel(source, "unknown"), orLabel(riskLevel, "unknown")
	m.narratives.Inc(source, riskLevel)
	m.narratorTime.Observe(dur.Seconds(), source)
}

func (m *Metrics) IncWhatIf(horizonDays int, warned bool) {
	if m == nil {
		return
	}
	m.whatIfRuns.Inc(strconv.Itoa(horizonDays), strconv.FormatBool(warned))
}

func (m *Metrics) ObserveDraftApplied(tasks int) {
	if m == nil {
		return
	}
	m.draftsApplied.Inc()
	m.tasksCreated.Add(float64(tasks))
}

// StartDBCollector samples the GORM connection pool on every scrape interval.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go every(ctx, scrapeInterval(), func() {
		sqlDB, err := db.DB()
		if err != nil {
			if log != nil {
				log.Warn("metrics: db stats unavailable", "error", err)
			}
			return
		}
		stats := sqlDB.Stats()
		for name, v := range map[string]float64{
			"open_connections":      float64(stats.OpenConnections),
			"in_use":                float64(stats.InUse),
			"idle":                  float64(stats.Idle),
			"wait_count":            float64(stats.WaitCount),
			"wait_duration_seconds": stats.WaitDuration.Seconds(),
			"max_open_connections":  float64(stats.MaxOpenConnections),
		} {
			m.dbStats.Set(v, name)
		}
	})
}

// StartRedisCollector pings the narrative cache client on every scrape interval.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client) {
	if m == nil || rdb == nil {
		return
	}
	go every(ctx, scrapeInterval(), func() {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err != nil {
			m.redisUp.Set(0)
			if log != nil {
				log.Warn("metrics: redis ping failed", "error", err)
			}
			return
		}
		m.redisUp.Set(1)
		m.redisPing.Set(time.Since(start).Seconds())
	})
}

// every runs fn on each tick until ctx is done.
func every(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

func orLabel(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
