package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelbuddy_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "travelbuddy_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// MatchmakingCandidatesScanned counts candidate users scored per matchmaking run.
	MatchmakingCandidatesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travelbuddy_matchmaking_candidates_scanned_total",
		Help: "Total number of candidate users scored by buddy matchmaking",
	})

	// MatchmakingRuns counts matchmaking requests by outcome.
	MatchmakingRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelbuddy_matchmaking_runs_total",
		Help: "Total matchmaking runs by outcome",
	}, []string{"outcome"})

	// MailSends counts outbound emails by result.
	MailSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelbuddy_mail_sends_total",
		Help: "Total outbound emails by result",
	}, []string{"result"})

	// ExternalAPICalls counts upstream API calls by provider and result.
	ExternalAPICalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelbuddy_external_api_calls_total",
		Help: "Total external API calls by provider and result",
	}, []string{"provider", "result"})

	// RateLimitRejections counts requests stopped by rate limiting per resource.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelbuddy_rate_limit_rejections_total",
		Help: "Total requests rejected by rate limiting per resource",
	}, []string{"resource"})
)

const queryStartKey = "travelbuddy:query_start"

// DatabaseMetrics is a gorm plugin that records per-query latency into
// DatabaseQueryLatency, labelled by operation and table.
type DatabaseMetrics struct{}

// Name implements gorm.Plugin.
func (DatabaseMetrics) Name() string { return "travelbuddy:database_metrics" }

// Initialize implements gorm.Plugin by hooking before/after callbacks on
// every statement type.
func (DatabaseMetrics) Initialize(db *gorm.DB) error {
	before := func(db *gorm.DB) {
		db.InstanceSet(queryStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			v, ok := db.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
		}
	}

	if err := db.Callback().Create().Before("gorm:create").Register("metrics:before_create", before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("metrics:after_create", after("create")); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("metrics:before_query", before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("metrics:after_query", after("query")); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("metrics:before_update", before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("metrics:after_update", after("update")); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("metrics:before_delete", before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("metrics:after_delete", after("delete")); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("metrics:before_raw", before); err != nil {
		return err
	}
	return db.Callback().Raw().After("gorm:raw").Register("metrics:after_raw", after("raw"))
}
