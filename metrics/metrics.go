// Package metrics provides Prometheus metrics for the gateway.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "findit_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	listingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "findit_listing_duration_seconds",
			Help:    "Listing aggregation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	listingEntries = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "findit_listing_entries",
			Help:    "Number of entries returned per listing",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"operation"},
	)

	s3OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "findit_s3_operation_duration_seconds",
			Help:    "S3 operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	s3OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findit_s3_operations_total",
			Help: "Total S3 operations",
		},
		[]string{"operation", "status"},
	)

	dynamoQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "findit_dynamodb_query_duration_seconds",
			Help:    "DynamoDB call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "findit_registrations_total",
			Help: "Object registrations by result",
		},
		[]string{"status"},
	)

	registeredImages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "findit_registered_images_total",
			Help: "Images stored by successful registrations",
		},
	)

	browseSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "findit_browse_sessions",
			Help: "Open browse sessions",
		},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

func RecordHTTPRequest(method, path string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordListing(operation string, duration time.Duration, entries int, success bool) {
	listingDuration.WithLabelValues(operation, status(success)).Observe(duration.Seconds())
	if success {
		listingEntries.WithLabelValues(operation).Observe(float64(entries))
	}
}

func RecordS3Operation(operation string, duration time.Duration, success bool) {
	s3OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	s3OperationsTotal.WithLabelValues(operation, status(success)).Inc()
}

func RecordDynamoQuery(operation string, duration time.Duration) {
	dynamoQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordRegistration(images int, success bool) {
	registrationsTotal.WithLabelValues(status(success)).Inc()
	if success {
		registeredImages.Add(float64(images))
	}
}

func SetBrowseSessions(n int) {
	browseSessions.Set(float64(n))
}

func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
