package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	moviesTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "movie_catalog_movies_total",
		Help: "Total number of movies in the catalog",
	})

	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "movie_catalog_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "status"})

	requestDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "movie_catalog_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(moviesTotal)
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDurationSeconds)
}

// requestLogger logs every request with its status and duration, and feeds
// the request metrics.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		requestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		requestDurationSeconds.Observe(duration.Seconds())

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", duration).
			Msg("HTTP request")
	})
}
