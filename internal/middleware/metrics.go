package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "botdesk_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "botdesk_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	chatMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "botdesk_chat_messages_total",
		Help: "Total number of widget chat messages",
	}, []string{"outcome"}) // answered, fallback

	faqSelections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "botdesk_faq_selections_total",
		Help: "Total number of FAQ button selections logged",
	})

	leadsCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Name: "botdesk_leads_captured_total",
		Help: "Total number of contact-form leads captured",
	})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "botdesk_rate_limited_total",
		Help: "Total number of rate-limited public chat requests",
	})
)

// HTTPMetrics records request counts and latency per route.
func HTTPMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		httpRequests.WithLabelValues(c.Method(), route, http.StatusText(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordChatMessage counts a widget message by classification outcome.
func RecordChatMessage(fallback bool) {
	outcome := "answered"
	if fallback {
		outcome = "fallback"
	}
	chatMessages.WithLabelValues(outcome).Inc()
}

// RecordFAQSelection counts one FAQ button click.
func RecordFAQSelection() {
	faqSelections.Inc()
}

// RecordLead counts one captured contact form.
func RecordLead() {
	leadsCaptured.Inc()
}

// StartMetricsServer serves /metrics on its own listener so the scrape
// endpoint stays off the public API port.
func StartMetricsServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		log.Printf("📊 Metrics server listening on :%s/metrics", port)
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Printf("⚠️ Metrics server stopped: %v", err)
		}
	}()
}
