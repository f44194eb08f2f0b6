package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// --- Model gateway ---
	llmRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facty_llm_requests_total",
		Help: "Total completion requests attempted.",
	}, []string{"backend", "status"})

	llmRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "facty_llm_request_duration_seconds",
		Help:    "Duration of completion requests.",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15, 30},
	}, []string{"backend", "status"})

	llmErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facty_llm_errors_total",
		Help: "Total completion request errors by kind.",
	}, []string{"backend", "error_kind"})

	// --- Safety & intent classification ---
	safetyVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facty_safety_verdicts_total",
		Help: "Safety verdicts by severity, tier and outcome.",
	}, []string{"severity", "tier", "allowed"})

	intentVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facty_intent_verdicts_total",
		Help: "Intent classification outcomes.",
	}, []string{"verdict"})

	// --- Sessions ---
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "facty_sessions_active",
		Help: "Number of live conversation sessions.",
	})

	onboardingCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facty_onboarding_completed_total",
		Help: "Sessions that reached the ready state, by tier.",
	}, []string{"tier"})

	// --- Message flow ---
	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facty_messages_total",
		Help: "Messages flowing through the front-ends.",
	}, []string{"channel", "direction"})

	// --- System health ---
	uptimeGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "facty_uptime_seconds",
		Help: "Application uptime in seconds.",
	})
)
