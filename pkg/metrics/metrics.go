package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AlertsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pinchazo_alerts_created_total",
		Help: "Number of pinchazo alerts created.",
	})

	AlertTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinchazo_alert_transitions_total",
		Help: "Number of successful alert status transitions.",
	}, []string{"status"})

	PushDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_notifications_delivered_total",
		Help: "Number of push messages confirmed delivered by the transport.",
	})

	PushFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_notifications_failed_total",
		Help: "Number of push message tickets reporting an error.",
	})

	PushDroppedTokens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_tokens_dropped_total",
		Help: "Number of recipient tokens dropped for not matching the transport format.",
	})

	PushPrunedTokens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_tokens_pruned_total",
		Help: "Number of tokens removed after the transport reported them unregistered.",
	})
)
