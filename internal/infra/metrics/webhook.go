package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		webhookEventsTotal,
		confirmationsDeliveredTotal,
	)
}

var (
	webhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_webhook_events_total",
			Help: "Inbound confirmation callbacks by verification outcome.",
		},
		[]string{"outcome"}, // delivered|ignored|missing_signature|bad_signature|unknown_tenant|malformed_order|send_failed
	)

	confirmationsDeliveredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confirmations_delivered_total",
			Help: "Confirmation messages delivered to chats, by tenant.",
		},
		[]string{"tenant"},
	)
)

func IncWebhookEvent(outcome string) {
	webhookEventsTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncConfirmationDelivered(tenant string) {
	confirmationsDeliveredTotal.WithLabelValues(norm(tenant)).Inc()
}
