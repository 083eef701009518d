package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramUpdatesTotal,
		telegramSendErrorsTotal,
	)
}

var (
	telegramUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_updates_total",
			Help: "Inbound Telegram updates by tenant and kind (command/callback/text/other).",
		},
		[]string{"tenant", "kind"},
	)

	telegramSendErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_send_errors_total",
			Help: "Failed outbound Telegram calls by tenant.",
		},
		[]string{"tenant"},
	)
)

func IncTelegramUpdate(tenant, kind string) {
	telegramUpdatesTotal.WithLabelValues(norm(tenant), norm(kind)).Inc()
}

func IncTelegramSendError(tenant string) {
	telegramSendErrorsTotal.WithLabelValues(norm(tenant)).Inc()
}
