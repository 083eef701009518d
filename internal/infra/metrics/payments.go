package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		paymentsIssuedTotal,
		paymentAttemptsTotal,
	)
}

var (
	paymentsIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_issued_total",
			Help: "Payment-link issues by tenant and outcome (ok/rejected/invalid/failed).",
		},
		[]string{"tenant", "outcome"},
	)

	paymentAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_processor_attempts_total",
			Help: "HTTP attempts against the payment processor by result (ok/retried/failed).",
		},
		[]string{"result"},
	)
)

func IncPaymentIssued(tenant, outcome string) {
	paymentsIssuedTotal.WithLabelValues(norm(tenant), norm(outcome)).Inc()
}

func IncProcessorAttempt(result string) {
	paymentAttemptsTotal.WithLabelValues(norm(result)).Inc()
}
