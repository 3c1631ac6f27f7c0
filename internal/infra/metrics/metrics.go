package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the domain counters exposed on /metrics.
type Metrics struct {
	PaymentsRecorded  *prometheus.CounterVec
	Renewals          *prometheus.CounterVec
	SaunaSessionsUsed prometheus.Counter
	AttendanceMarked  prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PaymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gymdesk_payments_recorded_total",
			Help: "Payments accepted by the billing engine.",
		}, []string{"method"}),
		Renewals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gymdesk_renewals_total",
			Help: "Payments that extended a membership.",
		}, []string{"plan"}),
		SaunaSessionsUsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymdesk_sauna_sessions_used_total",
			Help: "Sauna sessions consumed.",
		}),
		AttendanceMarked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymdesk_attendance_marked_total",
			Help: "Check-ins recorded.",
		}),
	}
	reg.MustRegister(m.PaymentsRecorded, m.Renewals, m.SaunaSessionsUsed, m.AttendanceMarked)
	return m
}
