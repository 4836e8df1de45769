package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "store_operations_total", Help: "Document store reads and writes by backend and result."},
		[]string{"backend", "op", "result"},
	)
	AdminDenied = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "admin_denied_total", Help: "Requests rejected by the admin gate."},
	)
	ContactsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "contacts_created_total", Help: "Contact submissions stored."},
	)
	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "notifications_total", Help: "Contact notifications by result (sent|failed|skipped)."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StoreOperations)
	reg.MustRegister(AdminDenied)
	reg.MustRegister(ContactsCreated)
	reg.MustRegister(Notifications)
}
