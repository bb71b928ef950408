package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Login outcome label values.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidPassword = "invalid_password"
	OutcomeLocked          = "locked"
	OutcomeNotFound        = "not_found"
)

// AuthMetrics exposes Prometheus collectors for authentication flows.
// A nil receiver is a no-op so wiring stays optional in tests.
type AuthMetrics struct {
	logins        *prometheus.CounterVec
	lockouts      prometheus.Counter
	registrations prometheus.Counter
}

// NewAuthMetrics constructs and registers the authentication collectors.
func NewAuthMetrics(reg prometheus.Registerer) (*AuthMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edu",
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Total number of login attempts partitioned by outcome.",
	}, []string{"outcome"})

	lockouts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edu",
		Subsystem: "auth",
		Name:      "lockouts_total",
		Help:      "Total number of accounts locked by the failed-attempt threshold.",
	})

	registrations := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "edu",
		Subsystem: "auth",
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	})

	for _, c := range []prometheus.Collector{logins, lockouts, registrations} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, fmt.Errorf("register auth collector: %w", err)
			}
		}
	}

	return &AuthMetrics{
		logins:        logins,
		lockouts:      lockouts,
		registrations: registrations,
	}, nil
}

// ObserveLogin records a login attempt with the given outcome label.
func (m *AuthMetrics) ObserveLogin(outcome string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// ObserveLockout records a lockout being triggered.
func (m *AuthMetrics) ObserveLockout() {
	if m == nil || m.lockouts == nil {
		return
	}
	m.lockouts.Inc()
}

// ObserveRegistration records a completed registration.
func (m *AuthMetrics) ObserveRegistration() {
	if m == nil || m.registrations == nil {
		return
	}
	m.registrations.Inc()
}
