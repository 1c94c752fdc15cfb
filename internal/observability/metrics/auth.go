package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notepad_registrations_total",
			Help: "Total number of successful user registrations",
		},
	)

	LoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notepad_logins_total",
			Help: "Total number of successful logins",
		},
	)

	LoginFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notepad_login_failures_total",
			Help: "Total number of failed login attempts",
		},
	)

	PasswordChangesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notepad_password_changes_total",
			Help: "Total number of successful password changes",
		},
	)

	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notepad_tokens_issued_total",
			Help: "Total number of bearer tokens issued",
		},
	)

	TokenValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notepad_token_validations_failed_total",
			Help: "Total number of failed bearer token validations",
		},
	)
)
