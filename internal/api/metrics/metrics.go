// Package metrics defines all custom Prometheus metrics for the user
// directory API. It is the single source of truth for metric names, labels,
// and help strings; promauto registers everything with the default registry
// at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokensRevokedTotal counts tokens added to the logout denylist.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of tokens revoked via logout.",
	},
)

// ListingsTotal counts directory listings served.
// Labels:
//   - sort_field: active sort column ("name", "email", "created_at")
//   - direction: "asc" or "desc"
var ListingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_total",
		Help:      "Total number of user listings served, by sort selection.",
	},
	[]string{"sort_field", "direction"},
)
