// Package metrics defines and registers all custom Prometheus metrics for the
// user management service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// /metrics route exposes them alongside the HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "usermgmt"

// UsersCreatedTotal counts successfully created users.
// Label:
//   - role: the role assigned to the new user ("admin", "user", "guest")
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users successfully created, by role.",
	},
	[]string{"role"},
)

// UsersUpdatedTotal counts successful user updates.
var UsersUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_updated_total",
		Help:      "Total number of users successfully updated.",
	},
)

// UsersDeletedTotal counts successful user deletions.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users successfully deleted.",
	},
)

// CreateRejectionsTotal counts create requests rejected before insert.
// Label:
//   - reason: "limit_reached", "duplicate_email", or "validation"
var CreateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "create_rejections_total",
		Help:      "Total number of rejected create requests, by reason.",
	},
	[]string{"reason"},
)
