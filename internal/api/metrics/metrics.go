// Package metrics defines and registers all custom Prometheus metrics for
// the kotonoha API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kotonoha"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed" (failed covers unknown email and wrong
//     password alike; the label is as coarse as the API response)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created credentials.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of credentials registered.",
	},
)

// TokensIssuedTotal counts bearer tokens minted on login.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
)

// TokenVerificationsTotal counts bearer token checks in the auth gate.
// Label:
//   - result: "ok" or "invalid" (unknown, revoked and expired all count as
//     invalid; the store does not distinguish them either)
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, labelled by result.",
	},
	[]string{"result"},
)

// TokensRevokedTotal counts explicit logouts.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of bearer tokens revoked via logout.",
	},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ProfilesCreatedTotal counts completed onboardings.
var ProfilesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profiles_created_total",
		Help:      "Total number of profiles created.",
	},
)

// PostsCreatedTotal counts new posts.
// Label:
//   - kind: "draft" or "published"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, labelled by draft/published.",
	},
	[]string{"kind"},
)
