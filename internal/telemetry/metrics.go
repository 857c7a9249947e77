// Package telemetry exposes business-level Prometheus metrics. HTTP-level
// metrics (request counts, latency) live in the middleware package; these
// counters track what users actually do with the store.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "njord"
	subsystem = "business"
)

var (
	// Product engagement
	ProductViews = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "product_views_total",
		Help:      "Total single-product lookups",
	})
	ProductSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "product_searches_total",
		Help:      "Total product list queries",
	}, []string{"filter_type"}) // filter_type: search, category, none

	// Cart activity
	CartItemsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "cart_items_added_total",
		Help:      "Total units added to carts",
	})
	CartsCleared = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "carts_cleared_total",
		Help:      "Total carts cleared by their owner",
	})
	CartsMerged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "carts_merged_total",
		Help:      "Total guest carts merged into user carts",
	})

	// Auth & accounts
	Signups = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "signups_total",
		Help:      "Total accounts registered",
	})
	EmailsVerified = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "emails_verified_total",
		Help:      "Total accounts that completed email verification",
	})
	Logins = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "logins_total",
		Help:      "Total successful logins",
	})
	LoginsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "logins_failed_total",
		Help:      "Total rejected login attempts",
	})
)

// SearchFilterType classifies a product list query for the searches counter.
func SearchFilterType(search, category string) string {
	switch {
	case search != "":
		return "search"
	case category != "":
		return "category"
	default:
		return "none"
	}
}
