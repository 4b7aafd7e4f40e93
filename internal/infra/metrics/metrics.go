// Package metrics provides Prometheus metrics for Quest Board: counters for
// the quest lifecycle, progression outcomes, logins, and the coin economy,
// plus health check gauges.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Quests ─────────────────────────────────────────────────────────────────

// QuestsCreated tracks created quests by frequency.
var QuestsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questboard",
	Name:      "quests_created_total",
	Help:      "Total quests created.",
}, []string{"frequency"})

// QuestsCompleted tracks completed quests by frequency.
var QuestsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questboard",
	Name:      "quests_completed_total",
	Help:      "Total quests completed.",
}, []string{"frequency"})

// QuestsUncompleted tracks quests reopened after completion.
var QuestsUncompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questboard",
	Name:      "quests_uncompleted_total",
	Help:      "Total quests reopened.",
})

// QuestsRespawned tracks recurring quests respawned after completion.
var QuestsRespawned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questboard",
	Name:      "quests_respawned_total",
	Help:      "Total recurring quests respawned.",
})

// ─── Progression ────────────────────────────────────────────────────────────

// LevelsGained tracks level-ups across all users.
var LevelsGained = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questboard",
	Name:      "levels_gained_total",
	Help:      "Total levels gained.",
})

// BadgesAwarded tracks badges awarded by badge id.
var BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questboard",
	Name:      "badges_awarded_total",
	Help:      "Total badges awarded.",
}, []string{"badge"})

// CoinsGranted tracks coins granted through quest rewards and level bonuses.
var CoinsGranted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questboard",
	Name:      "coins_granted_total",
	Help:      "Total coins granted.",
})

// Logins tracks recorded login events.
var Logins = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questboard",
	Name:      "logins_total",
	Help:      "Total recorded logins.",
})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "questboard",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})
