package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func gatheredNames(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestQuestCounters(t *testing.T) {
	QuestsCreated.WithLabelValues("DAILY").Inc()
	QuestsCompleted.WithLabelValues("WEEKLY").Inc()
	QuestsUncompleted.Inc()
	QuestsRespawned.Inc()

	names := gatheredNames(t)
	for _, name := range []string{
		"questboard_quests_created_total",
		"questboard_quests_completed_total",
		"questboard_quests_uncompleted_total",
		"questboard_quests_respawned_total",
	} {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestProgressionCounters(t *testing.T) {
	LevelsGained.Add(2)
	BadgesAwarded.WithLabelValues("7-day-streak").Inc()
	CoinsGranted.Add(55)
	Logins.Inc()

	names := gatheredNames(t)
	for _, name := range []string{
		"questboard_levels_gained_total",
		"questboard_badges_awarded_total",
		"questboard_coins_granted_total",
		"questboard_logins_total",
	} {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestHealthGauge(t *testing.T) {
	HealthCheckStatus.WithLabelValues("sqlite").Set(1)
	HealthCheckStatus.WithLabelValues("data_dir").Set(0)

	if !gatheredNames(t)["questboard_health_check_status"] {
		t.Error("questboard_health_check_status not found")
	}
}

func TestAllMetricsGatherable(t *testing.T) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	count := 0
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "questboard_") {
			count++
		}
	}
	if count < 8 {
		t.Errorf("expected at least 8 questboard_ metric families, got %d", count)
	}
}
