// Package metrics counts toggles, purchases and coach requests on a private
// Prometheus registry.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	registry *prometheus.Registry

	habitToggles  *prometheus.CounterVec
	purchases     *prometheus.CounterVec
	coachRequests *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		habitToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jdn_habit_toggles_total",
				Help: "Habit completion toggles by polarity",
			},
			[]string{"polarity"},
		),
		purchases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jdn_purchases_total",
				Help: "Shop purchase attempts by outcome",
			},
			[]string{"outcome"},
		),
		coachRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jdn_coach_requests_total",
				Help: "AI coach requests by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
	m.registry.MustRegister(m.habitToggles, m.purchases, m.coachRequests)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordToggle(positive bool) {
	polarity := "negative"
	if positive {
		polarity = "positive"
	}
	m.habitToggles.WithLabelValues(polarity).Inc()
}

func (m *Metrics) RecordPurchase(outcome string) {
	m.purchases.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordCoach(kind, outcome string) {
	m.coachRequests.WithLabelValues(kind, outcome).Inc()
}

// WriteText prints every non-empty series as `name{labels} value`, sorted.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			var labels []string
			for _, lp := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), metric.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
