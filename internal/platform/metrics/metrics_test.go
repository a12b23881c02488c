package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTransition_CountsByLabels(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTransition("schedule_visit", "ok")
	m.ObserveTransition("schedule_visit", "ok")
	m.ObserveTransition("schedule_visit", "owner_cannot_adopt")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("schedule_visit", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("schedule_visit", "owner_cannot_adopt")))
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTransition("conclude_adoption", "ok")
		m.ObserveIdentityResolution("ok")
		m.IncrementUsersRegistered()
	})
}
