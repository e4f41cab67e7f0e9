package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NitishVankina/ServerPet/internal/engine"
	"github.com/NitishVankina/ServerPet/internal/metrics"
	"github.com/NitishVankina/ServerPet/internal/pet"
)

type stubSource struct{}

func (stubSource) CPUPercent(context.Context) (float64, error) { return 10, nil }
func (stubSource) RAMPercent() (float64, error)                { return 20, nil }
func (stubSource) DiskPercent(string) (float64, error)         { return 30, nil }
func (stubSource) NetworkCounters() (metrics.Counters, error) {
	return metrics.Counters{Timestamp: time.Now()}, nil
}

func testModel(t *testing.T) *Model {
	t.Helper()

	eng, err := engine.New(stubSource{}, engine.DefaultOptions())
	require.NoError(t, err)

	return New(eng, pet.New("Byte", pet.TypeCat), "/")
}

func TestGauge(t *testing.T) {
	// Strip styling concerns: count fill runes only.
	fills := func(s string) int { return strings.Count(s, gaugeFill) }

	assert.Equal(t, 0, fills(gauge(0, 20)))
	assert.Equal(t, 10, fills(gauge(50, 20)))
	assert.Equal(t, 20, fills(gauge(100, 20)))
	assert.Equal(t, 20, fills(gauge(150, 20)), "overscale input is clamped")
	assert.Equal(t, 0, fills(gauge(-5, 20)))
}

func TestSparkline(t *testing.T) {
	assert.NotEmpty(t, sparkline(nil, 10))

	line := sparkline([]float64{0, 50, 100}, 10)
	assert.Contains(t, line, string(sparkRunes[0]))
	assert.Contains(t, line, string(sparkRunes[len(sparkRunes)-1]))

	// Only the newest samples fit the width.
	long := make([]float64, 100)
	long[99] = 100
	rendered := sparkline(long, 10)
	assert.Contains(t, rendered, string(sparkRunes[len(sparkRunes)-1]))
}

func TestKeySwitchesViews(t *testing.T) {
	m := testModel(t)

	assert.Equal(t, viewDashboard, m.active)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, viewDetails, m.active)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, viewStats, m.active)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, viewDashboard, m.active)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, viewStats, m.active)
}

func TestKeyAdjustsThreshold(t *testing.T) {
	m := testModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	assert.InDelta(t, 95.0, m.eng.Threshold(), 0.001)

	// Clamped at the top of the range.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	assert.InDelta(t, 100.0, m.eng.Threshold(), 0.001)

	for i := 0; i < 20; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	}
	assert.InDelta(t, 50.0, m.eng.Threshold(), 0.001)
}

func TestKeyTogglesAlerts(t *testing.T) {
	m := testModel(t)

	require.True(t, m.eng.AlertsEnabled())
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	assert.False(t, m.eng.AlertsEnabled())
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	assert.True(t, m.eng.AlertsEnabled())
}

func TestViewRendersWithoutSamples(t *testing.T) {
	m := testModel(t)

	out := m.View()
	assert.Contains(t, out, "ServerPet")
	assert.Contains(t, out, "waiting for first sample")

	m.active = viewStats
	assert.Contains(t, m.View(), "Mood distribution")

	m.active = viewDetails
	assert.Contains(t, m.View(), "collecting host details")
}
