package engine

// AlertGate is an edge-triggered debouncer: at most one alert per contiguous
// critical run. It is owned by the sampler goroutine and needs no locking.
type AlertGate struct {
	armed bool
}

func NewAlertGate() *AlertGate {
	return &AlertGate{armed: true}
}

// Check advances the gate with the current mood and reports whether an alert
// should fire. Firing happens exactly once per entry into critical; leaving
// critical re-arms the gate. A disabled gate suppresses firing but still
// tracks state, so re-enabling mid-episode cannot cause a spurious alert.
func (g *AlertGate) Check(mood Mood, enabled bool) bool {
	if mood != MoodCritical {
		g.armed = true
		return false
	}

	if !g.armed {
		return false
	}
	g.armed = false

	return enabled
}
