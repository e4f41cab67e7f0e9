package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertGateOncePerCriticalRun(t *testing.T) {
	g := NewAlertGate()

	moods := []Mood{MoodCritical, MoodCritical, MoodCritical, MoodContent, MoodCritical}
	want := []bool{true, false, false, false, true}

	for i, m := range moods {
		assert.Equal(t, want[i], g.Check(m, true), "tick %d (%s)", i, m)
	}
}

func TestAlertGateQuietWhileHealthy(t *testing.T) {
	g := NewAlertGate()

	for _, m := range []Mood{MoodHappy, MoodContent, MoodWorried, MoodContent} {
		assert.False(t, g.Check(m, true))
	}
}

// Disabling alerts suppresses firing but keeps tracking the critical run, so
// re-enabling mid-episode stays quiet until the next fresh entry into critical.
func TestAlertGateDisabledStillTracks(t *testing.T) {
	g := NewAlertGate()

	assert.False(t, g.Check(MoodCritical, false), "disabled gate never fires")
	assert.False(t, g.Check(MoodCritical, true), "re-enabled mid-episode: already consumed")
	assert.False(t, g.Check(MoodContent, true))
	assert.True(t, g.Check(MoodCritical, true), "fresh critical entry fires again")
}
