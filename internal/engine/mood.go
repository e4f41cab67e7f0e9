package engine

// Mood is the discrete health classification derived from resource percentages.
type Mood int

const (
	MoodHappy Mood = iota
	MoodContent
	MoodWorried
	MoodCritical
)

// Fixed secondary breakpoints. Only the critical threshold is configurable.
const (
	worriedThreshold = 75.0
	happyCPUBound    = 30.0
	happyRAMBound    = 50.0
	happyDiskBound   = 70.0
)

// String returns the human-readable name for a Mood.
func (m Mood) String() string {
	switch m {
	case MoodHappy:
		return "happy"
	case MoodContent:
		return "content"
	case MoodWorried:
		return "worried"
	case MoodCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Moods lists every mood in increasing severity.
func Moods() []Mood {
	return []Mood{MoodHappy, MoodContent, MoodWorried, MoodCritical}
}

// Classify maps the current resource percentages to a Mood. The rules form an
// ordered decision list: critical dominates worried even when both match, and
// the comparisons are strict (a reading exactly at 75 is not worried).
func Classify(cpu, ram, disk, criticalThreshold float64) Mood {
	switch {
	case cpu > criticalThreshold || ram > criticalThreshold || disk > criticalThreshold:
		return MoodCritical
	case cpu > worriedThreshold || ram > worriedThreshold || disk > worriedThreshold:
		return MoodWorried
	case cpu < happyCPUBound && ram < happyRAMBound && disk < happyDiskBound:
		return MoodHappy
	default:
		return MoodContent
	}
}
