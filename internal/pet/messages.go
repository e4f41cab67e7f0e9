package pet

import (
	"math/rand"

	"github.com/NitishVankina/ServerPet/internal/engine"
)

var messages = map[engine.Mood][]string{
	engine.MoodHappy: {
		"Everything is perfect! I'm so happy!",
		"All systems running beautifully!",
		"I love it when things are this smooth!",
		"This is wonderful! Keep it up!",
		"Feeling great! Everything's optimal!",
	},
	engine.MoodContent: {
		"Everything looks good! Cruising along~",
		"All systems nominal! Doing great!",
		"Nice and steady! No worries here!",
		"Running smoothly! All is well!",
		"Everything's under control!",
	},
	engine.MoodWorried: {
		"Umm... I'm getting a bit worried here...",
		"Things are getting heavy... Please check!",
		"I'm feeling the pressure...",
		"This is making me nervous...",
		"Resources are running high... help!",
	},
	engine.MoodCritical: {
		"HELP! I CAN'T BREATHE!",
		"CRITICAL! Everything is too much!",
		"I'M DYING! Please help me!",
		"EMERGENCY! I need help NOW!",
		"SYSTEM OVERLOAD! Do something!",
	},
}

// Message picks a random line the pet says for the given mood.
func Message(mood engine.Mood) string {
	lines, ok := messages[mood]
	if !ok {
		lines = messages[engine.MoodContent]
	}

	return lines[rand.Intn(len(lines))]
}
