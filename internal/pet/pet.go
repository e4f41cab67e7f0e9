package pet

import (
	"github.com/NitishVankina/ServerPet/internal/engine"
	"github.com/NitishVankina/ServerPet/internal/errors"
)

// Type selects which creature is drawn. Closed variant set; dispatch is over
// the tag, not inheritance.
type Type string

const (
	TypeCat   Type = "cat"
	TypeDog   Type = "dog"
	TypeRobot Type = "robot"
)

// ParseType validates a configured pet type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeCat, TypeDog, TypeRobot:
		return Type(s), nil
	default:
		return "", errors.WithData(errors.ErrInvalidPetType, s)
	}
}

// Pet is the named creature whose face mirrors the engine's mood.
type Pet struct {
	Name string
	Type Type
}

func New(name string, t Type) Pet {
	if name == "" {
		name = "Byte"
	}

	return Pet{Name: name, Type: t}
}

var faces = map[Type]map[engine.Mood]string{
	TypeCat: {
		engine.MoodHappy:    " /\\_/\\ \n( ^.^ )\n > ^ < ",
		engine.MoodContent:  " /\\_/\\ \n( -.- )\n > ~ < ",
		engine.MoodWorried:  " /\\_/\\ \n( o.o )\n > ; < ",
		engine.MoodCritical: " /\\_/\\ \n( x.x )\n > ! < ",
	},
	TypeDog: {
		engine.MoodHappy:    " /^ ^\\ \n( ^o^ )\n  \\_/  ",
		engine.MoodContent:  " /^ ^\\ \n( -o- )\n  \\_/  ",
		engine.MoodWorried:  " /^ ^\\ \n( o_o )\n  \\_/  ",
		engine.MoodCritical: " /^ ^\\ \n( x_x )\n  \\_/  ",
	},
	TypeRobot: {
		engine.MoodHappy:    "[=====]\n| ^_^ |\n|_____|",
		engine.MoodContent:  "[=====]\n| o_o |\n|_____|",
		engine.MoodWorried:  "[=====]\n| >_< |\n|_____|",
		engine.MoodCritical: "[=====]\n| X_X |\n|_____|",
	},
}

// Face returns the multi-line ASCII face for the pet's type and mood.
func (p Pet) Face(mood engine.Mood) string {
	if byMood, ok := faces[p.Type]; ok {
		if face, ok := byMood[mood]; ok {
			return face
		}
		return byMood[engine.MoodContent]
	}

	return faces[TypeCat][engine.MoodContent]
}

// Mood colors from the classic traffic palette.
var moodColors = map[engine.Mood]string{
	engine.MoodHappy:    "#4CAF50",
	engine.MoodContent:  "#2196F3",
	engine.MoodWorried:  "#FF9800",
	engine.MoodCritical: "#F44336",
}

// MoodColor returns the hex color associated with a mood.
func MoodColor(mood engine.Mood) string {
	if c, ok := moodColors[mood]; ok {
		return c
	}

	return moodColors[engine.MoodContent]
}

// MoodEmoji returns the emoji associated with a mood.
func MoodEmoji(mood engine.Mood) string {
	switch mood {
	case engine.MoodHappy:
		return "😊"
	case engine.MoodContent:
		return "😌"
	case engine.MoodWorried:
		return "😰"
	case engine.MoodCritical:
		return "😵"
	default:
		return "🙂"
	}
}
