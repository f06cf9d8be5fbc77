// Package reveal is the single home of the progressive-disclosure
// policy: message count in, disclosure level and visible profile fields
// out. It is pure and always computed from a live recount, so the level
// can never desync from the message log (deleting messages can lower
// it, which is intended).
package reveal

import (
	"github.com/campuslink/campuslink-backend/internal/directory"
)

type Level int

const (
	LevelNone     Level = 0 // nothing revealed
	LevelBasic    Level = 1 // major, gender
	LevelExtended Level = 2 // + age, mbti, hobbies
	LevelFull     Level = 3 // + name, height
)

// Message-count thresholds at which each level opens.
const (
	basicAt    = 5
	extendedAt = 10
	fullAt     = 20
)

var fieldsByLevel = map[Level][]string{
	LevelNone:     {},
	LevelBasic:    {"major", "gender"},
	LevelExtended: {"major", "gender", "age", "mbti", "hobbies"},
	LevelFull:     {"major", "gender", "age", "mbti", "hobbies", "name", "height"},
}

// State is the derived reveal state for one matching.
type State struct {
	Level                  Level    `json:"level"`
	RevealedFields         []string `json:"revealedFields"`
	MessagesUntilNextLevel int64    `json:"messagesUntilNextLevel"`
}

// LevelFor maps a message count onto a disclosure level.
func LevelFor(messageCount int64) Level {
	switch {
	case messageCount >= fullAt:
		return LevelFull
	case messageCount >= extendedAt:
		return LevelExtended
	case messageCount >= basicAt:
		return LevelBasic
	default:
		return LevelNone
	}
}

// Fields returns the revealed field names for a level. The returned
// slice is a copy.
func Fields(level Level) []string {
	fields := fieldsByLevel[level]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// MessagesUntilNext returns how many more messages open the next level,
// 0 at the top level.
func MessagesUntilNext(messageCount int64) int64 {
	switch LevelFor(messageCount) {
	case LevelNone:
		return basicAt - messageCount
	case LevelBasic:
		return extendedAt - messageCount
	case LevelExtended:
		return fullAt - messageCount
	default:
		return 0
	}
}

// Compute derives the full reveal state from a message count.
func Compute(messageCount int64) State {
	level := LevelFor(messageCount)
	return State{
		Level:                  level,
		RevealedFields:         Fields(level),
		MessagesUntilNextLevel: MessagesUntilNext(messageCount),
	}
}

// Apply filters the partner's profile and user data down to the fields
// visible at the given level.
func Apply(profile *directory.Profile, user *directory.User, level Level) map[string]any {
	visible := make(map[string]any)
	for _, field := range fieldsByLevel[level] {
		switch field {
		case "major":
			if profile != nil {
				visible["major"] = profile.Major
			}
		case "gender":
			if profile != nil {
				visible["gender"] = profile.Gender
			}
		case "age":
			if profile != nil {
				visible["age"] = profile.Age
			}
		case "mbti":
			if profile != nil {
				visible["mbti"] = profile.MBTI
			}
		case "hobbies":
			if profile != nil {
				visible["hobbies"] = profile.Hobbies
			}
		case "height":
			if profile != nil {
				visible["height"] = profile.Height
			}
		case "name":
			if user != nil {
				visible["name"] = user.Nickname
			}
		}
	}
	return visible
}
