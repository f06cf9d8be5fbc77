package reveal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuslink/campuslink-backend/internal/directory"
	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/campuslink/campuslink-backend/internal/reveal"
)

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		count int64
		level reveal.Level
	}{
		{0, reveal.LevelNone},
		{4, reveal.LevelNone},
		{5, reveal.LevelBasic},
		{9, reveal.LevelBasic},
		{10, reveal.LevelExtended},
		{19, reveal.LevelExtended},
		{20, reveal.LevelFull},
		{100, reveal.LevelFull},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.level, reveal.LevelFor(tc.count), "count=%d", tc.count)
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := reveal.LevelNone
	for count := int64(0); count <= 30; count++ {
		level := reveal.LevelFor(count)
		assert.GreaterOrEqual(t, level, prev, "level dropped at count=%d", count)
		prev = level
	}
}

func TestMessagesUntilNext(t *testing.T) {
	cases := []struct {
		count int64
		next  int64
	}{
		{0, 5},
		{4, 1},
		{5, 5},
		{9, 1},
		{10, 10},
		{19, 1},
		{20, 0},
		{50, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.next, reveal.MessagesUntilNext(tc.count), "count=%d", tc.count)
	}
}

func TestFieldsAreCumulative(t *testing.T) {
	assert.Empty(t, reveal.Fields(reveal.LevelNone))
	assert.ElementsMatch(t, []string{"major", "gender"}, reveal.Fields(reveal.LevelBasic))
	assert.ElementsMatch(t,
		[]string{"major", "gender", "age", "mbti", "hobbies"},
		reveal.Fields(reveal.LevelExtended))
	assert.ElementsMatch(t,
		[]string{"major", "gender", "age", "mbti", "hobbies", "name", "height"},
		reveal.Fields(reveal.LevelFull))
}

func TestCompute(t *testing.T) {
	state := reveal.Compute(7)
	assert.Equal(t, reveal.LevelBasic, state.Level)
	assert.ElementsMatch(t, []string{"major", "gender"}, state.RevealedFields)
	assert.Equal(t, int64(3), state.MessagesUntilNextLevel)
}

func TestApply(t *testing.T) {
	profile := &directory.Profile{
		Gender:  models.GenderFemale,
		Age:     22,
		Height:  165,
		Major:   "Computer Science",
		MBTI:    "ENFP",
		Hobbies: "climbing, chess",
	}
	user := &directory.User{Nickname: "yuna", Temperature: 38.2}

	visible := reveal.Apply(profile, user, reveal.LevelNone)
	assert.Empty(t, visible)

	visible = reveal.Apply(profile, user, reveal.LevelBasic)
	assert.Equal(t, "Computer Science", visible["major"])
	assert.Equal(t, models.GenderFemale, visible["gender"])
	assert.NotContains(t, visible, "age")
	assert.NotContains(t, visible, "name")

	visible = reveal.Apply(profile, user, reveal.LevelFull)
	assert.Equal(t, 22, visible["age"])
	assert.Equal(t, "yuna", visible["name"])
	assert.Equal(t, 165, visible["height"])
}

func TestApplyWithMissingData(t *testing.T) {
	// user without a profile row reveals nothing profile-derived
	visible := reveal.Apply(nil, &directory.User{Nickname: "ghost"}, reveal.LevelFull)
	assert.Equal(t, map[string]any{"name": "ghost"}, visible)

	visible = reveal.Apply(nil, nil, reveal.LevelFull)
	assert.Empty(t, visible)
}
