package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NudgePrototype/internal/models"
	"NudgePrototype/internal/simulation/simtest"
)

func TestNameForUsesSuffixModTable(t *testing.T) {
	assert.Equal(t, "Alex", NameFor("user-0"))
	assert.Equal(t, "Casey", NameFor("user-2"))
	assert.Equal(t, "Alex", NameFor("user-8"))
	assert.Equal(t, "Avery", NameFor("user-15"))
	assert.Equal(t, "Alex", NameFor("bogus"))
	assert.Equal(t, "Alex", NameFor("user-x"))
}

func TestBioForIsDeterministic(t *testing.T) {
	// 'A' = 65, 65 % 5 = 0
	assert.Equal(t, bios[0], BioFor("Alex"))
	// 'S' = 83, 83 % 5 = 3
	assert.Equal(t, bios[3], BioFor("Sam"))
	assert.Equal(t, BioFor("Riley"), BioFor("Riley"))
	assert.Equal(t, bios[0], BioFor(""))
}

func TestCompatibilityRanges(t *testing.T) {
	rng := NewRand(7)
	for i := 0; i < 200; i++ {
		c := Compatibility(rng)
		assert.True(t, c.Humor >= 70 && c.Humor <= 94, "humor %d", c.Humor)
		assert.True(t, c.Adventure >= 65 && c.Adventure <= 94, "adventure %d", c.Adventure)
		assert.True(t, c.Intellect >= 75 && c.Intellect <= 94, "intellect %d", c.Intellect)
		assert.True(t, c.Creativity >= 80 && c.Creativity <= 94, "creativity %d", c.Creativity)
	}
}

func TestSuggestedActivitiesTakesPrefix(t *testing.T) {
	two := SuggestedActivities(&simtest.Rand{Int: 0})
	require.Len(t, two, 2)
	assert.Equal(t, profileActivities[0], two[0])

	three := SuggestedActivities(&simtest.Rand{Int: 1})
	require.Len(t, three, 3)
	assert.Equal(t, profileActivities[2], three[2])
}

func TestShuffledInterestsUnique(t *testing.T) {
	rng := NewRand(42)
	got := ShuffledInterests(rng, 5)
	require.Len(t, got, 5)
	seen := map[string]bool{}
	for _, in := range got {
		assert.False(t, seen[in], "duplicate interest %s", in)
		seen[in] = true
	}
	assert.Len(t, ShuffledInterests(rng, 20), len(interests))
}

func TestMiniProfileFor(t *testing.T) {
	user := models.SimulatedUser{ID: "user-3", DistanceBand: 120, NudgeState: models.NudgeTheyNudged}
	p := MiniProfileFor(&simtest.Rand{Int: 0}, user)

	assert.Equal(t, "user-3", p.ID)
	assert.Equal(t, "Jordan", p.Name)
	assert.Equal(t, "120m", p.Distance)
	assert.Equal(t, 22, p.Age)
	assert.Equal(t, 65, p.PersonalityMatch)
	assert.Equal(t, 2, p.CommonInterests)
	assert.Equal(t, "Intellectual", p.Vibe)
	assert.Equal(t, popoverActivities[3], p.SuggestedActivity)
	assert.True(t, p.HasNudged)
	assert.False(t, p.YouNudged)
	assert.Len(t, p.Interests, 5)
}

func TestFullProfileForKeepsMini(t *testing.T) {
	mini := models.MiniProfile{ID: "user-1", Name: "Sam"}
	full := FullProfileFor(NewRand(1), mini)
	assert.Equal(t, mini.ID, full.ID)
	assert.Equal(t, BioFor("Sam"), full.Bio)
	assert.Contains(t, recentActivities, full.RecentActivity)
}

func TestThemesCatalog(t *testing.T) {
	all := Themes()
	require.Len(t, all, 6)
	assert.Equal(t, "artistic", all[0].Key)

	theme, ok := GetTheme(DefaultThemeKey)
	require.True(t, ok)
	assert.Equal(t, "Classic", theme.Name)

	_, ok = GetTheme("neon")
	assert.False(t, ok)
}
