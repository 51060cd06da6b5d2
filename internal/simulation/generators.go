package simulation

import (
	"fmt"
	"strconv"
	"strings"

	"NudgePrototype/internal/models"
)

// UserIndex extracts n from "user-n". Anything unparsable maps to 0.
func UserIndex(userID string) int {
	_, suffix, found := strings.Cut(userID, "-")
	if !found {
		return 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func NameFor(userID string) string {
	return names[UserIndex(userID)%len(names)]
}

// BioFor is deterministic on the first byte of the name.
func BioFor(name string) string {
	if name == "" {
		return bios[0]
	}
	return bios[int(name[0])%len(bios)]
}

func RecentActivity(rng Rand) string {
	return recentActivities[rng.IntN(len(recentActivities))]
}

func SuggestedActivities(rng Rand) []models.Activity {
	n := 2 + rng.IntN(2)
	out := make([]models.Activity, n)
	copy(out, profileActivities[:n])
	return out
}

func Compatibility(rng Rand) models.CompatibilityBreakdown {
	return models.CompatibilityBreakdown{
		Humor:      70 + rng.IntN(25),
		Adventure:  65 + rng.IntN(30),
		Intellect:  75 + rng.IntN(20),
		Creativity: 80 + rng.IntN(15),
	}
}

func ChatReply(rng Rand) string {
	return chatReplies[rng.IntN(len(chatReplies))]
}

// ShuffledInterests returns the first n interests of a uniform shuffle.
func ShuffledInterests(rng Rand, n int) []string {
	pool := append([]string(nil), interests...)
	for i := len(pool) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

// MiniProfileFor builds the popover projection of a roster user.
func MiniProfileFor(rng Rand, user models.SimulatedUser) models.MiniProfile {
	index := UserIndex(user.ID)
	return models.MiniProfile{
		ID:                user.ID,
		Name:              names[index%len(names)],
		Age:               22 + rng.IntN(10),
		Distance:          fmt.Sprintf("%dm", user.DistanceBand),
		Interests:         ShuffledInterests(rng, 5),
		PersonalityMatch:  65 + rng.IntN(25),
		CommonInterests:   2 + rng.IntN(3),
		Vibe:              vibes[index%len(vibes)],
		SuggestedActivity: popoverActivities[index%len(popoverActivities)],
		HasNudged:         user.NudgeState.TheyNudged(),
		YouNudged:         user.NudgeState.YouNudged(),
	}
}

// FullProfileFor expands a popover into the full profile view.
func FullProfileFor(rng Rand, mini models.MiniProfile) models.FullProfile {
	return models.FullProfile{
		MiniProfile:            mini,
		Bio:                    BioFor(mini.Name),
		RecentActivity:         RecentActivity(rng),
		SuggestedActivities:    SuggestedActivities(rng),
		CompatibilityBreakdown: Compatibility(rng),
	}
}
