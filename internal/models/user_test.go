package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNudgeTransitions(t *testing.T) {
	assert.Equal(t, NudgeYouNudged, NudgeNone.WithYou())
	assert.Equal(t, NudgeTheyNudged, NudgeNone.WithThem())
	assert.Equal(t, NudgeMutual, NudgeYouNudged.WithThem())
	assert.Equal(t, NudgeMutual, NudgeTheyNudged.WithYou())
	assert.Equal(t, NudgeYouNudged, NudgeYouNudged.WithYou())
	assert.Equal(t, NudgeTheyNudged, NudgeTheyNudged.WithThem())
	assert.Equal(t, NudgeMutual, NudgeMutual.WithYou())
	assert.Equal(t, NudgeMutual, NudgeMutual.WithThem())
}

func TestChatUnlockedOnlyWhenMutual(t *testing.T) {
	for _, s := range []NudgeState{NudgeNone, NudgeYouNudged, NudgeTheyNudged, NudgeMutual} {
		u := SimulatedUser{ID: "user-1", NudgeState: s}
		assert.Equal(t, s == NudgeMutual, u.ChatUnlocked(), s.String())
	}
}

func TestSimulatedUserJSONCarriesDerivedFlags(t *testing.T) {
	b, err := json.Marshal(SimulatedUser{ID: "user-2", DistanceBand: 90, NudgeState: NudgeMutual})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "user-2", out["id"])
	assert.Equal(t, "mutual", out["nudgeState"])
	assert.Equal(t, true, out["youNudged"])
	assert.Equal(t, true, out["theyNudged"])
	assert.Equal(t, true, out["chatUnlocked"])
}

func TestNudgeStateTextRoundTrip(t *testing.T) {
	var s NudgeState
	require.NoError(t, s.UnmarshalText([]byte("they_nudged")))
	assert.Equal(t, NudgeTheyNudged, s)
	assert.Error(t, s.UnmarshalText([]byte("maybe")))
	assert.Equal(t, "NudgeState(9)", NudgeState(9).String())
}
