package models

import (
	"encoding/json"
	"fmt"
)

// 레이더 위 시뮬레이션 사용자의 넛지 상태
type NudgeState int

const (
	NudgeNone NudgeState = iota
	NudgeYouNudged
	NudgeTheyNudged
	NudgeMutual
)

var nudgeStateNames = map[NudgeState]string{
	NudgeNone:       "none",
	NudgeYouNudged:  "you_nudged",
	NudgeTheyNudged: "they_nudged",
	NudgeMutual:     "mutual",
}

func (s NudgeState) String() string {
	if name, ok := nudgeStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("NudgeState(%d)", int(s))
}

func (s NudgeState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *NudgeState) UnmarshalText(b []byte) error {
	for state, name := range nudgeStateNames {
		if name == string(b) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown nudge state %q", string(b))
}

// YouNudged reports whether the viewer's direction is set.
func (s NudgeState) YouNudged() bool { return s == NudgeYouNudged || s == NudgeMutual }

// TheyNudged reports whether the peer's direction is set.
func (s NudgeState) TheyNudged() bool { return s == NudgeTheyNudged || s == NudgeMutual }

// WithYou returns the state after the viewer nudges. Mutual is terminal.
func (s NudgeState) WithYou() NudgeState {
	if s.TheyNudged() {
		return NudgeMutual
	}
	return NudgeYouNudged
}

// WithThem returns the state after the peer nudges.
func (s NudgeState) WithThem() NudgeState {
	if s.YouNudged() {
		return NudgeMutual
	}
	return NudgeTheyNudged
}

// 뷰어 중심 기준 2D 오프셋 (표시 단위)
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// 레이더에 표시되는 가상의 근처 사용자
type SimulatedUser struct {
	ID           string     `json:"id"`
	Position     Position   `json:"position"`
	DistanceBand int        `json:"distanceBand"`
	NudgeState   NudgeState `json:"nudgeState"`
}

// ChatUnlocked is derived; only a mutual nudge unlocks chat.
func (u SimulatedUser) ChatUnlocked() bool { return u.NudgeState == NudgeMutual }

func (u SimulatedUser) MarshalJSON() ([]byte, error) {
	type plain SimulatedUser
	return json.Marshal(struct {
		plain
		YouNudged    bool `json:"youNudged"`
		TheyNudged   bool `json:"theyNudged"`
		ChatUnlocked bool `json:"chatUnlocked"`
	}{
		plain:        plain(u),
		YouNudged:    u.NudgeState.YouNudged(),
		TheyNudged:   u.NudgeState.TheyNudged(),
		ChatUnlocked: u.ChatUnlocked(),
	})
}
