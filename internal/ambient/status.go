// Package ambient holds the cosmetic state that decorates the radar screen:
// status bar, skyline and map backdrop.
package ambient

import "NudgePrototype/internal/simulation"

// 상태 표시줄 (연결 상태, 주변 사용자 수)
type StatusBar struct {
	Connected   bool `json:"connected"`
	NearbyCount int  `json:"nearbyCount"`
}

// NewStatusBar starts connected with a random nearby count.
func NewStatusBar(rng simulation.Rand) StatusBar {
	return StatusBar{Connected: true, NearbyCount: nearbyCount(rng)}
}

// Flicker redraws the status: connected with probability uptime, 3..14 nearby.
func (s StatusBar) Flicker(rng simulation.Rand, uptime float64) StatusBar {
	return StatusBar{
		Connected:   rng.Float64() < uptime,
		NearbyCount: nearbyCount(rng),
	}
}

func nearbyCount(rng simulation.Rand) int {
	return 3 + rng.IntN(12)
}
