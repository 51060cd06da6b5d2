package simulation

import "sort"

// 레이더 테마
type Theme struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	PulseColor  string `json:"pulseColor"`
}

var themes = map[string]Theme{
	"classic": {
		Key:         "classic",
		Name:        "Classic",
		Description: "Timeless and elegant",
		Color:       "pink-500",
		PulseColor:  "pink-500",
	},
	"electric": {
		Key:         "electric",
		Name:        "Electric",
		Description: "Bold and energetic",
		Color:       "yellow-500",
		PulseColor:  "yellow-500",
	},
	"cosmic": {
		Key:         "cosmic",
		Name:        "Cosmic",
		Description: "Dreamy and mystical",
		Color:       "purple-500",
		PulseColor:  "purple-500",
	},
	"coffee": {
		Key:         "coffee",
		Name:        "Coffee",
		Description: "Warm and cozy",
		Color:       "amber-600",
		PulseColor:  "amber-600",
	},
	"music": {
		Key:         "music",
		Name:        "Music",
		Description: "Rhythmic and cool",
		Color:       "blue-500",
		PulseColor:  "blue-500",
	},
	"artistic": {
		Key:         "artistic",
		Name:        "Artistic",
		Description: "Creative and colorful",
		Color:       "green-500",
		PulseColor:  "green-500",
	},
}

// DefaultThemeKey is selected when a session does not pick one.
const DefaultThemeKey = "classic"

func GetTheme(key string) (Theme, bool) {
	theme, exists := themes[key]
	return theme, exists
}

// Themes returns the catalog sorted by key.
func Themes() []Theme {
	out := make([]Theme, 0, len(themes))
	for _, t := range themes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
