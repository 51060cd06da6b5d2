package models

// 프로필에 표시되는 추천 활동
type Activity struct {
	Activity string `json:"activity"`
	Location string `json:"location"`
	Reason   string `json:"reason"`
	Emoji    string `json:"emoji"`
}

type CompatibilityBreakdown struct {
	Humor      int `json:"humor"`
	Adventure  int `json:"adventure"`
	Intellect  int `json:"intellect"`
	Creativity int `json:"creativity"`
}

// 레이더 팝오버용 미니 프로필
type MiniProfile struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Age               int      `json:"age"`
	Distance          string   `json:"distance"`
	Interests         []string `json:"interests"`
	PersonalityMatch  int      `json:"personalityMatch"`
	CommonInterests   int      `json:"commonInterests"`
	Vibe              string   `json:"vibe"`
	SuggestedActivity Activity `json:"suggestedActivity"`
	HasNudged         bool     `json:"hasNudged"`
	YouNudged         bool     `json:"youNudged"`
}

// 전체 프로필 화면용 프로젝션, 저장하지 않음
type FullProfile struct {
	MiniProfile
	Bio                    string                 `json:"bio"`
	RecentActivity         string                 `json:"recentActivity"`
	SuggestedActivities    []Activity             `json:"suggestedActivities"`
	CompatibilityBreakdown CompatibilityBreakdown `json:"compatibilityBreakdown"`
}
