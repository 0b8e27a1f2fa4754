package models

// SrsState tracks a word's position in the spaced-repetition schedule.
// Ease stays within [1.3, 3.0]; Interval is whole days; Due is a Unix
// timestamp in milliseconds.
type SrsState struct {
	Ease     float64 `json:"ease"`
	Interval int     `json:"interval"`
	Reps     int     `json:"reps"`
	Lapses   int     `json:"lapses"`
	Due      int64   `json:"due"`
}

// SrsLimits caps how many new and already-seen cards a review session
// may surface per calendar day. Values are clamped on every write.
type SrsLimits struct {
	DailyNewLimit    int `json:"dailyNewLimit"`
	DailyReviewLimit int `json:"dailyReviewLimit"`
}
