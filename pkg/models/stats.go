package models

// DailyStats counts cards consumed against the daily quota. Day is a
// calendar-day identifier; counters reset lazily when Day no longer
// matches the current date.
type DailyStats struct {
	Day        string `json:"day"`
	NewUsed    int    `json:"newUsed"`
	ReviewUsed int    `json:"reviewUsed"`
}
