package models

// Status represents how well a word is known
type Status string

const (
	// StatusUnknown is the initial status of every saved word
	StatusUnknown Status = "unknown"
	// StatusLearning is reached after repeated reviews
	StatusLearning Status = "learning"
	// StatusMastered is the final status
	StatusMastered Status = "mastered"
)

// Word represents a vocabulary entry. The identity key is En, compared
// case-insensitively. SRS fields are present whenever the word carries
// the review system tag and absent otherwise.
type Word struct {
	En             string   `json:"en"`
	Zh             string   `json:"zh"`
	ExampleEn      string   `json:"exampleEn,omitempty"`
	ExampleZh      string   `json:"exampleZh,omitempty"`
	Phonetic       string   `json:"phonetic,omitempty"`
	Note           string   `json:"note,omitempty"`
	Status         Status   `json:"status"`
	CreatedAt      int64    `json:"createdAt"`
	ReviewCount    int      `json:"reviewCount"`
	LastReviewedAt *int64   `json:"lastReviewedAt,omitempty"`
	Tags           []string `json:"tags"`
	SrsEase        *float64 `json:"srsEase,omitempty"`
	SrsInterval    *int     `json:"srsInterval,omitempty"`
	SrsReps        *int     `json:"srsReps,omitempty"`
	SrsLapses      *int     `json:"srsLapses,omitempty"`
	SrsDue         *int64   `json:"srsDue,omitempty"`
}

// HasSrs reports whether all scheduling fields are present.
func (w *Word) HasSrs() bool {
	return w.SrsEase != nil && w.SrsInterval != nil && w.SrsReps != nil &&
		w.SrsLapses != nil && w.SrsDue != nil
}

// Srs returns the embedded scheduling state. The boolean is false if
// any field is missing.
func (w *Word) Srs() (SrsState, bool) {
	if !w.HasSrs() {
		return SrsState{}, false
	}
	return SrsState{
		Ease:     *w.SrsEase,
		Interval: *w.SrsInterval,
		Reps:     *w.SrsReps,
		Lapses:   *w.SrsLapses,
		Due:      *w.SrsDue,
	}, true
}

// SetSrs writes the scheduling state back into the word's flat fields.
func (w *Word) SetSrs(s SrsState) {
	w.SrsEase = &s.Ease
	w.SrsInterval = &s.Interval
	w.SrsReps = &s.Reps
	w.SrsLapses = &s.Lapses
	w.SrsDue = &s.Due
}

// HasTag reports whether the word carries the exact tag path.
func (w *Word) HasTag(path string) bool {
	for _, t := range w.Tags {
		if t == path {
			return true
		}
	}
	return false
}
