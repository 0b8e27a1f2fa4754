// Package storage defines the key-value port every stateful component
// persists through, plus SQL and in-memory implementations. Values are
// JSON (or plain string) blobs replaced wholesale on write; there is no
// partial-record update at this layer.
package storage

import "context"

// Persisted keys. The literals are part of the backup format used by
// existing installs and must not change.
const (
	KeyWords        = "@halo_words"
	KeyTags         = "@halo_tags"
	KeyTagOrder     = "@halo_tag_order"
	KeySrsLimits    = "@srs_limits"
	KeyDailyStats   = "@srs_daily_stats"
	KeyWordFontSize = "@pref_word_font_size"
)

// AllKeys lists every key the backup envelope round-trips.
func AllKeys() []string {
	return []string{
		KeyWords,
		KeyTags,
		KeyTagOrder,
		KeySrsLimits,
		KeyDailyStats,
		KeyWordFontSize,
	}
}

// Store is the persistence port. Get reports ok=false when the key has
// never been written. Errors are reserved for backend failures and
// propagate unchanged to the caller.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
