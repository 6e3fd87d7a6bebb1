package settings

import "time"

// StudioSettings is versioned configuration owned by an external
// collaborator; the engine only reads it.
type StudioSettings struct {
	ID      int64 `db:"id" json:"id"`
	Version int   `db:"version" json:"version"`
	// WeeklySessionCap limits how many sessions may exist studio-wide
	// in one calendar week.
	WeeklySessionCap int `db:"weekly_session_cap" json:"weekly_session_cap"`
	// MemberWeeklySessionCap is the per-member cap on member-kind
	// sessions per calendar week.
	MemberWeeklySessionCap int       `db:"member_weekly_session_cap" json:"member_weekly_session_cap"`
	MinSessionMinutes      int       `db:"min_session_minutes" json:"min_session_minutes"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}
