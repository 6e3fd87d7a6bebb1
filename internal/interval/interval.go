package interval

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalid = errors.New("interval end must be after start")

// Interval is a half-open time range [Start, End). Half-open semantics
// mean a session ending at T and one starting at T do not overlap.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func New(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalid
	}
	return Interval{Start: start, End: end}, nil
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// In returns the interval with both instants expressed in loc. The
// underlying instants are unchanged; only the wall-clock representation
// moves. All engine comparisons go through instants, never local naive
// times.
func (i Interval) In(loc *time.Location) Interval {
	return Interval{Start: i.Start.In(loc), End: i.End.In(loc)}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// WeekOf returns the calendar week containing t as a half-open interval
// [Monday 00:00, next Monday 00:00) in the studio timezone. AddDate is
// used so weeks crossing a DST transition keep wall-clock midnight
// boundaries.
func WeekOf(t time.Time, loc *time.Location) Interval {
	lt := t.In(loc)
	daysSinceMonday := (int(lt.Weekday()) + 6) % 7
	monday := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -daysSinceMonday)
	return Interval{Start: monday, End: monday.AddDate(0, 0, 7)}
}
