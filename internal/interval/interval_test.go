package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end time.Time) Interval {
	t.Helper()
	iv, err := New(start, end)
	require.NoError(t, err)
	return iv
}

func TestNew(t *testing.T) {
	now := time.Now()

	_, err := New(now, now.Add(time.Hour))
	assert.NoError(t, err)

	_, err = New(now, now)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = New(now, now.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "identical intervals overlap",
			a:    mustInterval(t, base, base.Add(time.Hour)),
			b:    mustInterval(t, base, base.Add(time.Hour)),
			want: true,
		},
		{
			name: "partial overlap",
			a:    mustInterval(t, base, base.Add(time.Hour)),
			b:    mustInterval(t, base.Add(30*time.Minute), base.Add(90*time.Minute)),
			want: true,
		},
		{
			name: "contained interval overlaps",
			a:    mustInterval(t, base, base.Add(2*time.Hour)),
			b:    mustInterval(t, base.Add(30*time.Minute), base.Add(time.Hour)),
			want: true,
		},
		{
			name: "back-to-back intervals do not overlap",
			a:    mustInterval(t, base, base.Add(time.Hour)),
			b:    mustInterval(t, base.Add(time.Hour), base.Add(2*time.Hour)),
			want: false,
		},
		{
			name: "disjoint intervals do not overlap",
			a:    mustInterval(t, base, base.Add(time.Hour)),
			b:    mustInterval(t, base.Add(3*time.Hour), base.Add(4*time.Hour)),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// overlap is symmetric
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestOverlapsAcrossTimezones(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 10:00 UTC and 11:00 Berlin (winter, UTC+1) are the same instant.
	a := mustInterval(t,
		time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 6, 11, 0, 0, 0, time.UTC))
	b := mustInterval(t,
		time.Date(2025, 1, 6, 11, 0, 0, 0, berlin),
		time.Date(2025, 1, 6, 12, 0, 0, 0, berlin))

	assert.True(t, a.Overlaps(b))
}

func TestContains(t *testing.T) {
	base := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	iv := mustInterval(t, base, base.Add(time.Hour))

	assert.True(t, iv.Contains(base))
	assert.True(t, iv.Contains(base.Add(30*time.Minute)))
	// half-open: the end instant is outside
	assert.False(t, iv.Contains(base.Add(time.Hour)))
	assert.False(t, iv.Contains(base.Add(-time.Second)))
}

func TestDuration(t *testing.T) {
	base := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	iv := mustInterval(t, base, base.Add(45*time.Minute))
	assert.Equal(t, 45*time.Minute, iv.Duration())
}

func TestWeekOf(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Wednesday 2025-03-05 15:30 Berlin
	wed := time.Date(2025, 3, 5, 15, 30, 0, 0, berlin)
	week := WeekOf(wed, berlin)

	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, berlin), week.Start)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, berlin), week.End)
	assert.True(t, week.Contains(wed))
}

func TestWeekOfSundayBelongsToSameWeek(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	sun := time.Date(2025, 3, 9, 23, 59, 0, 0, berlin)
	week := WeekOf(sun, berlin)

	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, berlin), week.Start)
	assert.True(t, week.Contains(sun))
}

func TestWeekOfAcrossDSTTransition(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Europe/Berlin springs forward on 2025-03-30; the week containing
	// that Sunday still ends at wall-clock Monday midnight.
	sat := time.Date(2025, 3, 29, 12, 0, 0, 0, berlin)
	week := WeekOf(sat, berlin)

	assert.Equal(t, time.Date(2025, 3, 24, 0, 0, 0, 0, berlin), week.Start)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, berlin), week.End)

	// The DST-shortened week is 167 hours of absolute time.
	assert.Equal(t, 167*time.Hour, week.Duration())
}

func TestWeekOfUsesStudioZoneNotInstantZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Sunday 23:30 UTC is already Monday 00:30 in Berlin: the instant
	// belongs to the following studio week.
	sunUTC := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	week := WeekOf(sunUTC, berlin)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, berlin), week.Start)
}
