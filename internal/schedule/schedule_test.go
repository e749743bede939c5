package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rome(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	return loc
}

func TestNext(t *testing.T) {
	loc := rome(t)
	s := Weekdays{Hour: 20, Minute: 0, Location: loc}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "weekday before the trigger fires the same day",
			now:  time.Date(2026, 1, 7, 10, 0, 0, 0, loc), // Wednesday
			want: time.Date(2026, 1, 7, 20, 0, 0, 0, loc),
		},
		{
			name: "weekday after the trigger rolls to the next day",
			now:  time.Date(2026, 1, 7, 21, 0, 0, 0, loc),
			want: time.Date(2026, 1, 8, 20, 0, 0, 0, loc),
		},
		{
			name: "exactly at the trigger rolls forward",
			now:  time.Date(2026, 1, 7, 20, 0, 0, 0, loc),
			want: time.Date(2026, 1, 8, 20, 0, 0, 0, loc),
		},
		{
			name: "friday evening skips to monday",
			now:  time.Date(2026, 1, 9, 20, 30, 0, 0, loc), // Friday
			want: time.Date(2026, 1, 12, 20, 0, 0, 0, loc), // Monday
		},
		{
			name: "saturday skips to monday",
			now:  time.Date(2026, 1, 10, 9, 0, 0, 0, loc),
			want: time.Date(2026, 1, 12, 20, 0, 0, 0, loc),
		},
		{
			name: "now in another timezone is converted",
			now:  time.Date(2026, 1, 7, 18, 30, 0, 0, time.UTC), // 19:30 Rome
			want: time.Date(2026, 1, 7, 20, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Next(tt.now)
			assert.True(t, got.Equal(tt.want), "Next(%v) = %v, want %v", tt.now, got, tt.want)
			assert.NotEqual(t, time.Saturday, got.Weekday())
			assert.NotEqual(t, time.Sunday, got.Weekday())
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := Weekdays{Hour: 20, Minute: 0, Location: rome(t)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		s.Run(ctx, func(context.Context) {
			t.Error("job must not fire after cancellation")
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
