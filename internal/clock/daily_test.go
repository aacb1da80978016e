package clock

import (
	"testing"
	"time"
)

func TestNextDailyRun(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
			hour: 12,
			want: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "already passed today",
			now:  time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
			hour: 12,
			want: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly on the hour moves to tomorrow",
			now:  time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC),
			hour: 12,
			want: time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "non utc input",
			now:  time.Date(2024, 3, 1, 23, 0, 0, 0, time.FixedZone("UTC+2", 2*3600)),
			hour: 22,
			want: time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC),
		},
		{
			name: "hour wraps",
			now:  time.Date(2024, 3, 1, 0, 30, 0, 0, time.UTC),
			hour: 25,
			want: time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextDailyRun(tt.now, tt.hour); !got.Equal(tt.want) {
				t.Fatalf("NextDailyRun() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDailyWindow(t *testing.T) {
	end := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	start, gotEnd := DailyWindow(end)
	if !gotEnd.Equal(end) {
		t.Fatalf("DailyWindow() end = %v, want %v", gotEnd, end)
	}
	if want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("DailyWindow() start = %v, want %v", start, want)
	}
}
