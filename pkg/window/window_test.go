package window

import (
	"errors"
	"testing"
	"time"
)

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSegment_SingleWindow(t *testing.T) {
	tests := []struct {
		name    string
		length  time.Duration
		maxSpan time.Duration
	}{
		{
			name:    "well under the span limit",
			length:  24 * time.Hour,
			maxSpan: 90 * 24 * time.Hour,
		},
		{
			name:    "exactly at the span limit",
			length:  90 * 24 * time.Hour,
			maxSpan: 90 * 24 * time.Hour,
		},
		{
			name:    "sub-second range",
			length:  time.Second,
			maxSpan: time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := base.Add(tt.length)
			windows, err := Segment(base, end, tt.maxSpan)
			if err != nil {
				t.Fatalf("Segment() error = %v", err)
			}
			if len(windows) != 1 {
				t.Fatalf("Expected 1 window, got %d", len(windows))
			}
			if !windows[0].Start.Equal(base) || !windows[0].End.Equal(end) {
				t.Errorf("Window = [%v, %v), want [%v, %v)",
					windows[0].Start, windows[0].End, base, end)
			}
		})
	}
}

func TestSegment_Coverage(t *testing.T) {
	tests := []struct {
		name        string
		length      time.Duration
		maxSpan     time.Duration
		wantWindows int
	}{
		{
			name:        "104 days at 90-day limit",
			length:      104 * 24 * time.Hour,
			maxSpan:     90 * 24 * time.Hour,
			wantWindows: 2,
		},
		{
			name:        "exact multiple of the span",
			length:      180 * 24 * time.Hour,
			maxSpan:     90 * 24 * time.Hour,
			wantWindows: 2,
		},
		{
			name:        "one second over the span",
			length:      90*24*time.Hour + time.Second,
			maxSpan:     90 * 24 * time.Hour,
			wantWindows: 2,
		},
		{
			name:        "many windows",
			length:      365 * 24 * time.Hour,
			maxSpan:     90 * 24 * time.Hour,
			wantWindows: 5,
		},
		{
			name:        "tiny span",
			length:      10 * time.Second,
			maxSpan:     3 * time.Second,
			wantWindows: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := base.Add(tt.length)
			windows, err := Segment(base, end, tt.maxSpan)
			if err != nil {
				t.Fatalf("Segment() error = %v", err)
			}
			if len(windows) != tt.wantWindows {
				t.Fatalf("Expected %d windows, got %d", tt.wantWindows, len(windows))
			}

			// Contiguous, non-overlapping, covering exactly [start, end).
			if !windows[0].Start.Equal(base) {
				t.Errorf("First window starts at %v, want %v", windows[0].Start, base)
			}
			if !windows[len(windows)-1].End.Equal(end) {
				t.Errorf("Last window ends at %v, want %v", windows[len(windows)-1].End, end)
			}
			for i, w := range windows {
				if !w.Start.Before(w.End) {
					t.Errorf("Window %d is empty or inverted: [%v, %v)", i, w.Start, w.End)
				}
				if w.Span() > tt.maxSpan {
					t.Errorf("Window %d span %v exceeds max span %v", i, w.Span(), tt.maxSpan)
				}
				if i > 0 && !windows[i-1].End.Equal(w.Start) {
					t.Errorf("Gap or overlap between window %d and %d: %v vs %v",
						i-1, i, windows[i-1].End, w.Start)
				}
			}
		})
	}
}

func TestSegment_NoZeroLengthWindow(t *testing.T) {
	// An exact multiple of the span must not produce a trailing empty window.
	end := base.Add(270 * 24 * time.Hour)
	windows, err := Segment(base, end, 90*24*time.Hour)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(windows) != 3 {
		t.Fatalf("Expected 3 windows, got %d", len(windows))
	}
	for i, w := range windows {
		if w.Span() <= 0 {
			t.Errorf("Window %d has non-positive span %v", i, w.Span())
		}
	}
}

func TestSegment_InvalidRange(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{
			name:  "start equals end",
			start: base,
			end:   base,
		},
		{
			name:  "start after end",
			start: base.Add(time.Hour),
			end:   base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Segment(tt.start, tt.end, time.Hour)
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("Segment() error = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestSegment_InvalidSpan(t *testing.T) {
	_, err := Segment(base, base.Add(time.Hour), 0)
	if !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("Segment() error = %v, want ErrInvalidSpan", err)
	}

	_, err = Segment(base, base.Add(time.Hour), -time.Minute)
	if !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("Segment() error = %v, want ErrInvalidSpan", err)
	}
}
