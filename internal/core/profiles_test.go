package core

import "testing"

func TestStepIndex(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		direction int
		total     int
		wrap      bool
		expected  int
		ok        bool
	}{
		{"Next wrap", 2, 1, 3, true, 0, true},
		{"Prev wrap", 0, -1, 3, true, 2, true},
		{"Simple next", 0, 1, 3, false, 1, true},
		{"Simple prev", 1, -1, 3, false, 0, true},
		{"Next at end", 2, 1, 3, false, 2, false},
		{"Prev at start", 0, -1, 3, false, 0, false},
		{"Zero total", 0, 1, 0, true, 0, false},
		{"Single item next wrap", 0, 1, 1, true, 0, true},
		{"Single item next", 0, 1, 1, false, 0, false},
		{"Large step wrap", 0, 5, 3, true, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StepIndex(tt.current, tt.direction, tt.total, tt.wrap)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("StepIndex(%d, %d, %d, %v) = (%d, %v), want (%d, %v)",
					tt.current, tt.direction, tt.total, tt.wrap, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestClampIndex(t *testing.T) {
	tests := []struct {
		i, total, want int
	}{
		{0, 3, 0}, {2, 3, 2}, {5, 3, 2}, {-1, 3, 0}, {4, 0, 0},
	}
	for _, tt := range tests {
		if got := ClampIndex(tt.i, tt.total); got != tt.want {
			t.Errorf("ClampIndex(%d, %d) = %d, want %d", tt.i, tt.total, got, tt.want)
		}
	}
}
