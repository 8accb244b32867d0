package util

import "testing"

func TestClampInt(t *testing.T) {
	tests := []struct {
		v, low, high int
		want         int
	}{
		{2, 3, 64, 3},
		{3, 3, 64, 3},
		{16, 3, 64, 16},
		{64, 3, 64, 64},
		{100, 3, 64, 64},
		{-5, 3, 64, 3},
	}

	for _, tt := range tests {
		got := ClampInt(tt.v, tt.low, tt.high)
		if got != tt.want {
			t.Errorf("ClampInt(%d, %d, %d) = %d, want %d", tt.v, tt.low, tt.high, got, tt.want)
		}
	}
}

func TestMaxFAndClampF(t *testing.T) {
	if got := MaxF(0.1, -2); got != 0.1 {
		t.Errorf("MaxF(0.1, -2) = %v, want 0.1", got)
	}
	if got := MaxF(0.1, 3); got != 3 {
		t.Errorf("MaxF(0.1, 3) = %v, want 3", got)
	}
	if got := ClampF(5, 0, 1); got != 1 {
		t.Errorf("ClampF(5, 0, 1) = %v, want 1", got)
	}
	if got := ClampF(-1, 0, 1); got != 0 {
		t.Errorf("ClampF(-1, 0, 1) = %v, want 0", got)
	}
	if got := Lerp(0, 10, 0.25); got != 2.5 {
		t.Errorf("Lerp(0, 10, 0.25) = %v, want 2.5", got)
	}
}
