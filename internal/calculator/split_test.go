package calculator

import (
	"testing"
)

func TestEqualShare(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		n             int
		wantShare     int64
		wantRemainder int64
	}{
		{name: "even split", total: 90, n: 3, wantShare: 30, wantRemainder: 0},
		{name: "truncates", total: 100, n: 3, wantShare: 33, wantRemainder: 1},
		{name: "single participant", total: 7, n: 1, wantShare: 7, wantRemainder: 0},
		{name: "total smaller than participants", total: 2, n: 5, wantShare: 0, wantRemainder: 2},
		{name: "large total", total: 1 << 40, n: 7, wantShare: (1 << 40) / 7, wantRemainder: (1 << 40) % 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			share, remainder := EqualShare(tt.total, tt.n)
			if share != tt.wantShare {
				t.Errorf("share = %d, want %d", share, tt.wantShare)
			}
			if remainder != tt.wantRemainder {
				t.Errorf("remainder = %d, want %d", remainder, tt.wantRemainder)
			}
			if share*int64(tt.n)+remainder != tt.total {
				t.Errorf("share*n + remainder = %d, want %d", share*int64(tt.n)+remainder, tt.total)
			}
		})
	}
}
