package raffle

import (
	"math"
	"testing"
)

func TestComputeWinProbability_KnownValues(t *testing.T) {
	tests := []struct {
		name       string
		totalBids  uint64
		userBids   uint64
		numWinners uint64
		want       float64
	}{
		{name: "documented example", totalBids: 100, userBids: 10, numWinners: 3, want: 0.271},
		{name: "single winner half the tickets", totalBids: 2, userBids: 1, numWinners: 1, want: 0.5},
		{name: "all tickets two winners", totalBids: 5, userBids: 5, numWinners: 2, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputeWinProbability(tt.totalBids, tt.userBids, tt.numWinners)
			if !ok {
				t.Fatalf("expected applicable result")
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeWinProbability_ZeroWinners(t *testing.T) {
	got, ok := ComputeWinProbability(100, 10, 0)
	if !ok {
		t.Fatalf("zero winners is applicable, just zero probability")
	}
	if got != 0 {
		t.Errorf("got %v, want exactly 0", got)
	}
}

func TestComputeWinProbability_NotApplicable(t *testing.T) {
	if _, ok := ComputeWinProbability(0, 0, 3); ok {
		t.Errorf("no bids in round should not be applicable")
	}
	if _, ok := ComputeWinProbability(100, 0, 3); ok {
		t.Errorf("no user participation should not be applicable")
	}
}

func TestComputeWinProbability_AllTicketsExactlyOne(t *testing.T) {
	// No floating-point overshoot allowed after clamping.
	for _, winners := range []uint64{1, 2, 7, 100} {
		got, ok := ComputeWinProbability(37, 37, winners)
		if !ok {
			t.Fatalf("expected applicable result")
		}
		if got != 1 {
			t.Errorf("winners=%d: got %v, want exactly 1", winners, got)
		}
	}
}

func TestComputeWinProbability_InRange(t *testing.T) {
	for total := uint64(1); total <= 50; total += 7 {
		for user := uint64(1); user <= total; user++ {
			for _, winners := range []uint64{1, 3, 10, 100} {
				got, ok := ComputeWinProbability(total, user, winners)
				if !ok {
					t.Fatalf("total=%d user=%d winners=%d: expected applicable", total, user, winners)
				}
				if got < 0 || got > 1 {
					t.Errorf("total=%d user=%d winners=%d: probability %v out of [0,1]", total, user, winners, got)
				}
			}
		}
	}
}

func TestComputeWinProbability_MonotoneInUserBids(t *testing.T) {
	const total, winners = 200, 5
	prev := -1.0
	for user := uint64(1); user <= total; user++ {
		got, ok := ComputeWinProbability(total, user, winners)
		if !ok {
			t.Fatalf("user=%d: expected applicable", user)
		}
		if got < prev {
			t.Errorf("probability decreased at user=%d: %v < %v", user, got, prev)
		}
		prev = got
	}
}

func TestComputeWinProbability_UserBidsCappedAtTotal(t *testing.T) {
	got, ok := ComputeWinProbability(10, 15, 2)
	if !ok {
		t.Fatalf("expected applicable result")
	}
	if got != 1 {
		t.Errorf("userBids above totalBids should clamp to certainty, got %v", got)
	}
}
