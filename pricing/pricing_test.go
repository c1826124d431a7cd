package pricing

import (
	"math"
	"testing"
)

func TestCreditCost(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{59, 1},
		{60, 1},
		{61, 2},
		{120, 2},
		{121, 3},
		{300, 5},
		{600, 10},
		{3601, 61},
		{math.MaxInt, math.MaxInt/60 + 1},
		{math.MaxInt - math.MaxInt%60, math.MaxInt / 60},
	}

	for _, tt := range tests {
		if got := CreditCost(tt.seconds); got != tt.want {
			t.Errorf("CreditCost(%d) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestCreditCostMonotonic(t *testing.T) {
	prev := CreditCost(0)
	for s := 1; s <= 4*3600; s++ {
		got := CreditCost(s)
		if got < 1 {
			t.Fatalf("CreditCost(%d) = %d, want >= 1", s, got)
		}
		if got < prev {
			t.Fatalf("CreditCost(%d) = %d decreased from %d", s, got, prev)
		}
		prev = got
	}
}

func TestCreditCostNearMaxInt(t *testing.T) {
	prev := CreditCost(math.MaxInt - 120)
	for s := math.MaxInt - 119; ; s++ {
		got := CreditCost(s)
		if got < prev {
			t.Fatalf("CreditCost(%d) = %d decreased from %d", s, got, prev)
		}
		prev = got
		if s == math.MaxInt {
			break
		}
	}
}
