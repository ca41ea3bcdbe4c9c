package rng

import "testing"

func TestNew_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("expected identical sequences from the same seed at draw %d", i)
		}
	}
}

func TestIntn_ZeroOrNegativeReturnsZero(t *testing.T) {
	s := New(1)
	if got := s.Intn(0); got != 0 {
		t.Fatalf("expected 0 for n=0, got %d", got)
	}
	if got := s.Intn(-5); got != 0 {
		t.Fatalf("expected 0 for negative n, got %d", got)
	}
}

func TestShuffle_PreservesElements(t *testing.T) {
	s := New(7)
	data := []int{1, 2, 3, 4, 5}
	s.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })

	sum := 0
	for _, v := range data {
		sum += v
	}
	if sum != 15 {
		t.Fatalf("expected shuffle to preserve all elements, sum=%d", sum)
	}
}
