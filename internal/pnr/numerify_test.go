package pnr

import (
	"math/rand"
	"regexp"
	"testing"
)

// seqSource replays fixed draws, wrapping each into [0, n).
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func TestNumerify(t *testing.T) {
	src := &seqSource{vals: []int{1, 2, 3, 4}}

	got := Numerify(src, "A#-#x##")
	if got != "A1-2x34" {
		t.Errorf("Numerify = %q, want %q", got, "A1-2x34")
	}
	if src.i != 4 {
		t.Errorf("drew %d digits, want 4", src.i)
	}
}

func TestNumerifyNoPlaceholders(t *testing.T) {
	src := &seqSource{vals: []int{0}}
	if got := Numerify(src, "SE-åäö"); got != "SE-åäö" {
		t.Errorf("Numerify = %q", got)
	}
	if src.i != 0 {
		t.Error("literal pattern should not draw")
	}
}

func TestNumerifyDigitsOnly(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	re := regexp.MustCompile(`^[0-9]{3}x[0-9]{3}$`)
	for range 200 {
		if got := Numerify(src, "###x###"); !re.MatchString(got) {
			t.Fatalf("Numerify = %q", got)
		}
	}
}

func TestCryptoSourceRange(t *testing.T) {
	src := CryptoSource()
	seen := make(map[int]bool)
	for range 500 {
		v := src.Intn(5)
		if v < 0 || v >= 5 {
			t.Fatalf("Intn(5) = %d", v)
		}
		seen[v] = true
	}
	// probability of missing a value in 500 draws is ~5*(4/5)^500
	if len(seen) != 5 {
		t.Errorf("saw %d distinct values, want 5", len(seen))
	}
}
