package wordlist

import "testing"

func TestKeep(t *testing.T) {
	for _, word := range []string{"hello", "naïve", "straße"} {
		if !Keep(word) {
			t.Fatalf("expected %q to be kept", word)
		}
	}
	for _, word := range []string{"", "Hello", "don’t", "co-op", "r2d2"} {
		if Keep(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]string{"kat", "Kat", "hond", "x-y"})
	if len(got) != 2 || got[0] != "kat" || got[1] != "hond" {
		t.Fatalf("unexpected filtered words: %v", got)
	}
}
