package main

import "testing"

func TestBuiltinDictionaryGeneratesUniqueLabels(t *testing.T) {
	d, err := newDictionary("")
	if err != nil {
		t.Fatalf("newDictionary: %v", err)
	}

	words, err := d.Generate("en", 5, "Regular", "Easy")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(words) != 5 {
		t.Fatalf("len(words) = %d, want 5", len(words))
	}

	seen := make(map[string]bool)
	for _, w := range words {
		if seen[w.Label] {
			t.Errorf("duplicate label %q", w.Label)
		}
		seen[w.Label] = true
	}
}

func TestBuiltinDictionaryDegradesWhenPoolSmallerThanRequested(t *testing.T) {
	d, err := newDictionary("")
	if err != nil {
		t.Fatalf("newDictionary: %v", err)
	}

	words, err := d.Generate("en", 10000, "Regular", "Easy")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(words) == 0 {
		t.Fatal("expected a degraded but non-empty list, got none")
	}
}

func TestHiddenStyleMasksDisplay(t *testing.T) {
	d, err := newDictionary("")
	if err != nil {
		t.Fatalf("newDictionary: %v", err)
	}

	words, err := d.Generate("en", 3, "Hidden", "Easy")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, w := range words {
		if w.Display == w.Label {
			t.Errorf("Hidden style should mask display, got label=%q display=%q", w.Label, w.Display)
		}
		if len(w.Display) != len(w.Label) {
			t.Errorf("masked display should match label length, label=%q display=%q", w.Label, w.Display)
		}
	}
}

func TestCalculusProviderGeneratesRequestedCount(t *testing.T) {
	c := newCalculusProvider()

	words, err := c.Generate(4, "Hard")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(words) != 4 {
		t.Fatalf("len(words) = %d, want 4", len(words))
	}
}
