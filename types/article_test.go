package types

import "testing"

func TestGenerateID(t *testing.T) {
	id := GenerateID("https://example.com/a", "Title")
	if len(id) != 16 {
		t.Fatalf("len = %d; want 16", len(id))
	}

	// Stable for the same input.
	if again := GenerateID("https://example.com/a", "Title"); again != id {
		t.Fatalf("unstable id: %s vs %s", id, again)
	}

	// Different title, different id.
	if other := GenerateID("https://example.com/a", "Other"); other == id {
		t.Fatal("distinct inputs produced the same id")
	}
}
