package services

import "testing"

func TestRandomDigitsShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := randomDigits("ICTACEM-2026-", 5)
		if err != nil {
			t.Fatalf("random digits: %v", err)
		}
		if len(id) != len("ICTACEM-2026-")+5 {
			t.Fatalf("unexpected length for %q", id)
		}
		for _, c := range id[len("ICTACEM-2026-"):] {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit suffix in %q", id)
			}
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Fatalf("generator produced no variety")
	}
}
