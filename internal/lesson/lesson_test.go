package lesson

import "testing"

func TestCatalogIntegrity(t *testing.T) {
	lessons := Catalog()
	if len(lessons) == 0 {
		t.Fatalf("lesson catalog is empty")
	}
	seen := map[int]bool{}
	for _, l := range lessons {
		if seen[l.ID] {
			t.Fatalf("duplicate lesson id %d", l.ID)
		}
		seen[l.ID] = true
		if l.Title == "" || len(l.Exercises) == 0 {
			t.Fatalf("lesson %d missing title or exercises", l.ID)
		}
		if l.TargetAccuracy <= 0 || l.TargetAccuracy > 100 {
			t.Fatalf("lesson %d has invalid target accuracy %d", l.ID, l.TargetAccuracy)
		}
		for i, ex := range l.Exercises {
			if ex.Text == "" {
				t.Fatalf("lesson %d exercise %d has empty text", l.ID, i)
			}
		}
	}
}

func TestByID(t *testing.T) {
	l, err := ByID(1)
	if err != nil {
		t.Fatalf("lookup lesson 1: %v", err)
	}
	if l.Title != "Home Row Fundamentals" {
		t.Fatalf("unexpected lesson: %s", l.Title)
	}
	if _, err := ByID(999); err == nil {
		t.Fatalf("expected error for unknown lesson")
	}
}

func TestPassed(t *testing.T) {
	l := Lesson{TargetAccuracy: 90}
	if l.Passed(89) {
		t.Fatalf("89%% should fail a 90%% gate")
	}
	if !l.Passed(90) {
		t.Fatalf("90%% should pass a 90%% gate")
	}
}
