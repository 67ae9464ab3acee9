package metrics

import (
	"testing"
)

func TestComputePerfectRun(t *testing.T) {
	target := []rune("the quick brown fox")
	sample := Compute(target, target, 12)
	if sample.AccuracyPercent != 100 {
		t.Fatalf("expected 100%% accuracy, got %d", sample.AccuracyPercent)
	}
	if sample.Errors != 0 {
		t.Fatalf("expected 0 errors, got %d", sample.Errors)
	}
	if sample.CorrectChars != len(target) || sample.TotalChars != len(target) {
		t.Fatalf("unexpected char counts: %+v", sample)
	}
}

func TestComputeCountsErrors(t *testing.T) {
	target := []rune("abcdef")
	typed := []rune("abxdyf")
	sample := Compute(target, typed, 10)
	if sample.CorrectChars != 4 {
		t.Fatalf("expected 4 correct chars, got %d", sample.CorrectChars)
	}
	if sample.Errors != 2 {
		t.Fatalf("expected 2 errors, got %d", sample.Errors)
	}
	if sample.AccuracyPercent != 67 {
		t.Fatalf("expected accuracy 67, got %d", sample.AccuracyPercent)
	}
}

func TestComputeAccuracyBeforeInput(t *testing.T) {
	sample := Compute([]rune("abc"), nil, 0)
	if sample.AccuracyPercent != 100 {
		t.Fatalf("expected vacuous 100%% accuracy, got %d", sample.AccuracyPercent)
	}
	if sample.WPM != 0 {
		t.Fatalf("expected 0 WPM before the clock starts, got %d", sample.WPM)
	}
}

func TestComputeZeroElapsedZeroWPM(t *testing.T) {
	target := []rune("hello world")
	sample := Compute(target, target, 0)
	if sample.WPM != 0 {
		t.Fatalf("expected 0 WPM at 0 elapsed seconds, got %d", sample.WPM)
	}
}

func TestComputeIgnoresTypingAhead(t *testing.T) {
	target := []rune("abc")
	typed := []rune("abcdef")
	sample := Compute(target, typed, 5)
	if sample.TotalChars != 3 {
		t.Fatalf("expected overflow input to be ignored, got total %d", sample.TotalChars)
	}
	if sample.Errors != 0 {
		t.Fatalf("expected no errors from ignored overflow, got %d", sample.Errors)
	}
}

func TestComputeWPMFormula(t *testing.T) {
	// 60 correct chars in 60s is 12 words per minute.
	target := make([]rune, 60)
	for i := range target {
		target[i] = 'a'
	}
	sample := Compute(target, target, 60)
	if sample.WPM != 12 {
		t.Fatalf("expected 12 WPM, got %d", sample.WPM)
	}
}

func TestComputeAccuracyNonIncreasingWithErrors(t *testing.T) {
	target := []rune("aaaaaaaaaa")
	prev := 101
	for bad := 0; bad <= len(target); bad++ {
		typed := make([]rune, len(target))
		for i := range typed {
			typed[i] = 'a'
			if i < bad {
				typed[i] = 'b'
			}
		}
		sample := Compute(target, typed, 5)
		if sample.AccuracyPercent > prev {
			t.Fatalf("accuracy increased with more errors: %d -> %d", prev, sample.AccuracyPercent)
		}
		prev = sample.AccuracyPercent
	}
}

func TestComplete(t *testing.T) {
	target := []rune("ab")
	if Complete(target, []rune("a")) {
		t.Fatalf("expected incomplete attempt")
	}
	if !Complete(target, []rune("ab")) {
		t.Fatalf("expected complete attempt")
	}
	if Complete(nil, nil) {
		t.Fatalf("empty target must never complete")
	}
}
