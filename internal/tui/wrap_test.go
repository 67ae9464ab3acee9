package tui

import "testing"

func TestBuildGlyphsCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")
	cursorIndex := len(input)

	glyphs := buildGlyphs(target, input, cursorIndex)
	if len(glyphs) != 2 {
		t.Fatalf("expected 2 glyphs, got %d", len(glyphs))
	}
	if glyphs[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first glyph")
	}
	if glyphs[1].s != cursorStyle.Render("b") {
		t.Fatalf("expected cursor style for second glyph")
	}
}

func TestBuildGlyphsNoCursorWhenComplete(t *testing.T) {
	target := []rune("a")
	input := []rune("a")

	glyphs := buildGlyphs(target, input, -1)
	if len(glyphs) != 1 {
		t.Fatalf("expected 1 glyph, got %d", len(glyphs))
	}
	if glyphs[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed glyph")
	}
}

func TestBuildGlyphsKeepsTargetOnMistype(t *testing.T) {
	target := []rune("ab")
	input := []rune("ax")
	cursorIndex := len(input)

	glyphs := buildGlyphs(target, input, cursorIndex)
	if glyphs[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first glyph")
	}
	if glyphs[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for mistyped glyph")
	}
}

func TestBuildGlyphsWordHighlighting(t *testing.T) {
	target := []rune("one two")
	input := []rune("o")
	cursorIndex := len(input)

	glyphs := buildGlyphs(target, input, cursorIndex)
	if glyphs[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed glyph")
	}
	if glyphs[1].s != currentWordStyle.Render("n") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if glyphs[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if glyphs[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
	if glyphs[6].s != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildGlyphsWrongSpaceDot(t *testing.T) {
	target := []rune("a b")
	input := []rune("ax")
	cursorIndex := len(input)

	glyphs := buildGlyphs(target, input, cursorIndex)
	if len(glyphs) != 3 {
		t.Fatalf("expected 3 glyphs, got %d", len(glyphs))
	}
	if glyphs[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestWrapGlyphsBreaksAtSpace(t *testing.T) {
	glyphs := buildGlyphs([]rune("one two three"), nil, -1)
	wrapped := wrapGlyphs(glyphs, 8)
	lines := splitLines(wrapped)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), wrapped)
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
