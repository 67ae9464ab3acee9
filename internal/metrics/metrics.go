// Package metrics turns raw keystrokes into typing performance numbers.
package metrics

import (
	"math"

	"typedrill/internal/model"
)

// charsPerWord is the standard characters-per-word divisor for WPM.
const charsPerWord = 5.0

// Compute derives a TypingSample from the target text, the text typed so far,
// and the elapsed time. Input beyond the target length is ignored, so fast
// typing past the end can never corrupt the sample. Pure; called on every
// keystroke and every timer tick.
func Compute(target, typed []rune, elapsedSeconds int) model.TypingSample {
	if len(typed) > len(target) {
		typed = typed[:len(target)]
	}

	sample := model.TypingSample{
		TotalChars:      len(typed),
		ElapsedSeconds:  elapsedSeconds,
		AccuracyPercent: 100,
	}
	for i, r := range typed {
		if r == target[i] {
			sample.CorrectChars++
		} else {
			sample.Errors++
		}
	}
	if sample.TotalChars > 0 {
		sample.AccuracyPercent = int(math.Round(100 * float64(sample.CorrectChars) / float64(sample.TotalChars)))
	}
	sample.WPM = wpm(sample.CorrectChars, elapsedSeconds)
	return sample
}

// Complete reports whether the attempt has covered the full target.
func Complete(target, typed []rune) bool {
	return len(target) > 0 && len(typed) >= len(target)
}

// wpm counts only correctly typed characters; errors do not add speed.
func wpm(correctChars, elapsedSeconds int) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	minutes := float64(elapsedSeconds) / 60.0
	return int(math.Round(float64(correctChars) / charsPerWord / minutes))
}
