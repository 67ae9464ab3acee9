// Package lesson provides the static lesson catalog.
package lesson

import "fmt"

// Difficulty labels a lesson's intended skill level.
type Difficulty string

// Lesson difficulty levels.
const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Exercise is a single typing drill inside a lesson.
type Exercise struct {
	Instruction string
	Text        string
	FocusKeys   []rune
}

// Lesson is an ordered series of exercises with a pass gate.
type Lesson struct {
	ID             int
	Title          string
	Description    string
	Difficulty     Difficulty
	Duration       string
	Exercises      []Exercise
	TargetAccuracy int
	TargetWPM      int
}

// Passed reports whether an exercise attempt clears the lesson's accuracy gate.
func (l Lesson) Passed(accuracyPercent int) bool {
	return accuracyPercent >= l.TargetAccuracy
}

// Catalog returns all lessons in order.
func Catalog() []Lesson {
	return catalog
}

// ByID finds a lesson by its identifier.
func ByID(id int) (Lesson, error) {
	for _, l := range catalog {
		if l.ID == id {
			return l, nil
		}
	}
	return Lesson{}, fmt.Errorf("unknown lesson %d", id)
}

var catalog = []Lesson{
	{
		ID:          1,
		Title:       "Home Row Fundamentals",
		Description: "Learn the foundation of touch typing with home row keys (ASDF JKL;)",
		Difficulty:  Beginner,
		Duration:    "15 min",
		Exercises: []Exercise{
			{
				Instruction: "Place your left fingers on A, S, D, F and right fingers on J, K, L, ;. Practice the home row position.",
				Text:        "asdf jkl; asdf jkl; fff jjj ddd kkk sss lll aaa ;;;",
				FocusKeys:   []rune("asdfjkl;"),
			},
			{
				Instruction: "Practice combining home row keys into simple patterns.",
				Text:        "ask lad; fall; sad; flask; asks; falls; salad; lads;",
				FocusKeys:   []rune("asdfjkl;"),
			},
			{
				Instruction: "Type real words using only home row keys.",
				Text:        "a lad asks; a lass falls; salads; flasks; sad falls; ask a lad;",
				FocusKeys:   []rune("asdfjkl;"),
			},
		},
		TargetAccuracy: 95,
		TargetWPM:      15,
	},
	{
		ID:          2,
		Title:       "Top Row Mastery",
		Description: "Master the top row keys (QWERTY UIOP) with proper finger placement",
		Difficulty:  Beginner,
		Duration:    "20 min",
		Exercises: []Exercise{
			{
				Instruction: "Learn the top row keys. Use your pinky for Q and P, ring finger for W and O, middle for E and I, index for R, T, Y, U.",
				Text:        "qwer tyui op qwer tyui op qqq www eee rrr ttt yyy uuu iii ooo ppp",
				FocusKeys:   []rune("qwertyuiop"),
			},
			{
				Instruction: "Combine top row with home row keys you've learned.",
				Text:        "fire; wire; tire; pier; tier; leper; power; tower; quote; petal;",
				FocusKeys:   []rune("qwertyuiop"),
			},
			{
				Instruction: "Practice typing sentences using home and top row keys.",
				Text:        "a fire tower; quote a poet; write a letter; eat a pear; power fails;",
				FocusKeys:   []rune("qwertyuiop"),
			},
		},
		TargetAccuracy: 90,
		TargetWPM:      20,
	},
	{
		ID:          3,
		Title:       "Bottom Row Training",
		Description: "Practice bottom row keys (ZXCVBNM) and build muscle memory",
		Difficulty:  Intermediate,
		Duration:    "18 min",
		Exercises: []Exercise{
			{
				Instruction: "Learn the bottom row keys. Use pinky for Z, ring for X, middle for C, index for V, B, N, M.",
				Text:        "zxcv bnm zxcv bnm zzz xxx ccc vvv bbb nnn mmm zxcv bnm zxcv bnm",
				FocusKeys:   []rune("zxcvbnm"),
			},
			{
				Instruction: "Combine all three rows. Focus on smooth transitions between rows.",
				Text:        "maze; cave; move; zinc; comb; verb; zoom; clam; film; calm;",
				FocusKeys:   []rune("zxcvbnm"),
			},
			{
				Instruction: "Type complete sentences using all letter keys.",
				Text:        "move into the cave; climb the maze; a calm film; zinc metal; comb hair;",
				FocusKeys:   []rune("zxcvbnm"),
			},
		},
		TargetAccuracy: 88,
		TargetWPM:      25,
	},
	{
		ID:          4,
		Title:       "Numbers & Special Characters",
		Description: "Learn to type numbers and special characters efficiently",
		Difficulty:  Intermediate,
		Duration:    "25 min",
		Exercises: []Exercise{
			{
				Instruction: "Practice the number row. Use the same fingers as the letters below each number.",
				Text:        "1234567890 1234567890 123 456 789 0 111 222 333 444 555 666 777 888 999 000",
				FocusKeys:   []rune("1234567890"),
			},
			{
				Instruction: "Learn common special characters and punctuation marks.",
				Text:        `! @ # $ % ^ & * ( ) - _ = + [ ] { } \ | ; : ' " , . < > / ?`,
				FocusKeys:   []rune(`!@#$%^&*()-_=+[]{}\|;:'",.<>/?`),
			},
			{
				Instruction: "Practice typing addresses, phone numbers, and mixed content.",
				Text:        "Call (555) 123-4567 or email user@example.com for info. Price: $29.99!",
				FocusKeys:   []rune("()1234567890-@.$!"),
			},
		},
		TargetAccuracy: 85,
		TargetWPM:      30,
	},
	{
		ID:          5,
		Title:       "Common Word Patterns",
		Description: "Practice typing common English word patterns and combinations",
		Difficulty:  Intermediate,
		Duration:    "30 min",
		Exercises: []Exercise{
			{
				Instruction: "Practice common letter combinations and patterns found in English.",
				Text:        "the and that with have this will you from they know want been good much some time",
			},
			{
				Instruction: "Type common prefixes and suffixes to build speed.",
				Text:        "pre- pro- re- un- -ing -ed -er -est -ly -tion -ness -ment -ful -less",
				FocusKeys:   []rune("-"),
			},
			{
				Instruction: "Practice full sentences with common word patterns.",
				Text:        "The quick brown fox jumps over the lazy dog. She sells seashells by the seashore.",
				FocusKeys:   []rune("."),
			},
		},
		TargetAccuracy: 85,
		TargetWPM:      35,
	},
	{
		ID:          6,
		Title:       "Advanced Punctuation",
		Description: "Master complex punctuation and symbol combinations",
		Difficulty:  Advanced,
		Duration:    "35 min",
		Exercises: []Exercise{
			{
				Instruction: "Practice complex punctuation in context.",
				Text:        `"Hello," she said. (This is important!) What's your name? I can't believe it's true!`,
				FocusKeys:   []rune(`"'()!?,.`),
			},
			{
				Instruction: "Master technical symbols and mathematical expressions.",
				Text:        "f(x) = 2x + 1; if (x > 5) { return x * 2; } else { return x / 2; }",
				FocusKeys:   []rune("+=(){}*/<>;"),
			},
			{
				Instruction: "Type complex sentences with mixed punctuation.",
				Text:        `The CEO said, "Our Q3 results (up 15.7%) exceeded expectations!" What's next?`,
				FocusKeys:   []rune(`"'()!?,.%`),
			},
		},
		TargetAccuracy: 82,
		TargetWPM:      40,
	},
	{
		ID:          7,
		Title:       "Speed Building Drills",
		Description: "Intensive drills to increase your typing speed significantly",
		Difficulty:  Advanced,
		Duration:    "40 min",
		Exercises: []Exercise{
			{
				Instruction: "Focus on typing quickly while maintaining accuracy. Don't slow down for errors.",
				Text:        "Pack my box with five dozen liquor jugs. How quickly daft jumping zebras vex.",
			},
			{
				Instruction: "Practice rapid-fire common words to build muscle memory.",
				Text:        "the be to of and a in that have for it with as his on but at by this she from they",
			},
			{
				Instruction: "Type longer paragraphs focusing on sustained speed.",
				Text:        "Touch typing is a skill that improves with practice. The more you practice proper finger placement and rhythm, the faster and more accurate you will become. Remember to keep your wrists floating and maintain good posture throughout your practice sessions.",
			},
		},
		TargetAccuracy: 80,
		TargetWPM:      50,
	},
	{
		ID:          8,
		Title:       "Programming Syntax",
		Description: "Practice typing code syntax and programming-specific characters",
		Difficulty:  Advanced,
		Duration:    "45 min",
		Exercises: []Exercise{
			{
				Instruction: "Practice common programming symbols and brackets.",
				Text:        "{ } [ ] ( ) < > && || != == <= >= ++ -- += -= *= /= %= -> => :: ??",
				FocusKeys:   []rune("{}[]()<>&|!=+-*/%:?"),
			},
			{
				Instruction: "Type function definitions and variable declarations. Focus on parentheses, braces, and semicolons.",
				Text:        "function calculateSum(a, b) { return a + b; } const result = calculateSum(10, 20);",
				FocusKeys:   []rune("(){},;=+"),
			},
			{
				Instruction: "Practice complete code blocks with proper syntax. Pay attention to quotes, dots, and slashes.",
				Text:        "if (user.isAuthenticated()) { console.log('Welcome back!'); } else { window.location.href = '/login'; }",
				FocusKeys:   []rune(`(){}.'"!;/=`),
			},
		},
		TargetAccuracy: 78,
		TargetWPM:      45,
	},
}
