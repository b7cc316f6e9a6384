package games

import "math/rand"

// Symbols is the slot machine alphabet. The last two entries carry the
// boosted triple payouts.
var Symbols = []string{"🍒", "🍋", "🍇", "🔔", "⭐", "7️⃣", "💎"}

const (
	symbolJackpot = "💎"
	symbolSevens  = "7️⃣"
)

// SpinResult is the raw outcome of one spin, before any money moves.
type SpinResult struct {
	Reels      [3]string
	Multiplier int64
	Label      string
}

// Spin draws three independent symbols and scores them: 15x for a diamond
// triple, 10x for triple sevens, 5x for any other triple, 2x for exactly two
// matching symbols, 0x otherwise.
func Spin(rng *rand.Rand) SpinResult {
	var reels [3]string
	for i := range reels {
		reels[i] = Symbols[rng.Intn(len(Symbols))]
	}
	return Score(reels)
}

// Score computes the multiplier and label for a fixed set of reels.
func Score(reels [3]string) SpinResult {
	result := SpinResult{Reels: reels, Label: "No match — better luck next time."}
	a, b, c := reels[0], reels[1], reels[2]

	switch {
	case a == b && b == c:
		switch a {
		case symbolJackpot:
			result.Multiplier = 15
			result.Label = "💎💎💎 **JACKPOT! x15**"
		case symbolSevens:
			result.Multiplier = 10
			result.Label = "7️⃣7️⃣7️⃣ **Lucky sevens! x10**"
		default:
			result.Multiplier = 5
			result.Label = "**Triple match! x5**"
		}
	case a == b || a == c || b == c:
		result.Multiplier = 2
		result.Label = "**Two of a kind! x2**"
	}
	return result
}
