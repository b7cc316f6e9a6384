package games

import "math/rand"

// FlipWinner picks one of the two duelists by an unbiased coin flip.
func FlipWinner(rng *rand.Rand, challengerID, opponentID string) string {
	if rng.Float64() < 0.5 {
		return challengerID
	}
	return opponentID
}
