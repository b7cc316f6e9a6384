package games

import "math/rand"

// Move is a rock-paper-scissors move.
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

// Moves lists the valid moves.
var Moves = []Move{MoveRock, MovePaper, MoveScissors}

// Outcome is the result of a round from the player's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeTie  Outcome = "tie"
)

// beats maps each move to the move it defeats.
var beats = map[Move]Move{
	MoveRock:     MoveScissors,
	MovePaper:    MoveRock,
	MoveScissors: MovePaper,
}

// ValidMove reports whether s is a recognized move.
func ValidMove(s string) bool {
	switch Move(s) {
	case MoveRock, MovePaper, MoveScissors:
		return true
	}
	return false
}

// Resolve returns the outcome of player vs bot.
func Resolve(player, bot Move) Outcome {
	if player == bot {
		return OutcomeTie
	}
	if beats[player] == bot {
		return OutcomeWin
	}
	return OutcomeLose
}

// RandomMove draws a uniformly random move.
func RandomMove(rng *rand.Rand) Move {
	return Moves[rng.Intn(len(Moves))]
}
