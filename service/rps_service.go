package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"vicebot/games"
	"vicebot/models"
)

type rpsService struct {
	mu     sync.Mutex
	scores models.Scores
	store  ScoreStore
	rng    *rand.Rand
	pick   func(*rand.Rand) games.Move
}

// NewRPSService creates the rock-paper-scissors service over previously
// loaded scores. The service takes ownership of the map.
func NewRPSService(scores models.Scores, store ScoreStore, rng *rand.Rand) RPSService {
	return &rpsService{
		scores: scores,
		store:  store,
		rng:    rng,
		pick:   games.RandomMove,
	}
}

func (s *rpsService) Play(ctx context.Context, guildID, userID, move string) (*models.RPSResult, error) {
	if !games.ValidMove(move) {
		return nil, fmt.Errorf("invalid move: %q", move)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	playerMove := games.Move(move)
	botMove := s.pick(s.rng)
	outcome := games.Resolve(playerMove, botMove)

	wins := s.scores.Wins(guildID, userID)
	if outcome == games.OutcomeWin {
		wins = s.scores.AddWin(guildID, userID)
		if err := s.store.SaveScores(s.scores); err != nil {
			log.Errorf("Failed to save RPS scores: %v", err)
		}
	}

	return &models.RPSResult{
		PlayerMove: string(playerMove),
		BotMove:    string(botMove),
		Outcome:    string(outcome),
		Wins:       wins,
	}, nil
}

func (s *rpsService) Leaderboard(ctx context.Context, guildID string, limit int) []models.WinEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild := s.scores[guildID]
	entries := make([]models.WinEntry, 0, len(guild))
	for userID, wins := range guild {
		entries = append(entries, models.WinEntry{UserID: userID, Wins: wins})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins == entries[j].Wins {
			return entries[i].UserID < entries[j].UserID
		}
		return entries[i].Wins > entries[j].Wins
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
