package service

import (
	"github.com/stretchr/testify/mock"

	"vicebot/models"
)

// MockLedgerStore is a mock implementation of LedgerStore
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) SaveLedger(ledger models.Ledger) error {
	args := m.Called(ledger)
	return args.Error(0)
}

// MockScoreStore is a mock implementation of ScoreStore
type MockScoreStore struct {
	mock.Mock
}

func (m *MockScoreStore) SaveScores(scores models.Scores) error {
	args := m.Called(scores)
	return args.Error(0)
}
