package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"vicebot/bot"
	"vicebot/config"
	"vicebot/events"
	"vicebot/scheduler"
	"vicebot/service"
	"vicebot/storage"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting vicebot...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize flat-file storage
	log.Infof("Opening data directory %s...", cfg.DataDir)
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	// Initialize event bus with the balance audit subscriber
	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		change, ok := event.(events.BalanceChangeEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"guild":  change.GuildID,
			"user":   change.UserID,
			"old":    change.OldBalance,
			"new":    change.NewBalance,
			"change": change.ChangeAmount,
			"reason": change.TransactionType,
		}).Info("Balance change")
	})

	// Initialize the scheduler and clock
	sched := scheduler.New()
	clock := scheduler.System()

	// Initialize services
	log.Info("Initializing services...")
	economyService := service.NewEconomyService(store.LoadLedger(), store, clock, newRand(), eventBus)
	rpsService := service.NewRPSService(store.LoadScores(), store, newRand())
	gamblingService := service.NewGamblingService(economyService, newRand())
	duelService := service.NewDuelService(economyService, sched, clock, newRand(), eventBus)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:          cfg.DiscordToken,
		GuildID:        cfg.GuildID,
		ChannelID:      cfg.ChannelID,
		RoleID:         cfg.RoleID,
		PatrolHour:     cfg.PatrolHour,
		PatrolTimezone: cfg.PatrolTimezone,
	}
	discordBot, err := bot.New(botConfig, economyService, rpsService, gamblingService, duelService, sched, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	// Start the daily patrol notification worker
	stopPatrol, err := discordBot.StartPatrolWorker(ctx)
	if err != nil {
		discordBot.Close()
		return err
	}

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")
	stopPatrol()
	sched.Stop()

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	log.Info("Shutdown completed")
	return nil
}

// newRand builds an independent PRNG per service; *rand.Rand is not safe
// for shared use.
func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
