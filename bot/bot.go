package bot

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"

	"vicebot/events"
	"vicebot/scheduler"
	"vicebot/service"
)

// Config holds bot configuration
type Config struct {
	Token          string
	GuildID        string
	ChannelID      string
	RoleID         string
	PatrolHour     int
	PatrolTimezone string
}

type Bot struct {
	config          Config
	session         *discordgo.Session
	economyService  service.EconomyService
	rpsService      service.RPSService
	gamblingService service.GamblingService
	duelService     service.DuelService
	scheduler       scheduler.Scheduler
	eventBus        *events.Bus
}

func New(config Config, economyService service.EconomyService, rpsService service.RPSService, gamblingService service.GamblingService, duelService service.DuelService, sched scheduler.Scheduler, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	bot := &Bot{
		config:          config,
		session:         dg,
		economyService:  economyService,
		rpsService:      rpsService,
		gamblingService: gamblingService,
		duelService:     duelService,
		scheduler:       sched,
		eventBus:        eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleDuelInteraction)

	// Manual patrol trigger
	dg.AddHandler(bot.handleMessageCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) registerCommands() error {
	minBet := float64(1)
	minZero := float64(0)

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Replies with Pong!",
		},
		{
			Name:        "about",
			Description: "About this bot",
		},
		{
			Name:        "rps",
			Description: "Rock • Paper • Scissors",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "move",
					Description: "Your move",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Rock", Value: "rock"},
						{Name: "Paper", Value: "paper"},
						{Name: "Scissors", Value: "scissors"},
					},
				},
			},
		},
		{
			Name:        "rpsleaderboard",
			Description: "Top RPS winners in this server",
		},
		{
			Name:        "balance",
			Description: "Check a balance",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "daily",
			Description: "Claim your daily 250 coins (24h cooldown)",
		},
		{
			Name:        "weekly",
			Description: "Claim your weekly 1200 coins (7d cooldown)",
		},
		{
			Name:        "work",
			Description: "Work a shift to earn coins (cooldown varies by job)",
		},
		{
			Name:        "give",
			Description: "Give coins to another user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Recipient",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount",
					Required:    true,
					MinValue:    &minBet,
				},
			},
		},
		{
			Name:        "richest",
			Description: "Show the top 10 richest users",
		},
		{
			Name:        "setjob",
			Description: "Choose your job for /work payouts",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "job",
					Description: "Pick a job",
					Required:    true,
					Choices:     jobChoices(),
				},
			},
		},
		{
			Name:        "job",
			Description: "Show your current job",
		},
		{
			Name:        "jobslist",
			Description: "See all available jobs & payouts",
		},
		{
			Name:        "slots",
			Description: "Spin the slots and try your luck",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "bet",
					Description: "Coins to bet",
					Required:    true,
					MinValue:    &minBet,
				},
			},
		},
		{
			Name:        "duel",
			Description: "Challenge another player to a coin-flip duel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "opponent",
					Description: "Who to duel",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "bet",
					Description: "Bet amount (both pay)",
					Required:    true,
					MinValue:    &minBet,
				},
			},
		},
		{
			Name:        "ecoadd",
			Description: "[Admin] Add coins to a user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Target user",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to add",
					Required:    true,
					MinValue:    &minBet,
				},
			},
		},
		{
			Name:        "ecoset",
			Description: "[Admin] Set a user's balance",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Target user",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "New balance",
					Required:    true,
					MinValue:    &minZero,
				},
			},
		},
		{
			Name:        "ecoreset",
			Description: "[Admin] Reset a user or the server economy",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "scope",
					Description: "What to reset",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "user", Value: "user"},
						{Name: "server", Value: "server"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to reset (if scope=user)",
					Required:    false,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}
	log.Infof("Registered %d slash commands", len(commands))

	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "ping":
		b.handlePing(s, i)
	case "about":
		b.handleAbout(s, i)
	case "rps":
		b.handleRPS(s, i)
	case "rpsleaderboard":
		b.handleRPSLeaderboard(s, i)
	case "balance":
		b.handleBalance(s, i)
	case "daily":
		b.handleDaily(s, i)
	case "weekly":
		b.handleWeekly(s, i)
	case "work":
		b.handleWork(s, i)
	case "give":
		b.handleGive(s, i)
	case "richest":
		b.handleRichest(s, i)
	case "setjob":
		b.handleSetJob(s, i)
	case "job":
		b.handleJob(s, i)
	case "jobslist":
		b.handleJobsList(s, i)
	case "slots":
		b.handleSlots(s, i)
	case "duel":
		b.handleDuelCommand(s, i)
	case "ecoadd":
		b.handleEcoAdd(s, i)
	case "ecoset":
		b.handleEcoSet(s, i)
	case "ecoreset":
		b.handleEcoReset(s, i)
	}
}

// handleDuelInteraction routes duel accept/decline button presses.
func (b *Bot) handleDuelInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	customID := i.MessageComponentData().CustomID
	if strings.HasPrefix(customID, "duel_") {
		b.handleDuelButton(s, i, strings.TrimPrefix(customID, "duel_"))
	}
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.Content == "!patroltest" {
		b.sendPatrolEmbed(m.ChannelID)
	}
}

// respondWithEmbed is the common reply path; every command answers with an
// embed.
func (b *Bot) respondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Errorf("Error responding to %s command: %v", i.ApplicationCommandData().Name, err)
	}
}

func (b *Bot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, title, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildEmbed(title, message, ColorError)},
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}
