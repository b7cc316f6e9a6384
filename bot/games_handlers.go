package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"

	"vicebot/service"
)

func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.respondWithEmbed(s, i, buildEmbed("Ping", "🏓 Pong!", ColorInfo))
}

func (b *Bot) handleAbout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	about := "I run patrol notifications, mini-games, a server economy (with jobs & admin tools), and more."
	b.respondWithEmbed(s, i, buildEmbed("About This Bot", about, ColorInfo))
}

func (b *Bot) handleRPS(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	args := parseRPSArgs(i)
	result, err := b.rpsService.Play(ctx, i.GuildID, i.Member.User.ID, args.Move)
	if err != nil {
		log.Errorf("Error playing RPS for user %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Rock • Paper • Scissors", "❌ Unable to process request. Please try again.")
		return
	}

	var verdict string
	switch result.Outcome {
	case "win":
		verdict = "✅ You **win**! +1 leaderboard win."
	case "lose":
		verdict = "❌ You **lose**!"
	default:
		verdict = "➖ It's a **tie**!"
	}

	embed := buildFieldsEmbed("🎮 Rock • Paper • Scissors", ColorGame,
		inlineField("You", fmt.Sprintf("**%s**", titleCase(result.PlayerMove))),
		inlineField("Bot", fmt.Sprintf("**%s**", titleCase(result.BotMove))),
		field("Result", verdict),
	)
	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) handleRPSLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	top := b.rpsService.Leaderboard(ctx, i.GuildID, 10)
	if len(top) == 0 {
		b.respondWithEmbed(s, i, buildEmbed("RPS Leaderboard", "📊 No wins yet. Play `/rps` to get on the board!", ColorGame))
		return
	}

	var lines []string
	for rank, entry := range top {
		plural := "s"
		if entry.Wins == 1 {
			plural = ""
		}
		lines = append(lines, fmt.Sprintf("**%d.** <@%s> — **%d** win%s", rank+1, entry.UserID, entry.Wins, plural))
	}
	b.respondWithEmbed(s, i, buildEmbed("📊 RPS Leaderboard", strings.Join(lines, "\n"), ColorGame))
}

func (b *Bot) handleSlots(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	args := parseSlotsArgs(i)
	result, err := b.gamblingService.PlaySlots(ctx, i.GuildID, i.Member.User.ID, args.Bet)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientFunds):
			balance := b.economyService.Balance(ctx, i.GuildID, i.Member.User.ID)
			b.respondWithError(s, i, "Slots", fmt.Sprintf("❌ You don't have enough coins. Balance: **%s**.", FormatBalance(balance)))
		case errors.Is(err, service.ErrInvalidAmount):
			b.respondWithError(s, i, "Slots", "❌ Bet must be greater than 0.")
		default:
			log.Errorf("Error spinning slots for user %s: %v", i.Member.User.ID, err)
			b.respondWithError(s, i, "Slots", "❌ Unable to process request. Please try again.")
		}
		return
	}

	b.respondWithEmbed(s, i, buildSlotsEmbed(result))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
