package bot

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"

	"vicebot/models"
	"vicebot/service"
)

func (b *Bot) handleDuelCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	args := parseDuelArgs(s, i)
	if args.Opponent == nil || args.Opponent.Bot {
		b.respondWithError(s, i, "Duel", "❌ Pick a real user (not a bot).")
		return
	}
	opponent, bet := args.Opponent, args.Bet

	challengerID := i.Member.User.ID
	if err := b.duelService.Propose(ctx, i.GuildID, challengerID, opponent.ID, bet); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTarget):
			b.respondWithError(s, i, "Duel", "❌ You can't duel yourself.")
		case errors.Is(err, service.ErrInvalidAmount):
			b.respondWithError(s, i, "Duel", "❌ Bet must be greater than 0.")
		case errors.Is(err, service.ErrInsufficientFunds):
			balance := b.economyService.Balance(ctx, i.GuildID, challengerID)
			if balance < bet {
				b.respondWithError(s, i, "Duel", fmt.Sprintf("❌ You don't have **%s** coins. Balance: **%s**.", FormatBalance(bet), FormatBalance(balance)))
			} else {
				b.respondWithError(s, i, "Duel", fmt.Sprintf("❌ %s doesn't have enough coins to accept this duel.", opponent.Username))
			}
		default:
			log.Errorf("Error proposing duel from %s to %s: %v", challengerID, opponent.ID, err)
			b.respondWithError(s, i, "Duel", "❌ Unable to process request. Please try again.")
		}
		return
	}

	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: "duel_accept", Label: "Accept", Style: discordgo.SuccessButton},
			discordgo.Button{CustomID: "duel_decline", Label: "Decline", Style: discordgo.DangerButton},
		},
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{buildDuelChallengeEmbed(challengerID, opponent.ID, bet)},
			Components: []discordgo.MessageComponent{row},
		},
	})
	if err != nil {
		log.Errorf("Error responding to duel command: %v", err)
		return
	}

	// The challenge is keyed by the message carrying the buttons.
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.Errorf("Error fetching duel challenge message: %v", err)
		return
	}

	b.duelService.Open(i.GuildID, msg.ID, challengerID, opponent.ID, bet, func(duel models.PendingDuel) {
		b.editDuelMessage(msg.ChannelID, duel.MessageID, buildEmbed("Duel", "⌛ Duel expired.", ColorWarn))
	})
}

func (b *Bot) handleDuelButton(s *discordgo.Session, i *discordgo.InteractionCreate, action string) {
	ctx := context.Background()
	accept := action == "accept"

	resolution, err := b.duelService.Respond(ctx, i.GuildID, i.Message.ID, i.Member.User.ID, accept)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuelNotFound):
			b.respondEphemeral(s, i, buildEmbed("Duel", "This duel is no longer active.", ColorWarn))
		case errors.Is(err, service.ErrNotOpponent):
			b.respondEphemeral(s, i, buildEmbed("Duel", "You're not the challenged player.", ColorError))
		case errors.Is(err, service.ErrDuelExpired):
			b.updateMessage(s, i, buildEmbed("Duel", "⌛ Duel expired.", ColorWarn))
		default:
			log.Errorf("Error responding to duel on message %s: %v", i.Message.ID, err)
			b.respondEphemeral(s, i, buildEmbed("Duel", "❌ Unable to process request. Please try again.", ColorError))
		}
		return
	}

	switch resolution.State {
	case models.DuelStateDeclined:
		message := fmt.Sprintf("❎ <@%s> declined the duel against <@%s>.", resolution.Duel.OpponentID, resolution.Duel.ChallengerID)
		b.updateMessage(s, i, buildEmbed("Duel", message, ColorWarn))
	case models.DuelStateCancelled:
		b.updateMessage(s, i, buildEmbed("Duel", "❌ One player no longer has enough coins. Duel cancelled.", ColorError))
	case models.DuelStateSettled:
		b.updateMessage(s, i, buildDuelResultEmbed(resolution))
	}
}

// updateMessage replaces the challenge message in place and strips the
// buttons.
func (b *Bot) updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Error updating duel message: %v", err)
	}
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending ephemeral response: %v", err)
	}
}

// editDuelMessage is the expiry path: the interaction is long gone, so the
// message is edited directly.
func (b *Bot) editDuelMessage(channelID, messageID string, embed *discordgo.MessageEmbed) {
	_, err := b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &[]discordgo.MessageComponent{},
	})
	if err != nil {
		log.Errorf("Error editing expired duel message %s: %v", messageID, err)
	}
}
