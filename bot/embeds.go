package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"vicebot/models"
)

// Discord color constants
const (
	ColorInfo    = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorWarn    = 0xFEE75C // Yellow
	ColorError   = 0xED4245 // Red
	ColorEcon    = 0xFAA81A // Gold
	ColorGame    = 0x9B59B6 // Purple
	ColorPatrol  = 0xFB3E83 // Vice Valley pink
)

// buildEmbed creates a titled, timestamped embed. Most command replies go
// through here.
func buildEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func buildFieldsEmbed(title string, color int, fields ...*discordgo.MessageEmbedField) *discordgo.MessageEmbed {
	embed := buildEmbed(title, "", color)
	embed.Fields = fields
	return embed
}

func field(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value}
}

func inlineField(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
}

// buildClaimEmbed renders a successful daily or weekly claim.
func buildClaimEmbed(title string, result *models.ClaimResult) *discordgo.MessageEmbed {
	return buildFieldsEmbed(title, ColorEcon,
		inlineField("Reward", fmt.Sprintf("+**%s**", FormatBalance(result.Reward))),
		inlineField("New Balance", fmt.Sprintf("**%s**", FormatBalance(result.NewBalance))),
	)
}

// buildWorkEmbed renders a completed work shift.
func buildWorkEmbed(result *models.WorkResult) *discordgo.MessageEmbed {
	embed := buildFieldsEmbed("Work Complete", ColorEcon,
		inlineField("Job", result.JobName),
		inlineField("Earned", fmt.Sprintf("**%s**", FormatBalance(result.Earned))),
		inlineField("Balance", fmt.Sprintf("**%s**", FormatBalance(result.NewBalance))),
	)
	if result.Blurb != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: result.Blurb}
	}
	return embed
}

// buildJobEmbed renders one job's terms, used by /setjob and /job.
func buildJobEmbed(title string, job models.Job) *discordgo.MessageEmbed {
	embed := buildFieldsEmbed(title, ColorEcon,
		inlineField("Job", fmt.Sprintf("**%s**", job.Name)),
		inlineField("Pay", fmt.Sprintf("**%d-%d**", job.Min, job.Max)),
		inlineField("Cooldown", fmt.Sprintf("**%dm**", job.CooldownMin)),
	)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: job.Blurb}
	return embed
}

// buildSlotsEmbed renders one slot machine spin.
func buildSlotsEmbed(result *models.SlotsResult) *discordgo.MessageEmbed {
	sign := "+"
	net := result.Net
	if net < 0 {
		sign = "−"
		net = -net
	}
	return buildFieldsEmbed("🎰 Slots", ColorGame,
		field("Spin", fmt.Sprintf("`%s │ %s │ %s`", result.Reels[0], result.Reels[1], result.Reels[2])),
		field("Result", result.Label),
		inlineField("Bet", fmt.Sprintf("**%s**", FormatBalance(result.Bet))),
		inlineField("Net", fmt.Sprintf("**%s%s**", sign, FormatBalance(net))),
		inlineField("Balance", fmt.Sprintf("**%s**", FormatBalance(result.NewBalance))),
	)
}

// buildDuelChallengeEmbed renders an open challenge with its 60s window.
func buildDuelChallengeEmbed(challengerID, opponentID string, bet int64) *discordgo.MessageEmbed {
	return buildFieldsEmbed("⚔️ Duel Challenge", ColorGame,
		inlineField("Challenger", fmt.Sprintf("<@%s>", challengerID)),
		inlineField("Opponent", fmt.Sprintf("<@%s>", opponentID)),
		inlineField("Bet", fmt.Sprintf("**%s**", FormatBalance(bet))),
		field("Timer", "You have **60s** to accept."),
	)
}

// buildDuelResultEmbed renders a settled duel.
func buildDuelResultEmbed(resolution *models.DuelResolution) *discordgo.MessageEmbed {
	duel := resolution.Duel
	return buildFieldsEmbed("⚔️ Duel Result", ColorGame,
		field("Winner", fmt.Sprintf("<@%s> 🎉 (+%d)", resolution.WinnerID, resolution.Pot)),
		field("Loser", fmt.Sprintf("<@%s> 💸", resolution.LoserID)),
		field("Balances", fmt.Sprintf("<@%s>: **%s**\n<@%s>: **%s**",
			duel.ChallengerID, FormatBalance(resolution.ChallengerBalance),
			duel.OpponentID, FormatBalance(resolution.OpponentBalance))),
	)
}
