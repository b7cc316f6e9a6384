package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"

	"vicebot/models"
	"vicebot/service"
)

func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	target := i.Member.User
	if args := parseBalanceArgs(s, i); args.Target != nil {
		target = args.Target
	}

	balance := b.economyService.Balance(ctx, i.GuildID, target.ID)
	embed := buildFieldsEmbed("💰 Balance", ColorEcon,
		field(target.Username, fmt.Sprintf("**%s** coins", FormatBalance(balance))),
	)
	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	result, err := b.economyService.ClaimDaily(ctx, i.GuildID, i.Member.User.ID)
	if err != nil {
		var cooldown *service.CooldownError
		if errors.As(err, &cooldown) {
			message := fmt.Sprintf("⏳ Already claimed. Try again in **%s**.", FormatHoursMinutes(cooldown.Remaining))
			b.respondWithEmbed(s, i, buildEmbed("Daily", message, ColorWarn))
			return
		}
		log.Errorf("Error claiming daily for user %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Daily", "❌ Unable to process request. Please try again.")
		return
	}

	b.respondWithEmbed(s, i, buildClaimEmbed("Daily Reward", result))
}

func (b *Bot) handleWeekly(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	result, err := b.economyService.ClaimWeekly(ctx, i.GuildID, i.Member.User.ID)
	if err != nil {
		var cooldown *service.CooldownError
		if errors.As(err, &cooldown) {
			message := fmt.Sprintf("⏳ Already claimed. Try again in **%s**.", FormatDaysHours(cooldown.Remaining))
			b.respondWithEmbed(s, i, buildEmbed("Weekly", message, ColorWarn))
			return
		}
		log.Errorf("Error claiming weekly for user %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Weekly", "❌ Unable to process request. Please try again.")
		return
	}

	b.respondWithEmbed(s, i, buildClaimEmbed("Weekly Reward", result))
}

func (b *Bot) handleWork(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	result, err := b.economyService.Work(ctx, i.GuildID, i.Member.User.ID)
	if err != nil {
		var cooldown *service.CooldownError
		if errors.As(err, &cooldown) {
			message := fmt.Sprintf("🕐 You're tired. Try again in **%s**.", FormatMinutesCeil(cooldown.Remaining))
			b.respondWithEmbed(s, i, buildEmbed("Work", message, ColorWarn))
			return
		}
		log.Errorf("Error working for user %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Work", "❌ Unable to process request. Please try again.")
		return
	}

	b.respondWithEmbed(s, i, buildWorkEmbed(result))
}

func (b *Bot) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	args := parseGiveArgs(s, i)
	if args.Target == nil || args.Target.Bot {
		b.respondWithError(s, i, "Give", "❌ Pick a real user (not a bot).")
		return
	}

	result, err := b.economyService.Transfer(ctx, i.GuildID, i.Member.User.ID, args.Target.ID, args.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTarget):
			b.respondWithError(s, i, "Give", "❌ You can't give coins to yourself.")
		case errors.Is(err, service.ErrInvalidAmount):
			b.respondWithError(s, i, "Give", "❌ Amount must be greater than 0.")
		case errors.Is(err, service.ErrInsufficientFunds):
			balance := b.economyService.Balance(ctx, i.GuildID, i.Member.User.ID)
			b.respondWithError(s, i, "Give", fmt.Sprintf("❌ Not enough funds. Your balance is **%s**.", FormatBalance(balance)))
		default:
			log.Errorf("Error transferring %d coins from %s to %s: %v", args.Amount, i.Member.User.ID, args.Target.ID, err)
			b.respondWithError(s, i, "Give", "❌ Unable to process transfer. Please try again.")
		}
		return
	}

	embed := buildFieldsEmbed("Transfer Complete", ColorEcon,
		inlineField("From", fmt.Sprintf("<@%s>", i.Member.User.ID)),
		inlineField("To", fmt.Sprintf("<@%s>", args.Target.ID)),
		inlineField("Amount", fmt.Sprintf("**%s**", FormatBalance(result.Amount))),
		inlineField("Your Balance", fmt.Sprintf("**%s**", FormatBalance(result.FromBalance))),
		inlineField(fmt.Sprintf("%s's Balance", args.Target.Username), fmt.Sprintf("**%s**", FormatBalance(result.ToBalance))),
	)
	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) handleRichest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	top := b.economyService.TopBalances(ctx, i.GuildID, 10)
	if len(top) == 0 {
		b.respondWithEmbed(s, i, buildEmbed("Rich List", "🏦 No accounts yet. Use `/work` or `/daily` to get started!", ColorEcon))
		return
	}

	var lines []string
	for rank, entry := range top {
		lines = append(lines, fmt.Sprintf("**%d.** <@%s> — **%s**", rank+1, entry.UserID, FormatBalance(entry.Balance)))
	}
	b.respondWithEmbed(s, i, buildEmbed("🏦 Server Rich List", strings.Join(lines, "\n"), ColorEcon))
}

func (b *Bot) handleSetJob(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	args := parseSetJobArgs(i)
	job, err := b.economyService.SetJob(ctx, i.GuildID, i.Member.User.ID, args.Key)
	if err != nil {
		b.respondWithError(s, i, "Jobs", "❌ Invalid job.")
		return
	}

	b.respondWithEmbed(s, i, buildJobEmbed("Job Updated", job))
}

func (b *Bot) handleJob(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	job, ok := b.economyService.Job(ctx, i.GuildID, i.Member.User.ID)
	if !ok {
		b.respondWithEmbed(s, i, buildEmbed("Your Job", "🧰 You don't have a job yet. Use **/setjob** to pick one.", ColorInfo))
		return
	}

	b.respondWithEmbed(s, i, buildJobEmbed("Your Job", job))
}

func (b *Bot) handleJobsList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	fields := make([]*discordgo.MessageEmbedField, 0, len(models.Jobs))
	for _, job := range models.Jobs {
		value := fmt.Sprintf("Pay: **%d-%d** • Cooldown: **%dm**\n_%s_", job.Min, job.Max, job.CooldownMin, job.Blurb)
		fields = append(fields, field(job.Name, value))
	}
	b.respondWithEmbed(s, i, buildFieldsEmbed("📋 Available Jobs", ColorEcon, fields...))
}

// jobChoices builds the /setjob choice list from the job catalog.
func jobChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.Jobs))
	for _, job := range models.Jobs {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: job.Name, Value: job.Key})
	}
	return choices
}
