package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"vicebot/models"
	"vicebot/service"
)

// requireAdmin gates the eco commands. Both Administrator and Manage Server
// qualify; anyone else is rejected before the ledger is touched.
func requireAdmin(i *discordgo.InteractionCreate) error {
	if i.Member == nil {
		return service.ErrNotAuthorized
	}
	perms := i.Member.Permissions
	if perms&discordgo.PermissionAdministrator == 0 && perms&discordgo.PermissionManageGuild == 0 {
		return service.ErrNotAuthorized
	}
	return nil
}

func (b *Bot) handleEcoAdd(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := requireAdmin(i); err != nil {
		b.respondWithError(s, i, "Admin", "❌ Admins only.")
		return
	}

	ctx := context.Background()

	args := parseEcoAmountArgs(s, i)
	if args.Target == nil {
		b.respondWithError(s, i, "Admin", "❌ Invalid target user.")
		return
	}

	newBalance := b.economyService.AddBalance(ctx, i.GuildID, args.Target.ID, args.Amount, models.TransactionTypeAdminAdd)
	embed := buildFieldsEmbed("Admin • ecoadd", ColorEcon,
		inlineField("User", fmt.Sprintf("<@%s>", args.Target.ID)),
		inlineField("Added", fmt.Sprintf("**%s**", FormatBalance(args.Amount))),
		inlineField("New Balance", fmt.Sprintf("**%s**", FormatBalance(newBalance))),
	)
	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) handleEcoSet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := requireAdmin(i); err != nil {
		b.respondWithError(s, i, "Admin", "❌ Admins only.")
		return
	}

	ctx := context.Background()

	args := parseEcoAmountArgs(s, i)
	if args.Target == nil {
		b.respondWithError(s, i, "Admin", "❌ Invalid target user.")
		return
	}

	newBalance := b.economyService.SetBalance(ctx, i.GuildID, args.Target.ID, args.Amount)
	embed := buildFieldsEmbed("Admin • ecoset", ColorEcon,
		inlineField("User", fmt.Sprintf("<@%s>", args.Target.ID)),
		inlineField("Set To", fmt.Sprintf("**%s**", FormatBalance(newBalance))),
	)
	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) handleEcoReset(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := requireAdmin(i); err != nil {
		b.respondWithError(s, i, "Admin", "❌ Admins only.")
		return
	}

	ctx := context.Background()

	args := parseEcoResetArgs(s, i)
	switch {
	case args.Scope == "server":
		b.economyService.ResetGuild(ctx, i.GuildID)
		b.respondWithEmbed(s, i, buildEmbed("Admin • ecoreset", "♻️ Server economy reset.", ColorWarn))
	case args.Scope == "user" && args.Target != nil:
		b.economyService.ResetAccount(ctx, i.GuildID, args.Target.ID)
		b.respondWithEmbed(s, i, buildEmbed("Admin • ecoreset", fmt.Sprintf("♻️ Reset <@%s>'s account.", args.Target.ID), ColorWarn))
	default:
		b.respondWithError(s, i, "Admin • ecoreset", "❌ For `scope=user`, you must select a user.")
	}
}
