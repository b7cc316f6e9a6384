package bot

import (
	"github.com/bwmarrin/discordgo"
)

// optionMap indexes an interaction's options by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// Typed argument structs, one per command with options. Handlers parse the
// interaction once and work off these.

type balanceArgs struct {
	Target *discordgo.User // nil means the invoking user
}

func parseBalanceArgs(s *discordgo.Session, i *discordgo.InteractionCreate) balanceArgs {
	var args balanceArgs
	if opt, ok := optionMap(i)["user"]; ok {
		args.Target = opt.UserValue(s)
	}
	return args
}

type rpsArgs struct {
	Move string
}

func parseRPSArgs(i *discordgo.InteractionCreate) rpsArgs {
	var args rpsArgs
	if opt, ok := optionMap(i)["move"]; ok {
		args.Move = opt.StringValue()
	}
	return args
}

type giveArgs struct {
	Target *discordgo.User
	Amount int64
}

func parseGiveArgs(s *discordgo.Session, i *discordgo.InteractionCreate) giveArgs {
	opts := optionMap(i)
	var args giveArgs
	if opt, ok := opts["user"]; ok {
		args.Target = opt.UserValue(s)
	}
	if opt, ok := opts["amount"]; ok {
		args.Amount = opt.IntValue()
	}
	return args
}

type setJobArgs struct {
	Key string
}

func parseSetJobArgs(i *discordgo.InteractionCreate) setJobArgs {
	var args setJobArgs
	if opt, ok := optionMap(i)["job"]; ok {
		args.Key = opt.StringValue()
	}
	return args
}

type slotsArgs struct {
	Bet int64
}

func parseSlotsArgs(i *discordgo.InteractionCreate) slotsArgs {
	var args slotsArgs
	if opt, ok := optionMap(i)["bet"]; ok {
		args.Bet = opt.IntValue()
	}
	return args
}

type duelArgs struct {
	Opponent *discordgo.User
	Bet      int64
}

func parseDuelArgs(s *discordgo.Session, i *discordgo.InteractionCreate) duelArgs {
	opts := optionMap(i)
	var args duelArgs
	if opt, ok := opts["opponent"]; ok {
		args.Opponent = opt.UserValue(s)
	}
	if opt, ok := opts["bet"]; ok {
		args.Bet = opt.IntValue()
	}
	return args
}

type ecoAmountArgs struct {
	Target *discordgo.User
	Amount int64
}

func parseEcoAmountArgs(s *discordgo.Session, i *discordgo.InteractionCreate) ecoAmountArgs {
	opts := optionMap(i)
	var args ecoAmountArgs
	if opt, ok := opts["user"]; ok {
		args.Target = opt.UserValue(s)
	}
	if opt, ok := opts["amount"]; ok {
		args.Amount = opt.IntValue()
	}
	return args
}

type ecoResetArgs struct {
	Scope  string
	Target *discordgo.User
}

func parseEcoResetArgs(s *discordgo.Session, i *discordgo.InteractionCreate) ecoResetArgs {
	opts := optionMap(i)
	var args ecoResetArgs
	if opt, ok := opts["scope"]; ok {
		args.Scope = opt.StringValue()
	}
	if opt, ok := opts["user"]; ok {
		args.Target = opt.UserValue(s)
	}
	return args
}
