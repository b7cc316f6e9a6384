package bot

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"
)

const patrolRetention = 24 * time.Hour

var patrolReactions = []string{"✅", "❓", "❌"}

const (
	patrolThumbnailURL = "https://media.discordapp.net/attachments/1401241176199270541/1419424262053298206/ViceValleyLogo.png?ex=68d1b55b&is=68d063db&hm=91eda5b961aadb5beb16ff78827f0936e5088fb68f99d01017e844b99fc7ff0b&=&format=webp&quality=lossless&width=410&height=410"
	patrolBannerURL    = "https://cdn.discordapp.com/attachments/1388737486473138247/1419423721168306236/VVRP_interview_and_application_banner.png?ex=68d1b4da&is=68d0635a&hm=126e846f121cbc6d37160c7d175daac911e3687df297f6d92a6aa2bf6c04ff01&"
)

// buildPatrolEmbed builds the daily patrol announcement. The role mention
// goes in the message content so it actually pings.
func (b *Bot) buildPatrolEmbed() (string, *discordgo.MessageEmbed) {
	content := fmt.Sprintf("<@&%s>", b.config.RoleID)
	description := fmt.Sprintf(
		"A new patrol is beginning!\n\n**Start Time:** %s\n**AOP:** Statewide ALWAYS\n\nReact below to confirm your status:",
		FormatDiscordTimestamp(time.Now(), "t"),
	)

	embed := &discordgo.MessageEmbed{
		Title:       "🚨 Patrol Notification 🚨",
		Description: description,
		Color:       ColorPatrol,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: patrolThumbnailURL},
		Image:       &discordgo.MessageEmbedImage{URL: patrolBannerURL},
		Footer:      &discordgo.MessageEmbedFooter{Text: "Vice Valley Roleplay • Stay safe out there!"},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	return content, embed
}

// sendPatrolEmbed posts the patrol announcement to channelID, adds the
// status reactions and schedules the message for deletion after the
// retention window.
func (b *Bot) sendPatrolEmbed(channelID string) {
	content, embed := b.buildPatrolEmbed()
	msg, err := b.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		log.Errorf("Error sending patrol embed to channel %s: %v", channelID, err)
		return
	}

	for _, reaction := range patrolReactions {
		if err := b.session.MessageReactionAdd(channelID, msg.ID, reaction); err != nil {
			log.Errorf("Error adding %s reaction to patrol message: %v", reaction, err)
		}
	}

	// Message may already be gone when the delete fires; that is fine.
	b.scheduler.Schedule(patrolRetention, func() {
		if err := b.session.ChannelMessageDelete(channelID, msg.ID); err != nil {
			log.Debugf("Could not delete patrol message %s: %v", msg.ID, err)
		}
	})

	log.WithFields(log.Fields{
		"channel": channelID,
		"message": msg.ID,
	}).Info("Patrol notification sent")
}

// StartPatrolWorker starts a background worker that posts the patrol
// notification once a day at the configured local hour.
// Returns a cleanup function to stop the worker gracefully
func (b *Bot) StartPatrolWorker(ctx context.Context) (func(), error) {
	location, err := time.LoadLocation(b.config.PatrolTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid patrol timezone %q: %w", b.config.PatrolTimezone, err)
	}

	stopChan := make(chan struct{})

	// Calculate time until the next notification
	calculateNextRun := func() time.Duration {
		now := time.Now().In(location)
		next := time.Date(now.Year(), now.Month(), now.Day(), b.config.PatrolHour, 0, 0, 0, location)

		// If the notification time has already passed today, schedule for tomorrow
		if now.After(next) || now.Equal(next) {
			next = next.Add(24 * time.Hour)
		}

		return next.Sub(now)
	}

	go func() {
		log.WithFields(log.Fields{
			"hour":     b.config.PatrolHour,
			"timezone": b.config.PatrolTimezone,
		}).Info("Patrol notification worker started")

		for {
			timer := time.NewTimer(calculateNextRun())
			select {
			case <-ctx.Done():
				timer.Stop()
				log.Info("Patrol worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				timer.Stop()
				log.Info("Patrol worker shutting down (stop requested)...")
				return
			case <-timer.C:
				b.sendPatrolEmbed(b.config.ChannelID)
			}
		}
	}()

	return func() {
		close(stopChan)
	}, nil
}
