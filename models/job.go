package models

import "time"

// Reward and cooldown settings for the timed claims.
const (
	DailyCooldown  = 24 * time.Hour
	WeeklyCooldown = 7 * 24 * time.Hour
	DailyReward    = 250
	WeeklyReward   = 1200

	// Fallback work terms when no job is assigned
	WorkMin      = 50
	WorkMax      = 150
	WorkCooldown = time.Hour
)

// Job describes one entry of the static job catalog.
type Job struct {
	Key         string
	Name        string
	Min         int64
	Max         int64
	CooldownMin int
	Blurb       string
}

// Cooldown returns the job's work cooldown as a duration.
func (j Job) Cooldown() time.Duration {
	return time.Duration(j.CooldownMin) * time.Minute
}

// Jobs is the immutable job catalog, in display order.
var Jobs = []Job{
	{Key: "courier", Name: "Courier", Min: 60, Max: 140, CooldownMin: 30, Blurb: "Quick runs, steady cash."},
	{Key: "bartender", Name: "Bartender", Min: 80, Max: 180, CooldownMin: 45, Blurb: "Tips add up on a busy night."},
	{Key: "mechanic", Name: "Mechanic", Min: 90, Max: 200, CooldownMin: 45, Blurb: "Grease & gears pay well."},
	{Key: "developer", Name: "Developer", Min: 140, Max: 280, CooldownMin: 90, Blurb: "Big brain, bigger checks."},
	{Key: "miner", Name: "Miner", Min: 0, Max: 420, CooldownMin: 90, Blurb: "High risk, high reward."},
}

// JobByKey looks up a job by its catalog key.
func JobByKey(key string) (Job, bool) {
	for _, job := range Jobs {
		if job.Key == key {
			return job, true
		}
	}
	return Job{}, false
}
