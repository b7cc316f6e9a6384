package bot

import (
	"fmt"
	"strings"
	"time"
)

// FormatBalance formats a coin amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatHoursMinutes renders a cooldown as "Xh Ym", flooring both parts.
func FormatHoursMinutes(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatDaysHours renders a cooldown as "Xd Yh", flooring both parts.
func FormatDaysHours(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	hours := int((d % (24 * time.Hour)) / time.Hour)
	return fmt.Sprintf("%dd %dh", days, hours)
}

// FormatMinutesCeil renders a cooldown as whole minutes, rounding up so a
// 30-second wait still reads "1m".
func FormatMinutesCeil(d time.Duration) string {
	minutes := int((d + time.Minute - 1) / time.Minute)
	return fmt.Sprintf("%dm", minutes)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
