// Package parser turns human reminder expressions into concrete fire times.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// WhenResult holds the parsed fire time and any error.
type WhenResult struct {
	Time  time.Time
	Error error
}

// relativeRegex matches relative time expressions like "+5m", "+1h", "+2d".
var relativeRegex = regexp.MustCompile(`^\+(\d+)([smhdw])$`)

// Preset expressions understood without natural language parsing.
const (
	PresetHour    = "1h"
	PresetMorning = "tomorrow"
	PresetWeekend = "weekend"
)

// ParseWhen parses a reminder time expression.
// Supports:
//   - presets: "1h" (an hour from now), "tomorrow" (tomorrow 9:00 AM),
//     "weekend" (Saturday 10:00 AM)
//   - "+5m", "+1h", "+2d" (relative)
//   - "friday 5pm", "in 3 hours" (natural language)
//   - "2026-01-15 14:00" (ISO format)
func ParseWhen(input string) WhenResult {
	return ParseWhenAt(input, time.Now())
}

// ParseWhenAt is ParseWhen with an explicit reference time.
func ParseWhenAt(input string, now time.Time) WhenResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return WhenResult{Error: fmt.Errorf("reminder time is required")}
	}

	switch strings.ToLower(input) {
	case PresetHour, "hour":
		return WhenResult{Time: OneHourFrom(now)}
	case PresetMorning, "morning":
		return WhenResult{Time: TomorrowMorning(now)}
	case PresetWeekend, "saturday", "walk":
		return WhenResult{Time: SaturdayWalk(now)}
	}

	// Relative time format (+5m, +1h, etc.)
	if match := relativeRegex.FindStringSubmatch(input); match != nil {
		return parseRelativeWhen(match[1], match[2], now)
	}

	// Fall back to go-dateparser for natural language parsing
	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return WhenResult{Error: fmt.Errorf("could not parse reminder time %q", input)}
	}

	// If it resolved to earlier today, roll it over to tomorrow
	if result.Time.Before(now) && isSameDay(result.Time, now) {
		result.Time = result.Time.AddDate(0, 0, 1)
	}

	return WhenResult{Time: result.Time}
}

// OneHourFrom returns the fire time one hour after now.
func OneHourFrom(now time.Time) time.Time {
	return now.Add(time.Hour)
}

// TomorrowMorning returns 9:00 AM on the day after now.
func TomorrowMorning(now time.Time) time.Time {
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, now.Location())
}

// SaturdayWalk returns 10:00 AM on the upcoming Saturday. If now is already
// a Saturday the time stays on today, which may land in the past; callers
// reject past fire times when scheduling.
func SaturdayWalk(now time.Time) time.Time {
	day := now
	for day.Weekday() != time.Saturday {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, now.Location())
}

// parseRelativeWhen parses relative time expressions.
func parseRelativeWhen(numStr, unit string, now time.Time) WhenResult {
	num, _ := strconv.Atoi(numStr)
	if num <= 0 {
		return WhenResult{Error: fmt.Errorf("invalid duration: must be positive")}
	}

	var d time.Duration
	switch unit {
	case "s":
		d = time.Duration(num) * time.Second
	case "m":
		d = time.Duration(num) * time.Minute
	case "h":
		d = time.Duration(num) * time.Hour
	case "d":
		d = time.Duration(num) * 24 * time.Hour
	case "w":
		d = time.Duration(num) * 7 * 24 * time.Hour
	default:
		return WhenResult{Error: fmt.Errorf("invalid time unit: %s", unit)}
	}

	return WhenResult{Time: now.Add(d)}
}

// isSameDay checks if two times are on the same day.
func isSameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ParseWhenArgs parses a reminder time from command arguments.
// Joins multiple args into a single string for natural language parsing.
func ParseWhenArgs(args []string) WhenResult {
	if len(args) == 0 {
		return WhenResult{Error: fmt.Errorf("reminder time is required")}
	}
	return ParseWhen(strings.Join(args, " "))
}

// FormatFireAt formats a fire time for display.
func FormatFireAt(t time.Time) string {
	now := time.Now()
	diff := time.Until(t)

	var datePart string
	if isSameDay(t, now) {
		datePart = "Today"
	} else if isSameDay(t, now.AddDate(0, 0, 1)) {
		datePart = "Tomorrow"
	} else if diff < 7*24*time.Hour && diff > 0 {
		datePart = t.Format("Monday")
	} else {
		datePart = t.Format("Mon, Jan 2")
	}

	timePart := t.Format("3:04 PM")

	return fmt.Sprintf("%s at %s", datePart, timePart)
}

// FormatTimeUntil formats the duration until a fire time.
func FormatTimeUntil(t time.Time) string {
	diff := time.Until(t)
	if diff < 0 {
		return "overdue"
	}

	if diff < time.Minute {
		return "less than a minute"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "in 1 minute"
		}
		return fmt.Sprintf("in %d minutes", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		mins := int(diff.Minutes()) % 60
		if hours == 1 {
			if mins > 0 {
				return fmt.Sprintf("in 1 hour %d minutes", mins)
			}
			return "in 1 hour"
		}
		if mins > 0 {
			return fmt.Sprintf("in %d hours %d minutes", hours, mins)
		}
		return fmt.Sprintf("in %d hours", hours)
	}
	if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "in 1 day"
		}
		return fmt.Sprintf("in %d days", days)
	}

	weeks := int(diff.Hours() / (24 * 7))
	if weeks == 1 {
		return "in 1 week"
	}
	return fmt.Sprintf("in %d weeks", weeks)
}
