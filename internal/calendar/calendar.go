// Package calendar lays saved posts out on a weekly planning grid. The
// backend does not schedule anything yet, so slots are derived
// deterministically from the post order: real scheduling arrives with the
// backend's scheduling endpoint.
package calendar

import (
	"fmt"
	"time"

	"postdesk/internal/models"
)

// MaxEntries caps how many posts get a slot on the grid.
const MaxEntries = 8

// titleLimit is how much caption text an entry shows.
const titleLimit = 30

var platforms = []string{"Instagram", "LinkedIn", "Twitter", "Facebook"}

var colors = []string{"sky", "violet", "amber", "rose"}

// Entry is one scheduled slot on the grid.
type Entry struct {
	PostID   string
	Title    string
	Platform string
	Day      int // 1 = Monday .. 5 = Friday
	Hour     int // 24h clock
	Time     string
	Color    string
}

// StartOfWeek returns the Monday of the week containing t, at midnight in
// t's location.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// WeekDays returns the five weekdays of the week containing t, Monday
// first.
func WeekDays(t time.Time) []time.Time {
	start := StartOfWeek(t)
	days := make([]time.Time, 5)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// Schedule assigns the first MaxEntries posts to grid slots. Slots cycle
// through the work week starting at 09:00, platforms and colors rotate in
// fixed order, so the same posts always land in the same places.
func Schedule(posts []models.Post) []Entry {
	n := len(posts)
	if n > MaxEntries {
		n = MaxEntries
	}
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		hour := 9 + i%MaxEntries
		entries = append(entries, Entry{
			PostID:   posts[i].ID,
			Title:    entryTitle(posts[i].Caption),
			Platform: platforms[i%len(platforms)],
			Day:      i%5 + 1,
			Hour:     hour,
			Time:     fmt.Sprintf("%d:00", hour),
			Color:    colors[i%len(colors)],
		})
	}
	return entries
}

func entryTitle(caption string) string {
	runes := []rune(caption)
	if len(runes) <= titleLimit {
		return caption
	}
	return string(runes[:titleLimit]) + "..."
}
