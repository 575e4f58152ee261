// FILE: reminders/models.go

package reminders

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/illmade-knight/hot-prospects/pkg/prospects"
)

// DefaultHour is the local hour of day at which reminders fire.
const DefaultHour = 9

// Reminder is a one-shot local notification asking the user to contact a prospect.
type Reminder struct {
	ID         uuid.UUID `json:"id"`
	ProspectID uuid.UUID `json:"prospectId"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	Sound      bool      `json:"sound"`
	Hour       int       `json:"hour"`
	Repeats    bool      `json:"repeats"`
	FireAt     time.Time `json:"fireAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewReminder builds the reminder for p, due at the next DefaultHour after now.
func NewReminder(p prospects.Prospect, now time.Time) Reminder {
	return Reminder{
		ID:         uuid.New(),
		ProspectID: p.ID,
		Title:      fmt.Sprintf("Contact %s", p.Name),
		Subtitle:   p.EmailAddress,
		Sound:      true,
		Hour:       DefaultHour,
		Repeats:    false,
		FireAt:     NextFireTime(now, DefaultHour),
		CreatedAt:  now,
	}
}

// NextFireTime returns the first time strictly after now whose local clock
// reads hour:00:00.
func NextFireTime(now time.Time, hour int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !now.Before(candidate) {
		candidate = time.Date(now.Year(), now.Month(), now.Day()+1, hour, 0, 0, 0, now.Location())
	}
	return candidate
}
