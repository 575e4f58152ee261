package reminders_test

import (
	"testing"
	"time"

	"github.com/illmade-knight/hot-prospects/pkg/prospects"
	"github.com/illmade-knight/hot-prospects/pkg/reminders"
	"github.com/stretchr/testify/assert"
)

func TestNewReminder(t *testing.T) {
	p := prospects.NewProspect("Abdul Hudson", "zaul@hackingwithswift.com")
	now := time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC)

	r := reminders.NewReminder(p, now)

	assert.Equal(t, "Contact Abdul Hudson", r.Title)
	assert.Equal(t, "zaul@hackingwithswift.com", r.Subtitle)
	assert.Equal(t, p.ID, r.ProspectID)
	assert.Equal(t, 9, r.Hour)
	assert.False(t, r.Repeats)
	assert.True(t, r.Sound)
	assert.Equal(t, time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC), r.FireAt)
	assert.NotEqual(t, r.ID, reminders.NewReminder(p, now).ID)
}

func TestNextFireTime(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	testCases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"early morning fires today", time.Date(2024, 1, 10, 6, 0, 0, 0, loc), time.Date(2024, 1, 10, 9, 0, 0, 0, loc)},
		{"exactly nine fires tomorrow", time.Date(2024, 1, 10, 9, 0, 0, 0, loc), time.Date(2024, 1, 11, 9, 0, 0, 0, loc)},
		{"evening fires tomorrow", time.Date(2024, 1, 10, 22, 15, 0, 0, loc), time.Date(2024, 1, 11, 9, 0, 0, 0, loc)},
		{"end of month rolls over", time.Date(2024, 1, 31, 10, 0, 0, 0, loc), time.Date(2024, 2, 1, 9, 0, 0, 0, loc)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.want.Equal(reminders.NextFireTime(tc.now, reminders.DefaultHour)))
		})
	}
}
