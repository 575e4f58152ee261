// Package app provides the central orchestrator for the hot-prospects application.
// It holds no state of its own: every list, toggle and reminder goes through
// the prospect service, the sort preference or the reminder scheduler.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/illmade-knight/hot-prospects/pkg/preferences"
	"github.com/illmade-knight/hot-prospects/pkg/prospects"
	"github.com/illmade-knight/hot-prospects/pkg/reminders"
	"github.com/rs/zerolog"
)

// ErrAlreadyContacted is returned when a reminder is requested for a prospect
// that has already been contacted.
var ErrAlreadyContacted = errors.New("prospect has already been contacted")

// Tab is one entry of the main navigation.
type Tab struct {
	Title  string
	Filter prospects.Filter
	// HasList is false for the profile tab.
	HasList bool
}

// ActionKind identifies a per-row action.
type ActionKind string

const (
	ActionToggle ActionKind = "TOGGLE"
	ActionRemind ActionKind = "REMIND"
)

// Action is a row action offered for a single prospect.
type Action struct {
	Kind  ActionKind
	Label string
}

// ListView is what a tab renders: a title and the prospects to show in order.
type ListView struct {
	Title  string
	Filter prospects.Filter
	Sort   prospects.SortOrder
	Items  []prospects.Prospect
}

// App is the central application struct.
type App struct {
	Prospects *prospects.Service
	Sorting   *preferences.SortPreference
	Reminders *reminders.Scheduler
	Logger    zerolog.Logger
}

// New creates a new, fully initialized App.
func New(
	prospectSvc *prospects.Service,
	sorting *preferences.SortPreference,
	scheduler *reminders.Scheduler,
	logger zerolog.Logger,
) *App {
	return &App{
		Prospects: prospectSvc,
		Sorting:   sorting,
		Reminders: scheduler,
		Logger:    logger.With().Str("component", "app").Logger(),
	}
}

// Start loads the saved prospects. A missing or unreadable save is not fatal:
// the app carries on with an empty list and the error is only logged.
func (a *App) Start(ctx context.Context) {
	if err := a.Prospects.Load(ctx); err != nil {
		a.Logger.Debug().Err(err).Msg("Starting without saved prospects")
		return
	}
	a.Logger.Info().Int("count", a.Prospects.Len()).Msg("Application started")
}

// Tabs returns the navigation in display order.
func (a *App) Tabs() []Tab {
	return []Tab{
		{Title: prospects.FilterAll.Title(), Filter: prospects.FilterAll, HasList: true},
		{Title: prospects.FilterContacted.Title(), Filter: prospects.FilterContacted, HasList: true},
		{Title: prospects.FilterUncontacted.Title(), Filter: prospects.FilterUncontacted, HasList: true},
		{Title: "Me"},
	}
}

// View builds the list for filter, ordered by the current sort preference.
func (a *App) View(filter prospects.Filter) ListView {
	order := a.Sorting.Current()
	return ListView{
		Title:  filter.Title(),
		Filter: filter,
		Sort:   order,
		Items:  a.Prospects.View(filter, order),
	}
}

// SetSortOrder changes the shared sort preference for every list.
func (a *App) SetSortOrder(order prospects.SortOrder) {
	a.Sorting.SetMode(order)
}

// HandleScan turns a scanner result into a new prospect. A scanner error or a
// malformed payload adds nothing and reports false. The returned error is the
// save error, if any; the prospect has been added regardless.
func (a *App) HandleScan(ctx context.Context, code string, scanErr error) (prospects.Prospect, bool, error) {
	if scanErr != nil {
		a.Logger.Warn().Err(scanErr).Msg("Scanning failed")
		return prospects.Prospect{}, false, nil
	}

	p, err := prospects.ParseScanPayload(code)
	if err != nil {
		a.Logger.Debug().Err(err).Msg("Ignoring scan payload")
		return prospects.Prospect{}, false, nil
	}

	if dupes := a.Prospects.FindEqual(p); len(dupes) > 0 {
		a.Logger.Warn().
			Str("name", p.Name).
			Str("email", p.EmailAddress).
			Int("existing", len(dupes)).
			Msg("Scanned prospect matches an existing entry")
	}

	err = a.Prospects.Add(ctx, p)
	return p, true, err
}

// ToggleContacted flips the contacted state of the prospect with id.
func (a *App) ToggleContacted(ctx context.Context, id uuid.UUID) (prospects.Prospect, error) {
	return a.Prospects.Toggle(ctx, id)
}

// RemindMe schedules a reminder for an uncontacted prospect. done is called
// once with the outcome, possibly after RemindMe has returned.
func (a *App) RemindMe(ctx context.Context, id uuid.UUID, done func(reminders.Reminder, error)) error {
	p, err := a.Prospects.Get(id)
	if err != nil {
		return err
	}
	if p.IsContacted {
		return fmt.Errorf("cannot remind about %s: %w", id, ErrAlreadyContacted)
	}
	a.Reminders.Schedule(ctx, p, done)
	return nil
}

// Actions lists the row actions available for p.
func (a *App) Actions(p prospects.Prospect) []Action {
	if p.IsContacted {
		return []Action{{Kind: ActionToggle, Label: "Mark Uncontacted"}}
	}
	return []Action{
		{Kind: ActionToggle, Label: "Mark Contacted"},
		{Kind: ActionRemind, Label: "Remind Me"},
	}
}
