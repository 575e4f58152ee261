package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/illmade-knight/hot-prospects/app"
	"github.com/illmade-knight/hot-prospects/pkg/preferences"
	"github.com/illmade-knight/hot-prospects/pkg/prospects"
	"github.com/illmade-knight/hot-prospects/pkg/reminders"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHarness struct {
	app   *app.App
	store *prospects.InMemoryStore
	sink  *reminders.InMemorySink
}

func newHarness(t *testing.T, authorizer reminders.Authorizer) testHarness {
	t.Helper()
	logger := zerolog.Nop()
	store := prospects.NewInMemoryStore()
	sink := reminders.NewInMemorySink()
	svc := prospects.NewService(store, logger)
	scheduler := reminders.NewScheduler(authorizer, sink, logger)
	return testHarness{
		app:   app.New(svc, preferences.NewSortPreference(), scheduler, logger),
		store: store,
		sink:  sink,
	}
}

func TestApp_Tabs(t *testing.T) {
	h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))

	tabs := h.app.Tabs()

	require.Len(t, tabs, 4)
	assert.Equal(t, "Everyone", tabs[0].Title)
	assert.Equal(t, "Contacted People", tabs[1].Title)
	assert.Equal(t, "Uncontacted People", tabs[2].Title)
	assert.Equal(t, "Me", tabs[3].Title)
	assert.False(t, tabs[3].HasList)
}

func TestApp_HandleScan(t *testing.T) {
	ctx := context.Background()

	t.Run("valid payload appends an uncontacted prospect", func(t *testing.T) {
		h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))

		p, added, err := h.app.HandleScan(ctx, "Abdul Hudson\nzaul@hackingwithswift.com", nil)

		require.NoError(t, err)
		require.True(t, added)
		assert.Equal(t, "Abdul Hudson", p.Name)
		assert.Equal(t, "zaul@hackingwithswift.com", p.EmailAddress)
		assert.False(t, p.IsContacted)
		assert.Equal(t, 1, h.app.Prospects.Len())
		assert.Equal(t, 1, h.store.Saves())
	})

	t.Run("malformed payload is ignored", func(t *testing.T) {
		h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))

		_, added, err := h.app.HandleScan(ctx, "OnlyOneLine", nil)

		require.NoError(t, err)
		assert.False(t, added)
		assert.Zero(t, h.app.Prospects.Len())
		assert.Zero(t, h.store.Saves())
	})

	t.Run("scanner error is ignored", func(t *testing.T) {
		h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))

		_, added, err := h.app.HandleScan(ctx, "Jo\njo@example.com", errors.New("camera unavailable"))

		require.NoError(t, err)
		assert.False(t, added)
		assert.Zero(t, h.app.Prospects.Len())
	})

	t.Run("duplicate scan still appends", func(t *testing.T) {
		h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))

		first, _, err := h.app.HandleScan(ctx, "Jo\njo@example.com", nil)
		require.NoError(t, err)
		second, added, err := h.app.HandleScan(ctx, "Jo\njo@example.com", nil)

		require.NoError(t, err)
		assert.True(t, added)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, 2, h.app.Prospects.Len())
	})
}

func TestApp_ViewFollowsSortPreference(t *testing.T) {
	// Arrange
	ctx := context.Background()
	h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))
	for _, code := range []string{"Charlie\na@example.com", "Alice\nc@example.com", "Bob\nb@example.com"} {
		_, _, err := h.app.HandleScan(ctx, code, nil)
		require.NoError(t, err)
	}
	var seen []prospects.SortOrder
	cancel := h.app.Sorting.Subscribe(func(o prospects.SortOrder) { seen = append(seen, o) })
	defer cancel()

	// Act & Assert: default is by name
	byName := h.app.View(prospects.FilterAll)
	assert.Equal(t, "Everyone", byName.Title)
	assert.Equal(t, prospects.SortByName, byName.Sort)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, names(byName.Items))

	// Act & Assert: switching affects every list
	h.app.SetSortOrder(prospects.SortByEmail)
	byEmail := h.app.View(prospects.FilterUncontacted)
	assert.Equal(t, "Uncontacted People", byEmail.Title)
	assert.Equal(t, []string{"Charlie", "Bob", "Alice"}, names(byEmail.Items))
	assert.Equal(t, []prospects.SortOrder{prospects.SortByEmail}, seen)
}

func TestApp_ToggleContacted(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))
	p, _, err := h.app.HandleScan(ctx, "Jo\njo@example.com", nil)
	require.NoError(t, err)

	toggled, err := h.app.ToggleContacted(ctx, p.ID)

	require.NoError(t, err)
	assert.True(t, toggled.IsContacted)
	assert.Len(t, h.app.View(prospects.FilterContacted).Items, 1)
	assert.Empty(t, h.app.View(prospects.FilterUncontacted).Items)

	_, err = h.app.ToggleContacted(ctx, uuid.New())
	assert.ErrorIs(t, err, prospects.ErrNotFound)
}

func TestApp_RemindMe(t *testing.T) {
	ctx := context.Background()

	t.Run("authorised user gets a reminder", func(t *testing.T) {
		h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusNotDetermined, true))
		p, _, err := h.app.HandleScan(ctx, "Jo\njo@example.com", nil)
		require.NoError(t, err)

		var got reminders.Reminder
		var gotErr error
		calls := 0
		err = h.app.RemindMe(ctx, p.ID, func(r reminders.Reminder, err error) {
			calls++
			got, gotErr = r, err
		})

		require.NoError(t, err)
		require.Equal(t, 1, calls)
		require.NoError(t, gotErr)
		assert.Equal(t, "Contact Jo", got.Title)
		assert.Equal(t, "jo@example.com", got.Subtitle)
		assert.Len(t, h.sink.Reminders(), 1)
	})

	t.Run("denied permission schedules nothing", func(t *testing.T) {
		h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusNotDetermined, false))
		p, _, err := h.app.HandleScan(ctx, "Jo\njo@example.com", nil)
		require.NoError(t, err)

		var gotErr error
		err = h.app.RemindMe(ctx, p.ID, func(_ reminders.Reminder, err error) { gotErr = err })

		require.NoError(t, err)
		assert.ErrorIs(t, gotErr, reminders.ErrPermissionDenied)
		assert.Empty(t, h.sink.Reminders())
	})

	t.Run("contacted prospect is rejected", func(t *testing.T) {
		h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))
		p, _, err := h.app.HandleScan(ctx, "Jo\njo@example.com", nil)
		require.NoError(t, err)
		_, err = h.app.ToggleContacted(ctx, p.ID)
		require.NoError(t, err)

		err = h.app.RemindMe(ctx, p.ID, nil)

		assert.ErrorIs(t, err, app.ErrAlreadyContacted)
		assert.Empty(t, h.sink.Reminders())
	})

	t.Run("unknown prospect", func(t *testing.T) {
		h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))

		err := h.app.RemindMe(ctx, uuid.New(), nil)

		assert.ErrorIs(t, err, prospects.ErrNotFound)
	})
}

func TestApp_Actions(t *testing.T) {
	h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))

	uncontacted := h.app.Actions(prospects.Prospect{})
	contacted := h.app.Actions(prospects.Prospect{IsContacted: true})

	assert.Equal(t, []app.Action{
		{Kind: app.ActionToggle, Label: "Mark Contacted"},
		{Kind: app.ActionRemind, Label: "Remind Me"},
	}, uncontacted)
	assert.Equal(t, []app.Action{{Kind: app.ActionToggle, Label: "Mark Uncontacted"}}, contacted)
}

func TestApp_StartWithoutSavedData(t *testing.T) {
	h := newHarness(t, reminders.NewMemoryAuthorizer(reminders.StatusAuthorized, true))

	h.app.Start(context.Background())

	assert.Zero(t, h.app.Prospects.Len())
}

func names(people []prospects.Prospect) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.Name)
	}
	return out
}
