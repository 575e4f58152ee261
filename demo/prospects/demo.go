// FILE: main.go
// This demo walks through a day of scanning and following up on prospects
// using the in-memory stack.

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/illmade-knight/hot-prospects/app"
	"github.com/illmade-knight/hot-prospects/pkg/preferences"
	"github.com/illmade-knight/hot-prospects/pkg/prospects"
	"github.com/illmade-knight/hot-prospects/pkg/reminders"
	"github.com/rs/zerolog"
)

func main() {
	log.Println("--- Starting Prospects Demo ---")
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	// 1. Initialize the services and their in-memory collaborators
	store := prospects.NewInMemoryStore()
	sink := reminders.NewInMemorySink()
	application := app.New(
		prospects.NewService(store, logger),
		preferences.NewSortPreference(),
		reminders.NewScheduler(reminders.NewMemoryAuthorizer(reminders.StatusNotDetermined, true), sink, logger),
		logger,
	)

	ctx := context.Background()
	application.Start(ctx)

	cancel := application.Prospects.Subscribe(func(e prospects.Event) {
		log.Printf("🔔 %s %s", e.Kind, e.Prospect.Name)
	})
	defer cancel()

	// 2. Scan some badges
	log.Println("\n--- Scanning ---")
	for _, code := range []string{
		"Paul Hudson\npaul@hackingwithswift.com",
		"Abdul Hudson\nzaul@hackingwithswift.com",
		"Taylor\nbadge-without-email",
		"Ada Lovelace\nada@example.com",
		"Paul Hudson\npaul@hackingwithswift.com",
	} {
		p, added, err := application.HandleScan(ctx, code, nil)
		switch {
		case err != nil:
			log.Printf("⚠️ Added %s but could not save: %v", p.Name, err)
		case !added:
			log.Printf("🤔 Ignored payload %q", code)
		default:
			log.Printf("✅ Added %s", p.Name)
		}
	}

	// 3. Follow up on one prospect, ask for a reminder about another
	log.Println("\n--- Following up ---")
	everyone := application.View(prospects.FilterAll)
	if _, err := application.ToggleContacted(ctx, everyone.Items[0].ID); err != nil {
		log.Fatalf("toggle failed: %v", err)
	}
	err := application.RemindMe(ctx, everyone.Items[1].ID, func(r reminders.Reminder, err error) {
		if err != nil {
			log.Printf("⚠️ No reminder: %v", err)
			return
		}
		log.Printf("⏰ %s (%s) at %s", r.Title, r.Subtitle, r.FireAt.Format("Mon 15:04"))
	})
	if err != nil {
		log.Printf("⚠️ %v", err)
	}

	// 4. Render every tab in both sort orders
	for _, order := range []prospects.SortOrder{prospects.SortByName, prospects.SortByEmail} {
		application.SetSortOrder(order)
		log.Printf("\n--- Sorted by %s ---", order)
		for _, tab := range application.Tabs() {
			if !tab.HasList {
				continue
			}
			view := application.View(tab.Filter)
			fmt.Printf("\n%s (%d)\n", view.Title, len(view.Items))
			for _, p := range view.Items {
				fmt.Printf("  %-14s %-28s %v\n", p.Name, p.EmailAddress, application.Actions(p))
			}
		}
	}

	log.Printf("\n💾 %d saves, ⏰ %d reminders", store.Saves(), len(sink.Reminders()))
}
