package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub/v2"
	"github.com/illmade-knight/hot-prospects/app"
	"github.com/illmade-knight/hot-prospects/internal/clients"
	"github.com/illmade-knight/hot-prospects/internal/config"
	"github.com/illmade-knight/hot-prospects/internal/crypto"
	pubsubmessaging "github.com/illmade-knight/hot-prospects/internal/messaging/pubsub"
	firestorestorage "github.com/illmade-knight/hot-prospects/internal/storage/firestore"
	"github.com/illmade-knight/hot-prospects/internal/storage/jsonfile"
	sqlitestorage "github.com/illmade-knight/hot-prospects/internal/storage/sqlite"
	"github.com/illmade-knight/hot-prospects/pkg/preferences"
	"github.com/illmade-knight/hot-prospects/pkg/prospects"
	"github.com/illmade-knight/hot-prospects/pkg/reminders"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// runtime is a fully assembled application plus whatever needs closing on exit.
type runtime struct {
	app     *app.App
	logger  zerolog.Logger
	closers []func() error
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			r.logger.Warn().Err(err).Msg("Error during shutdown")
		}
	}
}

// bootstrap loads configuration, builds the storage backend and reminder sink
// it selects, and loads the saved prospects.
func bootstrap(ctx context.Context, v *viper.Viper, logOut io.Writer) (*runtime, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Logging, logOut)
	rt := &runtime{logger: logger}

	store, err := rt.openStore(ctx, cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	sink, err := rt.openSink(ctx, cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}

	authorizer := reminders.NewMemoryAuthorizer(reminders.StatusNotDetermined, cfg.Reminders.Authorized)
	rt.app = app.New(
		prospects.NewService(store, logger),
		preferences.NewSortPreference(),
		reminders.NewScheduler(authorizer, sink, logger),
		logger,
	)
	rt.app.Start(ctx)

	logger.Debug().
		Str("backend", cfg.Storage.Backend).
		Str("sink", cfg.Reminders.Sink).
		Msg("Application assembled")
	return rt, nil
}

func (r *runtime) openStore(ctx context.Context, cfg config.Config) (prospects.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return prospects.NewInMemoryStore(), nil

	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		store, err := sqlitestorage.Open(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, store.Close)
		return store, nil

	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		r.closers = append(r.closers, client.Close)
		return firestorestorage.NewProspectsStore(client, cfg.Storage.FirestoreCollection), nil

	default:
		opts := []jsonfile.Option{jsonfile.WithLogger(r.logger)}
		if cfg.Storage.EncryptionKeyFile != "" {
			sealer, err := crypto.LoadSealer(cfg.Storage.EncryptionKeyFile)
			if err != nil {
				return nil, err
			}
			opts = append(opts, jsonfile.WithSealer(sealer))
		}
		return jsonfile.NewProspectsStore(cfg.StatePath(), opts...), nil
	}
}

func (r *runtime) openSink(ctx context.Context, cfg config.Config) (reminders.Sink, error) {
	switch cfg.Reminders.Sink {
	case config.SinkHTTP:
		return clients.NewNotifyGatewayClient(cfg.Reminders.GatewayURL, r.logger), nil

	case config.SinkPubSub:
		client, err := pubsub.NewClient(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
		}
		publisher := pubsubmessaging.NewReminderPublisher(client, cfg.Reminders.Topic, r.logger)
		r.closers = append(r.closers, client.Close, func() error {
			publisher.Stop()
			return nil
		})
		return publisher, nil

	default:
		return reminders.NewLogSink(r.logger), nil
	}
}

func newLogger(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if strings.EqualFold(cfg.Format, "json") {
		return zerolog.New(w).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
}
