package main

import (
	"github.com/illmade-knight/hot-prospects/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd builds the command tree around its own viper instance so that
// each invocation starts from a clean configuration.
func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	cmd := &cobra.Command{
		Use:          "hotprospects",
		Short:        "Track prospects captured from QR codes",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Config file path (optional).")
	flags.String("data-dir", "", "Directory holding saved prospects (defaults to the user config dir).")
	flags.String("backend", "", "Storage backend: file|sqlite|firestore|memory.")
	flags.String("sink", "", "Reminder sink: log|http|pubsub.")
	flags.String("project", "", "GCP project for the firestore backend and pubsub sink.")
	flags.String("log-level", "", "Logging level: debug|info|warn|error.")
	flags.String("log-format", "", "Logging format: console|json.")

	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = v.BindPFlag("storage.backend", flags.Lookup("backend"))
	_ = v.BindPFlag("reminders.sink", flags.Lookup("sink"))
	_ = v.BindPFlag("gcp_project_id", flags.Lookup("project"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", flags.Lookup("log-format"))

	cmd.AddCommand(
		newListCmd(v),
		newScanCmd(v),
		newToggleCmd(v),
		newRemindCmd(v),
	)
	return cmd
}
