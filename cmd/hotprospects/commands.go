package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/illmade-knight/hot-prospects/pkg/prospects"
	"github.com/illmade-knight/hot-prospects/pkg/reminders"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newListCmd(v *viper.Viper) *cobra.Command {
	var sortFlag string
	cmd := &cobra.Command{
		Use:   "list [everyone|contacted|uncontacted]",
		Short: "Show prospects, optionally filtered by contacted status",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := prospects.FilterAll
			if len(args) == 1 {
				f, err := prospects.ParseFilter(args[0])
				if err != nil {
					return err
				}
				filter = f
			}
			order, err := prospects.ParseSortOrder(sortFlag)
			if err != nil {
				return err
			}

			rt, err := bootstrap(cmd.Context(), v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.app.SetSortOrder(order)
			view := rt.app.View(filter)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, view.Title)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, p := range view.Items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.EmailAddress, contactedLabel(p))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&sortFlag, "sort", "name", "Sort order: name|email.")
	return cmd
}

func newScanCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [payload]",
		Short: "Add a prospect from a QR payload (\"name\\nemail\"), read from stdin when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, readErr := scanInput(cmd.InOrStdin(), args)

			rt, err := bootstrap(cmd.Context(), v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			p, added, err := rt.app.HandleScan(cmd.Context(), code, readErr)
			if !added {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing added")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s <%s>\n", p.ID, p.Name, p.EmailAddress)
			return err
		},
	}
}

func newToggleCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a prospect contacted or uncontacted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid prospect id: %w", err)
			}

			rt, err := bootstrap(cmd.Context(), v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			p, err := rt.app.ToggleContacted(cmd.Context(), id)
			if errors.Is(err, prospects.ErrNotFound) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", p.Name, contactedLabel(p))
			return err
		},
	}
}

func newRemindCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "remind <id>",
		Short: "Schedule a reminder to contact a prospect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid prospect id: %w", err)
			}

			rt, err := bootstrap(cmd.Context(), v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			type outcome struct {
				reminder reminders.Reminder
				err      error
			}
			result := make(chan outcome, 1)
			err = rt.app.RemindMe(cmd.Context(), id, func(r reminders.Reminder, err error) {
				result <- outcome{reminder: r, err: err}
			})
			if err != nil {
				return err
			}

			select {
			case res := <-result:
				if res.err != nil {
					return res.err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s at %s\n", res.reminder.Title, res.reminder.FireAt.Format("Mon 2 Jan 15:04"))
				return nil
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
		},
	}
}

// scanInput returns the payload from args or, failing that, everything on r.
// A single trailing newline from a terminal or pipe is dropped.
func scanInput(r io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return strings.ReplaceAll(args[0], `\n`, "\n"), nil
	}
	var b strings.Builder
	sc := bufio.NewScanner(r)
	lines := 0
	for sc.Scan() {
		if lines > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(sc.Text())
		lines++
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("failed to read scan payload: %w", err)
	}
	return b.String(), nil
}

func contactedLabel(p prospects.Prospect) string {
	if p.IsContacted {
		return "contacted"
	}
	return "uncontacted"
}
