package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MihkelHunter/habitual/internal/habit"
	"github.com/MihkelHunter/habitual/internal/store"
)

var openStore Opener = store.Open

func addCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the selected day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.sess.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}
			a.info(cmd, "Task added! (%d)", task.ID)
			return nil
		},
	}
}

func toggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Flip a task between done and not done",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.sess.Toggle(id)
		},
	}
}

func editCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.sess.Edit(id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			a.info(cmd, "Task updated!")
			return nil
		},
	}
}

func rmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.sess.Delete(id); err != nil {
				return err
			}
			a.info(cmd, "Task deleted.")
			return nil
		},
	}
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks for the selected day",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			FormatDay(cmd.OutOrStdout(), a.sess.Selected(), a.sess.Tasks())
			return nil
		},
	}
}

func streakCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show consecutive completed days ending yesterday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.sess.Streak())
			return nil
		},
	}
}

func calendarCmd(a *app) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month with per-day completion status",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at := a.sess.Selected()
			if month != "" {
				m, err := habit.ParseMonth(month)
				if err != nil {
					return fmt.Errorf("invalid month %q (want yyyy-MM)", month)
				}
				at = m
			}
			FormatCalendar(cmd.OutOrStdout(), at, a.sess.Month(at), a.sess.Streak())
			return nil
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show, yyyy-MM (default selected day's month)")
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every stored task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := a.sess.Store().Snapshot()
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(snap); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	return id, nil
}
