package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/service/client"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all alarms.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, client.ListAlarms())
		},
	}
}

func newSetCommand() *cobra.Command {
	var (
		id        string
		days      []string
		alternate bool
		inactive  bool
	)

	cmd := &cobra.Command{
		Use:   "set HH:MM",
		Short: "Create or replace an alarm.",
		Long: `Creates an alarm firing at HH:MM on the given days, or replaces the alarm with the same --id.

Without --days the alarm fires every day. Days accept short or full English names (mon, Tuesday).
A random id is generated when --id is omitted.`,
		Example: `  alarm-clock-ctl set 07:30 --days mon,tue,wed,thu,fri
  alarm-clock-ctl set 09:00 --id weekend --days sat,sun --alternate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = uuid.NewString()
			}

			alarm, err := buildAlarm(id, args[0], days, !alternate, !inactive)
			if err != nil {
				return err
			}

			return runAction(cmd, client.SetAlarm(alarm))
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "alarm id, generated when empty")
	cmd.Flags().StringSliceVarP(&days, "days", "d", nil, "weekdays the alarm fires on, every day when empty")
	cmd.Flags().BoolVar(&alternate, "alternate", false, "put the alarm on the alternate schedule")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "create the alarm switched off")

	return cmd
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID...",
		Aliases: []string{"rm"},
		Short:   "Remove alarms by id.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, client.RemoveAlarms(args))
		},
	}
}

func newPlayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start the alarm sound now.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, client.Play())
		},
	}
}

func newStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the alarm sound.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, client.Stop())
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show switches, playback state and the next alarm.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, client.Status())
		},
	}
}

func newScheduleCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "schedule [primary|alternate]",
		Short:     "Show or select the active schedule.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{schedulePrimary, scheduleAlternate},
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := optionalChoice(args, schedulePrimary, scheduleAlternate)
			if err != nil {
				return err
			}

			return runAction(cmd, client.Schedule(value))
		},
	}
}

func newGlobalCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "global [on|off]",
		Short:     "Show or flip the switch that enables all alarms.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{switchOn, switchOff},
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := optionalChoice(args, switchOn, switchOff)
			if err != nil {
				return err
			}

			return runAction(cmd, client.Global(value))
		},
	}
}

// buildAlarm assembles an alarm from command-line values.
func buildAlarm(id, clock string, days []string, isPrimary, active bool) (domain.Alarm, error) {
	hour, minute, err := parseClock(clock)
	if err != nil {
		return domain.Alarm{}, err
	}

	weekdays, err := domain.ParseWeekdays(days)
	if err != nil {
		return domain.Alarm{}, err
	}

	alarm := domain.Alarm{
		ID:                id,
		Hour:              hour,
		Minute:            minute,
		Days:              weekdays,
		IsPrimarySchedule: isPrimary,
		Active:            active,
	}

	return alarm, alarm.Validate()
}
