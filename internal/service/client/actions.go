package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/service/common"
)

// ErrSomeNotFound is returned when a removal named unknown alarms.
var ErrSomeNotFound = errors.New("some alarms were not found")

// nextFireLayout renders the next alarm instant.
const nextFireLayout = "Mon 2006-01-02 15:04 MST"

// ListAlarms prints every alarm as a table.
func ListAlarms() Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		alarms, err := client.ListAlarms(ctx)
		if err != nil {
			return err
		}

		if len(alarms) == 0 {
			_, err = fmt.Fprintln(out, "No alarms")
			return err
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tTIME\tDAYS\tSCHEDULE\tACTIVE")

		for _, alarm := range alarms {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				alarm.ID,
				formatTime(alarm),
				formatDays(alarm),
				formatSchedule(alarm.IsPrimarySchedule),
				yesNo(alarm.Active))
		}

		return w.Flush()
	}
}

// SetAlarm creates or replaces an alarm.
func SetAlarm(alarm domain.Alarm) Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		saved, err := client.SetAlarm(ctx, alarm)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(out, "Alarm %s set for %s on %s (%s schedule, active: %s)\n",
			saved.ID,
			formatTime(saved),
			formatDays(saved),
			formatSchedule(saved.IsPrimarySchedule),
			yesNo(saved.Active))

		return err
	}
}

// RemoveAlarms deletes alarms by id. Unknown ids do not stop the others from
// being removed but make the action fail with ErrSomeNotFound.
func RemoveAlarms(ids []string) Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		reply, err := client.RemoveAlarms(ctx, ids)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(out, reply.Message); err != nil {
			return err
		}

		if !reply.Success {
			return fmt.Errorf("%w: %s", ErrSomeNotFound, strings.Join(reply.NotFound, ", "))
		}

		return nil
	}
}

// Play starts the alarm sound.
func Play() Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		playing, err := client.PlayAlarm(ctx)
		if err != nil {
			return err
		}

		return printPlaying(out, playing)
	}
}

// Stop silences the alarm sound.
func Stop() Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		playing, err := client.StopAlarm(ctx)
		if err != nil {
			return err
		}

		return printPlaying(out, playing)
	}
}

// Status prints the global flags, the playback state and the next alarm.
func Status() Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		isGlobalOn, err := client.IsGlobalOn(ctx)
		if err != nil {
			return err
		}

		isPrimary, err := client.IsPrimarySchedule(ctx)
		if err != nil {
			return err
		}

		playing, err := client.IsPlaying(ctx)
		if err != nil {
			return err
		}

		next, err := client.NextFire(ctx)
		if err != nil {
			return err
		}

		nextAlarm := "none"
		if !next.IsZero() {
			nextAlarm = fmt.Sprintf("%s (%s)", next.At.Format(nextFireLayout), strings.Join(next.AlarmIDs, ", "))
		}

		w := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
		_, _ = fmt.Fprintf(w, "Global:\t%s\n", onOff(isGlobalOn))
		_, _ = fmt.Fprintf(w, "Schedule:\t%s\n", formatSchedule(isPrimary))
		_, _ = fmt.Fprintf(w, "Playing:\t%s\n", yesNo(playing))
		_, _ = fmt.Fprintf(w, "Next alarm:\t%s\n", nextAlarm)

		return w.Flush()
	}
}

// Schedule prints the selected schedule, switching it first when isPrimary is set.
func Schedule(isPrimary *bool) Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		var (
			current bool
			err     error
		)

		if isPrimary != nil {
			current, err = client.SetPrimarySchedule(ctx, *isPrimary)
		} else {
			current, err = client.IsPrimarySchedule(ctx)
		}

		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(out, "Schedule: %s\n", formatSchedule(current))

		return err
	}
}

// Global prints the master switch, flipping it first when isGlobalOn is set.
func Global(isGlobalOn *bool) Action {
	return func(ctx context.Context, client *common.Client, out io.Writer) error {
		var (
			current bool
			err     error
		)

		if isGlobalOn != nil {
			current, err = client.SetGlobalOn(ctx, *isGlobalOn)
		} else {
			current, err = client.IsGlobalOn(ctx)
		}

		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(out, "Global: %s\n", onOff(current))

		return err
	}
}

func printPlaying(out io.Writer, playing bool) error {
	message := "Alarm stopped"
	if playing {
		message = "Alarm playing"
	}

	_, err := fmt.Fprintln(out, message)

	return err
}

func formatTime(alarm domain.Alarm) string {
	return time.Date(0, 1, 1, alarm.Hour, alarm.Minute, 0, 0, time.UTC).Format("15:04")
}

func formatDays(alarm domain.Alarm) string {
	if alarm.EveryDay() {
		return "every day"
	}

	return strings.Join(domain.WeekdayNames(alarm.Days), ",")
}

func formatSchedule(isPrimary bool) string {
	if isPrimary {
		return "primary"
	}

	return "alternate"
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

func onOff(value bool) string {
	if value {
		return "on"
	}

	return "off"
}
