package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kms-app/dinnerboard/internal/cli"
	"github.com/kms-app/dinnerboard/internal/schedule"
	"github.com/kms-app/dinnerboard/internal/validation"
)

type SetCmd struct {
	Day        string `arg:"" help:"Day to answer for: YYYY-MM-DD, 'today', or +N days from today."`
	Status     string `arg:"" help:"Answer status: eat_early, eat_late, not_eat, awa, undecided."`
	At         string `help:"Optional dinner time annotation (HH:MM)."`
	Passphrase string `help:"Board passphrase (prompted if omitted)." short:"p"`
}

func (cmd *SetCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.Unlock(cmd.Passphrase); err != nil {
		return err
	}

	status, err := validation.ParseStatus(cmd.Status)
	if err != nil {
		return err
	}
	if err := validation.ValidateTimeAnnotation(cmd.At); err != nil {
		return err
	}

	ctrl, _, err := appCtx.StartSession()
	if err != nil {
		return err
	}

	dayKey, err := resolveDay(cmd.Day, ctrl.Window())
	if err != nil {
		return err
	}

	if err := ctrl.SetAnswer(dayKey, status, cmd.At); err != nil {
		return err
	}

	fmt.Printf("Set %s to %s.\n\n", dayKey, status.Label())
	fmt.Print(RenderOwn(ctrl.Window(), ctrl.Record()))
	fmt.Println("\nRun 'dinnerboard save' to publish.")
	return nil
}

// resolveDay maps the day argument onto a window day-key. "today" and +N
// offsets address the window positionally; an explicit date must fall
// inside the window.
func resolveDay(arg string, window schedule.Window) (string, error) {
	switch {
	case strings.EqualFold(arg, "today"):
		return window[0], nil
	case strings.HasPrefix(arg, "+"):
		n, err := strconv.Atoi(arg[1:])
		if err != nil || n < 0 || n >= len(window) {
			return "", fmt.Errorf("day offset %q is outside the %d-day window", arg, len(window))
		}
		return window[n], nil
	}

	if err := validation.ValidateDayKey(arg); err != nil {
		return "", err
	}
	if !window.Contains(arg) {
		return "", fmt.Errorf("day %s is outside the current window (%s to %s)", arg, window[0], window[len(window)-1])
	}
	return arg, nil
}
