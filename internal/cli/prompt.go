package cli

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/roster/internal/roster"
)

// confirm asks a yes/no question. An aborted prompt counts as no.
func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Ja").
				Negative("Nein").
				Value(&ok),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

type rebasePolicy string

const (
	policyByDate rebasePolicy = "date"
	policyShift  rebasePolicy = "shift"
	policyClear  rebasePolicy = "clear"
)

func (p rebasePolicy) options() roster.RebaseOptions {
	return roster.RebaseOptions{
		ClearAssignments: p == policyClear,
		ShiftRelatively:  p == policyShift,
	}
}

// askRebasePolicy lets the user pick how existing assignments move.
func askRebasePolicy() (rebasePolicy, bool, error) {
	policy := policyByDate
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[rebasePolicy]().
				Title("Bestehende Einträge").
				Options(
					huh.NewOption("Nach Datum übernehmen", policyByDate),
					huh.NewOption("Relativ verschieben", policyShift),
					huh.NewOption("Alle Einträge löschen", policyClear),
				).
				Value(&policy),
			huh.NewConfirm().
				Title("Kalenderbasis ändern? Der Verlauf wird zurückgesetzt.").
				Affirmative("Ja").
				Negative("Nein").
				Value(&ok),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return policy, false, nil
	}
	return policy, ok, err
}
