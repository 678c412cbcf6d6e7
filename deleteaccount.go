package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// newDeleteAccountForm guards the irreversible delete behind an explicit
// confirmation.
func newDeleteAccountForm(name string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete portfolio %q?", name)).
				Description("All of its records are removed. This cannot be undone.").
				Key("confirm").
				Affirmative("Delete").
				Negative("Cancel"),
		),
	)
}

// confirmAccountDeletion prompts on the terminal before the accounts
// delete command proceeds. The --yes flag bypasses it.
func confirmAccountDeletion(id int64) (bool, error) {
	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete portfolio %d?", id)).
				Description("All of its records are removed. This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
