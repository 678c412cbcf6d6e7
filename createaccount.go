package main

import (
	"errors"

	"github.com/charmbracelet/huh"
)

func newCreateAccountForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Portfolio name").
				Description("A new API token is issued for the portfolio").
				Key("name").
				Placeholder("Enter portfolio name...").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("name is required")
					}
					return nil
				}),
		),
	)
}
