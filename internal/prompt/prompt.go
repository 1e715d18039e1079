// Package prompt owns the interactive decisions the engine delegates to
// the user: yes/no confirmations and single or multiple branch picks.
package prompt

import (
	"github.com/charmbracelet/huh"
)

// Decider answers the questions the restore and delete operations cannot
// decide on their own. Implementations must be safe to call from a single
// goroutine; the engine never asks concurrently.
type Decider interface {
	Confirm(title string) (bool, error)
	ChooseOne(title string, options []string) (int, error)
	ChooseMany(title string, options []string) ([]int, error)
}

// Terminal is the production Decider, rendering huh forms on the
// controlling terminal.
type Terminal struct{}

// NewTerminal creates a terminal-backed Decider.
func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) Confirm(title string) (bool, error) {
	var answer bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&answer),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return answer, nil
}

func (t *Terminal) ChooseOne(title string, options []string) (int, error) {
	var selected int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title(title).
			Options(indexOptions(options)...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return 0, err
	}
	return selected, nil
}

func (t *Terminal) ChooseMany(title string, options []string) ([]int, error) {
	var selected []int
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[int]().
			Title(title).
			Options(indexOptions(options)...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}

func indexOptions(options []string) []huh.Option[int] {
	opts := make([]huh.Option[int], len(options))
	for i, name := range options {
		opts[i] = huh.NewOption(name, i)
	}
	return opts
}
