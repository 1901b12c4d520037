package console

import (
	"context"
	"errors"
	"strings"
)

// QuitKey ends the menu loop.
const QuitKey = "q"

// Action is one menu entry.
type Action interface {
	Key() string
	Description() string
	Run(ctx context.Context, p *Prompter) error
}

type menuState int

const (
	stateRunning menuState = iota
	stateTerminated
)

// Menu dispatches single-letter commands to actions until the user quits.
type Menu struct {
	prompter *Prompter
	actions  []Action
}

// NewMenu lists actions in the order given.
func NewMenu(p *Prompter, actions ...Action) *Menu {
	return &Menu{prompter: p, actions: actions}
}

// Run loops until the quit key, end of input, or ctx is cancelled. Action
// failures are reported and the menu keeps running.
func (m *Menu) Run(ctx context.Context) error {
	state := stateRunning
	for state == stateRunning {
		m.printMenu()

		raw, err := m.prompter.Ask(ctx, "\nAction: ")
		if err != nil {
			return endOfInput(err)
		}

		choice := strings.ToLower(strings.TrimSpace(raw))
		if choice == QuitKey {
			state = stateTerminated
			continue
		}

		action := m.lookup(choice)
		if action == nil {
			m.prompter.Println("\nYou must select from the menu options or enter 'q' to quit.")
			continue
		}

		if err := action.Run(ctx, m.prompter); err != nil {
			if errors.Is(err, ErrInputClosed) || ctx.Err() != nil {
				return endOfInput(err)
			}
			m.prompter.Printf("\nError: %v\n", err)
		}
	}
	return nil
}

func (m *Menu) printMenu() {
	m.prompter.Printf("\n%s MENU %s\n", strings.Repeat("=", 10), strings.Repeat("=", 10))
	m.prompter.Printf("\nEnter '%s' to quit\n\n", QuitKey)
	for _, a := range m.actions {
		m.prompter.Printf("%s) %s\n", a.Key(), a.Description())
	}
}

func (m *Menu) lookup(key string) Action {
	for _, a := range m.actions {
		if a.Key() == key {
			return a
		}
	}
	return nil
}

// endOfInput turns a closed input stream into a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, ErrInputClosed) {
		return nil
	}
	return err
}
