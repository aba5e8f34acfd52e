package ui

import (
	"github.com/charmbracelet/huh/spinner"
)

// spin shows a spinner titled title while action runs
var spin = func(title string, action func()) error {
	return spinner.New().
		Title(title).
		Action(action).
		Run()
}

// Progress runs an action with a spinner display, returning any error from the action.
// If not TTY, just prints the title and runs the action.
// On a TTY the title is printed once the spinner stops, whether or not the
// action failed, so an error always follows the stage it belongs to.
func (p *Printer) Progress(title string, action func() error) error {
	if !p.tty {
		p.Println(title)
		return action()
	}

	var actionErr error
	spinErr := spin(title, func() {
		actionErr = action()
	})
	p.Println(title)

	if spinErr != nil {
		return spinErr
	}
	return actionErr
}
