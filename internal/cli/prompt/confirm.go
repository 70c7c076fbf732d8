// Package prompt provides interactive terminal prompts for CLI commands.
package prompt

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user aborts a prompt with Ctrl+C.
var ErrAborted = errors.New("aborted")

// Confirm asks a yes/no question. Empty input selects defaultYes.
// Returns ErrAborted if the user presses Ctrl+C.
//
// The label must not carry its own y/n hint; promptui renders one as part
// of the confirm prompt.
func Confirm(label string, defaultYes bool) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	answer, err := p.Run()
	return interpretConfirm(answer, err, defaultYes)
}

// interpretConfirm maps a confirm prompt's result to a decision. promptui
// reports everything except an explicit "y" as ErrAbort, including empty
// input, so the default is applied here rather than by the prompt.
func interpretConfirm(answer string, err error, defaultYes bool) (bool, error) {
	switch {
	case err == nil:
		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes", nil
	case errors.Is(err, promptui.ErrInterrupt):
		return false, ErrAborted
	case errors.Is(err, promptui.ErrAbort):
		if answer == "" {
			return defaultYes, nil
		}
		return false, nil
	default:
		return false, err
	}
}

// ConfirmWithForce skips the prompt when force is set.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label, false)
}
