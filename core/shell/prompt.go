package shell

import (
	"io"

	"github.com/fatih/color"
	"github.com/josephlewis42/minibash/core/config"
	"github.com/josephlewis42/minibash/core/vos"
	"github.com/mattn/go-isatty"
)

var promptColor = color.New(color.FgGreen, color.Bold)

func init() {
	// Whether to color is decided per shell, not by the package's global
	// terminal detection.
	promptColor.EnableColor()
}

// shouldColor decides if output written to w gets colored for the given
// mode.
func shouldColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorAuto:
		fd, ok := vos.File(w)
		return ok && (isatty.IsTerminal(fd.Fd()) || isatty.IsCygwinTerminal(fd.Fd()))
	default:
		return false
	}
}

func (s *Shell) prompt() string {
	if shouldColor(s.Config.Color, s.IO.Stdout()) {
		return promptColor.Sprint(s.Config.Prompt)
	}
	return s.Config.Prompt
}
