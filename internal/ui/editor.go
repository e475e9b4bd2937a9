package ui

import (
	"os"
	"os/exec"
	"strings"

	"github.com/jroimartin/gocui"

	"apiglass/internal/errdef"
	"apiglass/internal/logging"
)

// singleLineEditor leaves Enter alone so the view's keybinding gets it.
type singleLineEditor struct{}

func (e singleLineEditor) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	switch {
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		v.EditDelete(true)
	case key == gocui.KeyDelete:
		v.EditDelete(false)
	case key == gocui.KeyArrowLeft:
		v.MoveCursor(-1, 0, false)
	case key == gocui.KeyArrowRight:
		v.MoveCursor(1, 0, false)
	case key == gocui.KeyHome || key == gocui.KeyCtrlA:
		_ = v.SetCursor(0, 0)
	case key == gocui.KeyEnd || key == gocui.KeyCtrlE:
		_ = v.SetCursor(len([]rune(viewText(v))), 0)
	case key == gocui.KeySpace:
		v.EditWrite(' ')
	case key == gocui.KeyEnter:
	case ch != 0 && mod == 0:
		v.EditWrite(ch)
	}
}

// changeEditor is a singleLineEditor that reports every edit.
type changeEditor struct {
	onChange func(string)
}

func (e changeEditor) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	singleLineEditor{}.Edit(v, key, ch, mod)
	if e.onChange != nil {
		e.onChange(viewText(v))
	}
}

// editBody writes the current body text to a temp file and leaves the main
// loop so Run can hand the terminal to $EDITOR.
func (a *App) editBody(*gocui.Gui, *gocui.View) error {
	if a.scr != screenBuilder || a.busy() || a.card == nil {
		return nil
	}
	p, ok := a.card.Endpoint.BodyParam()
	if !ok {
		return nil
	}

	seed := a.card.BodyText(p.Name)
	if strings.TrimSpace(seed) == "" {
		seed = "{}"
	}
	if !strings.HasSuffix(seed, "\n") {
		seed += "\n"
	}

	f, err := os.CreateTemp("", "apiglass-body-*.json")
	if err != nil {
		a.status = err.Error()
		return nil
	}
	defer f.Close()
	if _, err := f.WriteString(seed); err != nil {
		a.status = err.Error()
		return nil
	}

	a.suspendEditorFile = f.Name()
	a.suspendEditorParam = p.Name
	return gocui.ErrQuit
}

func (a *App) runExternalEditor(file, param string) error {
	defer os.Remove(file)

	args := splitCommand(a.opts.Editor)
	cmd := exec.Command(args[0], append(args[1:], file)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errdef.Wrap(errdef.CodeUI, err, "run editor %s", args[0])
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "read edited body")
	}
	if a.card == nil {
		return nil
	}

	text := strings.TrimSpace(string(b))
	if !a.card.SetInput(param, text) {
		logging.Logf("body for %s is not valid json", a.card.Endpoint)
		return errdef.New(errdef.CodeUI, "body is not valid JSON, the last valid body is still sent")
	}
	a.status = ""
	return nil
}

// splitCommand splits on whitespace only; quoting is not supported.
func splitCommand(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return []string{"vi"}
	}
	return fields
}
