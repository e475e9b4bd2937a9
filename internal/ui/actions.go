package ui

import (
	"github.com/jroimartin/gocui"

	"apiglass/internal/display"
	"apiglass/internal/logging"
	"apiglass/internal/model"
)

func (a *App) setFilter(s string) {
	a.filter = s
	a.selected = 0
}

func (a *App) startFilter(g *gocui.Gui, _ *gocui.View) error {
	if a.scr != screenEndpoints || a.modal != nil {
		return nil
	}
	a.filtering = true
	if v, err := g.View("filter"); err == nil {
		v.Clear()
		v.Write([]byte(a.filter))
		_ = v.SetCursor(len([]rune(a.filter)), 0)
	}
	return nil
}

// confirmFilter keeps the filter and moves to the first match.
func (a *App) confirmFilter(*gocui.Gui, *gocui.View) error {
	a.filtering = false
	if i := nthEndpointRow(a.rows, 1); i >= 0 {
		a.selected = i
	}
	return nil
}

func (a *App) moveSel(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if a.scr != screenEndpoints || a.busy() || len(a.rows) == 0 {
			return nil
		}
		a.selected += delta
		if a.selected < 0 {
			a.selected = 0
		}
		if a.selected >= len(a.rows) {
			a.selected = len(a.rows) - 1
		}
		return nil
	}
}

func (a *App) selectedRow() (row, bool) {
	if a.selected < 0 || a.selected >= len(a.rows) {
		return row{}, false
	}
	return a.rows[a.selected], true
}

// setGroupOpen expands or collapses the group under the cursor, or the
// group of the selected endpoint.
func (a *App) setGroupOpen(open bool) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if a.busy() || a.filter != "" {
			return nil
		}
		r, ok := a.selectedRow()
		if !ok {
			return nil
		}
		a.expanded[r.group] = open
		if !open && r.kind == rowEndpoint {
			for i, other := range a.rows {
				if other.kind == rowGroup && other.group == r.group {
					a.selected = i
					break
				}
			}
		}
		return nil
	}
}

func (a *App) activate(*gocui.Gui, *gocui.View) error {
	if a.scr != screenEndpoints || a.busy() {
		return nil
	}
	r, ok := a.selectedRow()
	if !ok {
		return nil
	}
	if r.kind == rowGroup {
		if a.filter == "" {
			a.expanded[r.group] = !a.expanded[r.group]
		}
		return nil
	}
	a.openCard(r.index)
	return nil
}

func (a *App) selectByNumber(n int) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if a.scr != screenEndpoints || a.busy() {
			return nil
		}
		i := nthEndpointRow(a.rows, n)
		if i < 0 {
			return nil
		}
		a.selected = i
		a.openCard(a.rows[i].index)
		return nil
	}
}

func (a *App) openCard(index int) {
	card := a.sess.Card(index)
	if card == nil {
		return
	}
	a.card = card
	a.pane = panePath
	if panes := availablePanes(card.Endpoint); len(panes) > 0 {
		a.pane = panes[0]
	}
	a.scr = screenBuilder
	a.status = ""
}

func (a *App) tabPane(g *gocui.Gui, _ *gocui.View) error {
	if a.scr != screenBuilder || a.modal != nil || a.card == nil {
		return nil
	}
	panes := availablePanes(a.card.Endpoint)
	if len(panes) == 0 {
		return nil
	}
	next := panes[0]
	for i, p := range panes {
		if p == a.pane && i+1 < len(panes) {
			next = panes[i+1]
		}
	}
	a.pane = next
	a.updatePanelColors(g)
	_, err := g.SetCurrentView(a.pane.view())
	return err
}

func (a *App) moveRow(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenBuilder || a.modal != nil || v == nil {
			return nil
		}
		ox, oy := v.Origin()
		cx, cy := v.Cursor()
		_, height := v.Size()
		total := len(viewLines(v))

		y := cy + delta
		switch {
		case y < 0:
			if oy > 0 {
				_ = v.SetOrigin(ox, oy-1)
			}
		case oy+y >= total:
		case y >= height:
			_ = v.SetOrigin(ox, oy+1)
		default:
			_ = v.SetCursor(cx, y)
		}
		return nil
	}
}

// cursorParam returns the parameter on the focused builder row.
func (a *App) cursorParam(v *gocui.View) (model.Param, bool) {
	if a.card == nil || v == nil {
		return model.Param{}, false
	}
	params := paneParams(a.card.Endpoint, a.pane)
	if a.pane == paneBody {
		if len(params) == 0 {
			return model.Param{}, false
		}
		return params[0], true
	}
	_, cy := v.Cursor()
	_, oy := v.Origin()
	i := oy + cy
	if i < 0 || i >= len(params) {
		return model.Param{}, false
	}
	return params[i], true
}

func (a *App) beginEdit(_ *gocui.Gui, v *gocui.View) error {
	if a.scr != screenBuilder || a.modal != nil {
		return nil
	}
	p, ok := a.cursorParam(v)
	if !ok {
		return nil
	}

	card := a.card
	current := ""
	if val := card.Value(p.Name); val.Defined() {
		current = val.String()
	}
	a.openModal(&modal{
		title:   " " + p.Name + " (" + string(p.Type) + "), enter=ok, esc=cancel ",
		initial: current,
		confirm: func(text string) {
			card.SetInput(p.Name, text)
		},
	})
	return nil
}

func (a *App) resetParam(_ *gocui.Gui, v *gocui.View) error {
	if a.scr != screenBuilder || a.modal != nil {
		return nil
	}
	p, ok := a.cursorParam(v)
	if !ok {
		return nil
	}
	a.card.SetInput(p.Name, "")
	return nil
}

// executeRequest sends the card's request in the background. Earlier runs
// are not cancelled; the card keeps whichever result is newest.
func (a *App) executeRequest(*gocui.Gui, *gocui.View) error {
	if a.scr == screenEndpoints || a.modal != nil || a.card == nil {
		return nil
	}
	card := a.card
	a.scr = screenResponse
	a.status = ""

	go func() {
		res, applied := card.Execute(a.ctx, a.exec)
		if !applied {
			logging.Logf("dropped stale result %s for %s", res.ID, card.Endpoint)
			return
		}
		a.update(func(*gocui.Gui) error { return nil })
	}()
	return nil
}

func (a *App) scrollResponse(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(_ *gocui.Gui, v *gocui.View) error {
		if a.scr != screenResponse || v == nil {
			return nil
		}
		ox, oy := v.Origin()
		oy += delta
		if oy < 0 {
			oy = 0
		}
		if last := len(viewLines(v)) - 1; oy > last {
			oy = last
		}
		if oy < 0 {
			oy = 0
		}
		return v.SetOrigin(ox, oy)
	}
}

func (a *App) responseToEndpoints(*gocui.Gui, *gocui.View) error {
	if a.scr != screenResponse || a.modal != nil {
		return nil
	}
	a.scr = screenEndpoints
	a.status = ""
	return nil
}

func (a *App) copyBody(*gocui.Gui, *gocui.View) error {
	return a.copyResult("body", func(r model.Result) string {
		if r.Failed() {
			return r.Error
		}
		return display.RenderBody(r)
	})
}

func (a *App) copyURL(*gocui.Gui, *gocui.View) error {
	return a.copyResult("url", func(r model.Result) string { return r.URL })
}

func (a *App) copyResult(what string, pick func(model.Result) string) error {
	if a.card == nil || a.modal != nil {
		return nil
	}
	res, ok := a.card.Result()
	if !ok {
		a.status = "nothing to copy yet"
		return nil
	}
	if err := a.opts.Copy(pick(res)); err != nil {
		logging.Errorf("clipboard: %v", err)
		a.status = colorRed + "copy failed: " + err.Error() + colorReset
		return nil
	}
	a.status = "copied " + what + " to clipboard"
	return nil
}
