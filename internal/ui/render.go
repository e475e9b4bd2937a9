package ui

import (
	"fmt"
	"strings"

	"github.com/jroimartin/gocui"

	"apiglass/internal/display"
	"apiglass/internal/model"
)

func (a *App) renderHeader(g *gocui.Gui) {
	v, err := g.View("header")
	if err != nil {
		return
	}
	v.Clear()

	source := a.sess.Source()
	if source == "" {
		source = "no endpoints loaded"
	} else {
		source = fmt.Sprintf("%s (%d endpoints)", source, a.sess.Len())
	}
	theme := a.theme
	if theme == "" {
		theme = "dark"
	}
	fmt.Fprintf(v, "%sapiglass%s  -  %s   %s[%s]%s\n", colorGreen, colorReset, source, colorDim, theme, colorReset)
}

func (a *App) footerHelp() string {
	if a.modal != nil {
		return "enter: ok   esc: cancel"
	}
	switch a.scr {
	case screenBuilder:
		if a.pane == paneBody {
			return "tab: pane   enter: edit json ($EDITOR)   d: clear   ctrl+r: run   esc: back   q: quit"
		}
		return "tab: pane   enter: edit   d: clear   ctrl+r: run   esc: back   q: quit"
	case screenResponse:
		return "up/down/pgup/pgdn: scroll   r: rerun   y: copy body   u: copy url   enter: endpoints   esc: back"
	}
	if a.filtering {
		return "type to filter   enter: keep   esc: clear"
	}
	return "/: filter   enter: open   left/right: fold   1-9: quick open   ctrl+l: sample   ctrl+o: import   ctrl+t: theme   q: quit"
}

func (a *App) renderFooter(g *gocui.Gui) {
	v, err := g.View("footer")
	if err != nil {
		return
	}
	v.Clear()
	msg := a.status
	if msg == "" {
		msg = a.footerHelp()
	}
	fmt.Fprint(v, msg)
}

func (a *App) renderFilter(g *gocui.Gui) {
	v, err := g.View("filter")
	if err != nil {
		return
	}
	v.Editable = a.filtering
	if a.filtering {
		// the editor owns the buffer while typing
		return
	}
	v.Clear()
	fmt.Fprint(v, a.filter)
}

func (a *App) renderEndpoints(g *gocui.Gui) {
	v, err := g.View("endpoints")
	if err != nil {
		return
	}
	v.Clear()

	eps := a.sess.Endpoints()
	a.rows = buildRows(a.sess.Groups(), eps, a.filter, a.expanded)
	if a.selected >= len(a.rows) {
		a.selected = len(a.rows) - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}

	if len(eps) == 0 {
		fmt.Fprintf(v, "%sNo endpoints yet. ctrl+l loads the sample API, ctrl+o imports an OpenAPI or Swagger document.%s\n", colorDim, colorReset)
		return
	}
	if len(a.rows) == 0 {
		fmt.Fprintf(v, "%sNothing matches %q%s\n", colorDim, a.filter, colorReset)
		return
	}

	width, _ := v.Size()
	n := 0
	for _, r := range a.rows {
		if r.kind == rowGroup {
			fmt.Fprintln(v, groupLine(r))
			continue
		}
		n++
		fmt.Fprintln(v, endpointLine(n, eps[r.index], width))
	}
	focusLine(v, a.selected)
}

// focusLine puts the cursor on line, scrolling it into view.
func focusLine(v *gocui.View, line int) {
	_, height := v.Size()
	oy := 0
	if height > 0 && line >= height {
		oy = line - height + 1
	}
	_ = v.SetOrigin(0, oy)
	_ = v.SetCursor(0, line-oy)
}

func (a *App) renderBuilder(g *gocui.Gui) {
	card := a.card
	ep := card.Endpoint

	if v, err := g.View("selected"); err == nil {
		v.Clear()
		fmt.Fprintf(v, "%s %s", colorizeMethod(ep.Method), highlightPlaceholders(ep.URL))
		if ep.Description != "" {
			fmt.Fprintf(v, "  %s%s%s", colorDim, ep.Description, colorReset)
		}
		fmt.Fprintln(v)

		if req, err := card.Request(); err != nil {
			fmt.Fprintf(v, "%s%s%s\n", colorRed, err.Error(), colorReset)
		} else {
			fmt.Fprintf(v, "-> %s %s\n", req.Method, req.URL)
		}
		if ignored := ignoredParams(ep); ignored != "" {
			fmt.Fprintf(v, "%snot sent: %s%s\n", colorDim, ignored, colorReset)
		}
	}

	for _, pane := range []focusPane{panePath, paneQuery} {
		v, err := g.View(pane.view())
		if err != nil {
			continue
		}
		params := paneParams(ep, pane)
		v.Title = "Path params"
		if pane == paneQuery {
			v.Title = "Query params"
		}
		v.Clear()
		if len(params) == 0 {
			v.Title = "Parameters"
			fmt.Fprintln(v, "(none)")
			continue
		}
		w := nameWidth(params)
		for _, p := range params {
			fmt.Fprintln(v, paramLine(p, card.Value(p.Name), w))
		}
	}

	if v, err := g.View("body"); err == nil {
		v.Clear()
		p, _ := ep.BodyParam()
		v.Title = "Body"
		if desc := firstLine(p.Description); desc != "" {
			v.Title += ": " + desc
		}
		if !card.BodyValid(p.Name) {
			v.Title = "Body: invalid JSON, sending the last valid body"
		}
		text := card.BodyText(p.Name)
		if strings.TrimSpace(text) == "" {
			fmt.Fprintf(v, "%s(empty, enter opens $EDITOR)%s\n", colorDim, colorReset)
			return
		}
		fmt.Fprintln(v, display.Highlight(text, model.DisplayJSON, a.opts.Profile, display.StyleForTheme(a.theme)))
	}
}

func firstLine(s string) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	return s
}

// ignoredParams lists parameters in locations the request builder skips.
func ignoredParams(ep model.Endpoint) string {
	var parts []string
	for _, p := range ep.Parameters {
		switch p.In {
		case model.ParamInPath, model.ParamInQuery, model.ParamInBody:
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Name, p.In))
	}
	return strings.Join(parts, ", ")
}

func (a *App) renderResponse(g *gocui.Gui) {
	v, err := g.View("response")
	if err != nil {
		return
	}
	v.Clear()

	card := a.card
	if card == nil {
		fmt.Fprintln(v, "no endpoint selected")
		return
	}
	fmt.Fprintf(v, "%s %s\n", colorizeMethod(card.Endpoint.Method), highlightPlaceholders(card.Endpoint.URL))

	loading := card.Loading()
	if loading {
		fmt.Fprintf(v, "%srequest in flight...%s\n", colorYellow, colorReset)
	}
	res, ok := card.Result()
	if !ok {
		if !loading {
			fmt.Fprintf(v, "%sno response yet, ctrl+r sends the request%s\n", colorDim, colorReset)
		}
		return
	}

	mode := display.Classify(res)
	fmt.Fprintln(v, colorizeStatus(res))
	fmt.Fprintf(v, "time: %d ms   url: %s\n", res.Millis(), res.URL)
	fmt.Fprintf(v, "%sid: %s   content-type: %s   shown as: %s%s\n", colorDim, res.ID, firstNonEmpty(res.ContentType, "-"), mode, colorReset)
	if res.Error != "" {
		fmt.Fprintf(v, "%serror: %s%s\n", colorRed, res.Error, colorReset)
	}
	fmt.Fprintln(v)

	if res.Failed() {
		fmt.Fprintf(v, "%s(no response body)%s\n", colorDim, colorReset)
		return
	}
	body := display.RenderBody(res)
	fmt.Fprintln(v, display.Highlight(body, mode, a.opts.Profile, display.StyleForTheme(a.theme)))
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func viewText(v *gocui.View) string {
	// gocui appends a trailing newline to the buffer
	return strings.TrimSuffix(v.Buffer(), "\n")
}

func viewLines(v *gocui.View) []string {
	buf := strings.TrimSuffix(v.Buffer(), "\n")
	if buf == "" {
		return nil
	}
	return strings.Split(buf, "\n")
}
