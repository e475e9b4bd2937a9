package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/jroimartin/gocui"
	"github.com/muesli/termenv"

	"apiglass/internal/logging"
	"apiglass/internal/model"
	"apiglass/internal/openapi"
	"apiglass/internal/sample"
	"apiglass/internal/session"
)

type screen int

const (
	screenEndpoints screen = iota
	screenBuilder
	screenResponse
)

type focusPane int

const (
	panePath focusPane = iota
	paneQuery
	paneBody
)

func (p focusPane) view() string {
	switch p {
	case paneQuery:
		return "query"
	case paneBody:
		return "body"
	default:
		return "path"
	}
}

const themeLight = "light"

type Options struct {
	Theme  string
	Editor string

	// Profile caps the colors used when highlighting bodies. gocui only
	// renders the 8 basic colors, so anything richer is lowered to ANSI.
	Profile termenv.Profile

	// Copy writes text to the clipboard; defaults to the system clipboard.
	Copy func(string) error
}

// modal is a one-line prompt drawn over the current screen.
type modal struct {
	title   string
	initial string
	confirm func(text string)
}

type App struct {
	sess *session.Session
	exec session.Executor
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	g       *gocui.Gui
	pending []func(*gocui.Gui) error

	scr   screen
	theme string

	// endpoint list
	filter    string
	filtering bool
	rows      []row
	selected  int
	expanded  map[string]bool

	// builder
	card *session.Card
	pane focusPane

	modal *modal

	suspendEditorFile  string
	suspendEditorParam string

	status string
}

func NewApp(sess *session.Session, exec session.Executor, opts Options) *App {
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Profile < termenv.ANSI {
		opts.Profile = termenv.ANSI
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		sess:     sess,
		exec:     exec,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		theme:    strings.ToLower(opts.Theme),
		expanded: map[string]bool{},
	}
}

// Init loads the starting endpoint list. A spec source wins over the
// sample; with neither the list starts empty.
func (a *App) Init(ctx context.Context, spec string, loadSample bool) error {
	a.cancel()
	a.ctx, a.cancel = context.WithCancel(ctx)

	switch {
	case strings.TrimSpace(spec) != "":
		imp, err := a.sess.ImportFrom(a.ctx, spec)
		if err != nil {
			return err
		}
		a.status = importStatus(imp)
	case loadSample:
		a.sess.LoadSample()
	}
	return nil
}

func importStatus(imp *openapi.Imported) string {
	msg := fmt.Sprintf("imported %d endpoints (%s %s, %s)", len(imp.Endpoints), imp.Dialect, imp.Version, imp.Format)
	if n := len(imp.Warnings); n > 0 {
		msg += fmt.Sprintf(", %d warnings in debug log", n)
	}
	return msg
}

func (a *App) Run() error {
	defer a.cancel()

	// gocui has no suspend/resume, so running $EDITOR means leaving the
	// main loop and building a fresh GUI afterwards.
	for {
		g, err := gocui.NewGui(gocui.OutputNormal)
		if err != nil {
			return err
		}
		g.Cursor = true
		g.Highlight = true
		g.InputEsc = true
		a.applyTheme(g)
		g.SetManagerFunc(a.layout)

		if err := a.bindKeys(g); err != nil {
			g.Close()
			return err
		}
		a.setGui(g)

		err = g.MainLoop()
		a.setGui(nil)
		g.Close()

		if a.suspendEditorFile != "" {
			file, param := a.suspendEditorFile, a.suspendEditorParam
			a.suspendEditorFile, a.suspendEditorParam = "", ""
			if err := a.runExternalEditor(file, param); err != nil {
				logging.Errorf("editor: %v", err)
				a.status = err.Error()
			}
			continue
		}

		if err != nil && err != gocui.ErrQuit {
			return err
		}
		return nil
	}
}

func (a *App) setGui(g *gocui.Gui) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.g = g
	if g == nil {
		return
	}
	for _, f := range a.pending {
		g.Update(f)
	}
	a.pending = nil
}

// update runs f on the UI goroutine. Work finishing while the GUI is
// suspended is replayed once it comes back.
func (a *App) update(f func(*gocui.Gui) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.g == nil {
		a.pending = append(a.pending, f)
		return
	}
	a.g.Update(f)
}

var allViews = []string{"header", "footer", "filter", "endpoints", "selected", "path", "query", "body", "response", "modal"}

func (a *App) themeColors() (bg, fg gocui.Attribute) {
	if a.theme == themeLight {
		return gocui.ColorWhite, gocui.ColorBlack
	}
	return gocui.ColorBlack, gocui.ColorWhite
}

func (a *App) applyTheme(g *gocui.Gui) {
	bg, fg := a.themeColors()
	g.BgColor, g.FgColor = bg, fg
	g.SelFgColor = gocui.ColorGreen
	for _, name := range allViews {
		if v, err := g.View(name); err == nil {
			v.BgColor, v.FgColor = bg, fg
		}
	}
}

func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("header", 0, 0, maxX-1, 2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
	}
	a.renderHeader(g)

	if v, err := g.SetView("footer", 0, maxY-2, maxX-1, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
	}
	a.renderFooter(g)

	var err error
	switch a.scr {
	case screenEndpoints:
		err = a.layoutEndpoints(g, maxX, maxY)
	case screenBuilder:
		err = a.layoutBuilder(g, maxX, maxY)
	case screenResponse:
		err = a.layoutResponse(g, maxX, maxY)
	}
	if err != nil {
		return err
	}
	return a.layoutModal(g, maxX, maxY)
}

func (a *App) layoutEndpoints(g *gocui.Gui, maxX, maxY int) error {
	a.clearMainViews(g, "filter", "endpoints")

	if v, err := g.SetView("filter", 0, 2, maxX-1, 4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Filter (/)"
		v.Editor = changeEditor{onChange: a.setFilter}
	}
	if v, err := g.SetView("endpoints", 0, 4, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Endpoints"
		v.Highlight = true
		v.SelFgColor = gocui.ColorBlack
		v.SelBgColor = gocui.ColorGreen
	}
	a.renderFilter(g)
	a.renderEndpoints(g)

	if a.modal != nil {
		return nil
	}
	focus := "endpoints"
	if a.filtering {
		focus = "filter"
	}
	_, err := g.SetCurrentView(focus)
	return err
}

func paneParams(ep model.Endpoint, p focusPane) []model.Param {
	var out []model.Param
	for _, prm := range ep.Parameters {
		switch {
		case p == panePath && prm.In == model.ParamInPath,
			p == paneQuery && prm.In == model.ParamInQuery,
			p == paneBody && prm.In == model.ParamInBody:
			out = append(out, prm)
		}
	}
	return out
}

// availablePanes lists the builder panes that have something to edit.
func availablePanes(ep model.Endpoint) []focusPane {
	var out []focusPane
	if len(paneParams(ep, panePath)) > 0 {
		out = append(out, panePath)
	}
	if len(paneParams(ep, paneQuery)) > 0 {
		out = append(out, paneQuery)
	}
	if _, ok := ep.BodyParam(); ok {
		out = append(out, paneBody)
	}
	return out
}

func (a *App) layoutBuilder(g *gocui.Gui, maxX, maxY int) error {
	if a.card == nil {
		a.scr = screenEndpoints
		return a.layoutEndpoints(g, maxX, maxY)
	}

	panes := availablePanes(a.card.Endpoint)
	if len(panes) == 0 {
		// a lone empty pane says there is nothing to fill in
		panes = []focusPane{panePath}
	}
	a.ensureValidPane(panes)

	keep := []string{"selected"}
	for _, p := range panes {
		keep = append(keep, p.view())
	}
	a.clearMainViews(g, keep...)

	if v, err := g.SetView("selected", 0, 2, maxX-1, 6); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Selected endpoint"
	}

	top, bottom := 6, maxY-3
	height := (bottom - top) / len(panes)
	for i, p := range panes {
		y0 := top + i*height
		y1 := top + (i+1)*height
		if i == len(panes)-1 {
			y1 = bottom
		}
		if v, err := g.SetView(p.view(), 0, y0, maxX-1, y1); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			v.Highlight = true
		}
	}

	a.renderBuilder(g)
	a.updatePanelColors(g)

	if a.modal != nil {
		return nil
	}
	_, err := g.SetCurrentView(a.pane.view())
	return err
}

func (a *App) ensureValidPane(panes []focusPane) {
	for _, p := range panes {
		if p == a.pane {
			return
		}
	}
	a.pane = panes[0]
}

func (a *App) updatePanelColors(g *gocui.Gui) {
	for _, p := range []focusPane{panePath, paneQuery, paneBody} {
		v, err := g.View(p.view())
		if err != nil {
			continue
		}
		if a.pane == p && a.modal == nil {
			v.SelBgColor = gocui.ColorGreen
			v.SelFgColor = gocui.ColorBlack
		} else {
			v.SelBgColor = gocui.ColorDefault
			v.SelFgColor = gocui.ColorDefault
		}
	}
}

func (a *App) layoutResponse(g *gocui.Gui, maxX, maxY int) error {
	a.clearMainViews(g, "response")

	if v, err := g.SetView("response", 0, 2, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Response"
	}
	a.renderResponse(g)

	if a.modal != nil {
		return nil
	}
	_, err := g.SetCurrentView("response")
	return err
}

func (a *App) layoutModal(g *gocui.Gui, maxX, maxY int) error {
	if a.modal == nil {
		return nil
	}

	width := 70
	if width > maxX-4 {
		width = maxX - 4
	}
	x0 := (maxX - width) / 2
	y0 := (maxY - 3) / 2
	if v, err := g.SetView("modal", x0, y0, x0+width, y0+2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = a.modal.title
		v.Editable = true
		v.Editor = singleLineEditor{}
		v.BgColor, v.FgColor = a.themeColors()
		fmt.Fprint(v, a.modal.initial)
		_ = v.SetCursor(len([]rune(a.modal.initial)), 0)
	}
	if _, err := g.SetViewOnTop("modal"); err != nil {
		return err
	}
	_, err := g.SetCurrentView("modal")
	return err
}

func (a *App) clearMainViews(g *gocui.Gui, keep ...string) {
	keepSet := map[string]bool{"header": true, "footer": true, "modal": a.modal != nil}
	for _, k := range keep {
		keepSet[k] = true
	}
	for _, name := range allViews {
		if keepSet[name] {
			continue
		}
		_ = g.DeleteView(name)
	}
}

func (a *App) bindKeys(g *gocui.Gui) error {
	type binding struct {
		view    string
		key     any
		handler func(*gocui.Gui, *gocui.View) error
	}

	// rune keys are bound per view so they still type inside inputs
	bindings := []binding{
		{"", gocui.KeyCtrlC, a.quit},
		{"", gocui.KeyEsc, a.back},
		{"", gocui.KeyTab, a.tabPane},
		{"", gocui.KeyCtrlR, a.executeRequest},
		{"", gocui.KeyCtrlL, a.loadSample},
		{"", gocui.KeyCtrlO, a.openImport},
		{"", gocui.KeyCtrlT, a.toggleTheme},

		{"endpoints", 'q', a.quit},
		{"endpoints", '/', a.startFilter},
		{"endpoints", gocui.KeyArrowDown, a.moveSel(1)},
		{"endpoints", gocui.KeyArrowUp, a.moveSel(-1)},
		{"endpoints", gocui.KeyArrowRight, a.setGroupOpen(true)},
		{"endpoints", gocui.KeyArrowLeft, a.setGroupOpen(false)},
		{"endpoints", gocui.KeyEnter, a.activate},
		{"filter", gocui.KeyEnter, a.confirmFilter},

		{"path", gocui.KeyEnter, a.beginEdit},
		{"query", gocui.KeyEnter, a.beginEdit},
		{"body", gocui.KeyEnter, a.editBody},
		{"modal", gocui.KeyEnter, a.confirmModal},

		{"response", 'q', a.quit},
		{"response", 'r', a.executeRequest},
		{"response", 'y', a.copyBody},
		{"response", 'u', a.copyURL},
		{"response", gocui.KeyArrowDown, a.scrollResponse(1)},
		{"response", gocui.KeyArrowUp, a.scrollResponse(-1)},
		{"response", gocui.KeyPgdn, a.scrollResponse(10)},
		{"response", gocui.KeyPgup, a.scrollResponse(-10)},
		{"response", gocui.KeyEnter, a.responseToEndpoints},
	}
	for i := 1; i <= 9; i++ {
		bindings = append(bindings, binding{"endpoints", rune('0' + i), a.selectByNumber(i)})
	}
	for _, name := range []string{"path", "query", "body"} {
		bindings = append(bindings,
			binding{name, 'q', a.quit},
			binding{name, 'd', a.resetParam},
			binding{name, gocui.KeyArrowDown, a.moveRow(1)},
			binding{name, gocui.KeyArrowUp, a.moveRow(-1)},
		)
	}

	for _, b := range bindings {
		if err := g.SetKeybinding(b.view, b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) quit(*gocui.Gui, *gocui.View) error { return gocui.ErrQuit }

func (a *App) back(g *gocui.Gui, _ *gocui.View) error {
	if a.modal != nil {
		a.closeModal(g)
		return nil
	}
	a.status = ""
	switch a.scr {
	case screenResponse:
		a.scr = screenBuilder
	case screenBuilder:
		a.scr = screenEndpoints
	case screenEndpoints:
		if a.filtering || a.filter != "" {
			a.filtering = false
			a.setFilter("")
			if v, err := g.View("filter"); err == nil {
				v.Clear()
				_ = v.SetCursor(0, 0)
			}
		}
	}
	return nil
}

func (a *App) busy() bool {
	return a.modal != nil || a.filtering
}

// afterLoad resets navigation once the endpoint list has been replaced.
func (a *App) afterLoad() {
	a.card = nil
	a.scr = screenEndpoints
	a.filter = ""
	a.filtering = false
	a.selected = 0
	a.expanded = map[string]bool{}
}

func (a *App) loadSample(*gocui.Gui, *gocui.View) error {
	if a.busy() {
		return nil
	}
	a.sess.LoadSample()
	a.afterLoad()
	a.status = fmt.Sprintf("loaded %d sample endpoints", a.sess.Len())
	return nil
}

func (a *App) openImport(*gocui.Gui, *gocui.View) error {
	if a.busy() {
		return nil
	}
	a.openModal(&modal{
		title:   " Import OpenAPI: path or URL, empty for the sample document ",
		confirm: a.startImport,
	})
	return nil
}

func (a *App) startImport(source string) {
	source = strings.TrimSpace(source)
	a.status = "importing..."

	go func() {
		var (
			imp *openapi.Imported
			err error
		)
		if source == "" {
			imp, err = a.sess.Import(a.ctx, sample.Spec)
		} else {
			imp, err = a.sess.ImportFrom(a.ctx, source)
		}

		a.update(func(*gocui.Gui) error {
			if err != nil {
				a.status = colorRed + "import failed: " + err.Error() + colorReset
				return nil
			}
			a.afterLoad()
			a.status = importStatus(imp)
			return nil
		})
	}()
}

func (a *App) toggleTheme(g *gocui.Gui, _ *gocui.View) error {
	if a.theme == themeLight {
		a.theme = "dark"
	} else {
		a.theme = themeLight
	}
	a.applyTheme(g)
	return nil
}

func (a *App) openModal(m *modal) {
	a.modal = m
}

func (a *App) closeModal(g *gocui.Gui) {
	a.modal = nil
	_ = g.DeleteView("modal")
}

func (a *App) confirmModal(g *gocui.Gui, v *gocui.View) error {
	m := a.modal
	if m == nil {
		return nil
	}
	text := viewText(v)
	a.closeModal(g)
	m.confirm(text)
	return nil
}
