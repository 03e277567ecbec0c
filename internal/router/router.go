package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/mondai-quiz/mondai/internal/quiz"
	"github.com/mondai-quiz/mondai/internal/screen"
)

// DefaultPath is the landing path; unmatched paths redirect here.
const DefaultPath = "/"

// NavigateMsg requests a transition to Path. Result carries a completed
// quiz session to the result screen.
type NavigateMsg struct {
	Path   string
	Result *quiz.Result
}

// Navigate returns a command that navigates to path.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// NavigateWithResult returns a command that navigates to path carrying r.
func NavigateWithResult(path string, r *quiz.Result) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path, Result: r} }
}

// Handler builds the screen for a matched route.
type Handler func(params Params, msg NavigateMsg) screen.Screen

// Route binds a path pattern to a handler.
type Route struct {
	Pattern string
	Handler Handler
}

// Router dispatches navigation paths to screens. Routes are tried in
// declaration order and the first match wins.
type Router struct {
	routes      []Route
	defaultPath string
	active      screen.Screen
	path        string
}

// New creates a router. An empty defaultPath means DefaultPath.
func New(routes []Route, defaultPath string) *Router {
	if defaultPath == "" {
		defaultPath = DefaultPath
	}
	return &Router{routes: routes, defaultPath: defaultPath}
}

// Navigate activates the screen for msg.Path and returns its Init command.
// An unmatched path redirects to the default path. The previous screen is
// closed if it implements screen.Closer.
func (r *Router) Navigate(msg NavigateMsg) tea.Cmd {
	route, params, ok := r.resolve(msg.Path)
	if !ok {
		if msg.Path == r.defaultPath {
			return nil
		}
		return r.Navigate(NavigateMsg{Path: r.defaultPath})
	}

	if c, ok := r.active.(screen.Closer); ok {
		c.Close()
	}
	r.path = msg.Path
	r.active = route.Handler(params, msg)
	if r.active == nil {
		return nil
	}
	return r.active.Init()
}

func (r *Router) resolve(path string) (Route, Params, bool) {
	for _, rt := range r.routes {
		if params, ok := Match(rt.Pattern, path); ok {
			return rt, params, true
		}
	}
	return Route{}, nil, false
}

// Active returns the current screen, or nil before the first navigation.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Path returns the path of the current screen.
func (r *Router) Path() string {
	return r.path
}

// Close closes the active screen, if it needs closing.
func (r *Router) Close() {
	if c, ok := r.active.(screen.Closer); ok {
		c.Close()
	}
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if nav, ok := msg.(NavigateMsg); ok {
		return r.Navigate(nav)
	}

	if r.active == nil {
		return nil
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
