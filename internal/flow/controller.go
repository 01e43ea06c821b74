// Package flow enforces the three-step page sequence: landing, profile
// entry, shopping. The controller is constructed explicitly and injected
// into the pages that need it; there is no ambient global lookup.
package flow

import (
	"sync"

	"eventually/internal/logging"
)

// Page identifies one screen of the app.
type Page int

const (
	PageLanding Page = iota
	PageProfile
	PageShopping
	PageNotFound
)

// String returns the route-style name of the page.
func (p Page) String() string {
	switch p {
	case PageLanding:
		return "/"
	case PageProfile:
		return "/user-info"
	case PageShopping:
		return "/shopping"
	default:
		return "/404"
	}
}

// Notice is a transient, dismissible user-visible message.
type Notice struct {
	Title string
	Body  string
}

// SessionReader is the part of the session store the controller consults.
type SessionReader interface {
	Get() (string, bool)
}

// Controller tracks the current page and enforces transition rules.
type Controller struct {
	mu             sync.Mutex
	current        Page
	profileWritten bool
	session        SessionReader
}

// NewController starts a controller at the landing page.
func NewController(session SessionReader) *Controller {
	return &Controller{current: PageLanding, session: session}
}

// Current returns the active page.
func (c *Controller) Current() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// MarkProfileWritten records a successful profile submission or import,
// unlocking the shopping page.
func (c *Controller) MarkProfileWritten() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profileWritten = true
}

// Route maps a route path onto a page; unknown routes land on NotFound.
func Route(path string) Page {
	switch path {
	case "/", "/landing":
		return PageLanding
	case "/user-info", "/profile":
		return PageProfile
	case "/shopping":
		return PageShopping
	default:
		return PageNotFound
	}
}

// Goto attempts a transition to the requested page. It returns the page the
// controller actually landed on plus at most one notice explaining a
// redirect. The shopping guard is evaluated here, on entry, not polled.
func (c *Controller) Goto(to Page) (Page, *Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch to {
	case PageShopping:
		if _, ok := c.session.Get(); !ok {
			logging.FlowInfo("shopping entry without session; redirecting to profile")
			c.current = PageProfile
			return c.current, &Notice{
				Title: "Session Missing",
				Body:  "Please provide your user information first.",
			}
		}
		if !c.profileWritten {
			logging.FlowInfo("shopping entry without profile write; redirecting to profile")
			c.current = PageProfile
			return c.current, &Notice{
				Title: "Profile Needed",
				Body:  "Please provide your user information first.",
			}
		}
		c.current = PageShopping
		return c.current, nil

	case PageLanding, PageProfile, PageNotFound:
		c.current = to
		return c.current, nil
	}

	c.current = PageNotFound
	return c.current, nil
}
