package main

import (
	"errors"
	"path/filepath"
	"testing"

	"eventually/internal/config"
	"eventually/internal/flow"
	"eventually/internal/gateway"
	"eventually/internal/profile"
	"eventually/internal/recommend"
	"eventually/internal/session"

	tea "github.com/charmbracelet/bubbletea"

	"eventually/cmd/evy/ui"
)

func testDeps(t *testing.T) *deps {
	t.Helper()
	cfg := config.DefaultConfig()
	store := session.NewStore(filepath.Join(t.TempDir(), "session"))
	return &deps{
		cfg:    cfg,
		styles: ui.NewStyles(ui.DarkTheme()),
		store:  store,
		holder: profile.NewHolder(),
		client: gateway.NewClient(gateway.Config{BaseURL: "http://127.0.0.1:1"}),
		ctrl:   flow.NewController(store),
	}
}

func TestSubmissionResultReachesUnmountedProfilePage(t *testing.T) {
	d := testDeps(t)
	app := newApp(d)

	// Submission in flight, then the user backs out to the landing page
	// before the result arrives.
	app.profile.submitting = true
	d.ctrl.Goto(flow.PageLanding)

	next, _ := app.Update(profileSubmittedMsg{err: errors.New("backend down")})
	app = next.(appModel)

	if app.profile.submitting {
		t.Fatal("profile page still submitting after its result arrived on another page")
	}
}

func TestSubmitControlAliveAfterLeavingAndReturning(t *testing.T) {
	d := testDeps(t)
	app := testNavigate(t, newApp(d), flow.PageProfile)

	app.profile.submitting = true
	app = testNavigate(t, app, flow.PageLanding)

	next, _ := app.Update(profileSubmittedMsg{err: errors.New("backend down")})
	app = next.(appModel)
	app = testNavigate(t, app, flow.PageProfile)

	// ctrl+s must run the submit path again; the empty form makes that
	// observable as validation errors.
	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	app = next.(appModel)
	if app.profile.errs == nil {
		t.Fatal("ctrl+s dead after returning to the profile page")
	}
}

func TestRecommendationResultReachesUnmountedShoppingPage(t *testing.T) {
	d := testDeps(t)
	d.ctrl.MarkProfileWritten()
	app := newApp(d)

	app.shopping.loading = true
	d.ctrl.Goto(flow.PageProfile)

	next, _ := app.Update(recsMsg{err: errors.New("backend down")})
	app = next.(appModel)

	if app.shopping.loading {
		t.Fatal("shopping page still loading after its result arrived on another page")
	}
}

func TestRecommendationResultKeptWhileUnmounted(t *testing.T) {
	d := testDeps(t)
	app := newApp(d)
	app.shopping.loading = true
	d.ctrl.Goto(flow.PageProfile)

	res := recommend.Result{Products: []recommend.Product{{ID: "p1", Name: "Thing"}}}
	next, _ := app.Update(recsMsg{result: res})
	app = next.(appModel)

	if app.shopping.result == nil || len(app.shopping.result.Products) != 1 {
		t.Fatal("result dropped while the shopping page was unmounted")
	}
}

func testNavigate(t *testing.T, app appModel, to flow.Page) appModel {
	t.Helper()
	next, _ := app.Update(navMsg{to: to})
	return next.(appModel)
}
