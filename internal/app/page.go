package app

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/Tokebay/shorty/internal/logger"
	"github.com/Tokebay/shorty/internal/session"
	"github.com/Tokebay/shorty/internal/view"
	"go.uber.org/zap"
)

// HeaderSlot receives the navigation rendered for the page.
type HeaderSlot interface {
	Render(view.Nav)
}

// Elements are the parts of a page the client drives. Any of them may be
// nil; the feature depending on a nil element is disabled.
type Elements struct {
	Header        HeaderSlot
	Alerts        Feedback
	SignInForm    Form
	SignUpForm    Form
	ShortenForm   Form
	ShortenResult Feedback
}

// Page is one page instance. Its auth state is evaluated once by Load and
// does not follow later changes to the store.
type Page struct {
	deps   Deps
	els    Elements
	nav    view.Nav
	closed atomic.Bool

	signIn  *Workflow
	signUp  *Workflow
	shorten *Workflow
}

func Load(ctx context.Context, deps Deps, els Elements) *Page {
	deps = deps.withDefaults()
	p := &Page{deps: deps, els: els}
	p.nav = view.Render(view.Resolve(p.storedToken(ctx)), deps.Printer)
	if els.Header != nil {
		els.Header.Render(p.nav)
	}

	p.signIn = NewSignIn(deps, els.Alerts)
	p.signUp = NewSignUp(deps, els.Alerts)
	if els.ShortenResult != nil {
		p.shorten = NewShorten(deps, els.ShortenResult)
	}

	logger.Log.Debug("Page loaded", zap.Stringer("state", p.nav.State))
	return p
}

func (p *Page) State() view.State {
	return p.nav.State
}

func (p *Page) Nav() view.Nav {
	return p.nav
}

// SignOut clears the credential and navigates to the sign-in page. The page
// is finished afterwards; further actions on it are skipped. Pages that
// rendered no sign-out action ignore the call.
func (p *Page) SignOut(ctx context.Context) error {
	if p.els.Header == nil || p.nav.State == view.Unauthenticated {
		return nil
	}
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	if err := p.deps.Store.Clear(ctx); err != nil {
		logger.Log.Error("Error clearing credential", zap.Error(err))
		p.closed.Store(false)
		return err
	}
	p.deps.Navigator.Navigate(view.PathSignIn)
	return nil
}

func (p *Page) SignIn(ctx context.Context) Outcome {
	return p.submit(ctx, p.signIn, p.els.SignInForm)
}

func (p *Page) SignUp(ctx context.Context) Outcome {
	return p.submit(ctx, p.signUp, p.els.SignUpForm)
}

func (p *Page) Shorten(ctx context.Context) Outcome {
	return p.submit(ctx, p.shorten, p.els.ShortenForm)
}

func (p *Page) submit(ctx context.Context, w *Workflow, form Form) Outcome {
	if w == nil || form == nil || p.closed.Load() {
		return Outcome{Status: StatusSkipped}
	}
	return w.Submit(ctx, form)
}

func (p *Page) storedToken(ctx context.Context) string {
	tok, err := p.deps.Store.Get(ctx)
	if err != nil && !errors.Is(err, session.ErrNoCredential) {
		logger.Log.Error("Error reading credential", zap.Error(err))
	}
	return tok
}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}
