package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-print"
	"github.com/pkg/errors"

	"github.com/Tokebay/shorty/internal/app"
	"github.com/Tokebay/shorty/internal/session"
	"github.com/Tokebay/shorty/internal/token"
	"github.com/Tokebay/shorty/internal/view"
)

var errUsage = errors.New("usage: shorty [flags] nav|whoami|signin|signup|signout|shorten [command flags]")

func execute(ctx context.Context, deps app.Deps, term *terminal, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "nav":
		app.Load(ctx, deps, app.Elements{Header: term})
		return nil
	case "whoami":
		return whoami(ctx, deps.Store, term.w)
	case "signout":
		p := app.Load(ctx, deps, app.Elements{Header: &terminal{w: io.Discard}})
		if p.State() == view.Unauthenticated {
			return errors.New("not signed in")
		}
		return p.SignOut(ctx)
	case "signin":
		form, err := signInForm(rest)
		if err != nil {
			return err
		}
		p := app.Load(ctx, deps, app.Elements{Alerts: term, SignInForm: form})
		return outcomeErr(p.SignIn(ctx))
	case "signup":
		form, err := signUpForm(rest)
		if err != nil {
			return err
		}
		p := app.Load(ctx, deps, app.Elements{Alerts: term, SignUpForm: form})
		return outcomeErr(p.SignUp(ctx))
	case "shorten":
		form, err := shortenForm(rest)
		if err != nil {
			return err
		}
		p := app.Load(ctx, deps, app.Elements{ShortenForm: form, ShortenResult: term})
		return outcomeErr(p.Shorten(ctx))
	default:
		return errors.Wrapf(errUsage, "unknown command %q", cmd)
	}
}

func whoami(ctx context.Context, store session.Store, w io.Writer) error {
	raw, err := store.Get(ctx)
	if errors.Is(err, session.ErrNoCredential) {
		fmt.Fprintln(w, view.Unauthenticated)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, view.Resolve(raw))
	if claims, ok := token.Decode(raw); ok {
		fmt.Fprintln(w, print.MaybePrettyJSON(claims))
	}
	return nil
}

func signInForm(args []string) (*app.Fields, error) {
	fs := flag.NewFlagSet("signin", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "", "role to sign in as")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	values := map[string]string{"email": *email, "password": *password}
	if *role != "" {
		values["role"] = *role
	}
	return app.NewFields(values), nil
}

func signUpForm(args []string) (*app.Fields, error) {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", token.RoleUser, "account role: user or admin")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return app.NewFields(map[string]string{
		"name":     *name,
		"email":    *email,
		"password": *password,
		"role":     *role,
	}), nil
}

// shortenForm takes the URL from -url or the first positional argument.
func shortenForm(args []string) (*app.Fields, error) {
	fs := flag.NewFlagSet("shorten", flag.ContinueOnError)
	url := fs.String("url", "", "URL to shorten")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *url == "" && fs.NArg() > 0 {
		*url = strings.Join(fs.Args(), " ")
	}
	return app.NewFields(map[string]string{"url": *url}), nil
}

// outcomeErr turns an unsuccessful outcome into the command's error. The
// message itself was already shown to the user.
func outcomeErr(out app.Outcome) error {
	switch out.Status {
	case app.StatusSucceeded:
		return nil
	case app.StatusSkipped:
		return errors.New("nothing submitted")
	default:
		return errors.Errorf("%s: %s", out.Status, out.Message)
	}
}
