package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"golang.org/x/text/message"

	"github.com/Tokebay/shorty/internal/i18n"
	"github.com/Tokebay/shorty/internal/models"
	"github.com/Tokebay/shorty/internal/token"
	"github.com/Tokebay/shorty/internal/view"
)

const (
	PathSignIn    = "/auth/signin"
	PathSignUp    = "/auth/signup"
	PathUserLinks = "/users/links"
	PathLinks     = "/links"
)

// LinkVariant selects which link-creation contract the shorten form uses.
type LinkVariant string

const (
	// LinkVariantUser posts to the per-user endpoint with the stored
	// credential and expects {"hash": ...}.
	LinkVariantUser LinkVariant = "user"
	// LinkVariantPublic posts anonymously and expects {"short_url": ...}.
	LinkVariantPublic LinkVariant = "public"
)

func ParseLinkVariant(s string) (LinkVariant, error) {
	switch v := LinkVariant(s); v {
	case LinkVariantUser, LinkVariantPublic:
		return v, nil
	default:
		return "", fmt.Errorf("unknown link mode %q", s)
	}
}

var errMissingToken = errors.New("response has no token")

func NewSignIn(deps Deps, feedback Feedback) *Workflow {
	deps = deps.withDefaults()
	return NewWorkflow(WorkflowConfig{
		Name:     "signin",
		Method:   http.MethodPost,
		Path:     PathSignIn,
		Fields:   []string{"email", "password"},
		Fallback: i18n.SignInFailed,
		Extract:  signInPayload(deps.Printer),
		Success:  storeCredential(deps),
	}, deps, feedback)
}

func NewSignUp(deps Deps, feedback Feedback) *Workflow {
	deps = deps.withDefaults()
	return NewWorkflow(WorkflowConfig{
		Name:     "signup",
		Method:   http.MethodPost,
		Path:     PathSignUp,
		Fields:   []string{"name", "email", "password"},
		Fallback: i18n.SignUpFailed,
		Extract:  signUpPayload(deps.Printer),
		Success:  storeCredential(deps),
	}, deps, feedback)
}

func NewShorten(deps Deps, feedback Feedback) *Workflow {
	deps = deps.withDefaults()
	cfg := WorkflowConfig{
		Name:     "shorten",
		Method:   http.MethodPost,
		Fields:   []string{"url"},
		Pending:  i18n.Shortening,
		Fallback: i18n.ShortenFailed,
		Extract:  linkPayload(deps.Printer),
	}

	if deps.Links == LinkVariantPublic {
		cfg.Path = PathLinks
		cfg.Success = showLink(deps, func(payload json.RawMessage) (view.Link, error) {
			var resp models.ShortURLResponse
			if err := json.Unmarshal(payload, &resp); err != nil {
				return view.Link{}, err
			}
			return view.URLLink(resp.ShortURL)
		})
	} else {
		cfg.Path = PathUserLinks
		cfg.Authorize = true
		cfg.Success = showLink(deps, func(payload json.RawMessage) (view.Link, error) {
			var resp models.HashResponse
			if err := json.Unmarshal(payload, &resp); err != nil {
				return view.Link{}, err
			}
			return view.HashLink(resp.Hash)
		})
	}

	return NewWorkflow(cfg, deps, feedback)
}

func signInPayload(p *message.Printer) func(Form) (any, error) {
	return func(form Form) (any, error) {
		v, err := values(form, "email", "password")
		if err != nil {
			return nil, err
		}

		role, _ := form.Value("role")
		if strings.TrimSpace(role) == "" {
			role = token.RoleUser
		}

		err = validation.Errors{
			p.Sprintf(i18n.FieldEmail): validation.Validate(v["email"], required(p)),
			p.Sprintf(i18n.FieldPass):  validation.Validate(v["password"], required(p)),
		}.Filter()
		if err != nil {
			return nil, err
		}

		return models.SignInRequest{
			Email:    v["email"],
			Password: v["password"],
			Role:     role,
		}, nil
	}
}

func signUpPayload(p *message.Printer) func(Form) (any, error) {
	return func(form Form) (any, error) {
		v, err := values(form, "name", "email", "password", "role")
		if err != nil {
			return nil, err
		}

		knownRole := validation.In(token.RoleUser, token.RoleAdmin).Error(p.Sprintf(i18n.UnknownRole))
		err = validation.Errors{
			p.Sprintf(i18n.FieldName):  validation.Validate(v["name"], required(p)),
			p.Sprintf(i18n.FieldEmail): validation.Validate(v["email"], required(p)),
			p.Sprintf(i18n.FieldPass):  validation.Validate(v["password"], required(p)),
			p.Sprintf(i18n.FieldRole):  validation.Validate(v["role"], required(p), knownRole),
		}.Filter()
		if err != nil {
			return nil, err
		}

		return models.SignUpRequest{
			Name:      v["name"],
			Email:     v["email"],
			Password:  v["password"],
			Role:      v["role"],
			IsBlocked: false,
		}, nil
	}
}

func linkPayload(p *message.Printer) func(Form) (any, error) {
	return func(form Form) (any, error) {
		v, err := values(form, "url")
		if err != nil {
			return nil, err
		}

		url := strings.TrimSpace(v["url"])
		if err := validation.Validate(url, required(p)); err != nil {
			return nil, validation.Errors{p.Sprintf(i18n.FieldURL): err}
		}
		return models.LinkRequest{URL: url}, nil
	}
}

func required(p *message.Printer) validation.Rule {
	return validation.Required.Error(p.Sprintf(i18n.Required))
}

// storeCredential keeps the issued token and sends the user home.
func storeCredential(deps Deps) func(context.Context, json.RawMessage, Feedback) error {
	return func(ctx context.Context, payload json.RawMessage, _ Feedback) error {
		var resp models.TokenResponse
		if err := json.Unmarshal(payload, &resp); err != nil {
			return err
		}
		if resp.Token == "" {
			return errMissingToken
		}
		if err := deps.Store.Set(ctx, resp.Token); err != nil {
			return err
		}
		deps.Navigator.Navigate(view.PathHome)
		return nil
	}
}

func showLink(deps Deps, parse func(json.RawMessage) (view.Link, error)) func(context.Context, json.RawMessage, Feedback) error {
	return func(_ context.Context, payload json.RawMessage, fb Feedback) error {
		link, err := parse(payload)
		if err != nil {
			return err
		}
		fb.Show(view.Result{Text: deps.Printer.Sprintf(i18n.ShortLink), Link: &link})
		return nil
	}
}
