package app

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Tokebay/shorty/internal/gateway"
	"github.com/Tokebay/shorty/internal/i18n"
	"github.com/Tokebay/shorty/internal/logger"
	"github.com/Tokebay/shorty/internal/session"
	"github.com/Tokebay/shorty/internal/view"
	"github.com/goliatone/go-print"
	"go.uber.org/zap"
	"golang.org/x/text/message"
)

type Status int

const (
	StatusSucceeded Status = iota + 1
	StatusFailed
	StatusInvalid
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusInvalid:
		return "invalid"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome reports how one submission ended. Message is the text shown to
// the user, if any.
type Outcome struct {
	Status  Status
	Message string
	Err     error
}

// Deps are the capabilities workflows and pages run against.
type Deps struct {
	Gateway   gateway.Gateway
	Store     session.Store
	Navigator Navigator
	Printer   *message.Printer
	Links     LinkVariant
	Debug     bool
}

func (d Deps) withDefaults() Deps {
	if d.Navigator == nil {
		d.Navigator = nopNavigator{}
	}
	if d.Printer == nil {
		d.Printer = i18n.NewPrinter("en")
	}
	if d.Links == "" {
		d.Links = LinkVariantUser
	}
	return d
}

// WorkflowConfig describes one form-submit-to-response cycle.
type WorkflowConfig struct {
	Name   string
	Method string
	Path   string
	// Fields are cleared after a confirmed success.
	Fields []string
	// Authorize attaches the stored credential to the request.
	Authorize bool
	// Pending and Fallback are message keys; Pending is optional.
	Pending  string
	Fallback string
	// Extract builds the request body. It returns ErrFieldAbsent when the
	// form lacks an input and any other error for invalid values.
	Extract func(Form) (any, error)
	// Success consumes the response payload.
	Success func(ctx context.Context, payload json.RawMessage, fb Feedback) error
}

type Workflow struct {
	cfg      WorkflowConfig
	deps     Deps
	feedback Feedback
}

// NewWorkflow binds cfg to deps. A nil feedback discards user messages.
func NewWorkflow(cfg WorkflowConfig, deps Deps, feedback Feedback) *Workflow {
	if feedback == nil {
		feedback = discard{}
	}
	return &Workflow{cfg: cfg, deps: deps.withDefaults(), feedback: feedback}
}

func (w *Workflow) Name() string {
	return w.cfg.Name
}

// SubmitAsync runs Submit on its own goroutine. The channel receives
// exactly one Outcome. Concurrent submissions of the same form are not
// coalesced.
func (w *Workflow) SubmitAsync(ctx context.Context, form Form) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		out <- w.Submit(ctx, form)
	}()
	return out
}

func (w *Workflow) Submit(ctx context.Context, form Form) Outcome {
	log := logger.Log.With(zap.String("workflow", w.cfg.Name))

	if form == nil {
		log.Debug("Form not present, submission skipped")
		return Outcome{Status: StatusSkipped}
	}

	body, err := w.cfg.Extract(form)
	if errors.Is(err, ErrFieldAbsent) {
		log.Debug("Form incomplete, submission skipped", zap.Error(err))
		return Outcome{Status: StatusSkipped, Err: err}
	}
	if err != nil {
		msg := err.Error()
		w.feedback.Show(view.Result{Text: msg})
		return Outcome{Status: StatusInvalid, Message: msg, Err: err}
	}

	if w.deps.Debug {
		log.Debug("Submitting form", zap.String("payload", print.MaybePrettyJSON(masked(body))))
	}

	if w.cfg.Pending != "" {
		w.feedback.Show(view.Result{Text: w.deps.Printer.Sprintf(w.cfg.Pending)})
	}

	req := gateway.Request{Method: w.cfg.Method, Path: w.cfg.Path, Body: body}
	if w.cfg.Authorize {
		req.Token = w.credential(ctx)
	}

	res := w.deps.Gateway.Issue(ctx, req)
	if !res.OK() {
		msg := res.Failure.Message
		if msg == "" {
			msg = w.deps.Printer.Sprintf(w.cfg.Fallback)
		}
		w.feedback.Show(view.Result{Text: msg})
		return Outcome{Status: StatusFailed, Message: msg, Err: res.Failure}
	}

	if err := w.cfg.Success(ctx, res.Payload, w.feedback); err != nil {
		log.Error("Error handling response", zap.Error(err))
		msg := w.deps.Printer.Sprintf(w.cfg.Fallback)
		w.feedback.Show(view.Result{Text: msg})
		return Outcome{Status: StatusFailed, Message: msg, Err: err}
	}

	for _, name := range w.cfg.Fields {
		form.Clear(name)
	}
	return Outcome{Status: StatusSucceeded}
}

func (w *Workflow) credential(ctx context.Context) string {
	tok, err := w.deps.Store.Get(ctx)
	if err != nil && !errors.Is(err, session.ErrNoCredential) {
		logger.Log.Error("Error reading credential", zap.Error(err))
	}
	return tok
}

// masked returns body as a generic map with secrets replaced, for debug
// output only.
func masked(body any) any {
	data, err := json.Marshal(body)
	if err != nil {
		return body
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return body
	}
	if _, ok := m["password"]; ok {
		m["password"] = "********"
	}
	return m
}

type discard struct{}

func (discard) Show(view.Result) {}
