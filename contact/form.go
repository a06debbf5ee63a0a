package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Error values for form submission.
var (
	ErrBusy         = errors.New("submission already in progress")
	ErrSubmitFailed = errors.New("submission failed")
)

// Status is the form lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSubmitted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Submitter delivers accepted submissions.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error { return f(ctx, s) }

// FormOption configures a Form.
type FormOption func(*Form)

// WithLogger sets the form logger.
func WithLogger(l *zap.Logger) FormOption {
	return func(f *Form) { f.logger = l }
}

// WithClock overrides the time source used for ReceivedAt.
func WithClock(now func() time.Time) FormOption {
	return func(f *Form) { f.now = now }
}

// WithValidator overrides the request validator.
func WithValidator(v *Validator) FormOption {
	return func(f *Form) { f.validator = v }
}

// Form is the contact form state machine. It is safe for concurrent use.
type Form struct {
	submitter Submitter
	validator *Validator
	now       func() time.Time
	logger    *zap.Logger

	mu     sync.Mutex
	status Status
	errs   FieldErrors
	last   *Submission
}

// NewForm creates an idle form delivering to s.
func NewForm(s Submitter, opts ...FormOption) *Form {
	f := &Form{
		submitter: s,
		validator: defaultValidator,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Status returns the current lifecycle state.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Errors returns the field errors of the last rejected submission.
func (f *Form) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(FieldErrors, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// Last returns the most recent delivered submission.
func (f *Form) Last() (Submission, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		return Submission{}, false
	}
	return *f.last, true
}

// Reset returns a submitted form to idle. It has no effect while submitting.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSubmitting {
		return
	}
	f.status = StatusIdle
	f.errs = nil
}

// Submit validates req and hands it to the submitter. Invalid requests
// return FieldErrors and leave the form idle. A concurrent call while a
// submission is in flight returns ErrBusy.
func (f *Form) Submit(ctx context.Context, req Request) (Submission, error) {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return Submission{}, ErrBusy
	}
	if err := f.validator.Validate(req); err != nil {
		var fe FieldErrors
		if errors.As(err, &fe) {
			f.errs = fe
		}
		f.status = StatusIdle
		f.mu.Unlock()
		return Submission{}, err
	}
	f.errs = nil
	f.status = StatusSubmitting
	sub := newSubmission(req, f.now())
	f.mu.Unlock()

	err := f.submitter.Submit(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.status = StatusIdle
		f.logger.Warn("contact submission failed", zap.String("id", sub.ID), zap.Error(err))
		return Submission{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	f.status = StatusSubmitted
	f.last = &sub
	f.logger.Info("contact submission accepted",
		zap.String("id", sub.ID),
		zap.String("organization", sub.Request.Organization))
	return sub, nil
}
