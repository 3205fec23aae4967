package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nafisahi/swiftaid/internal/timer"
	"github.com/nafisahi/swiftaid/internal/validate"
)

// ResendCooldownSeconds is how long the resend action stays disabled after
// entering the verification screen or resending a code.
const ResendCooldownSeconds = 60

// Error variables for the verification flow. The message text is the fixed
// user-facing string; collaborator error detail is never surfaced.
var (
	ErrVerificationFailed = errors.New("Invalid verification code. Please try again.")
	ErrResendFailed       = errors.New("Failed to resend code. Please try again.")
	ErrResendNotReady     = errors.New("Please wait before requesting another code.")
)

// FlowOpts holds configuration options for the FlowController.
type FlowOpts struct {
	OnVerified   func()
	TimerOptions []timer.Option
}

// FlowOption defines a configuration option for the FlowController.
type FlowOption func(*FlowOpts)

// WithOnVerified sets the callback invoked after a successful code
// submission.
func WithOnVerified(fn func()) FlowOption {
	return func(o *FlowOpts) { o.OnVerified = fn }
}

// WithCooldownTimerOptions passes options through to the cooldown timer.
func WithCooldownTimerOptions(opts ...timer.Option) FlowOption {
	return func(o *FlowOpts) { o.TimerOptions = append(o.TimerOptions, opts...) }
}

// FlowController manages a pending email-verification challenge: code entry,
// the resend cooldown and flow cancellation.
type FlowController struct {
	identity   Identity
	cooldown   *timer.Countdown
	onVerified func()
}

// NewFlowController creates a controller over the identity collaborator.
// Begin must be called when the verification screen is entered.
func NewFlowController(identity Identity, opts ...FlowOption) *FlowController {
	var cfg FlowOpts
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FlowController{
		identity:   identity,
		cooldown:   timer.NewCountdown(ResendCooldownSeconds, cfg.TimerOptions...),
		onVerified: cfg.OnVerified,
	}
}

// Begin starts (or restarts) the resend cooldown.
func (f *FlowController) Begin() {
	f.cooldown.Restart()
	slog.Debug("Verification flow started", "cooldown_seconds", ResendCooldownSeconds)
}

// SubmitCode delegates the submitted code to the identity collaborator. Any
// failure collapses to ErrVerificationFailed.
func (f *FlowController) SubmitCode(ctx context.Context, code string) error {
	if err := validate.VerificationCode(code); err != nil {
		return ErrVerificationFailed
	}
	if err := f.identity.VerifyCode(ctx, code); err != nil {
		slog.Debug("Verification code rejected", "error", err)
		return ErrVerificationFailed
	}

	f.cooldown.Stop()
	if f.onVerified != nil {
		f.onVerified()
	}
	slog.Info("Verification flow completed")
	return nil
}

// Resend issues, stores and dispatches a fresh code, then restarts the
// cooldown. It refuses while the cooldown is still running.
func (f *FlowController) Resend(ctx context.Context) error {
	if !f.CanResend() {
		return ErrResendNotReady
	}

	sess := f.identity.Session()
	if sess == nil || !sess.PendingVerification {
		slog.Warn("Resend requested without a pending challenge")
		return ErrResendFailed
	}

	code := f.identity.GenerateVerificationCode()
	if err := f.identity.StoreVerificationCode(ctx, sess.Email, code); err != nil {
		slog.Error("Resend failed to store code", "error", err)
		return ErrResendFailed
	}
	if err := f.identity.DispatchVerificationCode(ctx, sess.Email, code); err != nil {
		slog.Error("Resend failed to dispatch code", "error", err)
		return ErrResendFailed
	}

	f.cooldown.Restart()
	slog.Info("Verification code resent", "email", sess.Email)
	return nil
}

// CanResend reports whether the cooldown has elapsed.
func (f *FlowController) CanResend() bool {
	return f.cooldown.State() != timer.StateRunning
}

// RemainingCooldown returns the seconds left before resend is enabled.
func (f *FlowController) RemainingCooldown() int {
	if f.cooldown.State() != timer.StateRunning {
		return 0
	}
	return f.cooldown.Remaining()
}

// Cooldown exposes the underlying countdown for display purposes.
func (f *FlowController) Cooldown() *timer.Countdown {
	return f.cooldown
}

// Cancel abandons the challenge: the cooldown stops and the collaborator's
// pending unverified-user state is cleared. No timer keeps running after the
// flow is dismissed.
func (f *FlowController) Cancel(ctx context.Context) error {
	f.cooldown.Stop()
	f.cooldown.Reset()
	if err := f.identity.ClearPendingUser(ctx); err != nil {
		return err
	}
	slog.Info("Verification flow cancelled")
	return nil
}
