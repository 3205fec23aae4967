// Package api provides HTTP handlers for SwiftAid account endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nafisahi/swiftaid/internal/auth"
	"github.com/nafisahi/swiftaid/internal/models"
	"github.com/nafisahi/swiftaid/internal/validate"
)

// signupHandler registers a new account (POST /auth/signup). A successful
// signup leaves a pending email-verification challenge with its resend
// cooldown running.
func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.signupHandler: processing signup request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.signupHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	if form := validate.SignupForm(req); !form.Valid() {
		slog.Debug("Server.signupHandler: validation failed", "fields", len(form.Messages()))
		writeJSONResponse(w, http.StatusBadRequest, models.APIResponse{
			Status:  string(models.APIStatusError),
			Message: "Validation failed",
			Result:  form.Messages(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultRequestTimeout)
	defer cancel()
	displayName := strings.TrimSpace(req.FirstName + " " + req.Surname)
	if err := s.identity.CreateUser(ctx, req.Email, req.Password, displayName, req.PhoneNumber); err != nil {
		if errors.Is(err, auth.ErrEmailAlreadyInUse) {
			writeJSONResponse(w, http.StatusConflict, models.Error("This email is already registered. Try logging in instead."))
			return
		}
		slog.Error("Server.signupHandler: account creation failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to create account"))
		return
	}

	s.flow.Begin()
	slog.Info("Server.signupHandler: account created, verification pending", "email", req.Email)
	writeJSONResponse(w, http.StatusCreated, models.SuccessWithMessage("Verification code sent", s.identity.Session()))
}

// loginHandler signs an account in (POST /auth/login). Unverified accounts
// reopen the verification challenge instead of signing in.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.loginHandler: processing login request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.loginHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	if form := validate.LoginForm(req); !form.Valid() {
		writeJSONResponse(w, http.StatusBadRequest, models.APIResponse{
			Status:  string(models.APIStatusError),
			Message: "Validation failed",
			Result:  form.Messages(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultRequestTimeout)
	defer cancel()
	session, err := s.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeJSONResponse(w, http.StatusUnauthorized, models.Error("Email or password incorrect"))
		case errors.Is(err, auth.ErrEmailNotVerified):
			s.flow.Begin()
			writeJSONResponse(w, http.StatusForbidden, models.APIResponse{
				Status:  string(models.APIStatusError),
				Message: "Please verify your email to continue",
				Result:  s.identity.Session(),
			})
		default:
			slog.Error("Server.loginHandler: sign-in failed", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to sign in"))
		}
		return
	}
	slog.Info("Server.loginHandler: signed in", "email", req.Email)
	writeJSONResponse(w, http.StatusOK, models.Success(session))
}

// verifyHandler submits a verification code (POST /auth/verify).
func (s *Server) verifyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.verifyHandler: processing verify request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.verifyHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultRequestTimeout)
	defer cancel()
	if err := s.flow.SubmitCode(ctx, req.Code); err != nil {
		// Fixed message regardless of the underlying failure.
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}
	slog.Info("Server.verifyHandler: email verified")
	writeJSONResponse(w, http.StatusOK, models.Success(s.identity.Session()))
}

// resendHandler requests a fresh verification code (POST /auth/resend).
func (s *Server) resendHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.resendHandler: processing resend request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultRequestTimeout)
	defer cancel()
	if err := s.flow.Resend(ctx); err != nil {
		if errors.Is(err, auth.ErrResendNotReady) {
			writeJSONResponse(w, http.StatusTooManyRequests, models.APIResponse{
				Status:  string(models.APIStatusError),
				Message: err.Error(),
				Result:  map[string]int{"remaining_seconds": s.flow.RemainingCooldown()},
			})
			return
		}
		writeJSONResponse(w, http.StatusInternalServerError, models.Error(err.Error()))
		return
	}
	slog.Info("Server.resendHandler: verification code resent")
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Verification code sent", nil))
}

// cancelVerificationHandler abandons the pending challenge (POST /auth/cancel).
func (s *Server) cancelVerificationHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.cancelVerificationHandler: processing cancel request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultRequestTimeout)
	defer cancel()
	if err := s.flow.Cancel(ctx); err != nil {
		slog.Error("Server.cancelVerificationHandler: cancel failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to cancel verification"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Verification cancelled", nil))
}

// resetHandler dispatches a password reset code (POST /auth/reset).
func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.resetHandler: processing reset request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.resetHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	if form := validate.ResetForm(req); !form.Valid() {
		writeJSONResponse(w, http.StatusBadRequest, models.APIResponse{
			Status:  string(models.APIStatusError),
			Message: "Validation failed",
			Result:  form.Messages(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultRequestTimeout)
	defer cancel()
	if err := s.identity.ResetPassword(ctx, req.Email); err != nil {
		if errors.Is(err, auth.ErrUnknownAccount) {
			writeJSONResponse(w, http.StatusNotFound, models.Error("No account exists for this email"))
			return
		}
		slog.Error("Server.resetHandler: reset failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to send reset code"))
		return
	}
	slog.Info("Server.resetHandler: reset code sent", "email", req.Email)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Password reset code sent", nil))
}

// reauthHandler re-confirms credentials ahead of destructive actions
// (POST /auth/reauth).
func (s *Server) reauthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.reauthHandler: processing reauth request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ReauthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.reauthHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultRequestTimeout)
	defer cancel()
	if err := s.identity.Reauthenticate(ctx, req.Email, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrNotSignedIn) {
			writeJSONResponse(w, http.StatusUnauthorized, models.Error("Email or password incorrect"))
			return
		}
		slog.Error("Server.reauthHandler: reauth failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to reauthenticate"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Reauthenticated", nil))
}

// deleteAccountHandler deletes the signed-in account (POST /auth/delete).
// A recent successful reauthentication is required.
func (s *Server) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.deleteAccountHandler: processing delete request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultRequestTimeout)
	defer cancel()
	if err := s.identity.DeleteAccount(ctx); err != nil {
		switch {
		case errors.Is(err, auth.ErrNotSignedIn):
			writeJSONResponse(w, http.StatusUnauthorized, models.Error("Not signed in"))
		case errors.Is(err, auth.ErrReauthRequired):
			writeJSONResponse(w, http.StatusForbidden, models.Error("Please re-enter your password to delete your account"))
		default:
			slog.Error("Server.deleteAccountHandler: delete failed", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to delete account"))
		}
		return
	}
	slog.Info("Server.deleteAccountHandler: account deleted")
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Account deleted", nil))
}

// signoutHandler clears the current session (POST /auth/signout).
func (s *Server) signoutHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.signoutHandler: processing signout request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.identity.SignOut()
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Signed out", nil))
}

// sessionInfoHandler reports the current session (GET /auth/session).
func (s *Server) sessionInfoHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	session := s.identity.Session()
	if session == nil {
		writeJSONResponse(w, http.StatusUnauthorized, models.Error("Not signed in"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(session))
}
