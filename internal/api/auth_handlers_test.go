package api_test

import (
	"net/http"
	"testing"

	"github.com/nafisahi/swiftaid/internal/api"
	"github.com/nafisahi/swiftaid/internal/models"
	"github.com/nafisahi/swiftaid/internal/testutil"
)

func signupRequest() models.SignupRequest {
	return models.SignupRequest{
		FirstName:       "Ada",
		Surname:         "Lovelace",
		Email:           "ada@example.com",
		Password:        "Abcdef1",
		ConfirmPassword: "Abcdef1",
	}
}

func signUpOverHTTP(t *testing.T, srv *api.Server) {
	t.Helper()
	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/signup", signupRequest()))
	testutil.AssertHTTPStatus(t, http.StatusCreated, rr.Code, "signup")
}

func TestSignupEndpoint(t *testing.T) {
	srv, deps := testutil.NewTestServer(t)
	signUpOverHTTP(t, srv)

	if len(deps.Dispatcher.Sent) != 1 {
		t.Fatalf("expected 1 dispatched code, got %d", len(deps.Dispatcher.Sent))
	}

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/auth/session", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "session after signup")
	var session models.AuthSession
	testutil.DecodeResult(t, testutil.AssertJSONResponse(t, rr, "ok"), &session)
	if !session.PendingVerification {
		t.Error("expected pending verification after signup")
	}
}

func TestSignupValidation(t *testing.T) {
	srv, deps := testutil.NewTestServer(t)

	bad := signupRequest()
	bad.Password = "abcdef1" // missing uppercase
	bad.ConfirmPassword = "abcdef1"
	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/signup", bad))
	testutil.AssertHTTPStatus(t, http.StatusBadRequest, rr.Code, "invalid signup")
	resp := testutil.AssertJSONResponse(t, rr, "error")
	fields, ok := resp["result"].(map[string]interface{})
	if !ok || fields["password"] != "Password must contain at least one uppercase letter" {
		t.Errorf("unexpected field errors: %v", resp["result"])
	}
	if len(deps.Dispatcher.Sent) != 0 {
		t.Error("invalid signup dispatched a code")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)
	signUpOverHTTP(t, srv)

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/signup", signupRequest()))
	testutil.AssertHTTPStatus(t, http.StatusConflict, rr.Code, "duplicate signup")
}

func TestVerifyEndpoint(t *testing.T) {
	srv, deps := testutil.NewTestServer(t)
	signUpOverHTTP(t, srv)

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/verify", models.VerifyRequest{Code: "000000"}))
	testutil.AssertHTTPStatus(t, http.StatusBadRequest, rr.Code, "wrong code")
	resp := testutil.AssertJSONResponse(t, rr, "error")
	if resp["message"] != "Invalid verification code. Please try again." {
		t.Errorf("unexpected message: %v", resp["message"])
	}

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/verify", models.VerifyRequest{Code: deps.Dispatcher.LastCode()}))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "correct code")
	var session models.AuthSession
	testutil.DecodeResult(t, testutil.AssertJSONResponse(t, rr, "ok"), &session)
	if session.PendingVerification {
		t.Error("session still pending after verification")
	}
}

func TestResendEndpointCooldown(t *testing.T) {
	srv, deps := testutil.NewTestServer(t)
	signUpOverHTTP(t, srv)

	// Cooldown started at signup; an immediate resend is refused.
	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/resend", nil))
	testutil.AssertHTTPStatus(t, http.StatusTooManyRequests, rr.Code, "resend during cooldown")
	if len(deps.Dispatcher.Sent) != 1 {
		t.Errorf("refused resend dispatched a code: %d sends", len(deps.Dispatcher.Sent))
	}
}

func TestCancelVerificationEndpoint(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)
	signUpOverHTTP(t, srv)

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/cancel", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "cancel verification")

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/auth/session", nil))
	testutil.AssertHTTPStatus(t, http.StatusUnauthorized, rr.Code, "session after cancel")

	// The abandoned email can sign up again.
	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/signup", signupRequest()))
	testutil.AssertHTTPStatus(t, http.StatusCreated, rr.Code, "signup after cancel")
}

func TestLoginEndpoint(t *testing.T) {
	srv, deps := testutil.NewTestServer(t)
	email, password := testutil.SeedVerifiedUser(t, deps)
	deps.Identity.SignOut()

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: "wrongpw"}))
	testutil.AssertHTTPStatus(t, http.StatusUnauthorized, rr.Code, "wrong password")
	resp := testutil.AssertJSONResponse(t, rr, "error")
	if resp["message"] != "Email or password incorrect" {
		t.Errorf("unexpected message: %v", resp["message"])
	}

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: password}))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "correct login")
	var session models.AuthSession
	testutil.DecodeResult(t, testutil.AssertJSONResponse(t, rr, "ok"), &session)
	if session.Email != email {
		t.Errorf("unexpected session email: %s", session.Email)
	}
}

func TestLoginUnverifiedReopensChallenge(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)
	signUpOverHTTP(t, srv)
	// Navigate away without verifying.
	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/signout", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "signout")

	req := signupRequest()
	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/login", models.LoginRequest{Email: req.Email, Password: req.Password}))
	testutil.AssertHTTPStatus(t, http.StatusForbidden, rr.Code, "unverified login")
	resp := testutil.AssertJSONResponse(t, rr, "error")
	if resp["message"] != "Please verify your email to continue" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestResetEndpoint(t *testing.T) {
	srv, deps := testutil.NewTestServer(t)
	email, _ := testutil.SeedVerifiedUser(t, deps)
	sent := len(deps.Dispatcher.Sent)

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/reset", models.ResetRequest{Email: "nobody@example.com"}))
	testutil.AssertHTTPStatus(t, http.StatusNotFound, rr.Code, "unknown account")

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/reset", models.ResetRequest{Email: email}))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "known account")
	if len(deps.Dispatcher.Sent) != sent+1 {
		t.Errorf("expected a reset dispatch, got %d sends", len(deps.Dispatcher.Sent))
	}
}

func TestDeleteAccountEndpoint(t *testing.T) {
	srv, deps := testutil.NewTestServer(t)
	email, password := testutil.SeedVerifiedUser(t, deps)

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/delete", nil))
	testutil.AssertHTTPStatus(t, http.StatusForbidden, rr.Code, "delete without reauth")

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/reauth", models.ReauthRequest{Email: email, Password: password}))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "reauth")

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/delete", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "delete after reauth")

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: password}))
	testutil.AssertHTTPStatus(t, http.StatusUnauthorized, rr.Code, "login after deletion")
}
