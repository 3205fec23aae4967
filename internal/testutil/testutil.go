// Package testutil provides common test utilities and helpers for SwiftAid tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nafisahi/swiftaid/internal/api"
	"github.com/nafisahi/swiftaid/internal/auth"
	"github.com/nafisahi/swiftaid/internal/catalog"
	"github.com/nafisahi/swiftaid/internal/notify"
	"github.com/nafisahi/swiftaid/internal/store"
	"github.com/nafisahi/swiftaid/internal/telephony"
	"github.com/nafisahi/swiftaid/internal/timer"
)

// TestDeps collects the fakes behind a test server so assertions can reach
// dispatched codes and placed calls.
type TestDeps struct {
	Store      *store.InMemoryStore
	Dispatcher *notify.MockDispatcher
	Dialer     *telephony.MockDialer
	Identity   *auth.Service
}

// NewTestServer creates a test API server with in-memory dependencies.
// The verification cooldown uses an hour-long tick so tests control it
// explicitly.
func NewTestServer(t *testing.T, opts ...api.Option) (*api.Server, *TestDeps) {
	t.Helper()
	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("catalog failed to load: %v", err)
	}

	deps := &TestDeps{
		Store:      store.NewInMemoryStore(),
		Dispatcher: notify.NewMockDispatcher(),
		Dialer:     telephony.NewMockDialer(),
	}
	deps.Identity = auth.NewService(deps.Store, deps.Dispatcher)

	opts = append(opts,
		api.WithDialer(deps.Dialer),
		api.WithVerificationFlowOptions(
			auth.WithCooldownTimerOptions(timer.WithTickInterval(time.Hour)),
		),
	)
	return api.NewServer(cat, deps.Identity, deps.Store, opts...), deps
}

// AssertHTTPStatus checks the HTTP status code and fails the test if it doesn't match.
func AssertHTTPStatus(t *testing.T, expected, actual int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected status %d, got %d", context, expected, actual)
	}
}

// AssertJSONResponse decodes JSON response and validates the status field.
func AssertJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus string) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}

	if status, ok := response["status"].(string); ok {
		if status != expectedStatus {
			t.Errorf("expected status '%s', got '%s'", expectedStatus, status)
		}
	} else {
		t.Error("response missing or invalid 'status' field")
	}

	return response
}

// CreateHTTPRequest creates an HTTP request with optional JSON body for testing.
func CreateHTTPRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create HTTP request: %v", err)
	}
	return req
}

// AssertCallReceiptCount validates the number of call receipts in the store.
func AssertCallReceiptCount(t *testing.T, st store.Store, expected int, context string) {
	t.Helper()
	receipts, err := st.GetCallReceipts()
	if err != nil {
		t.Fatalf("%s: failed to get call receipts: %v", context, err)
	}
	if len(receipts) != expected {
		t.Errorf("%s: expected %d call receipts, got %d", context, expected, len(receipts))
	}
}

// SeedVerifiedUser registers and verifies an account directly through the
// identity service, returning its credentials.
func SeedVerifiedUser(t *testing.T, deps *TestDeps) (email, password string) {
	t.Helper()
	email, password = "seed@example.com", "Abcdef1"
	if err := deps.Identity.CreateUser(t.Context(), email, password, "Seed User", ""); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	if err := deps.Identity.VerifyCode(t.Context(), deps.Dispatcher.LastCode()); err != nil {
		t.Fatalf("failed to verify seeded user: %v", err)
	}
	return email, password
}

// MustMarshalJSON marshals an object to JSON and fails test on error.
func MustMarshalJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return data
}

// MustUnmarshalJSON unmarshals JSON data into target and fails test on error.
func MustUnmarshalJSON(t *testing.T, data []byte, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, target); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}
}

// DecodeResult re-marshals the "result" field of an API response into target.
func DecodeResult(t *testing.T, response map[string]interface{}, target interface{}) {
	t.Helper()
	raw, err := json.Marshal(response["result"])
	if err != nil {
		t.Fatalf("failed to re-marshal result: %v", err)
	}
	MustUnmarshalJSON(t, raw, target)
}
