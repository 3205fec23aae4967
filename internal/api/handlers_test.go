package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nafisahi/swiftaid/internal/api"
	"github.com/nafisahi/swiftaid/internal/models"
	"github.com/nafisahi/swiftaid/internal/symptoms"
	"github.com/nafisahi/swiftaid/internal/testutil"
)

func do(t *testing.T, srv *api.Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func TestTopicsEndpoint(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/topics", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "list all topics")
	resp := testutil.AssertJSONResponse(t, rr, "ok")
	if topics, ok := resp["result"].([]interface{}); !ok || len(topics) == 0 {
		t.Errorf("expected a non-empty topic list, got %v", resp["result"])
	}

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/topics?category=burns", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "list burn topics")
	var burns []models.Topic
	testutil.DecodeResult(t, testutil.AssertJSONResponse(t, rr, "ok"), &burns)
	for _, topic := range burns {
		if topic.Category != models.CategoryBurns {
			t.Errorf("unexpected category %s in burns listing", topic.Category)
		}
	}

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/topics?category=nonsense", nil))
	testutil.AssertHTTPStatus(t, http.StatusBadRequest, rr.Code, "unknown category")
}

func TestTopicsMethodNotAllowed(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)
	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/topics", nil))
	testutil.AssertHTTPStatus(t, http.StatusMethodNotAllowed, rr.Code, "POST /topics")
}

func TestStepsEndpoint(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/topics/steps?topic=cpr-adult", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "cpr-adult steps")
	var steps []models.Step
	testutil.DecodeResult(t, testutil.AssertJSONResponse(t, rr, "ok"), &steps)
	if len(steps) == 0 {
		t.Fatal("expected steps")
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].Sequence <= steps[i-1].Sequence {
			t.Errorf("steps out of order at %d", i)
		}
	}

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/topics/steps?topic=nope", nil))
	testutil.AssertHTTPStatus(t, http.StatusNotFound, rr.Code, "unknown topic")

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/topics/steps", nil))
	testutil.AssertHTTPStatus(t, http.StatusBadRequest, rr.Code, "missing topic parameter")
}

func TestSearchEndpoint(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/search?q=stroke", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "search stroke")
	var results []models.SearchResult
	testutil.DecodeResult(t, testutil.AssertJSONResponse(t, rr, "ok"), &results)
	found := false
	for _, res := range results {
		if res.TopicID == "stroke" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a stroke hit, got %v", results)
	}
}

func openSession(t *testing.T, srv *api.Server, topicID string) string {
	t.Helper()
	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/sessions", models.OpenSessionRequest{TopicID: topicID}))
	testutil.AssertHTTPStatus(t, http.StatusCreated, rr.Code, "open session")
	resp := testutil.AssertJSONResponse(t, rr, "ok")
	result, ok := resp["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected result payload: %v", resp["result"])
	}
	id, _ := result["session_id"].(string)
	if id == "" {
		t.Fatal("missing session_id")
	}
	return id
}

func TestSessionLifecycle(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)
	id := openSession(t, srv, "severe-bleeding")

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/sessions/toggle", models.ToggleRequest{
		SessionID: id, StepID: "bleeding-pressure", InstructionIndex: 0,
	}))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "toggle instruction")
	resp := testutil.AssertJSONResponse(t, rr, "ok")
	result := resp["result"].(map[string]interface{})
	if completed, _ := result["completed"].(bool); !completed {
		t.Error("expected instruction completed")
	}

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/sessions/progress?session="+id, nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "progress")
	var progress models.Progress
	testutil.DecodeResult(t, testutil.AssertJSONResponse(t, rr, "ok"), &progress)
	if progress.Completed != 1 {
		t.Errorf("expected 1 completed, got %d", progress.Completed)
	}

	req := testutil.CreateHTTPRequest(t, http.MethodDelete, "/sessions?session="+id, nil)
	rr = do(t, srv, req)
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "close session")

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/sessions/progress?session="+id, nil))
	testutil.AssertHTTPStatus(t, http.StatusNotFound, rr.Code, "progress after close")
}

func TestSessionUnknownTopic(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)
	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/sessions", models.OpenSessionRequest{TopicID: "nope"}))
	testutil.AssertHTTPStatus(t, http.StatusNotFound, rr.Code, "unknown topic")
}

func TestToggleArmsTimerOverHTTP(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)
	id := openSession(t, srv, "chemical-burns")

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/sessions/toggle", models.ToggleRequest{
		SessionID: id, StepID: "chemical-burns-flood", InstructionIndex: 0,
	}))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "toggle trigger instruction")
	resp := testutil.AssertJSONResponse(t, rr, "ok")
	result := resp["result"].(map[string]interface{})
	timerPayload, ok := result["timer"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected timer in toggle response, got %v", result)
	}
	if state, _ := timerPayload["state"].(string); state != "running" {
		t.Errorf("expected running timer, got %v", state)
	}

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/sessions/timer?session="+id+"&step=chemical-burns-flood", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "read timer")
	var status models.TimerStatus
	testutil.DecodeResult(t, testutil.AssertJSONResponse(t, rr, "ok"), &status)
	if status.Total != 1200 {
		t.Errorf("expected 1200s cooling timer, got %d", status.Total)
	}

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/sessions/timer", models.TimerControlRequest{
		SessionID: id, StepID: "chemical-burns-flood", Action: "stop",
	}))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "stop timer")
	testutil.DecodeResult(t, testutil.AssertJSONResponse(t, rr, "ok"), &status)
	if status.State != "paused" {
		t.Errorf("expected paused, got %s", status.State)
	}

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/sessions/timer", models.TimerControlRequest{
		SessionID: id, StepID: "chemical-burns-flood", Action: "bogus",
	}))
	testutil.AssertHTTPStatus(t, http.StatusBadRequest, rr.Code, "bogus action")
}

func TestEmergencyCallEndpoint(t *testing.T) {
	srv, deps := testutil.NewTestServer(t)

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/emergency/call", models.EmergencyCallRequest{
		Number: "999",
	}))
	testutil.AssertHTTPStatus(t, http.StatusBadRequest, rr.Code, "unconfirmed call")
	if len(deps.Dialer.Calls) != 0 {
		t.Error("unconfirmed call reached the dialer")
	}

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/emergency/call", models.EmergencyCallRequest{
		Number: "911", Confirmed: true,
	}))
	testutil.AssertHTTPStatus(t, http.StatusBadRequest, rr.Code, "unsupported number")

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/emergency/call", models.EmergencyCallRequest{
		Number: "999", Confirmed: true,
	}))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "confirmed 999 call")
	if len(deps.Dialer.Calls) != 1 || deps.Dialer.Calls[0] != "999" {
		t.Errorf("unexpected dialer calls: %v", deps.Dialer.Calls)
	}
	testutil.AssertCallReceiptCount(t, deps.Store, 1, "after confirmed call")

	rr = do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/emergency/calls", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "list call receipts")
	var receipts []models.CallReceipt
	testutil.DecodeResult(t, testutil.AssertJSONResponse(t, rr, "ok"), &receipts)
	if len(receipts) != 1 || receipts[0].Number != "999" {
		t.Errorf("unexpected receipts: %v", receipts)
	}
}

// stubChecker fakes the symptom checker for handler tests.
type stubChecker struct {
	reply string
	err   error
}

func (s stubChecker) Check(ctx context.Context, description string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestSymptomCheckEndpoint(t *testing.T) {
	srv, _ := testutil.NewTestServer(t, api.WithSymptomChecker(stubChecker{reply: "Open the Asthma Attack topic."}))

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/symptoms/check", models.SymptomCheckRequest{
		Description: "wheezing and tight chest",
	}))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "symptom check")
	resp := testutil.AssertJSONResponse(t, rr, "ok")
	result := resp["result"].(map[string]interface{})
	if result["guidance"] != "Open the Asthma Attack topic." {
		t.Errorf("unexpected guidance: %v", result["guidance"])
	}
}

func TestSymptomCheckOffline(t *testing.T) {
	srv, _ := testutil.NewTestServer(t, api.WithSymptomChecker(stubChecker{err: symptoms.ErrOffline}))

	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/symptoms/check", models.SymptomCheckRequest{
		Description: "headache",
	}))
	testutil.AssertHTTPStatus(t, http.StatusServiceUnavailable, rr.Code, "offline symptom check")
}

func TestSymptomCheckNotConfigured(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)
	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodPost, "/symptoms/check", models.SymptomCheckRequest{
		Description: "headache",
	}))
	testutil.AssertHTTPStatus(t, http.StatusServiceUnavailable, rr.Code, "checker not configured")
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := testutil.NewTestServer(t)
	rr := do(t, srv, testutil.CreateHTTPRequest(t, http.MethodGet, "/health", nil))
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "health")
	testutil.AssertJSONResponse(t, rr, "ok")
}
