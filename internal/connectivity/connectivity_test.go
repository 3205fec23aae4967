package connectivity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCheckNowOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	m := NewMonitor(WithProbeURL(srv.URL))
	defer m.Stop()

	if m.Online() {
		t.Error("monitor online before any probe")
	}
	if !m.CheckNow(context.Background()) {
		t.Error("expected probe to succeed")
	}
	if !m.Online() {
		t.Error("expected online after successful probe")
	}
}

func TestCheckNowOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // probe target gone

	m := NewMonitor(WithProbeURL(url))
	defer m.Stop()

	if m.CheckNow(context.Background()) {
		t.Error("expected probe to fail against closed server")
	}
	if m.Online() {
		t.Error("expected offline after failed probe")
	}
}

func TestServerErrorCountsAsOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	m := NewMonitor(WithProbeURL(srv.URL))
	defer m.Stop()

	if m.CheckNow(context.Background()) {
		t.Error("expected 502 to count as offline")
	}
}

func TestSubscribeReceivesTransitions(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy.Load() {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := NewMonitor(WithProbeURL(srv.URL))
	defer m.Stop()
	sub := m.Subscribe()

	m.CheckNow(context.Background())
	select {
	case online := <-sub:
		if !online {
			t.Error("expected online transition")
		}
	case <-time.After(time.Second):
		t.Fatal("no transition delivered")
	}

	healthy.Store(false)
	m.CheckNow(context.Background())
	select {
	case online := <-sub:
		if online {
			t.Error("expected offline transition")
		}
	case <-time.After(time.Second):
		t.Fatal("no transition delivered")
	}

	// Same state again produces no new event.
	m.CheckNow(context.Background())
	select {
	case v := <-sub:
		t.Errorf("unexpected event %v for unchanged state", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStartProbesOnInterval(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	m := NewMonitor(WithProbeURL(srv.URL), WithInterval(10*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)
	defer m.Stop()

	deadline := time.Now().Add(time.Second)
	for hits.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if hits.Load() < 3 {
		t.Errorf("expected at least 3 probes, got %d", hits.Load())
	}
	if !m.Online() {
		t.Error("expected online")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	m := NewMonitor(WithProbeURL("http://127.0.0.1:0"))
	m.Stop()
	m.Stop()
}
