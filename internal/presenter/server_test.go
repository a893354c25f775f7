package presenter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer("127.0.0.1:0")
	if err := s.Start(); err != nil {
		t.Fatalf("server start: %v", err)
	}
	t.Cleanup(func() { s.Stop() })
	return s
}

func waitForState(t *testing.T, ch <-chan State, want string) State {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				t.Fatal("updates channel closed while waiting")
			}
			if s.Route == want {
				return s
			}
		case <-deadline:
			t.Fatalf("no state with route %q within 5s", want)
		}
	}
}

func TestSync_LocalPublishReachesRemoteView(t *testing.T) {
	t.Parallel()

	s := startTestServer(t)
	local := s.LocalClient()

	remote, err := NewWSClient("ws://" + s.Addr() + "/ws")
	if err != nil {
		t.Fatalf("NewWSClient: %v", err)
	}
	if err := remote.Start(); err != nil {
		t.Fatalf("remote start: %v", err)
	}
	defer remote.Close()

	if err := local.Publish(State{Route: "/slide-2", Index: 1, SlideCount: 5}); err != nil {
		t.Fatalf("local publish: %v", err)
	}

	got := waitForState(t, remote.Updates(), "/slide-2")
	if got.Index != 1 || got.SlideCount != 5 {
		t.Fatalf("remote state = %+v", got)
	}
}

func TestSync_LateJoinerCatchesUp(t *testing.T) {
	t.Parallel()

	s := startTestServer(t)
	if err := s.LocalClient().Publish(State{Route: "/slide-3", Index: 2}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	remote, err := NewWSClient("http://" + s.Addr())
	if err != nil {
		t.Fatalf("NewWSClient: %v", err)
	}
	if err := remote.Start(); err != nil {
		t.Fatalf("remote start: %v", err)
	}
	defer remote.Close()

	got := waitForState(t, remote.Updates(), "/slide-3")
	if got.Index != 2 {
		t.Fatalf("late joiner state = %+v", got)
	}
}

func TestSync_RemotePublishReachesLocal(t *testing.T) {
	t.Parallel()

	s := startTestServer(t)
	local := s.LocalClient()

	remote, err := NewWSClient("ws://" + s.Addr() + "/ws")
	if err != nil {
		t.Fatalf("NewWSClient: %v", err)
	}
	if err := remote.Start(); err != nil {
		t.Fatalf("remote start: %v", err)
	}
	defer remote.Close()

	if err := remote.Publish(State{Route: "/slide-4", Index: 3}); err != nil {
		t.Fatalf("remote publish: %v", err)
	}

	got := waitForState(t, local.Updates(), "/slide-4")
	if got.Index != 3 {
		t.Fatalf("local state = %+v", got)
	}
}

func TestStateEndpoint_ReturnsLastState(t *testing.T) {
	t.Parallel()

	s := startTestServer(t)

	resp, err := http.Get(fmt.Sprintf("http://%s/api/state", s.Addr()))
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("empty hub status = %d, want 204", resp.StatusCode)
	}

	if err := s.LocalClient().Publish(State{Route: "/slide-1", SlideCount: 3}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	resp, err = http.Get(fmt.Sprintf("http://%s/api/state", s.Addr()))
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got State
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Route != "/slide-1" || got.SlideCount != 3 {
		t.Fatalf("state = %+v", got)
	}
}

func TestNewWSClient_RejectsUnsupportedScheme(t *testing.T) {
	t.Parallel()

	if _, err := NewWSClient("ftp://example.com"); err == nil {
		t.Fatal("ftp scheme accepted")
	}
}
