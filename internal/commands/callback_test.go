package commands

import (
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

// callback starts awaitCallback on a free port and returns its base URL and
// a channel with the outcome.
func callback(t *testing.T, ctx context.Context, state string) (string, <-chan callbackResult) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	done := make(chan callbackResult, 1)
	go func() {
		code, err := awaitCallback(ctx, ln, state, 5*time.Second)
		done <- callbackResult{code: code, err: err}
	}()
	return "http://" + ln.Addr().String(), done
}

func get(t *testing.T, url string) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestAwaitCallback_ReturnsCode(t *testing.T) {
	base, done := callback(t, context.Background(), "s1")

	if status := get(t, base+"/callback?state=s1&code=abc"); status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}

	r := <-done
	if r.err != nil || r.code != "abc" {
		t.Errorf("expected code abc, got %q, %v", r.code, r.err)
	}
}

func TestAwaitCallback_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		err    string
	}{
		{"state mismatch", "state=other&code=abc", http.StatusBadRequest, "state mismatch"},
		{"denied", "state=s1&error=access_denied", http.StatusForbidden, "access_denied"},
		{"no code", "state=s1", http.StatusBadRequest, "no code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, done := callback(t, context.Background(), "s1")

			if status := get(t, base+"/callback?"+tt.query); status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, status)
			}

			r := <-done
			if r.err == nil || !strings.Contains(r.err.Error(), tt.err) {
				t.Errorf("expected error containing %q, got %v", tt.err, r.err)
			}
		})
	}
}

func TestAwaitCallback_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, done := callback(t, ctx, "s1")
	cancel()

	if r := <-done; r.err != errLinkCancelled {
		t.Errorf("expected errLinkCancelled, got %v", r.err)
	}
}
