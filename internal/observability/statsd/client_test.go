package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestMetricName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix, name, want string
	}{
		{"skills", " guard/decision ", "skills.guard_decision"},
		{"", "foo..bar", "foo.bar"},
		{"skills", "..", ""},
		{"skills", "multi  space", "skills.multi__space"},
	}
	for _, tt := range tests {
		if got := metricName(tt.prefix, tt.name); got != tt.want {
			t.Fatalf("metricName(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestLine_MergesAndSortsTags(t *testing.T) {
	t.Parallel()

	c := &Client{
		prefix: "skills",
		//nolint:gocritic // whitespace is part of the test case
		global: cleanTags(map[string]string{"env": "prod", " service ": " bff "}),
	}
	got := c.Line("session.transition", "1", "c", map[string]string{"result": " success ", "": "ignored", "env": "stage"})
	want := "skills.session.transition:1|c|#env:stage,result:success,service:bff"
	if got != want {
		t.Fatalf("Line mismatch\n got: %q\nwant: %q", got, want)
	}

	if got := (&Client{}).Line("x", "2", "ms", nil); got != "x:2|ms" {
		t.Fatalf("Line without tags = %q", got)
	}
}

func TestClient_WritesOverConnection(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	c := &Client{prefix: "skills", conn: clientConn, global: map[string]string{}}

	done := make(chan string, 1)
	go func() {
		buf := make([]byte, 256)
		n, _ := peerConn.Read(buf)
		done <- string(buf[:n])
	}()

	c.Timing("backend.request", 1500*time.Microsecond, map[string]string{"endpoint": "/users"})

	select {
	case line := <-done:
		if line != "skills.backend.request:1.5|ms|#endpoint:/users" {
			t.Fatalf("unexpected line %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for metric")
	}
}

func TestClientEnabledAndClose(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	client := &Client{conn: clientConn}
	if !client.Enabled() {
		t.Fatal("expected client.Enabled to report true with active connection")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if client.Enabled() {
		t.Fatal("expected client.Enabled to report false after Close")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close (second call) error: %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatal("nil client should report disabled")
	}
	nilClient.Count("x", 1, nil)
	if err := nilClient.Close(); err != nil {
		t.Fatalf("nil client Close error: %v", err)
	}
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: true, Address: "   "})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if client.Enabled() {
		t.Fatal("expected client to stay disabled when address is empty")
	}
	client.Count("dropped", 1, nil)
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	if err == nil {
		t.Fatal("expected NewClient to error for invalid address")
	}
	if !strings.Contains(err.Error(), "statsd dial") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecorder_Counter(t *testing.T) {
	t.Parallel()

	var r Recorder
	r.Count("guard.decision", 1, map[string]string{"decision": "allow"})
	r.Count("guard.decision", 2, map[string]string{"decision": "redirect_login"})
	r.Timing("backend.request", time.Second, nil)

	if got := r.Counter("guard.decision", nil); got != 3 {
		t.Fatalf("Counter(all) = %d, want 3", got)
	}
	if got := r.Counter("guard.decision", map[string]string{"decision": "allow"}); got != 1 {
		t.Fatalf("Counter(allow) = %d, want 1", got)
	}
	if n := len(r.Samples()); n != 3 {
		t.Fatalf("Samples() len = %d, want 3", n)
	}
}
