package goPassCheck

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// SHA-1("hunter2") split into its range-query key.
const (
	hunter2Prefix = "F3BBB"
	hunter2Suffix = "D66A63D4BF1747940578EC3D0103530E21D"
)

func awaitBreach(t *testing.T, sink *recordingSink, timeout time.Duration) BreachUpdate {
	t.Helper()

	select {
	case update := <-sink.breachC:
		return update
	case <-time.After(timeout):
		t.Fatal("timed out waiting for breach update")
		return BreachUpdate{}
	}
}

// awaitTerminal drains checking updates until a terminal status arrives.
func awaitTerminal(t *testing.T, sink *recordingSink, timeout time.Duration) BreachUpdate {
	t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case update := <-sink.breachC:
			if update.Status != StatusChecking {
				return update
			}
		case <-deadline:
			t.Fatal("timed out waiting for terminal breach update")
			return BreachUpdate{}
		}
	}
}

func TestSessionScoreIsSynchronous(t *testing.T) {
	rs := newRangeServer(t)
	engine := buildTestEngine(t, func(c *Config) {
		c.Lookup.BaseURL = rs.URL()
		c.Debounce.QuietPeriod = time.Hour // breach path never fires
	})

	sink := newRecordingSink()
	session, err := engine.NewSession(sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer session.Close()

	if err := session.Input("Abcdef12345!"); err != nil {
		t.Fatalf("Input failed: %v", err)
	}

	if sink.ScoreCount() != 1 {
		t.Fatalf("expected 1 score publication, got %d", sink.ScoreCount())
	}
	if got := sink.LastScore().Score; got != 100 {
		t.Fatalf("expected score 100, got %d", got)
	}
}

func TestSessionDebounceCollapsesBurst(t *testing.T) {
	rs := newRangeServer(t)
	rs.SetBody(passwordPrefix, passwordSuffix+":42\r\n")

	engine := buildTestEngine(t, func(c *Config) {
		c.Lookup.BaseURL = rs.URL()
		c.Debounce.QuietPeriod = 50 * time.Millisecond
		c.Metrics.Enabled = true
	})

	sink := newRecordingSink()
	session, err := engine.NewSession(sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer session.Close()

	for _, password := range []string{"p", "pa", "pas", "password"} {
		if err := session.Input(password); err != nil {
			t.Fatalf("Input(%q) failed: %v", password, err)
		}
	}

	first := awaitBreach(t, sink, 2*time.Second)
	if first.Status != StatusChecking {
		t.Fatalf("expected checking update first, got %s", first.Status)
	}
	if first.CheckID == "" {
		t.Fatal("expected check id on checking update")
	}

	final := awaitTerminal(t, sink, 2*time.Second)
	if final.Status != StatusFound {
		t.Fatalf("expected found, got %s", final.Status)
	}
	if final.Count != 42 {
		t.Fatalf("expected count 42, got %d", final.Count)
	}
	if final.CheckID != first.CheckID {
		t.Fatalf("check id changed mid-check: %s vs %s", first.CheckID, final.CheckID)
	}
	if final.Message == "" {
		t.Fatal("expected terminal message")
	}

	if rs.Requests() != 1 {
		t.Fatalf("expected burst to collapse to 1 wire request, got %d", rs.Requests())
	}
	if sink.ScoreCount() != 4 {
		t.Fatalf("expected a score per keystroke, got %d", sink.ScoreCount())
	}
	if got := engine.MetricsSnapshot().Counters[MetricDebounceRestarted]; got != 3 {
		t.Fatalf("expected 3 debounce restarts, got %d", got)
	}
}

func TestSessionEmptyInputResolvesUnknown(t *testing.T) {
	rs := newRangeServer(t)
	engine := buildTestEngine(t, func(c *Config) {
		c.Lookup.BaseURL = rs.URL()
		c.Debounce.QuietPeriod = 20 * time.Millisecond
	})

	sink := newRecordingSink()
	session, err := engine.NewSession(sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer session.Close()

	if err := session.Input(""); err != nil {
		t.Fatalf("Input failed: %v", err)
	}

	update := awaitBreach(t, sink, 2*time.Second)
	if update.Status != StatusUnknown {
		t.Fatalf("expected unknown, got %s", update.Status)
	}

	time.Sleep(60 * time.Millisecond)
	if rs.Requests() != 0 {
		t.Fatalf("expected no wire requests for empty input, got %d", rs.Requests())
	}
}

func TestSessionStaleLookupDiscarded(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/range/" + passwordPrefix:
			<-release
			_, _ = w.Write([]byte(passwordSuffix + ":42\r\n"))
		case "/range/" + hunter2Prefix:
			_, _ = w.Write([]byte(hunter2Suffix + ":17\r\n"))
		default:
			_, _ = w.Write([]byte(""))
		}
	}))
	defer server.Close()
	defer close(release)

	engine := buildTestEngine(t, func(c *Config) {
		c.Lookup.BaseURL = server.URL
		c.Debounce.QuietPeriod = 20 * time.Millisecond
		c.Metrics.Enabled = true
	})

	sink := newRecordingSink()
	session, err := engine.NewSession(sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer session.Close()

	if err := session.Input("password"); err != nil {
		t.Fatalf("Input failed: %v", err)
	}

	// The first lookup is now in flight and blocked on the handler gate.
	first := awaitBreach(t, sink, 2*time.Second)
	if first.Status != StatusChecking {
		t.Fatalf("expected checking update, got %s", first.Status)
	}

	if err := session.Input("hunter2"); err != nil {
		t.Fatalf("Input failed: %v", err)
	}

	second := awaitBreach(t, sink, 2*time.Second)
	if second.Status != StatusChecking {
		t.Fatalf("expected checking update, got %s", second.Status)
	}

	final := awaitTerminal(t, sink, 2*time.Second)
	if final.Status != StatusFound || final.Count != 17 {
		t.Fatalf("expected hunter2 outcome (found, 17), got (%s, %d)", final.Status, final.Count)
	}

	// Unblock the superseded lookup and wait for it to be discarded.
	release <- struct{}{}

	deadline := time.After(2 * time.Second)
	for engine.MetricsSnapshot().Counters[MetricStaleDiscarded] == 0 {
		select {
		case <-deadline:
			t.Fatal("stale lookup was never discarded")
		case <-time.After(5 * time.Millisecond):
		}
	}

	for _, update := range sink.BreachUpdates() {
		if update.Count == 42 {
			t.Fatalf("stale outcome leaked to the sink: %+v", update)
		}
	}
}

func TestSessionInputAfterCloseFails(t *testing.T) {
	rs := newRangeServer(t)
	engine := buildTestEngine(t, func(c *Config) {
		c.Lookup.BaseURL = rs.URL()
	})

	sink := newRecordingSink()
	session, err := engine.NewSession(sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	session.Close()
	session.Close() // idempotent

	if err := session.Input("password"); err != ErrSessionClosed {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSessionCloseCancelsInFlightLookup(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	engine := buildTestEngine(t, func(c *Config) {
		c.Lookup.BaseURL = server.URL
		c.Debounce.QuietPeriod = 20 * time.Millisecond
	})

	sink := newRecordingSink()
	session, err := engine.NewSession(sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if err := session.Input("password"); err != nil {
		t.Fatalf("Input failed: %v", err)
	}

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("lookup never reached the server")
	}

	done := make(chan struct{})
	go func() {
		session.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return while a lookup was in flight")
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	rs := newRangeServer(t)
	engine := buildTestEngine(t, func(c *Config) {
		c.Lookup.BaseURL = rs.URL()
	})

	sink := newRecordingSink()
	a, err := engine.NewSession(sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer a.Close()

	b, err := engine.NewSession(sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer b.Close()

	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("expected distinct session ids, got %q and %q", a.ID(), b.ID())
	}
}

func TestNewSessionRequiresSink(t *testing.T) {
	rs := newRangeServer(t)
	engine := buildTestEngine(t, func(c *Config) {
		c.Lookup.BaseURL = rs.URL()
	})

	if _, err := engine.NewSession(nil); err != ErrNilSink {
		t.Fatalf("expected ErrNilSink, got %v", err)
	}
}
