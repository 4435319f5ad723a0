package goPassCheck

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// SHA-1("password") split into its range-query key. Used by tests that need
// a real digest against a stub range endpoint.
const (
	passwordPrefix = "5BAA6"
	passwordSuffix = "1E4C9B93F3F0682250B6CF8331B7EE68FD8"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

// rangeServer is a stub range endpoint with a per-prefix body table and a
// request counter.
type rangeServer struct {
	server   *http.ServeMux
	ts       *httptest.Server
	mu       sync.Mutex
	bodies   map[string]string
	status   int
	requests atomic.Int64
}

func newRangeServer(t *testing.T) *rangeServer {
	t.Helper()

	rs := &rangeServer{
		bodies: make(map[string]string),
		status: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/range/", func(w http.ResponseWriter, r *http.Request) {
		rs.requests.Add(1)

		rs.mu.Lock()
		status := rs.status
		body := rs.bodies[r.URL.Path[len("/range/"):]]
		rs.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = w.Write([]byte(body))
	})

	rs.server = mux
	rs.ts = httptest.NewServer(mux)
	t.Cleanup(rs.ts.Close)

	return rs
}

func (rs *rangeServer) URL() string { return rs.ts.URL }

func (rs *rangeServer) Requests() int64 { return rs.requests.Load() }

func (rs *rangeServer) SetBody(prefix, body string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.bodies[prefix] = body
}

func (rs *rangeServer) SetStatus(status int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.status = status
}

// recordingSink captures feedback publications for assertions.
type recordingSink struct {
	mu      sync.Mutex
	scores  []ScoreResult
	breach  []BreachUpdate
	breachC chan BreachUpdate
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		breachC: make(chan BreachUpdate, 64),
	}
}

func (s *recordingSink) PublishScore(result ScoreResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = append(s.scores, result)
}

func (s *recordingSink) PublishBreach(update BreachUpdate) {
	s.mu.Lock()
	s.breach = append(s.breach, update)
	s.mu.Unlock()

	select {
	case s.breachC <- update:
	default:
	}
}

func (s *recordingSink) ScoreCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scores)
}

func (s *recordingSink) LastScore() ScoreResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scores) == 0 {
		return ScoreResult{}
	}
	return s.scores[len(s.scores)-1]
}

func (s *recordingSink) BreachUpdates() []BreachUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]BreachUpdate, len(s.breach))
	copy(out, s.breach)
	return out
}

func buildTestEngine(t *testing.T, mutate func(*Config), opts ...func(*Builder)) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	builder := New().WithConfig(cfg)
	for _, opt := range opts {
		opt(builder)
	}

	engine, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}
