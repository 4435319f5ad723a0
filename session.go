package goPassCheck

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type sessionInput struct {
	seq      uint64
	password string
}

type lookupOutcome struct {
	seq     uint64
	checkID string
	breach  BreachResult
}

// Session defines a public type used by goPassCheck APIs.
//
// A Session owns one debounced check pipeline for one input field. Every
// Input call publishes a score synchronously; breach updates arrive later
// through the sink, from the session's single event-loop goroutine. Results
// of lookups that were superseded by newer input are discarded, so the sink
// never observes an update for anything but the latest input.
type Session struct {
	engine *Engine
	sink   FeedbackSink
	id     string

	inputs  chan sessionInput
	results chan lookupOutcome
	done    chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	seq       atomic.Uint64
	wg        sync.WaitGroup
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewSession describes the newsession operation and its observable behavior.
//
// NewSession may return an error when input validation, dependency calls, or security checks fail.
// NewSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) NewSession(sink FeedbackSink) (*Session, error) {
	if e == nil || e.client == nil {
		return nil, ErrEngineNotReady
	}
	if sink == nil {
		return nil, ErrNilSink
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		engine:  e,
		sink:    sink,
		id:      uuid.NewString(),
		inputs:  make(chan sessionInput, e.config.Debounce.InputBuffer),
		results: make(chan lookupOutcome, 1),
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}

	s.wg.Add(1)
	go s.run()

	return s, nil
}

// ID describes the id operation and its observable behavior.
//
// ID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Input describes the input operation and its observable behavior.
//
// Input may return an error when input validation, dependency calls, or security checks fail.
// Input does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Session) Input(password string) error {
	if s == nil || s.closed.Load() {
		return ErrSessionClosed
	}

	seq := s.seq.Add(1)

	// Score feedback is synchronous; only the breach lookup is debounced.
	s.sink.PublishScore(s.engine.ScorePassword(password))

	select {
	case s.inputs <- sessionInput{seq: seq, password: password}:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.cancel()
		close(s.done)
		s.wg.Wait()
	})
}

// run is the session event loop. It is the only goroutine that publishes
// breach updates, which serializes sink delivery without locks.
func (s *Session) run() {
	defer s.wg.Done()

	quiet := s.engine.config.Debounce.QuietPeriod

	timer := time.NewTimer(quiet)
	if !timer.Stop() {
		<-timer.C
	}
	timerArmed := false
	var pending sessionInput

	for {
		select {
		case in := <-s.inputs:
			if timerArmed {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timerArmed = false
				s.engine.metricInc(MetricDebounceRestarted)
			}
			pending = in

			// Cleared input resolves immediately; there is nothing to look up.
			if in.password == "" {
				s.engine.metricInc(MetricCheckSkippedEmpty)
				s.publish(in.seq, BreachUpdate{Status: StatusUnknown})
				continue
			}

			timer.Reset(quiet)
			timerArmed = true

		case <-timer.C:
			timerArmed = false
			if pending.seq != s.seq.Load() {
				continue
			}

			checkID := uuid.NewString()
			s.publish(pending.seq, BreachUpdate{CheckID: checkID, Status: StatusChecking})

			go s.lookup(pending.seq, checkID, pending.password)

		case out := <-s.results:
			if out.seq != s.seq.Load() {
				s.engine.metricInc(MetricStaleDiscarded)
				s.engine.emitAudit(s.ctx, auditEventStaleDiscarded, false, out.checkID, "", nil, nil)
				continue
			}

			s.publish(out.seq, BreachUpdate{
				CheckID: out.checkID,
				Status:  out.breach.Status,
				Count:   out.breach.Count,
				Message: s.engine.breachMessageFor(s.ctx, out.breach.Status, out.breach.Count),
			})

		case <-s.done:
			return
		}
	}
}

func (s *Session) lookup(seq uint64, checkID, password string) {
	breach := s.engine.lookupBreach(s.ctx, checkID, password)

	select {
	case s.results <- lookupOutcome{seq: seq, checkID: checkID, breach: breach}:
	case <-s.done:
	}
}

// publish delivers a breach update unless newer input has arrived since the
// update was produced.
func (s *Session) publish(seq uint64, update BreachUpdate) {
	if seq != s.seq.Load() {
		s.engine.metricInc(MetricStaleDiscarded)
		return
	}
	s.sink.PublishBreach(update)
}
