package game

import "slices"

// Future is an action waiting for its tick.
type Future struct {
	Due    int
	Action Action
}

// ScheduleFuture queues a to run once time reaches now+delay.
func (s *State) ScheduleFuture(delay int, a Action) {
	s.futures = append(s.futures, Future{Due: s.time + delay, Action: a})
}

// Futures returns the pending futures in enqueue order.
func (s *State) Futures() []Future {
	return slices.Clone(s.futures)
}

// takeDue removes and returns the futures due now, in enqueue order. Futures
// scheduled while the returned ones run wait for the next tick advance.
func (s *State) takeDue() []Action {
	var due []Action
	pending := s.futures[:0:0]
	for _, f := range s.futures {
		if f.Due <= s.time {
			due = append(due, f.Action)
		} else {
			pending = append(pending, f)
		}
	}
	s.futures = pending
	return due
}

// advance moves time forward one tick, runs the outbox job when the period
// divides the new time and returns the futures that are now due.
func (s *State) advance() ([]Action, error) {
	s.time++
	if s.time%s.period == 0 {
		if err := s.collectOutbox(); err != nil {
			return nil, err
		}
	}
	return s.takeDue(), nil
}
