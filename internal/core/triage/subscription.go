package triage

import "sync"

// Nav is a navigation command delivered to a subscribed controller.
type Nav int

const (
	NavNext Nav = iota
	NavPrevious
)

func (n Nav) String() string {
	switch n {
	case NavNext:
		return "next"
	case NavPrevious:
		return "previous"
	default:
		return "unknown"
	}
}

// Apply runs a navigation command against the controller and returns the
// resulting state.
func (c *Controller) Apply(nav Nav) State {
	switch nav {
	case NavNext:
		c.Next()
	case NavPrevious:
		c.Previous()
	}
	return c.Snapshot()
}

type navRequest struct {
	nav   Nav
	reply chan State
}

// Subscription feeds navigation commands from an input source into a
// controller. It is created when a view is mounted and must be closed when
// the view unmounts.
type Subscription struct {
	requests chan navRequest
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once
}

// Subscribe starts a subscription that applies navigation commands to c in
// the order they are sent.
func (c *Controller) Subscribe() *Subscription {
	s := &Subscription{
		requests: make(chan navRequest),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	go func() {
		defer close(s.stopped)
		for {
			select {
			case <-s.done:
				return
			case req := <-s.requests:
				req.reply <- c.Apply(req.nav)
			}
		}
	}()

	return s
}

// Send delivers nav and waits for the resulting state. It returns false when
// the subscription has been closed.
func (s *Subscription) Send(nav Nav) (State, bool) {
	req := navRequest{nav: nav, reply: make(chan State, 1)}

	select {
	case <-s.done:
		return State{}, false
	case s.requests <- req:
	}

	return <-req.reply, true
}

// Close stops the subscription and waits for its goroutine to exit. Close is
// idempotent.
func (s *Subscription) Close() {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
}

// Closed reports whether Close has been called.
func (s *Subscription) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
