// Package disclosure implements the open/closed state of the overlay
// navigation drawer and the toggle affordances that change it.
//
// A Controller is owned by exactly one page shell. It is not safe for
// concurrent use; callers that share a shell across goroutines serialize
// access themselves.
package disclosure

// State is the drawer's disclosure state.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Controller is the single source of truth for whether the overlay drawer
// is visible, and the only thing that changes it.
type Controller struct {
	state     State
	listeners []*listener
}

type listener struct {
	fn func(State)
}

// New returns a Controller in the Closed state.
func New() *Controller {
	return &Controller{state: Closed}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// IsOpen reports whether the drawer is open.
func (c *Controller) IsOpen() bool {
	return c.state == Open
}

// Toggle inverts the state and notifies subscribers in subscription order.
func (c *Controller) Toggle() {
	if c.state == Open {
		c.state = Closed
	} else {
		c.state = Open
	}
	// Copy so a listener may unsubscribe while being notified.
	ls := make([]*listener, len(c.listeners))
	copy(ls, c.listeners)
	for _, l := range ls {
		l.fn(c.state)
	}
}

// Subscribe registers fn to be called after every state change. The
// returned func removes the registration; calling it more than once is a
// no-op.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	l := &listener{fn: fn}
	c.listeners = append(c.listeners, l)
	return func() {
		for i, cur := range c.listeners {
			if cur == l {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// Activate handles one activation of a toggle affordance. Pointer
// activation and the Enter and Space keys all toggle; any other key is
// ignored. It reports whether the state changed.
func (c *Controller) Activate(a Activation) bool {
	if !a.Toggles() {
		return false
	}
	c.Toggle()
	return true
}
