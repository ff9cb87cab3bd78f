package disclosure

import (
	"errors"
	"testing"
)

func TestNewIsClosed(t *testing.T) {
	c := New()
	if c.IsOpen() {
		t.Fatal("new controller should be closed")
	}
	if c.State() != Closed {
		t.Errorf("State = %v, want closed", c.State())
	}
}

func TestToggleParity(t *testing.T) {
	for n := 0; n <= 9; n++ {
		c := New()
		for i := 0; i < n; i++ {
			c.Toggle()
		}
		want := n%2 == 1
		if c.IsOpen() != want {
			t.Errorf("after %d toggles IsOpen = %v, want %v", n, c.IsOpen(), want)
		}
	}
}

func TestToggleIsInvolution(t *testing.T) {
	for _, start := range []State{Closed, Open} {
		c := New()
		if start == Open {
			c.Toggle()
		}
		c.Toggle()
		c.Toggle()
		if c.State() != start {
			t.Errorf("toggle(toggle(%v)) = %v", start, c.State())
		}
	}
}

func TestActivateMatchesToggle(t *testing.T) {
	activations := []struct {
		name string
		a    Activation
	}{
		{"click", Click()},
		{"enter", KeyPress("Enter")},
		{"space", KeyPress(" ")},
		{"spacebar", KeyPress("Spacebar")},
	}
	for _, tt := range activations {
		t.Run(tt.name, func(t *testing.T) {
			for _, start := range []State{Closed, Open} {
				direct := New()
				activated := New()
				if start == Open {
					direct.Toggle()
					activated.Toggle()
				}
				direct.Toggle()
				if !activated.Activate(tt.a) {
					t.Fatalf("Activate(%+v) reported no change", tt.a)
				}
				if activated.State() != direct.State() {
					t.Errorf("from %v: Activate -> %v, Toggle -> %v", start, activated.State(), direct.State())
				}
			}
		})
	}
}

func TestActivateIgnoresOtherKeys(t *testing.T) {
	c := New()
	for _, key := range []string{"Escape", "a", "Tab", ""} {
		if c.Activate(KeyPress(key)) {
			t.Errorf("key %q should not toggle", key)
		}
	}
	if c.IsOpen() {
		t.Error("ignored keys changed state")
	}
}

func TestSubscribeNotifiesInOrder(t *testing.T) {
	c := New()
	var got []string
	c.Subscribe(func(s State) { got = append(got, "a:"+s.String()) })
	c.Subscribe(func(s State) { got = append(got, "b:"+s.String()) })

	c.Toggle()
	c.Toggle()

	want := []string{"a:open", "b:open", "a:closed", "b:closed"}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	c := New()
	calls := 0
	unsubscribe := c.Subscribe(func(State) { calls++ })
	c.Toggle()
	unsubscribe()
	unsubscribe()
	c.Toggle()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	c := New()
	calls := 0
	var unsubscribe func()
	unsubscribe = c.Subscribe(func(State) {
		calls++
		unsubscribe()
	})
	c.Subscribe(func(State) { calls++ })
	c.Toggle()
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	c.Toggle()
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestIgnoredActivationDoesNotNotify(t *testing.T) {
	c := New()
	calls := 0
	c.Subscribe(func(State) { calls++ })
	c.Activate(KeyPress("x"))
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestPresentationFor(t *testing.T) {
	closed := PresentationFor(false)
	open := PresentationFor(true)
	if closed == open {
		t.Fatal("presentations should differ")
	}
	if !closed.Hidden() || open.Hidden() {
		t.Errorf("Hidden: closed=%v open=%v", closed.Hidden(), open.Hidden())
	}
	if closed.Offset != "-100%" || closed.Shadow != "none" {
		t.Errorf("closed = %+v", closed)
	}
	if open.Offset != "0" || open.Shadow != DrawerShadow {
		t.Errorf("open = %+v", open)
	}
	if got := closed.Style(); got != "left: -100%; box-shadow: none;" {
		t.Errorf("Style = %q", got)
	}
}

func TestParseActivation(t *testing.T) {
	tests := []struct {
		input, key string
		want       Activation
	}{
		{"pointer", "", Click()},
		{"key", "Enter", KeyPress("Enter")},
		{"key", " ", KeyPress(" ")},
	}
	for _, tt := range tests {
		got, err := ParseActivation(tt.input, tt.key)
		if err != nil {
			t.Fatalf("ParseActivation(%q, %q): %v", tt.input, tt.key, err)
		}
		if got != tt.want {
			t.Errorf("ParseActivation(%q, %q) = %+v, want %+v", tt.input, tt.key, got, tt.want)
		}
	}

	for _, input := range []string{"voice", "", "click", "keyboard", "Pointer"} {
		if _, err := ParseActivation(input, "Enter"); !errors.Is(err, ErrUnknownInput) {
			t.Errorf("ParseActivation(%q): expected ErrUnknownInput, got %v", input, err)
		}
	}
}
