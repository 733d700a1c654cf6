package applock

import "testing"

func TestMachine_DisabledStaysUnlocked(t *testing.T) {
	m := New(false)

	if m.State() != StateUnlocked {
		t.Fatalf("initial state = %s, want unlocked", m.State())
	}
	if got := m.Background(); got != StateUnlocked {
		t.Errorf("Background() = %s, want unlocked", got)
	}
	if got := m.Foreground(); got != StateUnlocked {
		t.Errorf("Foreground() = %s, want unlocked", got)
	}
}

func TestMachine_UnlockFlow(t *testing.T) {
	m := New(true)

	if m.State() != StateLocked {
		t.Fatalf("initial state = %s, want locked", m.State())
	}
	if got := m.Foreground(); got != StatePrompting {
		t.Fatalf("Foreground() = %s, want prompting", got)
	}
	if got := m.AuthSucceeded(); got != StateUnlocked {
		t.Fatalf("AuthSucceeded() = %s, want unlocked", got)
	}

	// Going to background re-locks; coming back prompts again.
	if got := m.Background(); got != StateLocked {
		t.Fatalf("Background() = %s, want locked", got)
	}
	if got := m.Foreground(); got != StatePrompting {
		t.Fatalf("Foreground() = %s, want prompting", got)
	}
}

func TestMachine_AuthFailureRelocks(t *testing.T) {
	m := New(true)
	m.Foreground()

	if got := m.AuthFailed(); got != StateLocked {
		t.Fatalf("AuthFailed() = %s, want locked", got)
	}
	// A failed prompt can be retried on the next foreground.
	if got := m.Foreground(); got != StatePrompting {
		t.Fatalf("Foreground() after failure = %s, want prompting", got)
	}
}

func TestMachine_BackgroundCancelsPrompt(t *testing.T) {
	m := New(true)
	m.Foreground()

	if got := m.Background(); got != StateLocked {
		t.Fatalf("Background() during prompt = %s, want locked", got)
	}
	// A stale auth result after cancellation must not unlock.
	if got := m.AuthSucceeded(); got != StateLocked {
		t.Errorf("AuthSucceeded() after cancel = %s, want locked", got)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateLocked, "locked"},
		{StatePrompting, "prompting"},
		{StateUnlocked, "unlocked"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
