package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/fast-orienteering/utils"
)

func newTestGate(t *testing.T, policy LockoutPolicy) *AccessGate {
	t.Helper()
	gate, err := NewAccessGate("1234", policy)
	if err != nil {
		t.Fatalf("NewAccessGate: %v", err)
	}
	return gate
}

func TestAccessGate_GrantedOnce(t *testing.T) {
	gate := newTestGate(t, LockoutPolicy{})

	granted, denied := 0, 0
	prompt := gate.Prompt(func() { granted++ }, func() { denied++ })
	if prompt.State() != PromptPrompting {
		t.Fatalf("new prompt state = %v", prompt.State())
	}

	if err := prompt.Submit(" 1234 "); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if granted != 1 || denied != 0 {
		t.Fatalf("granted=%d denied=%d", granted, denied)
	}
	if prompt.State() != PromptGranted {
		t.Fatalf("state = %v, want granted", prompt.State())
	}

	if err := prompt.Submit("1234"); !errors.Is(err, ErrPromptClosed) {
		t.Fatalf("second submit: expected ErrPromptClosed, got %v", err)
	}
	prompt.Cancel()
	if granted != 1 || prompt.State() != PromptGranted {
		t.Fatalf("granted prompt changed after cancel: granted=%d state=%v", granted, prompt.State())
	}
}

func TestAccessGate_WrongPINKeepsPromptOpen(t *testing.T) {
	gate := newTestGate(t, LockoutPolicy{})

	granted, denied := 0, 0
	prompt := gate.Prompt(func() { granted++ }, func() { denied++ })

	for i := 0; i < 50; i++ {
		if err := prompt.Submit("0000"); !errors.Is(err, ErrAccessDenied) {
			t.Fatalf("attempt %d: expected ErrAccessDenied, got %v", i, err)
		}
		if prompt.State() != PromptPrompting {
			t.Fatalf("attempt %d: state = %v", i, prompt.State())
		}
	}
	if denied != 50 || granted != 0 {
		t.Fatalf("granted=%d denied=%d", granted, denied)
	}

	if err := prompt.Submit("1234"); err != nil {
		t.Fatalf("correct PIN after denials: %v", err)
	}
	if granted != 1 {
		t.Fatalf("granted = %d", granted)
	}
}

func TestAccessGate_EmptyAndCaseSensitive(t *testing.T) {
	gate, err := NewAccessGate("Fast", LockoutPolicy{})
	if err != nil {
		t.Fatalf("NewAccessGate: %v", err)
	}
	prompt := gate.Prompt(nil, nil)
	for _, wrong := range []string{"", "   ", "fast", "FAST"} {
		if err := prompt.Submit(wrong); !errors.Is(err, ErrAccessDenied) {
			t.Fatalf("Submit(%q): expected ErrAccessDenied, got %v", wrong, err)
		}
	}
	if err := prompt.Submit("Fast"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestAccessGate_CancelFiresNoCallback(t *testing.T) {
	gate := newTestGate(t, LockoutPolicy{})

	called := false
	prompt := gate.Prompt(func() { called = true }, func() { called = true })
	prompt.Cancel()

	if called {
		t.Fatalf("cancel must not fire callbacks")
	}
	if prompt.State() != PromptIdle {
		t.Fatalf("state = %v, want idle", prompt.State())
	}
	if err := prompt.Submit("1234"); !errors.Is(err, ErrPromptClosed) {
		t.Fatalf("submit after cancel: expected ErrPromptClosed, got %v", err)
	}
	if called {
		t.Fatalf("closed prompt must not fire callbacks")
	}
}

func TestAccessGate_Lockout(t *testing.T) {
	gate := newTestGate(t, LockoutPolicy{MaxAttempts: 3, Duration: time.Minute})
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return now }

	denied := 0
	prompt := gate.Prompt(nil, func() { denied++ })
	for i := 0; i < 3; i++ {
		if err := prompt.Submit("0000"); !errors.Is(err, ErrAccessDenied) {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	if !gate.Locked() {
		t.Fatalf("gate must be locked after 3 failures")
	}

	// Блокировка общая для всех диалогов, и даже верный PIN отклоняется.
	other := gate.Prompt(nil, nil)
	if err := other.Submit("1234"); !errors.Is(err, ErrAccessLocked) {
		t.Fatalf("expected ErrAccessLocked, got %v", err)
	}
	if err := prompt.Submit("0000"); !errors.Is(err, ErrAccessLocked) {
		t.Fatalf("expected ErrAccessLocked, got %v", err)
	}
	if denied != 3 {
		t.Fatalf("locked attempts must not count as denials, denied=%d", denied)
	}

	now = now.Add(time.Minute)
	if gate.Locked() {
		t.Fatalf("lock must expire")
	}
	if err := other.Submit("1234"); err != nil {
		t.Fatalf("submit after lock expiry: %v", err)
	}
}

func TestAccessGate_AcceptsBcryptHash(t *testing.T) {
	hash, err := utils.HashPIN("2468")
	if err != nil {
		t.Fatalf("HashPIN: %v", err)
	}
	gate, err := NewAccessGate(hash, LockoutPolicy{})
	if err != nil {
		t.Fatalf("NewAccessGate: %v", err)
	}
	if err := gate.Prompt(nil, nil).Submit("2468"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := gate.Prompt(nil, nil).Submit(hash); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("hash itself must not be accepted as PIN, got %v", err)
	}
}

func TestNewAccessGate_EmptyPIN(t *testing.T) {
	if _, err := NewAccessGate("  ", LockoutPolicy{}); err == nil {
		t.Fatalf("expected error for empty PIN")
	}
}

func TestAccessGate_LongPINSuffixDenied(t *testing.T) {
	pin := strings.Repeat("7", utils.MaxPINBytes)
	gate, err := NewAccessGate(pin, LockoutPolicy{})
	if err != nil {
		t.Fatalf("NewAccessGate: %v", err)
	}

	granted := false
	prompt := gate.Prompt(func() { granted = true }, nil)
	if err := prompt.Submit(pin + "WRONG"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if granted || prompt.State() != PromptPrompting {
		t.Fatalf("prompt must stay open, granted=%v state=%v", granted, prompt.State())
	}
	if err := prompt.Submit(pin); err != nil {
		t.Fatalf("exact PIN: %v", err)
	}
}

func TestNewAccessGate_PINTooLong(t *testing.T) {
	_, err := NewAccessGate(strings.Repeat("7", utils.MaxPINBytes+1), LockoutPolicy{})
	if err == nil || !strings.Contains(err.Error(), "at most 72 bytes") {
		t.Fatalf("expected a length error, got %v", err)
	}
}
