package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Dosada05/fast-orienteering/utils"
)

var (
	ErrAccessDenied = errors.New("wrong PIN")
	ErrAccessLocked = errors.New("too many wrong PIN attempts, try again later")
	ErrPromptClosed = errors.New("PIN prompt is not open")
)

// PromptState описывает состояние диалога ввода PIN.
type PromptState int

const (
	PromptIdle PromptState = iota
	PromptPrompting
	PromptGranted
)

func (s PromptState) String() string {
	switch s {
	case PromptIdle:
		return "idle"
	case PromptPrompting:
		return "prompting"
	case PromptGranted:
		return "granted"
	default:
		return "unknown"
	}
}

// LockoutPolicy: MaxAttempts == 0 отключает блокировку (повторный ввод без ограничений).
type LockoutPolicy struct {
	MaxAttempts int
	Duration    time.Duration
}

// AccessGate хранит учётные данные организатора и общий счётчик неудачных попыток.
// Каждый запрос доступа открывает отдельный AccessPrompt.
type AccessGate struct {
	pinHash string
	policy  LockoutPolicy
	now     func() time.Time

	mu          sync.Mutex
	failures    int
	lockedUntil time.Time
}

// NewAccessGate принимает PIN в открытом виде или bcrypt-хеш.
func NewAccessGate(pinOrHash string, policy LockoutPolicy) (*AccessGate, error) {
	hash := pinOrHash
	if !utils.IsBcryptHash(pinOrHash) {
		pin := utils.NormalizePIN(pinOrHash)
		if pin == "" {
			return nil, errors.New("admin PIN must not be empty")
		}
		if len(pin) > utils.MaxPINBytes {
			return nil, fmt.Errorf("admin PIN must be at most %d bytes, got %d", utils.MaxPINBytes, len(pin))
		}
		h, err := utils.HashPIN(pinOrHash)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	if policy.MaxAttempts < 0 {
		policy.MaxAttempts = 0
	}
	return &AccessGate{pinHash: hash, policy: policy, now: time.Now}, nil
}

// Prompt открывает диалог ввода PIN (Idle -> Prompting). onGranted вызывается один раз
// при успехе, onDenied при каждом неверном PIN. Любой из них может быть nil.
func (g *AccessGate) Prompt(onGranted, onDenied func()) *AccessPrompt {
	return &AccessPrompt{
		gate:      g,
		state:     PromptPrompting,
		onGranted: onGranted,
		onDenied:  onDenied,
	}
}

// Locked сообщает, отклоняются ли сейчас все попытки.
func (g *AccessGate) Locked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lockedLocked()
}

func (g *AccessGate) lockedLocked() bool {
	return !g.lockedUntil.IsZero() && g.now().Before(g.lockedUntil)
}

func (g *AccessGate) check(secret string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lockedLocked() {
		return ErrAccessLocked
	}
	if utils.CheckPINHash(secret, g.pinHash) {
		g.failures = 0
		g.lockedUntil = time.Time{}
		return nil
	}
	g.failures++
	if g.policy.MaxAttempts > 0 && g.failures >= g.policy.MaxAttempts {
		g.failures = 0
		g.lockedUntil = g.now().Add(g.policy.Duration)
	}
	return ErrAccessDenied
}

// AccessPrompt представляет один диалог ввода PIN.
type AccessPrompt struct {
	gate      *AccessGate
	onGranted func()
	onDenied  func()

	mu    sync.Mutex
	state PromptState
}

func (p *AccessPrompt) State() PromptState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Submit проверяет введённый PIN. При неверном PIN диалог остаётся открытым.
func (p *AccessPrompt) Submit(secret string) error {
	p.mu.Lock()
	if p.state != PromptPrompting {
		p.mu.Unlock()
		return ErrPromptClosed
	}
	err := p.gate.check(secret)
	if err == nil {
		p.state = PromptGranted
	}
	p.mu.Unlock()

	switch {
	case err == nil:
		if p.onGranted != nil {
			p.onGranted()
		}
	case errors.Is(err, ErrAccessDenied):
		if p.onDenied != nil {
			p.onDenied()
		}
	}
	return err
}

// Cancel закрывает диалог без вызова колбэков.
func (p *AccessPrompt) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == PromptPrompting {
		p.state = PromptIdle
	}
}
