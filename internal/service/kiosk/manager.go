package kiosk

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/kiosk"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/sse"
)

const stateEvent = "state"

// Config holds kiosk timings.
type Config struct {
	ErrorDisplay   time.Duration
	SuccessDisplay time.Duration
	IdleTTL        time.Duration
	ReapInterval   time.Duration
	Location       *time.Location
}

func DefaultConfig() Config {
	return Config{
		ErrorDisplay:   1500 * time.Millisecond,
		SuccessDisplay: 5 * time.Second,
		IdleTTL:        10 * time.Minute,
		ReapInterval:   time.Minute,
		Location:       time.UTC,
	}
}

// KioskServiceImpl keeps live sessions in memory and broadcasts each state
// change on the session's hub topic.
type KioskServiceImpl struct {
	deps     Deps
	settings settings.Provider
	hub      *sse.Hub
	idleTTL  time.Duration
	reap     time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewKioskService fills unset Deps fields with production defaults.
func NewKioskService(deps Deps, settingsProvider settings.Provider, hub *sse.Hub, cfg Config) *KioskServiceImpl {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.AfterFunc == nil {
		deps.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	if deps.Pick == nil {
		deps.Pick = rand.Intn
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	deps.Location = cfg.Location
	deps.ErrorDisplay = cfg.ErrorDisplay
	deps.SuccessDisplay = cfg.SuccessDisplay

	return &KioskServiceImpl{
		deps:     deps,
		settings: settingsProvider,
		hub:      hub,
		idleTTL:  cfg.IdleTTL,
		reap:     cfg.ReapInterval,
		sessions: make(map[string]*Session),
	}
}

func (s *KioskServiceImpl) CreateSession(ctx context.Context) (kiosk.Snapshot, error) {
	id := s.deps.Generator.NewID()
	session := NewSession(id, s.deps, s.settings.Current(), func(snap kiosk.Snapshot) {
		s.hub.Publish(id, sse.Event{Event: stateEvent, Data: snap})
	})

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	slog.Info("Kiosk session opened", "session_id", id)
	return session.Snapshot(), nil
}

func (s *KioskServiceImpl) session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, kiosk.ErrSessionNotFound
	}
	return session, nil
}

func (s *KioskServiceImpl) GetSession(ctx context.Context, id string) (kiosk.Snapshot, error) {
	session, err := s.session(id)
	if err != nil {
		return kiosk.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

func (s *KioskServiceImpl) PressDigit(ctx context.Context, id string, digit rune) (kiosk.Snapshot, error) {
	session, err := s.session(id)
	if err != nil {
		return kiosk.Snapshot{}, err
	}
	return session.PressDigit(ctx, digit)
}

func (s *KioskServiceImpl) Backspace(ctx context.Context, id string) (kiosk.Snapshot, error) {
	session, err := s.session(id)
	if err != nil {
		return kiosk.Snapshot{}, err
	}
	return session.Backspace()
}

func (s *KioskServiceImpl) Clear(ctx context.Context, id string) (kiosk.Snapshot, error) {
	session, err := s.session(id)
	if err != nil {
		return kiosk.Snapshot{}, err
	}
	return session.Clear()
}

func (s *KioskServiceImpl) RotatePIN(ctx context.Context, id string, newPIN string) (kiosk.Snapshot, error) {
	session, err := s.session(id)
	if err != nil {
		return kiosk.Snapshot{}, err
	}
	return session.RotatePIN(ctx, newPIN)
}

func (s *KioskServiceImpl) Mark(ctx context.Context, id string, markType attendance.Type) (kiosk.Snapshot, error) {
	session, err := s.session(id)
	if err != nil {
		return kiosk.Snapshot{}, err
	}
	return session.Mark(ctx, markType)
}

func (s *KioskServiceImpl) Dismiss(ctx context.Context, id string) (kiosk.Snapshot, error) {
	session, err := s.session(id)
	if err != nil {
		return kiosk.Snapshot{}, err
	}
	return session.Dismiss()
}

func (s *KioskServiceImpl) Exit(ctx context.Context, id string) (kiosk.Snapshot, error) {
	session, err := s.session(id)
	if err != nil {
		return kiosk.Snapshot{}, err
	}
	snap := session.Exit()
	s.remove(id)
	return snap, nil
}

func (s *KioskServiceImpl) CloseSession(ctx context.Context, id string) error {
	session, err := s.session(id)
	if err != nil {
		return err
	}
	session.Close()
	s.remove(id)
	return nil
}

func (s *KioskServiceImpl) remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.hub.CloseTopic(id)
	slog.Info("Kiosk session closed", "session_id", id)
}

// Watch sends the current snapshot followed by every change. The channel is
// closed when the session ends or cleanup is called.
func (s *KioskServiceImpl) Watch(ctx context.Context, id string) (<-chan kiosk.Snapshot, func(), error) {
	session, err := s.session(id)
	if err != nil {
		return nil, nil, err
	}

	events, cleanup := s.hub.Subscribe(id)
	out := make(chan kiosk.Snapshot, 10)
	out <- session.Snapshot()

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				cleanup()
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				snap, ok := ev.Data.(kiosk.Snapshot)
				if !ok {
					continue
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					cleanup()
					return
				}
			}
		}
	}()

	return out, cleanup, nil
}

// ReapIdle closes sessions that have not changed for longer than the idle TTL.
func (s *KioskServiceImpl) ReapIdle(ctx context.Context) error {
	if s.idleTTL <= 0 {
		return nil
	}
	cutoff := s.deps.Clock().Add(-s.idleTTL)

	s.mu.RLock()
	var stale []*Session
	for _, session := range s.sessions {
		if session.LastActivity().Before(cutoff) {
			stale = append(stale, session)
		}
	}
	s.mu.RUnlock()

	for _, session := range stale {
		session.Close()
		s.remove(session.ID())
	}
	if len(stale) > 0 {
		slog.Info("Reaped idle kiosk sessions", "count", len(stale))
	}
	return nil
}

// ReaperJob returns the cron job that evicts abandoned sessions.
func (s *KioskServiceImpl) ReaperJob() cron.Job {
	interval := s.reap
	if interval <= 0 {
		interval = time.Minute
	}
	return cron.Job{
		Name:     "kiosk-session-reaper",
		Interval: interval,
		Fn:       s.ReapIdle,
	}
}

// Shutdown closes every live session.
func (s *KioskServiceImpl) Shutdown() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for id, session := range sessions {
		session.Close()
		s.hub.CloseTopic(id)
	}
}

// ActiveSessions reports how many sessions are open.
func (s *KioskServiceImpl) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
