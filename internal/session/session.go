// Package session binds one roster to its store, its holiday source and its
// toast queue. Mutations apply immediately; persistence is debounced and
// runs off the caller's goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/holidays"
	"github.com/julianstephens/roster/internal/logger"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/notify"
	"github.com/julianstephens/roster/internal/roster"
	"github.com/julianstephens/roster/internal/storage"
	"github.com/julianstephens/roster/internal/validation"
)

type Options struct {
	Store    storage.Provider
	Holidays holidays.Provider
	Toasts   *notify.Queue
	// Debounce defaults to constants.PersistDebounce
	Debounce time.Duration
}

type Session struct {
	mu       sync.Mutex
	roster   *roster.Roster
	store    storage.Provider
	provider holidays.Provider
	toasts   *notify.Queue
	debounce time.Duration
	log      *log.Logger
	closed   bool

	// debounced persistence
	timer    *time.Timer
	timerGen uint64
	inflight sync.WaitGroup
	seq      uint64

	saveMu       sync.Mutex
	savedSeq     uint64
	savedVersion uint64 // roster version held by the store
}

// capturedState is a snapshot waiting to be written
type capturedState struct {
	seq      uint64
	version  uint64
	snapshot models.Snapshot
}

func New(opts Options) *Session {
	toasts := opts.Toasts
	if toasts == nil {
		toasts = notify.NewQueue()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = constants.PersistDebounce
	}
	return &Session{
		roster:   roster.New(roster.Seed()),
		store:    opts.Store,
		provider: opts.Holidays,
		toasts:   toasts,
		debounce: debounce,
		log:      logger.Component("session"),
	}
}

func (s *Session) Toasts() *notify.Queue {
	return s.toasts
}

// Initialize loads the stored roster. A missing, malformed or empty roster
// is replaced by the seed, which is persisted right away. Any other load
// failure keeps the seed in memory only and reports it as a toast.
func (s *Session) Initialize(ctx context.Context) error {
	seed := roster.Seed()

	snapshot, loadErr := s.load()
	switch {
	case loadErr == nil && len(snapshot.Employees) > 0:
		snapshot = validation.SanitizeSnapshot(snapshot, seed)
		s.replace(roster.New(snapshot))
		s.log.Info("Roster loaded", "store", s.store.GetConfigPath(), "employees", len(snapshot.Employees), "weeks", len(snapshot.Weeks))

	case loadErr == nil, errors.Is(loadErr, storage.ErrNotFound), errors.Is(loadErr, storage.ErrMalformed):
		if loadErr != nil {
			s.log.Warn("Stored roster unusable, seeding", "error", loadErr)
		}
		s.replace(roster.New(seed))
		if err := s.save(s.captureNow()); err != nil {
			s.log.Error("Failed to persist seed roster", "error", err)
		}

	default:
		s.log.Error("Failed to load roster", "error", loadErr)
		s.toasts.Error(constants.MsgLoadFailed)
		s.replace(roster.New(seed))
	}

	// Holiday failures only surface as a toast.
	_ = s.RefreshHolidays(ctx)

	if loadErr != nil && !errors.Is(loadErr, storage.ErrNotFound) && !errors.Is(loadErr, storage.ErrMalformed) {
		return fmt.Errorf("failed to load roster: %w", loadErr)
	}
	return nil
}

func (s *Session) load() (models.Snapshot, error) {
	if s.store == nil {
		return models.Snapshot{}, storage.ErrNotFound
	}
	if err := s.store.Init(); err != nil {
		return models.Snapshot{}, err
	}
	return s.store.Load()
}

func (s *Session) replace(r *roster.Roster) {
	s.mu.Lock()
	s.roster = r
	s.mu.Unlock()

	s.saveMu.Lock()
	s.savedVersion = r.Version()
	s.saveMu.Unlock()
}

func (s *Session) captureNow() capturedState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capture()
}

// capture expects s.mu to be held.
func (s *Session) capture() capturedState {
	s.seq++
	return capturedState{seq: s.seq, version: s.roster.Version(), snapshot: s.roster.Snapshot()}
}

// View runs fn with the roster under the session lock. fn must not mutate.
func (s *Session) View(fn func(r *roster.Roster)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.roster)
}

// Update runs fn with the roster under the session lock and schedules a
// save when the roster changed.
func (s *Session) Update(fn func(r *roster.Roster)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.roster.Version()
	fn(s.roster)
	if s.roster.Version() != before {
		s.scheduleLocked()
	}
}

func (s *Session) scheduleLocked() {
	if s.closed || s.store == nil {
		return
	}
	s.stopTimerLocked()
	s.timerGen++
	gen := s.timerGen
	s.inflight.Add(1)
	s.timer = time.AfterFunc(s.debounce, func() {
		defer s.inflight.Done()
		s.persistPending(gen)
	})
}

func (s *Session) stopTimerLocked() {
	if s.timer == nil {
		return
	}
	if s.timer.Stop() {
		s.inflight.Done()
	}
	s.timer = nil
}

func (s *Session) persistPending(gen uint64) {
	s.mu.Lock()
	if gen == s.timerGen {
		s.timer = nil
	}
	state := s.capture()
	s.mu.Unlock()

	_ = s.save(state)
}

// save writes snapshot unless a newer one was already persisted. Failures
// leave the in-memory state alone and raise a single error toast.
func (s *Session) save(state capturedState) error {
	if s.store == nil {
		return nil
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if state.seq <= s.savedSeq {
		s.log.Debug("Dropping stale snapshot", "seq", state.seq, "saved", s.savedSeq)
		return nil
	}
	if err := s.store.Save(state.snapshot); err != nil {
		s.log.Error("Failed to persist roster", "error", err)
		s.toasts.Error(constants.MsgSaveFailed)
		return err
	}
	s.savedSeq = state.seq
	s.savedVersion = state.version
	s.log.Debug("Roster persisted", "seq", state.seq)
	return nil
}

// Flush cancels a pending debounced save, waits for a running one and
// writes the current state if the store does not hold it yet. A state whose
// earlier save failed is written again.
func (s *Session) Flush() error {
	s.mu.Lock()
	s.stopTimerLocked()
	s.mu.Unlock()
	s.inflight.Wait()

	s.mu.Lock()
	s.saveMu.Lock()
	dirty := s.store != nil && s.roster.Version() != s.savedVersion
	s.saveMu.Unlock()
	var state capturedState
	if dirty {
		state = s.capture()
	}
	s.mu.Unlock()

	if !dirty {
		return nil
	}
	return s.save(state)
}

// Close flushes pending changes and closes the store. Later mutations are
// applied in memory but never persisted.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.Flush()
	if s.store != nil {
		if cerr := s.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// RefreshHolidays fetches the holidays of every year the weeks touch and
// re-applies the locks. On failure the last known list stays in force.
func (s *Session) RefreshHolidays(ctx context.Context) error {
	if s.provider == nil {
		return nil
	}

	var region string
	var years []int
	s.View(func(r *roster.Roster) {
		region = r.Settings().Region
		years = r.CoveredYears()
	})

	list, err := s.provider.Holidays(ctx, region, years)
	if err != nil {
		s.log.Warn("Failed to load holidays", "region", region, "years", years, "error", err)
		s.toasts.Warn(constants.MsgHolidayFetch)
		return err
	}

	s.Update(func(r *roster.Roster) {
		r.SetHolidays(list)
	})
	s.log.Debug("Holidays refreshed", "region", region, "count", len(list))
	return nil
}

type watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// WatchHolidays refreshes the locks whenever a file-backed holiday source
// changes. Sources that cannot be watched are ignored.
func (s *Session) WatchHolidays(ctx context.Context) error {
	w, ok := s.provider.(watcher)
	if !ok {
		return nil
	}
	return w.Watch(ctx, func() {
		_ = s.RefreshHolidays(ctx)
	})
}
