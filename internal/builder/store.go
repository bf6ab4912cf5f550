package builder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/logger"
)

// Store owns the canonical in-memory profile for one builder session and
// reconciles it with the remote repository. Editors never hold a mutable
// alias into the shared profile: they read a snapshot, compute a new value,
// and hand it back through Mutate.
type Store struct {
	mu      sync.Mutex
	repo    profile.Repository
	log     logger.Logger
	current *profile.Profile
	loading bool
	loadSeq uint64
	subs    map[uint64]chan profile.Profile
	nextSub uint64
}

func NewStore(repo profile.Repository, log logger.Logger) *Store {
	return &Store{
		repo: repo,
		log:  log,
		subs: map[uint64]chan profile.Profile{},
	}
}

// Load fetches the owner's stored document and replaces the in-memory
// profile. A missing document is not an error: the session keeps defaults
// and the editor renders over them. Loads are tokenized so a stale fetch
// that resolves after a newer one started is discarded instead of clobbering
// the fresher state.
func (s *Store) Load(ctx context.Context, ownerID uuid.UUID) error {
	s.mu.Lock()
	s.loadSeq++
	token := s.loadSeq
	s.loading = true
	s.mu.Unlock()

	p, err := s.repo.GetByOwner(ctx, ownerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.loadSeq {
		s.log.Debug("discarding stale profile load", zap.String("owner_id", ownerID.String()))
		return nil
	}
	s.loading = false

	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.log.Warn("no stored profile, using defaults", zap.String("owner_id", ownerID.String()))
			if s.current == nil {
				s.current = profile.Default(ownerID, "", "")
			}
			s.notifyLocked()
			return nil
		}
		s.log.Error("profile load failed", err, zap.String("owner_id", ownerID.String()))
		return err
	}

	s.current = p
	s.notifyLocked()
	return nil
}

// Save pushes the full in-memory profile to the repository. This is a
// whole-document replace: two sessions of the same user saving concurrently
// last-write-wins. On failure the local draft is untouched so retrying is
// just saving again.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return apperror.NewInvalidInput("no profile loaded in this session", nil)
	}
	snapshot := s.current.Clone()
	s.mu.Unlock()

	snapshot.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.log.Error("profile save failed", err, zap.String("owner_id", snapshot.OwnerID.String()))
		if errors.Is(err, apperror.ErrWriteFailed) {
			return err
		}
		return apperror.NewWriteFailed("profile", err)
	}

	s.mu.Lock()
	s.current.UpdatedAt = snapshot.UpdatedAt
	s.mu.Unlock()
	return nil
}

// Mutate applies a pure transformation to the shared profile and notifies
// subscribers. It is the only way editors change shared state.
func (s *Store) Mutate(fn func(p profile.Profile) profile.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		s.current = profile.Default(uuid.Nil, "", "")
	}
	next := fn(*s.current.Clone())
	s.current = &next
	s.notifyLocked()
}

// Snapshot returns a deep copy of the current profile.
func (s *Store) Snapshot() profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return *profile.Default(uuid.Nil, "", "")
	}
	return *s.current.Clone()
}

// Loading reports whether a load is outstanding, for the UI's loading state.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Subscribe registers a watcher of profile changes. The channel holds the
// latest snapshot only: if the consumer lags, intermediate states are
// dropped, never blocked on.
func (s *Store) Subscribe() (<-chan profile.Profile, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan profile.Profile, 1)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
}

func (s *Store) notifyLocked() {
	if s.current == nil {
		return
	}
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- *s.current.Clone()
	}
}
