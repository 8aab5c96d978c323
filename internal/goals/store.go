// Package goals keeps a session-local collection of a user's financial goals
// and reconciles it with the remote goals API.
//
// Goals added locally are pending until a create succeeds, at which point the
// pending token is replaced by the server-assigned id. Field edits never touch
// the network; SaveOne and SaveAll push them.
package goals

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/fyzahq/fyza/internal/model"
)

// Remote is the goals API the store synchronizes with
type Remote interface {
	ListGoals(ctx context.Context, ownerID int64) ([]model.FinancialGoal, error)
	CreateGoal(ctx context.Context, in model.GoalInput) (*model.FinancialGoal, error)
	UpdateGoal(ctx context.Context, goalID string, u model.GoalUpdate) (*model.FinancialGoal, error)
	DeleteGoal(ctx context.Context, goalID string) error
}

type Store struct {
	remote      Remote
	concurrency int
	logger      *slog.Logger

	mu       sync.Mutex
	goals    []Goal
	err      error
	inflight int
}

type Option func(*Store)

// WithConcurrency caps the number of requests SaveAll runs at once. Zero or
// less means no cap.
func WithConcurrency(n int) Option {
	return func(s *Store) {
		s.concurrency = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func NewStore(remote Remote, opts ...Option) *Store {
	s := &Store{
		remote: remote,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Goals returns a copy of the collection in insertion order
func (s *Store) Goals() []Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.goals)
}

func (s *Store) Get(id Identity) (Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Goal{}, false
	}
	return s.goals[i], true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.goals)
}

// Err returns the error of the most recent failed remote operation. It is
// cleared whenever a remote operation starts.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Busy reports whether any remote call is in flight
func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Load replaces the collection with the owner's goals from the remote. On
// failure the collection is emptied.
func (s *Store) Load(ctx context.Context, ownerID int64) error {
	s.begin()
	records, err := s.remote.ListGoals(ctx, ownerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if err != nil {
		s.goals = nil
		s.err = err
		s.logger.Warn("failed to load financial goals", "owner_id", ownerID, "error", err)
		return err
	}

	s.goals = lo.Map(records, func(r model.FinancialGoal, _ int) Goal {
		return fromRecord(r)
	})
	return nil
}

// AddPending appends an unsaved goal with default values and returns its identity
func (s *Store) AddPending(ownerID int64) Identity {
	g := newPendingGoal(ownerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
	return g.ID
}

// UpdateField sets one field of a local goal. Nothing is sent to the remote.
func (s *Store) UpdateField(id Identity, field Field, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	g := s.goals[i]
	err := g.set(field, value)
	if err != nil {
		return err
	}
	s.goals[i] = g
	return nil
}

// RemoveLocal drops a pending goal, or deletes a persisted one remotely and
// then drops it. A failed delete leaves the collection unchanged.
func (s *Store) RemoveLocal(ctx context.Context, id Identity) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}

	remoteID, persisted := id.RemoteID()
	if !persisted {
		s.goals = slices.Delete(s.goals, i, i+1)
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.begin()
	err := s.remote.DeleteGoal(ctx, remoteID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if err != nil {
		s.err = err
		return err
	}

	if i := s.indexOf(id); i >= 0 {
		s.goals = slices.Delete(s.goals, i, i+1)
	}
	return nil
}

// SaveOne creates a pending goal or updates a persisted one, then replaces the
// local entry with the server's record. A failure leaves local edits in place.
func (s *Store) SaveOne(ctx context.Context, id Identity) error {
	g, ok := s.Get(id)
	if !ok {
		return ErrNotFound
	}

	s.begin()
	record, err := s.save(ctx, g)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if err != nil {
		s.err = err
		return err
	}

	s.reconcile(g.ID, *record)
	return nil
}

type saveResult struct {
	id     Identity
	record *model.FinancialGoal
	err    error
}

// SaveAll sends one create per pending goal and one update per persisted goal
// concurrently and waits for all of them. When every request succeeds the
// collection is reloaded for ownerID. Otherwise the successful results are
// reconciled locally, failed entries keep their edits, and a *BatchError
// names them.
func (s *Store) SaveAll(ctx context.Context, ownerID int64) error {
	snapshot := s.Goals()
	pending, persisted := lo.FilterReject(snapshot, func(g Goal, _ int) bool {
		return g.Pending()
	})

	s.begin()
	results := make([]saveResult, len(snapshot))

	var group errgroup.Group
	if s.concurrency > 0 {
		group.SetLimit(s.concurrency)
	}
	for i, g := range append(pending, persisted...) {
		group.Go(func() error {
			record, err := s.save(ctx, g)
			results[i] = saveResult{id: g.ID, record: record, err: err}
			return nil
		})
	}
	_ = group.Wait()

	failed, succeeded := lo.FilterReject(results, func(r saveResult, _ int) bool {
		return r.err != nil
	})

	s.logger.Debug("financial goals saved",
		"owner_id", ownerID,
		"created", len(pending),
		"updated", len(persisted),
		"failed", len(failed),
	)

	if len(failed) == 0 {
		s.end()
		return s.Load(ctx, ownerID)
	}

	batchErr := &BatchError{
		Total: len(results),
		Failures: lo.Map(failed, func(r saveResult, _ int) Failure {
			return Failure{ID: r.id, Err: r.err}
		}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	for _, r := range succeeded {
		s.reconcile(r.id, *r.record)
	}
	s.err = batchErr
	return batchErr
}

func (s *Store) save(ctx context.Context, g Goal) (*model.FinancialGoal, error) {
	switch g.ID.Kind() {
	case KindPersisted:
		remoteID, _ := g.ID.RemoteID()
		return s.remote.UpdateGoal(ctx, remoteID, g.update())
	default:
		return s.remote.CreateGoal(ctx, g.input())
	}
}

// reconcile replaces the entry for id with the server record. A created goal
// whose pending entry is gone still exists remotely, so it is appended unless
// its remote id is already present. Must hold s.mu.
func (s *Store) reconcile(id Identity, record model.FinancialGoal) {
	g := fromRecord(record)

	if i := s.indexOf(id); i >= 0 {
		s.goals[i] = g
		return
	}
	if i := s.indexOf(g.ID); i >= 0 {
		s.goals[i] = g
		return
	}
	if id.Kind() == KindPending {
		s.goals = append(s.goals, g)
	}
}

// indexOf must hold s.mu
func (s *Store) indexOf(id Identity) int {
	if id.IsZero() {
		return -1
	}
	return slices.IndexFunc(s.goals, func(g Goal) bool {
		return g.ID == id
	})
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
	s.err = nil
}

func (s *Store) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
}
