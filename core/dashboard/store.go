// Package dashboard holds the state of the admin dashboard: the alumni table with its search
// and export, the submission and password reset forms, and the modals.
// It is UI agnostic: a front end drives it with method calls and renders its accessors.
package dashboard

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
)

var (
	// errors
	ErrClosed = errors.New("dashboard: closed")
)

// Client is the Record Store as seen by the dashboard.
type Client interface {
	FetchRecords(ctx context.Context) ([]alumni.Record, error)
	// SubmitRecord returns a *core.ValidationError when the Record Store rejects nr.
	SubmitRecord(ctx context.Context, nr alumni.NewRecord) (alumni.Record, error)
	RequestPasswordReset(ctx context.Context, email string) error
}

// Store is the single source of truth of the alumni records. Every successful Load replaces the
// whole collection and notifies the subscribers.
type Store struct {
	client Client
	logger core.Logger

	ctx    context.Context // done once closed
	cancel context.CancelFunc

	notifyMu sync.Mutex // orders the notifications of the loads

	mu      sync.RWMutex
	records []alumni.Record
	loaded  bool
	err     error
	subs    map[int]func([]alumni.Record)
	nextSub int
	closed  bool
	seq     uint64 // loads started
	applied uint64 // seq of the load the state comes from
}

func NewStore(client Client, logger core.Logger) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		client: client,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		subs:   make(map[int]func([]alumni.Record)),
	}
}

// Load fetches the whole collection. It fails with ErrClosed once the Store is closed, including
// when Close happens while the fetch is in flight; the late result is then discarded.
// A fetch that completes after a later-started one was applied is returned to the caller but
// leaves the collection, the error and the subscribers untouched.
func (s *Store) Load(ctx context.Context) ([]alumni.Record, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	recs, err := s.client.FetchRecords(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	stale := seq < s.applied
	if err != nil {
		err = errors.Wrap(err, "fetching records")
		if !stale {
			s.applied = seq
			s.err = err
		}
		s.mu.Unlock()
		return nil, err
	}
	if stale {
		s.mu.Unlock()
		return copyRecords(recs), nil
	}
	s.applied = seq
	s.records = copyRecords(recs)
	s.loaded = true
	s.err = nil
	subs := make([]func([]alumni.Record), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if s.appliedSeq() == seq {
		for _, fn := range subs {
			fn(copyRecords(recs))
		}
	}
	return copyRecords(recs), nil
}

func (s *Store) appliedSeq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

// Records returns a copy of the collection and whether it was ever loaded.
func (s *Store) Records() ([]alumni.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecords(s.records), s.loaded
}

// Err returns the error of the last Load, nil if it succeeded.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Subscribe registers fn to be called with every newly loaded collection.
// fn is called outside of the Store's lock, from the goroutine that called Load; it must not call Load.
func (s *Store) Subscribe(fn func([]alumni.Record)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Close cancels the in-flight loads and drops the subscribers.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.subs = make(map[int]func([]alumni.Record))
	s.mu.Unlock()
	s.cancel()
}

func copyRecords(recs []alumni.Record) []alumni.Record {
	return append(make([]alumni.Record, 0, len(recs)), recs...)
}
