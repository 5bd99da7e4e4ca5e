package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"crease/internal/registration/models"
	"crease/pkg/requestcontext"
)

// InMemoryStore keeps registrations in memory for tests/dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.Registration
	seq     map[string]uint64 // insertion order, tiebreaker for equal timestamps
	nextSeq uint64
}

// NewInMemory constructs an empty in-memory registration store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]*models.Registration),
		seq:     make(map[string]uint64),
	}
}

func (s *InMemoryStore) Insert(ctx context.Context, sub models.Submission) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &models.Registration{
		ID:            uuid.New().String(),
		TeamName:      sub.TeamName,
		LeaderName:    sub.LeaderName,
		LeaderContact: sub.LeaderContact,
		Location:      sub.Location,
		Date:          sub.Date,
		PaymentProof:  sub.PaymentProof,
		TermsAccepted: sub.TermsAccepted,
		Status:        models.StatusPending,
		RegisteredAt:  requestcontext.Now(ctx),
	}

	s.records[record.ID] = record
	s.nextSeq++
	s.seq[record.ID] = s.nextSeq

	copied := *record
	return &copied, nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*models.Registration, 0, len(s.records))
	for _, r := range s.records {
		copied := *r
		records = append(records, &copied)
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.RegisteredAt.Equal(b.RegisteredAt) {
			return a.RegisteredAt.After(b.RegisteredAt)
		}
		return s.seq[a.ID] > s.seq[b.ID]
	})

	return records, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, id string, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return fmt.Errorf("registration %s: %w", id, ErrNotFound)
	}
	record.Status = status
	return nil
}
