package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/avelarde/mailhub/internal/domain/email"
)

type EmailsRepo struct {
	store *Store
}

// InsertBatch mimics the transactional bulk write: if any record references a
// missing user the whole batch is rejected and nothing is kept.
func (r *EmailsRepo) InsertBatch(_ context.Context, records []email.Record) error {
	if len(records) == 0 {
		return nil
	}

	s := r.store

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		if _, ok := s.users[rec.UserID]; !ok {
			return fmt.Errorf("insert batch: user %d does not exist", rec.UserID)
		}
	}

	for _, rec := range records {
		s.insertLocked(rec)
	}

	return nil
}

func (r *EmailsRepo) Insert(_ context.Context, rec email.Record) error {
	s := r.store

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[rec.UserID]; !ok {
		return fmt.Errorf("insert: user %d does not exist", rec.UserID)
	}

	s.insertLocked(rec)

	return nil
}

func (s *Store) insertLocked(rec email.Record) {
	s.nextAliasID++

	s.aliases[s.nextAliasID] = email.Alias{
		ID:        s.nextAliasID,
		UserID:    rec.UserID,
		Variant:   rec.Variant,
		Address:   rec.Address,
		CreatedAt: time.Now().UTC(),
	}
}

func (r *EmailsRepo) List(_ context.Context) ([]email.Alias, error) {
	s := r.store

	s.mu.RLock()
	defer s.mu.RUnlock()

	aliases := make([]email.Alias, 0, len(s.aliases))

	for _, a := range s.aliases {
		owner, ok := s.users[a.UserID]

		if !ok {
			continue
		}

		a.FirstName = owner.FirstName
		a.LastName = owner.LastName
		aliases = append(aliases, a)
	}

	sort.Slice(aliases, func(i, j int) bool { return aliases[i].ID > aliases[j].ID })

	return aliases, nil
}

func (r *EmailsRepo) DeleteAll(_ context.Context) error {
	s := r.store

	s.mu.Lock()
	defer s.mu.Unlock()

	s.aliases = make(map[int64]email.Alias)

	return nil
}
