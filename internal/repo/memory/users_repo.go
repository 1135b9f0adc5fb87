package memory

import (
	"context"
	"sort"

	"github.com/avelarde/mailhub/internal/domain/email"
	"github.com/avelarde/mailhub/internal/domain/user"
)

type UsersRepo struct {
	store *Store
}

func (r *UsersRepo) Create(_ context.Context, req user.CreateUserRequest) (user.User, error) {
	return r.store.addUser(req), nil
}

func (r *UsersRepo) List(_ context.Context) ([]user.User, error) {
	s := r.store

	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]user.User, 0, len(s.users))

	for _, u := range s.users {
		users = append(users, u)
	}

	// ids are monotonic, so id desc == newest first
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })

	return users, nil
}

func (r *UsersRepo) Delete(_ context.Context, id int64) error {
	s := r.store

	s.mu.Lock()
	defer s.mu.Unlock()

	// idempotent: missing id is still a success
	delete(s.users, id)

	// cascade
	for aliasID, a := range s.aliases {
		if a.UserID == id {
			delete(s.aliases, aliasID)
		}
	}

	return nil
}

func (r *UsersRepo) DeleteAll(_ context.Context) error {
	s := r.store

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[int64]user.User)
	s.aliases = make(map[int64]email.Alias)

	return nil
}
