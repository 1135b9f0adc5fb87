package memory

import (
	"sync"
	"time"

	"github.com/avelarde/mailhub/internal/domain/email"
	"github.com/avelarde/mailhub/internal/domain/user"
)

// Store holds both tables behind one mutex so user deletion can cascade to
// aliases the way the real schema does.
type Store struct {
	mu          sync.RWMutex
	nextUserID  int64
	nextAliasID int64
	users       map[int64]user.User
	aliases     map[int64]email.Alias
}

func NewStore() *Store {
	return &Store{
		users:   make(map[int64]user.User),
		aliases: make(map[int64]email.Alias),
	}
}

func (s *Store) Users() *UsersRepo {
	return &UsersRepo{store: s}
}

func (s *Store) Emails() *EmailsRepo {
	return &EmailsRepo{store: s}
}

func (s *Store) addUser(req user.CreateUserRequest) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++

	u := user.User{
		ID:        s.nextUserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		CreatedAt: time.Now().UTC(),
	}

	s.users[u.ID] = u

	return u
}
