package postgres

import (
	"context"

	"github.com/avelarde/mailhub/internal/domain/user"
	"github.com/avelarde/mailhub/internal/observability"
)

type UsersRepo struct {
	db   Queryer
	prom *observability.Prom
}

func NewUsersRepo(db Queryer, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		db:   db,
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

func (r *UsersRepo) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	u := user.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
	}

	err := r.observe("users.create", func() error {
		return r.db.QueryRow(ctx,
			`INSERT INTO users (first_name, last_name, age)
			 VALUES ($1, $2, $3)
			 RETURNING id, created_at`,
			req.FirstName, req.LastName, req.Age,
		).Scan(&u.ID, &u.CreatedAt)
	})

	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) (users []user.User, err error) {
	err = r.observe("users.list", func() error {
		rows, qerr := r.db.Query(ctx,
			`SELECT id, first_name, last_name, age, created_at
			 FROM users
			 ORDER BY id DESC`,
		)

		if qerr != nil {
			return qerr
		}

		defer rows.Close()

		users = make([]user.User, 0)

		for rows.Next() {
			var u user.User

			if serr := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Age, &u.CreatedAt); serr != nil {
				return serr
			}

			users = append(users, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return users, nil
}

// Delete is idempotent: removing an id that does not exist is a success.
// Owned aliases go with the user via the FK cascade.
func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("users.delete", func() error {
		_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)

		return err
	})
}

func (r *UsersRepo) DeleteAll(ctx context.Context) error {
	return r.observe("users.delete_all", func() error {
		_, err := r.db.Exec(ctx, `DELETE FROM users`)

		return err
	})
}
