package postgres

import (
	"context"

	"github.com/avelarde/mailhub/internal/domain/email"
	"github.com/avelarde/mailhub/internal/observability"
	"github.com/jackc/pgx/v5"
)

type EmailsRepo struct {
	db   Queryer
	prom *observability.Prom
}

func NewEmailsRepo(db Queryer, prom *observability.Prom) *EmailsRepo {
	return &EmailsRepo{
		db:   db,
		prom: prom,
	}
}

func (r *EmailsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

// InsertBatch writes all records in one transaction via COPY. All-or-nothing:
// any failure rolls the whole batch back and nothing survives.
func (r *EmailsRepo) InsertBatch(ctx context.Context, records []email.Record) error {
	if len(records) == 0 {
		return nil
	}

	return r.observe("emails.insert_batch", func() error {
		tx, err := r.db.Begin(ctx)

		if err != nil {
			return err
		}

		defer func() { _ = tx.Rollback(ctx) }()

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"email_aliases"},
			[]string{"user_id", "variant", "address"},
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				rec := records[i]

				return []any{rec.UserID, rec.Variant, rec.Address}, nil
			}),
		)

		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

// Insert writes a single record in its own implicit transaction. This is the
// fallback path after a failed batch.
func (r *EmailsRepo) Insert(ctx context.Context, rec email.Record) error {
	return r.observe("emails.insert", func() error {
		_, err := r.db.Exec(ctx,
			`INSERT INTO email_aliases (user_id, variant, address) VALUES ($1, $2, $3)`,
			rec.UserID, rec.Variant, rec.Address,
		)

		return err
	})
}

func (r *EmailsRepo) List(ctx context.Context) (aliases []email.Alias, err error) {
	err = r.observe("emails.list", func() error {
		rows, qerr := r.db.Query(ctx,
			`SELECT e.id, e.user_id, e.variant, e.address, e.created_at, u.first_name, u.last_name
			 FROM email_aliases e
			 JOIN users u ON u.id = e.user_id
			 ORDER BY e.id DESC`,
		)

		if qerr != nil {
			return qerr
		}

		defer rows.Close()

		aliases = make([]email.Alias, 0)

		for rows.Next() {
			var a email.Alias

			if serr := rows.Scan(&a.ID, &a.UserID, &a.Variant, &a.Address, &a.CreatedAt, &a.FirstName, &a.LastName); serr != nil {
				return serr
			}

			aliases = append(aliases, a)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return aliases, nil
}

func (r *EmailsRepo) DeleteAll(ctx context.Context) error {
	return r.observe("emails.delete_all", func() error {
		_, err := r.db.Exec(ctx, `DELETE FROM email_aliases`)

		return err
	})
}
