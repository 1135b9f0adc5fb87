package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelarde/mailhub/internal/batch"
	"github.com/avelarde/mailhub/internal/domain/email"
	"github.com/avelarde/mailhub/internal/domain/user"
	"github.com/avelarde/mailhub/internal/http/handlers"
)

type fakeUsersLister struct {
	listFn func(ctx context.Context) ([]user.User, error)
}

func (f *fakeUsersLister) List(ctx context.Context) ([]user.User, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}

	return []user.User{}, nil
}

type fakeEmailsStore struct {
	listFn      func(ctx context.Context) ([]email.Alias, error)
	deleteAllFn func(ctx context.Context) error
}

func (f *fakeEmailsStore) List(ctx context.Context) ([]email.Alias, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}

	return []email.Alias{}, nil
}

func (f *fakeEmailsStore) DeleteAll(ctx context.Context) error {
	if f.deleteAllFn != nil {
		return f.deleteAllFn(ctx)
	}

	return nil
}

type fakePersister struct {
	persistFn func(ctx context.Context, records []email.Record) batch.Result

	calls   int
	records []email.Record
}

func (f *fakePersister) PersistBulk(ctx context.Context, records []email.Record) batch.Result {
	f.calls++
	f.records = records

	if f.persistFn != nil {
		return f.persistFn(ctx, records)
	}

	return batch.Result{Persisted: len(records)}
}

func TestGenerateEmailsHandler(t *testing.T) {
	users := []user.User{
		{ID: 2, FirstName: "Lucía", LastName: "Moreno", Age: 28},
		{ID: 1, FirstName: "Juan", LastName: "Pérez", Age: 34},
	}

	lister := &fakeUsersLister{
		listFn: func(ctx context.Context) ([]user.User, error) { return users, nil },
	}

	persister := &fakePersister{}

	h := handlers.NewEmailsHandler(lister, &fakeEmailsStore{}, persister, time.Second)
	r := setupRouter(http.MethodPost, "/emails/generate", h.GenerateEmails)

	req := httptest.NewRequest(http.MethodPost, "/emails/generate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	if persister.calls != 1 {
		t.Fatalf("got %d persist calls, want exactly 1", persister.calls)
	}

	if len(persister.records) != len(users)*len(email.Variants) {
		t.Fatalf("got %d records, want %d", len(persister.records), len(users)*len(email.Variants))
	}

	var resp struct {
		Message string         `json:"message"`
		Emails  []email.Record `json:"emails"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Emails) != 16 {
		t.Fatalf("got %d emails in response, want 16", len(resp.Emails))
	}

	if resp.Message == "" {
		t.Fatal("expected a summary message")
	}
}

func TestGenerateEmailsHandlerNoUsers(t *testing.T) {
	persister := &fakePersister{}

	h := handlers.NewEmailsHandler(&fakeUsersLister{}, &fakeEmailsStore{}, persister, time.Second)
	r := setupRouter(http.MethodPost, "/emails/generate", h.GenerateEmails)

	req := httptest.NewRequest(http.MethodPost, "/emails/generate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
	}

	if persister.calls != 0 {
		t.Fatalf("persister called %d times with no users", persister.calls)
	}
}

func TestGenerateEmailsHandlerUsersError(t *testing.T) {
	lister := &fakeUsersLister{
		listFn: func(ctx context.Context) ([]user.User, error) {
			return nil, errors.New("db error")
		},
	}

	h := handlers.NewEmailsHandler(lister, &fakeEmailsStore{}, &fakePersister{}, time.Second)
	r := setupRouter(http.MethodPost, "/emails/generate", h.GenerateEmails)

	req := httptest.NewRequest(http.MethodPost, "/emails/generate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", w.Code)
	}
}

func TestGenerateEmailsHandlerFallbackOmitsFailedRecords(t *testing.T) {
	users := []user.User{
		{ID: 1, FirstName: "Juan", LastName: "Pérez", Age: 34},
	}

	lister := &fakeUsersLister{
		listFn: func(ctx context.Context) ([]user.User, error) { return users, nil },
	}

	persister := &fakePersister{
		persistFn: func(ctx context.Context, records []email.Record) batch.Result {
			// pretend the last record could not be saved on fallback
			return batch.Result{
				Persisted: len(records) - 1,
				Failed:    records[len(records)-1:],
				FellBack:  true,
			}
		},
	}

	h := handlers.NewEmailsHandler(lister, &fakeEmailsStore{}, persister, time.Second)
	r := setupRouter(http.MethodPost, "/emails/generate", h.GenerateEmails)

	req := httptest.NewRequest(http.MethodPost, "/emails/generate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Emails []email.Record `json:"emails"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Emails) != 7 {
		t.Fatalf("got %d emails in response, want 7", len(resp.Emails))
	}
}

func TestListEmailsHandler(t *testing.T) {
	store := &fakeEmailsStore{
		listFn: func(ctx context.Context) ([]email.Alias, error) {
			return []email.Alias{
				{ID: 2, UserID: 1, Variant: email.VariantUnderscore, Address: "juan_perez@boxkite.io"},
				{ID: 1, UserID: 1, Variant: email.VariantDot, Address: "juan.perez@lumamail.com"},
			}, nil
		},
	}

	h := handlers.NewEmailsHandler(&fakeUsersLister{}, store, &fakePersister{}, time.Second)
	r := setupRouter(http.MethodGet, "/emails", h.ListEmails)

	req := httptest.NewRequest(http.MethodGet, "/emails", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var aliases []email.Alias

	if err := json.Unmarshal(w.Body.Bytes(), &aliases); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(aliases) != 2 {
		t.Fatalf("got %d aliases, want 2", len(aliases))
	}
}

func TestDeleteAllEmailsHandler(t *testing.T) {
	tests := []struct {
		name           string
		storeSetUp     func(*fakeEmailsStore)
		wantStatusCode int
	}{
		{
			name:           "success",
			wantStatusCode: http.StatusOK,
		},
		{
			name: "repo_error",
			storeSetUp: func(f *fakeEmailsStore) {
				f.deleteAllFn = func(ctx context.Context) error {
					return errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			store := &fakeEmailsStore{}

			if tt.storeSetUp != nil {
				tt.storeSetUp(store)
			}

			h := handlers.NewEmailsHandler(&fakeUsersLister{}, store, &fakePersister{}, time.Second)
			r := setupRouter(http.MethodDelete, "/emails/all", h.DeleteAllEmails)

			req := httptest.NewRequest(http.MethodDelete, "/emails/all", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantStatusCode)
			}
		})
	}
}
