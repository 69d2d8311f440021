package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/indieinfra/vitrine/auth"
	"github.com/indieinfra/vitrine/config"
	"github.com/indieinfra/vitrine/mail"
	"github.com/indieinfra/vitrine/model"
	"github.com/indieinfra/vitrine/server/state"
	"github.com/indieinfra/vitrine/storage/record"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// stubAdminRecords holds one fixed admin account.
type stubAdminRecords struct {
	admin model.Admin
}

func (s *stubAdminRecords) CreateAdmin(ctx context.Context, name, email, passwordHash, approvalToken string) (model.Admin, error) {
	return model.Admin{}, record.ErrNotFound
}

func (s *stubAdminRecords) GetAdmin(ctx context.Context, id int64) (model.Admin, error) {
	if id == s.admin.ID {
		return s.admin, nil
	}
	return model.Admin{}, record.ErrNotFound
}

func (s *stubAdminRecords) GetAdminByEmail(ctx context.Context, email string) (model.Admin, error) {
	return model.Admin{}, record.ErrNotFound
}

func (s *stubAdminRecords) GetAdminByApprovalToken(ctx context.Context, token string) (model.Admin, error) {
	return model.Admin{}, record.ErrNotFound
}

func (s *stubAdminRecords) ApproveAdmin(ctx context.Context, id int64) error  { return nil }
func (s *stubAdminRecords) DeleteAdmin(ctx context.Context, id int64) error   { return nil }
func (s *stubAdminRecords) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	return nil
}
func (s *stubAdminRecords) SetResetOTP(ctx context.Context, id int64, otp string, expires time.Time) error {
	return nil
}

func newMiddlewareFixture(t *testing.T, approved bool) (*state.VitrineState, model.Admin) {
	t.Helper()

	admin := model.Admin{ID: 7, AdminName: "Ada", Email: "ada@example.org", Approved: approved}
	records := &stubAdminRecords{admin: admin}
	svc := auth.NewService(records, &mail.NoopSender{}, testSecret, time.Hour, "support@example.org", "https://api.example.org")

	return &state.VitrineState{
		Cfg:    &config.Config{},
		Admins: svc,
	}, admin
}

func TestRequireAdmin(t *testing.T) {
	t.Run("valid token reaches handler with admin on context", func(t *testing.T) {
		st, admin := newMiddlewareFixture(t, true)

		token, err := auth.IssueToken(testSecret, time.Hour, admin)
		if err != nil {
			t.Fatalf("IssueToken: %v", err)
		}

		var seen model.Admin
		handler := RequireAdmin(st, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = auth.GetAdmin(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/restaurants", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusNoContent {
			t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
		}
		if seen.ID != admin.ID {
			t.Errorf("admin on context = %+v", seen)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		st, _ := newMiddlewareFixture(t, true)

		handler := RequireAdmin(st, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run")
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/restaurants", nil))

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rr.Code)
		}
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		st, _ := newMiddlewareFixture(t, true)

		handler := RequireAdmin(st, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run")
		}))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/restaurants", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rr.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		st, _ := newMiddlewareFixture(t, true)

		handler := RequireAdmin(st, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run")
		}))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/restaurants", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Fatalf("status = %d", rr.Code)
		}
	})

	t.Run("token for unapproved account", func(t *testing.T) {
		st, admin := newMiddlewareFixture(t, false)

		token, err := auth.IssueToken(testSecret, time.Hour, admin)
		if err != nil {
			t.Fatalf("IssueToken: %v", err)
		}

		handler := RequireAdmin(st, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run")
		}))

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/restaurants", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Fatalf("status = %d", rr.Code)
		}
	})
}
