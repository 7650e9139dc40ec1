package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"oa-portal/internal/middleware"
	"oa-portal/internal/model"
	"oa-portal/internal/session"
	"oa-portal/internal/testfixtures"
	"oa-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type testEnv struct {
	app   *fiber.App
	users *testfixtures.UserRepo
}

// newTestEnv wires the real handlers and middleware over in-memory
// repositories, mirroring the route layout in internal/routes.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := testfixtures.NewUserRepo()
	sessions := testfixtures.NewSessionRepo()
	leaves := testfixtures.NewLeaveRepo()

	store := session.NewStore(sessions, time.Hour)
	auth := usecase.NewAuthUsecase(users, store)
	leave := usecase.NewLeaveUsecase(leaves, users, nil)

	app := fiber.New()

	authHdl := NewAuthHandler(auth, time.Hour)
	app.Post("/api/auth/login", authHdl.Login)
	app.Get("/api/auth/me", middleware.Auth(auth), authHdl.Me)
	app.Post("/api/auth/logout", authHdl.Logout)

	leaveHdl := NewLeaveHandler(leave)
	api := app.Group("/api/employee/leave", middleware.Auth(auth))
	api.Post("/", leaveHdl.Submit)
	api.Get("/my", leaveHdl.My)
	api.Get("/to-approve", leaveHdl.ToApprove)
	api.Post("/:id/approve", leaveHdl.Approve)
	api.Post("/:id/reject", leaveHdl.Reject)

	admin := app.Group("/api/admin/leaves", middleware.Auth(auth), middleware.Role(model.RoleAdmin))
	admin.Get("/pending", leaveHdl.AllPending)

	return &testEnv{app: app, users: users}
}

func (e *testEnv) request(t *testing.T, method, path, cookie, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// login returns the session cookie value for the given credentials.
func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/auth/login", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c.Value
		}
	}
	t.Fatal("no session cookie in login response")
	return ""
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	testfixtures.AddUser(env.users, "alice", "secret", model.RoleEmployee, nil)

	t.Run("me without a session is 401", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/auth/me", "", "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", resp.StatusCode)
		}
	})

	t.Run("login with bad credentials is 401", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/auth/login", "",
			`{"username":"alice","password":"wrong"}`)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", resp.StatusCode)
		}
	})

	t.Run("login without fields is 400", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/auth/login", "", `{"username":"alice"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status %d, want 400", resp.StatusCode)
		}
	})

	t.Run("login, rehydrate, logout round trip", func(t *testing.T) {
		cookie := env.login(t, "alice", "secret")

		resp := env.request(t, http.MethodGet, "/api/auth/me", cookie, "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("me: status %d, want 200", resp.StatusCode)
		}
		var me struct {
			Username string   `json:"username"`
			Roles    []string `json:"roles"`
		}
		decodeBody(t, resp, &me)
		if me.Username != "alice" || len(me.Roles) != 1 || me.Roles[0] != model.RoleEmployee {
			t.Fatalf("me returned %+v", me)
		}

		resp = env.request(t, http.MethodPost, "/api/auth/logout", cookie, "")
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("logout: status %d, want 204", resp.StatusCode)
		}

		// The token is dead server-side regardless of what the client kept.
		resp = env.request(t, http.MethodGet, "/api/auth/me", cookie, "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("me after logout: status %d, want 401", resp.StatusCode)
		}

		// Idempotent logout.
		resp = env.request(t, http.MethodPost, "/api/auth/logout", cookie, "")
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("second logout: status %d, want 204", resp.StatusCode)
		}
	})
}

func TestLeaveEndpoints(t *testing.T) {
	env := newTestEnv(t)
	boss := testfixtures.AddUser(env.users, "boss", "pw", model.RoleEmployee, nil)
	testfixtures.AddUser(env.users, "alice", "pw", model.RoleEmployee, testfixtures.UintPtr(boss.ID))
	testfixtures.AddUser(env.users, "bob", "pw", model.RoleEmployee, testfixtures.UintPtr(boss.ID))
	testfixtures.AddUser(env.users, "root", "pw", model.RoleAdmin, nil)

	t.Run("listing requires a session", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/employee/leave/my", "", "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", resp.StatusCode)
		}
	})

	alice := env.login(t, "alice", "pw")
	bob := env.login(t, "bob", "pw")
	bossCookie := env.login(t, "boss", "pw")
	admin := env.login(t, "root", "pw")

	t.Run("submit and list own requests only", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/employee/leave/", alice,
			`{"type":"ANNUAL","startDate":"2024-05-01","endDate":"2024-05-03","reason":"travel"}`)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("submit: status %d, want 201", resp.StatusCode)
		}

		var mine struct {
			Data []model.LeaveRequest `json:"data"`
		}
		resp = env.request(t, http.MethodGet, "/api/employee/leave/my", alice, "")
		decodeBody(t, resp, &mine)
		if len(mine.Data) != 1 || mine.Data[0].Status != model.LeavePending {
			t.Fatalf("alice's list: %+v", mine.Data)
		}

		resp = env.request(t, http.MethodGet, "/api/employee/leave/my", bob, "")
		decodeBody(t, resp, &mine)
		if len(mine.Data) != 0 {
			t.Fatalf("bob sees %d foreign requests", len(mine.Data))
		}
	})

	t.Run("invalid dates are rejected with 400", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/employee/leave/", alice,
			`{"type":"ANNUAL","startDate":"2024-05-03","endDate":"2024-05-01","reason":"time travel"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status %d, want 400", resp.StatusCode)
		}
	})

	t.Run("decision authorization and idempotence", func(t *testing.T) {
		// Bob is not the approver.
		resp := env.request(t, http.MethodPost, "/api/employee/leave/1/approve", bob, `{"comment":"lgtm"}`)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("foreign approve: status %d, want 403", resp.StatusCode)
		}

		resp = env.request(t, http.MethodPost, "/api/employee/leave/1/approve", bossCookie, `{"comment":"ok"}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("approve: status %d, want 200", resp.StatusCode)
		}

		resp = env.request(t, http.MethodPost, "/api/employee/leave/1/reject", bossCookie, `{"comment":"no"}`)
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("second decision: status %d, want 409", resp.StatusCode)
		}
	})

	t.Run("admin panel is role-gated", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/admin/leaves/pending", alice, "")
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("employee on admin panel: status %d, want 403", resp.StatusCode)
		}

		resp = env.request(t, http.MethodGet, "/api/admin/leaves/pending", admin, "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("admin panel: status %d, want 200", resp.StatusCode)
		}
	})
}
