package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(newTestService())
	r := gin.New()
	h.RegisterRoutes(r)
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userId", id)
		}
		c.Next()
	})
	h.RegisterMeRoutes(r)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSignupAndLoginHandlers(t *testing.T) {
	r := newTestRouter()

	resp := postJSON(r, "/signup", `{"email":"ada@example.com","password":"pw"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), "password") {
		t.Fatalf("signup response must not include password data: %s", resp.Body.String())
	}

	dup := postJSON(r, "/signup", `{"email":"ada@example.com","password":"pw"}`)
	if dup.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup expected 400, got %d", dup.Code)
	}

	form := url.Values{"email": {"ada@example.com"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	login := httptest.NewRecorder()
	r.ServeHTTP(login, req)
	if login.Code != http.StatusOK {
		t.Fatalf("login expected 200, got %d: %s", login.Code, login.Body.String())
	}
	var payload struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := json.Unmarshal(login.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if payload.Token == "" || payload.User.Email != "ada@example.com" {
		t.Fatalf("unexpected login payload %+v", payload)
	}

	bad := postJSON(r, "/login", `{"email":"ada@example.com","password":"nope"}`)
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("bad login expected 401, got %d", bad.Code)
	}

	meReq := httptest.NewRequest(http.MethodGet, "/me", nil)
	meReq.Header.Set("X-Test-User", payload.User.ID)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, meReq)
	if me.Code != http.StatusOK {
		t.Fatalf("me expected 200, got %d", me.Code)
	}
}

func TestMeRequiresLogin(t *testing.T) {
	r := newTestRouter()
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/me", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSignupValidation(t *testing.T) {
	r := newTestRouter()
	for _, body := range []string{`{"email":"","password":"pw"}`, `{"email":"ada@example.com"}`, `not json`} {
		resp := postJSON(r, "/signup", body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, resp.Code)
		}
	}
}
