package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"qrfolio-backend/internal/generate"
	"qrfolio-backend/internal/publish"
	"qrfolio-backend/internal/qr"
	"qrfolio-backend/internal/shared/auth"
	"qrfolio-backend/internal/shared/config"
	"qrfolio-backend/internal/shared/server/middleware"
	"qrfolio-backend/internal/shared/storage/object/local"
	"qrfolio-backend/internal/uploads"
	"qrfolio-backend/internal/users"

	"golang.org/x/crypto/bcrypt"
)

func newTestEngine(t *testing.T, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := local.New(t.TempDir())
	signer, err := auth.NewSigner("test-secret", "dev")
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	cfg := config.Config{
		CORSAllowOrigin:    []string{"*"},
		GenerateRatePerSec: 0.001,
		GenerateBurst:      burst,
		MaxVideoBytes:      1 << 20,
	}
	svc := generate.NewService(
		uploads.NewReceiver(store),
		publish.NewPublisher(store, publish.RequestBase{}),
		qr.NewEncoder("M", 256),
	)
	userSvc := users.NewService(users.NewMemoryRepo(), signer)
	userSvc.Cost = bcrypt.MinCost
	return NewRouter(RouterDeps{
		Config:          cfg,
		Store:           store,
		GenerateHandler: generate.NewHandler(svc, cfg.MaxVideoBytes),
		UserHandler:     users.NewHandler(userSvc),
		Verifier:        signer,
		Limiter:         middleware.NewRateLimiter(nil),
	})
}

func generateRequest(t *testing.T, path, resumeName string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("videoLink", "https://www.youtube.com/watch?v=xyz987")
	_ = w.WriteField("name", "Grace Hopper")
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, resumeName))
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write([]byte("%PDF-1.4 grace"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "http://qr.test"+path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestGenerateThenServeMicrosite(t *testing.T) {
	r := newTestEngine(t, 5)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, generateRequest(t, "/generate", "grace.pdf"))
	if resp.Code != http.StatusOK {
		t.Fatalf("generate expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	link, err := url.Parse(payload["link"])
	if err != nil || link.Host != "qr.test" {
		t.Fatalf("unexpected link %q", payload["link"])
	}
	page := httptest.NewRecorder()
	r.ServeHTTP(page, httptest.NewRequest(http.MethodGet, link.Path, nil))
	if page.Code != http.StatusOK {
		t.Fatalf("microsite expected 200, got %d", page.Code)
	}
	if ct := page.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := page.Body.String()
	if !strings.Contains(body, "https://www.youtube.com/embed/xyz987") {
		t.Fatalf("microsite missing embed")
	}

	start := strings.Index(body, "uploads/")
	end := strings.Index(body[start:], "-grace.pdf")
	if start < 0 || end < 0 {
		t.Fatalf("microsite missing resume reference")
	}
	resumePath := "/" + body[start:start+end+len("-grace.pdf")]
	resume := httptest.NewRecorder()
	r.ServeHTTP(resume, httptest.NewRequest(http.MethodGet, resumePath, nil))
	if resume.Code != http.StatusOK {
		t.Fatalf("resume expected 200, got %d", resume.Code)
	}
	if ct := resume.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected resume content type %q", ct)
	}
	got, _ := io.ReadAll(resume.Body)
	if string(got) != "%PDF-1.4 grace" {
		t.Fatalf("unexpected resume body %q", got)
	}
}

var viewerSrc = regexp.MustCompile(`class="viewer" src="([^"]+)"`)

func TestResumeLinkResolvesForAwkwardNames(t *testing.T) {
	names := []string{"cv#1.pdf", "cv?v=2.pdf", "CV 100%.pdf", "resume..v2.pdf", "résumé final.pdf"}
	r := newTestEngine(t, len(names))

	for _, name := range names {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, generateRequest(t, "/generate", name))
		if resp.Code != http.StatusOK {
			t.Fatalf("%q: generate expected 200, got %d: %s", name, resp.Code, resp.Body.String())
		}
		var payload map[string]string
		if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
			t.Fatalf("%q: decode: %v", name, err)
		}
		link, err := url.Parse(payload["link"])
		if err != nil {
			t.Fatalf("%q: bad link %q", name, payload["link"])
		}

		page := httptest.NewRecorder()
		r.ServeHTTP(page, httptest.NewRequest(http.MethodGet, link.Path, nil))
		m := viewerSrc.FindStringSubmatch(page.Body.String())
		if m == nil {
			t.Fatalf("%q: microsite has no resume viewer", name)
		}
		ref, err := url.Parse(html.UnescapeString(m[1]))
		if err != nil {
			t.Fatalf("%q: viewer src %q: %v", name, m[1], err)
		}
		target := link.ResolveReference(ref)
		if target.RawQuery != "" || target.Fragment != "" {
			t.Fatalf("%q: viewer src %q carries a query or fragment", name, m[1])
		}

		resume := httptest.NewRecorder()
		r.ServeHTTP(resume, httptest.NewRequest(http.MethodGet, target.EscapedPath(), nil))
		if resume.Code != http.StatusOK {
			t.Fatalf("%q: resume at %q expected 200, got %d", name, target.Path, resume.Code)
		}
		if got := resume.Body.String(); got != "%PDF-1.4 grace" {
			t.Fatalf("%q: unexpected resume body %q", name, got)
		}
	}
}

func TestContentTypeForAttachments(t *testing.T) {
	cases := map[string]string{
		"uploads/1-clip.mp4":  "video/mp4",
		"uploads/1-clip.mov":  "video/quicktime",
		"uploads/1-clip.webm": "video/webm",
		"uploads/1-cv.pdf":    "application/pdf",
		"portfolio_1_ab.html": "text/html; charset=utf-8",
		"uploads/1-blob":      "application/octet-stream",
	}
	for key, want := range cases {
		if got := contentTypeFor(key); got != want {
			t.Fatalf("contentTypeFor(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestContentRejectsTraversalAndUnknownFiles(t *testing.T) {
	r := newTestEngine(t, 5)

	for _, path := range []string{
		"/uploads/../portfolio_1_x.html",
		"/%2e%2e/etc/passwd",
		"/.env",
		"/uploads/.hidden",
		"/uploads/nested/file.pdf",
		"/random.txt",
		"/portfolio_1_missing.html",
	} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.Code)
		}
	}
}

func TestGenerateRateLimited(t *testing.T) {
	r := newTestEngine(t, 1)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, generateRequest(t, "/api/v1/generate", "a.pdf"))
	if first.Code != http.StatusOK {
		t.Fatalf("first expected 200, got %d: %s", first.Code, first.Body.String())
	}
	second := httptest.NewRecorder()
	r.ServeHTTP(second, generateRequest(t, "/generate", "b.pdf"))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second expected 429, got %d", second.Code)
	}
}

func TestHealthMetricsAndAuth(t *testing.T) {
	r := newTestEngine(t, 5)

	health := httptest.NewRecorder()
	r.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if health.Code != http.StatusOK {
		t.Fatalf("health expected 200, got %d", health.Code)
	}

	metricsResp := httptest.NewRecorder()
	r.ServeHTTP(metricsResp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(metricsResp.Body.String(), "microsite_generate_started_total") {
		t.Fatalf("metrics missing generation counters")
	}

	signup := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"g@example.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(signup, req)
	if signup.Code != http.StatusCreated {
		t.Fatalf("signup expected 201, got %d", signup.Code)
	}

	login := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(`{"email":"g@example.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(login, req)
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(login.Body.Bytes(), &payload); err != nil || payload.Token == "" {
		t.Fatalf("login failed: %d %s", login.Code, login.Body.String())
	}

	me := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+payload.Token)
	r.ServeHTTP(me, req)
	if me.Code != http.StatusOK || !strings.Contains(me.Body.String(), "g@example.com") {
		t.Fatalf("me expected 200 with email, got %d %s", me.Code, me.Body.String())
	}
}
