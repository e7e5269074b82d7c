package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/mail"
	"github.com/easyhrhq/easyhr/internal/hr/service"
	"github.com/easyhrhq/easyhr/internal/hr/store"
	sqlitestore "github.com/easyhrhq/easyhr/internal/hr/store/drivers/sqlite"
	"github.com/easyhrhq/easyhr/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// envelope mirrors Response for decoding in tests.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type testServer struct {
	router *Router
	store  store.Store
	signer *jwtx.HS256

	// ipSeq hands each request its own client IP so the per-IP rate
	// limits on auth endpoints don't interfere across test steps.
	ipSeq atomic.Int64
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlitestore.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256("test-secret", "easyhr-test")
	require.NoError(t, err)

	logger := slog.Default()
	router := NewRouter(signer, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:       st,
		Mailer:      mail.NewPreviewMailer(logger),
		Signer:      signer,
		FrontendURL: "https://app.example.com",
	}
	router.CompanyService = &service.CompanyService{Store: st}
	router.DepartmentService = &service.DepartmentService{Store: st}
	router.RoleService = &service.RoleService{Store: st}
	router.EmployeeService = &service.EmployeeService{Store: st}
	router.ApplyRoutes()

	return &testServer{router: router, store: st, signer: signer}
}

// do performs a JSON request against the router and decodes the envelope.
func (ts *testServer) do(t *testing.T, method, path, bearer string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.1.%d.%d", ts.ipSeq.Add(1)/250, ts.ipSeq.Load()%250))
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
			"body: %s", rec.Body.String())
	}
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NotEmpty(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

// bearerFor mints a session token for a user, standing in for the session
// the SPA holds during account setup.
func (ts *testServer) bearerFor(t *testing.T, user UserDTO) string {
	t.Helper()

	claims := jwtx.NewSessionClaims(user.ID, user.Email, user.Role, "", time.Hour, time.Now().UTC())
	token, err := ts.signer.Sign(claims)
	require.NoError(t, err)
	return token
}

// registerCompany drives the register endpoint and returns the response.
func (ts *testServer) registerCompany(t *testing.T, email string) RegisterResponse {
	t.Helper()

	code, env := ts.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"company_name":   "Acme Pty Ltd",
		"employee_count": "11-50",
		"full_name":      "Jane Doe",
		"email":          email,
		"job_title":      "Founder",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	require.True(t, env.Success)

	var res RegisterResponse
	decodeData(t, env, &res)
	require.True(t, res.EmailSent)
	require.NotEmpty(t, res.PreviewURL)
	return res
}

// onboardUser runs register -> verify -> create-password -> login and
// returns the session token.
func (ts *testServer) onboardUser(t *testing.T, email, password string) (string, RegisterResponse) {
	t.Helper()

	res := ts.registerCompany(t, email)

	code, env := ts.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{
		"token": tokenFromPreview(t, res.PreviewURL),
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = ts.do(t, http.MethodPost, "/v1/auth/create-password", ts.bearerFor(t, res.User), map[string]string{
		"password": password,
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = ts.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	var login LoginResponse
	decodeData(t, env, &login)
	require.NotEmpty(t, login.Token)
	return login.Token, res
}

func tokenFromPreview(t *testing.T, previewURL string) string {
	t.Helper()
	// Preview URLs look like https://app.example.com/verify-email?token=...
	const marker = "token="
	idx := bytes.LastIndex([]byte(previewURL), []byte(marker))
	require.NotEqual(t, -1, idx, "no token in preview url %q", previewURL)
	return previewURL[idx+len(marker):]
}
