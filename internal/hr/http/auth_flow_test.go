package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOnboardingFlow(t *testing.T) {
	ts := newTestServer(t)

	token, res := ts.onboardUser(t, "jane@acme.com", "Password1!")

	// The session token works against authenticated endpoints.
	code, env := ts.do(t, http.MethodGet, "/v1/company", token, nil)
	require.Equal(t, http.StatusOK, code)

	var company CompanyDTO
	decodeData(t, env, &company)
	require.Equal(t, res.Company.ID, company.ID)
	require.False(t, company.IsOnboardingComplete)

	// Build out the org: department, role, employee.
	code, env = ts.do(t, http.MethodPost, "/v1/departments", token, map[string]string{
		"name": "Engineering", "email": "eng@acme.com",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var dept DepartmentDTO
	decodeData(t, env, &dept)

	code, env = ts.do(t, http.MethodPost, "/v1/roles", token, map[string]string{
		"title": "Backend Engineer", "department_id": dept.ID,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var role RoleDTO
	decodeData(t, env, &role)

	code, env = ts.do(t, http.MethodPost, "/v1/employees", token, map[string]string{
		"first_name": "Sam", "last_name": "Lee", "email": "sam@acme.com",
		"department_id": dept.ID, "role_id": role.ID, "start_date": "2026-03-01",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var emp EmployeeDTO
	decodeData(t, env, &emp)
	require.Equal(t, "2026-03-01", emp.StartDate)

	// Finish onboarding.
	code, env = ts.do(t, http.MethodPost, "/v1/company/complete-onboarding", token, nil)
	require.Equal(t, http.StatusOK, code)
	decodeData(t, env, &company)
	require.True(t, company.IsOnboardingComplete)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	ts.registerCompany(t, "jane@acme.com")

	code, env := ts.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"company_name": "Other Co", "full_name": "Impostor", "email": "JANE@acme.com",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, env.Message, "already registered")
}

func TestLoginLadderOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	res := ts.registerCompany(t, "jane@acme.com")

	// Unverified login is rejected with a message telling the user what
	// to do; the status stays 401 on every rung of the ladder.
	code, env := ts.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "jane@acme.com", "password": "Password1!",
	})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Contains(t, env.Message, "verify")

	code, _ = ts.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{
		"token": tokenFromPreview(t, res.PreviewURL),
	})
	require.Equal(t, http.StatusOK, code)

	// Verified but no password yet: different message.
	code, env = ts.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "jane@acme.com", "password": "Password1!",
	})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Contains(t, env.Message, "setup")

	code, _ = ts.do(t, http.MethodPost, "/v1/auth/create-password", ts.bearerFor(t, res.User), map[string]string{
		"password": "Password1!",
	})
	require.Equal(t, http.StatusOK, code)

	// Wrong password and unknown email are indistinguishable.
	code, wrongPw := ts.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "jane@acme.com", "password": "Nope1234!",
	})
	require.Equal(t, http.StatusUnauthorized, code)

	code, unknown := ts.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "ghost@acme.com", "password": "Password1!",
	})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, wrongPw.Message, unknown.Message)

	// And the real password logs in, returning user and company.
	code, env = ts.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "jane@acme.com", "password": "Password1!",
	})
	require.Equal(t, http.StatusOK, code)
	var login LoginResponse
	decodeData(t, env, &login)
	require.Equal(t, res.User.ID, login.User.ID)
	require.Equal(t, res.Company.ID, login.Company.ID)
	require.True(t, login.User.IsEmailVerified)
}

func TestVerifyEmailEndpoint_BadToken(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{
		"token": "bogus",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, env.Success)

	// Missing token is a validation error.
	code, env = ts.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, env.Errors, "token")
}

func TestUpdateEmailFlow(t *testing.T) {
	ts := newTestServer(t)

	res := ts.registerCompany(t, "jane@acme.com")
	bearer := ts.bearerFor(t, res.User)

	code, env := ts.do(t, http.MethodPost, "/v1/auth/update-email", bearer, map[string]string{
		"email": "jane.new@acme.com",
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	var updated UpdateEmailResponse
	decodeData(t, env, &updated)
	require.Equal(t, "jane.new@acme.com", updated.Email)
	require.False(t, updated.IsEmailVerified)
	require.NotEmpty(t, updated.PreviewURL)

	// The link that went to the old address is dead.
	code, _ = ts.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{
		"token": tokenFromPreview(t, res.PreviewURL),
	})
	require.Equal(t, http.StatusBadRequest, code)

	// The fresh link to the new address verifies.
	code, _ = ts.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{
		"token": tokenFromPreview(t, updated.PreviewURL),
	})
	require.Equal(t, http.StatusOK, code)

	// The old address is free again; the new one is taken.
	other := ts.registerCompany(t, "jane@acme.com")
	code, _ = ts.do(t, http.MethodPost, "/v1/auth/update-email", ts.bearerFor(t, other.User), map[string]string{
		"email": "jane.new@acme.com",
	})
	require.Equal(t, http.StatusBadRequest, code)
}

func TestResendVerificationEndpoint(t *testing.T) {
	ts := newTestServer(t)

	res := ts.registerCompany(t, "jane@acme.com")
	bearer := ts.bearerFor(t, res.User)

	code, env := ts.do(t, http.MethodPost, "/v1/auth/resend-verification", bearer, nil)
	require.Equal(t, http.StatusOK, code, env.Message)

	// Verify with the fresh link from the resend.
	var data struct {
		PreviewURL string `json:"preview_url"`
	}
	decodeData(t, env, &data)
	code, _ = ts.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{
		"token": tokenFromPreview(t, data.PreviewURL),
	})
	require.Equal(t, http.StatusOK, code)

	// The original link was replaced and no longer works.
	code, _ = ts.do(t, http.MethodPost, "/v1/auth/verify-email", "", map[string]string{
		"token": tokenFromPreview(t, res.PreviewURL),
	})
	require.Equal(t, http.StatusBadRequest, code)

	// And resending for a verified account is rejected.
	code, _ = ts.do(t, http.MethodPost, "/v1/auth/resend-verification", bearer, nil)
	require.Equal(t, http.StatusBadRequest, code)
}
