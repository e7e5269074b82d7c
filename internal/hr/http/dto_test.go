package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterValidation_CollectsAllErrors(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, env.Success)
	require.Equal(t, "Validation failed", env.Message)

	// Every broken field is reported in one round trip.
	require.Contains(t, env.Errors, "company_name")
	require.Contains(t, env.Errors, "full_name")
	require.Contains(t, env.Errors, "email")
}

func TestRegisterValidation_EmptyBody(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/v1/auth/register", "", nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, env.Success)
}

func TestCreatePasswordValidation_WeakPassword(t *testing.T) {
	ts := newTestServer(t)

	res := ts.registerCompany(t, "jane@acme.com")

	code, env := ts.do(t, http.MethodPost, "/v1/auth/create-password", ts.bearerFor(t, res.User), map[string]string{
		"password": "alllowercase",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, env.Errors, "password")
}

func TestEmployeeValidation(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.onboardUser(t, "jane@acme.com", "Password1!")

	code, env := ts.do(t, http.MethodPost, "/v1/employees", token, map[string]string{
		"first_name": "Sam",
		"email":      "sam@acme.com",
		"start_date": "01/03/2026",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, env.Errors, "last_name")
	require.Contains(t, env.Errors, "department_id")
	require.Contains(t, env.Errors, "role_id")
	require.Contains(t, env.Errors["start_date"], "YYYY-MM-DD")
}
