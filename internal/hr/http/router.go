package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/metrics"
	"github.com/easyhrhq/easyhr/internal/hr/service"
	"github.com/easyhrhq/easyhr/internal/hr/store"
	"github.com/easyhrhq/easyhr/pkg/httpx"
	"github.com/easyhrhq/easyhr/pkg/jwtx"
	"github.com/easyhrhq/easyhr/pkg/slogx"

	_ "github.com/easyhrhq/easyhr/api" // Swagger docs
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	AuthService       *service.AuthService
	CompanyService    *service.CompanyService
	DepartmentService *service.DepartmentService
	RoleService       *service.RoleService
	EmployeeService   *service.EmployeeService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metrics.HTTPMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCompany()
	r.registerDepartments()
	r.registerRoles()
	r.registerEmployees()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			EasyHR API
//	@version		0.1.0
//	@description	Multi-tenant HR onboarding backend: company registration with email
//	@description	verification, JWT sessions, and department/role/employee management.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed wraps h with authentication and a per-user rate limit.
func (r *Router) authed(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		AuthMiddleware(r.verifier, r.store),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	// POST /auth/register - strict rate limit by IP (account creation)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(&RegisterHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/login - strict rate limit by IP (credential guessing)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/verify-email - moderate limit; tokens are single-use and
	// unguessable, the limit just caps scanning.
	r.Mux.Handle("POST /v1/auth/verify-email",
		httpx.Chain(&VerifyEmailHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// The remaining setup endpoints act on the authenticated principal.
	// Moderate limits: they send real email or touch credentials.
	r.Mux.Handle("POST /v1/auth/resend-verification",
		r.authed(&ResendVerificationHandler{AuthService: r.AuthService}, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/auth/update-email",
		r.authed(&UpdateEmailHandler{AuthService: r.AuthService}, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/auth/create-password",
		r.authed(&CreatePasswordHandler{AuthService: r.AuthService}, httpx.ModerateLimit))
}

func (r *Router) registerCompany() {
	h := &CompanyHandler{CompanyService: r.CompanyService}

	r.Mux.Handle("GET /v1/company",
		r.authed(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/company/complete-onboarding",
		r.authed(http.HandlerFunc(h.HandleCompleteOnboarding), httpx.ModerateLimit))
}

func (r *Router) registerDepartments() {
	h := &DepartmentsHandler{DepartmentService: r.DepartmentService}

	r.Mux.Handle("POST /v1/departments",
		r.authed(http.HandlerFunc(h.HandleCreate), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/departments",
		r.authed(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/departments/{id}",
		r.authed(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/departments/{id}",
		r.authed(http.HandlerFunc(h.HandleUpdate), httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/departments/{id}",
		r.authed(http.HandlerFunc(h.HandleDelete), httpx.LenientLimit))
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RoleService: r.RoleService}

	r.Mux.Handle("POST /v1/roles",
		r.authed(http.HandlerFunc(h.HandleCreate), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/roles",
		r.authed(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/roles/{id}",
		r.authed(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/roles/{id}",
		r.authed(http.HandlerFunc(h.HandleUpdate), httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/roles/{id}",
		r.authed(http.HandlerFunc(h.HandleDelete), httpx.LenientLimit))
}

func (r *Router) registerEmployees() {
	h := &EmployeesHandler{EmployeeService: r.EmployeeService}

	r.Mux.Handle("POST /v1/employees",
		r.authed(http.HandlerFunc(h.HandleCreate), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/employees",
		r.authed(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/employees/{id}",
		r.authed(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/employees/{id}",
		r.authed(http.HandlerFunc(h.HandleUpdate), httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/employees/{id}",
		r.authed(http.HandlerFunc(h.HandleDelete), httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Prometheus scrape endpoint
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
