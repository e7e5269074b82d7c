package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
	"github.com/easyhrhq/easyhr/internal/hr/service"
)

// Request bodies are capped well above any legitimate payload.
const maxBodyBytes = 1 << 20

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// decodeJSON reads and decodes a JSON body. Unknown fields are tolerated;
// clients evolve independently of the server.
func decodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}

type RegisterRequest struct {
	CompanyName   string `json:"company_name"`
	CompanyPhone  string `json:"company_phone"`
	CompanyCode   string `json:"company_code"`
	EmployeeCount string `json:"employee_count"`

	FullName string `json:"full_name"`
	Email    string `json:"email"`
	JobTitle string `json:"job_title"`
}

// Validate collects every field problem instead of stopping at the first.
func (req RegisterRequest) Validate() map[string]string {
	errs := map[string]string{}
	if req.CompanyName == "" {
		errs["company_name"] = "Company name is required"
	}
	if req.FullName == "" {
		errs["full_name"] = "Full name is required"
	}
	validateEmailField(errs, "email", req.Email, true)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req LoginRequest) Validate() map[string]string {
	errs := map[string]string{}
	validateEmailField(errs, "email", req.Email, true)
	if req.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

func (req VerifyEmailRequest) Validate() map[string]string {
	if req.Token == "" {
		return map[string]string{"token": "Verification token is required"}
	}
	return nil
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

func (req UpdateEmailRequest) Validate() map[string]string {
	errs := map[string]string{}
	validateEmailField(errs, "email", req.Email, true)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type CreatePasswordRequest struct {
	Password string `json:"password"`
}

func (req CreatePasswordRequest) Validate() map[string]string {
	errs := map[string]string{}
	if req.Password == "" {
		errs["password"] = "Password is required"
	} else if service.ValidatePasswordStrength(req.Password) != nil {
		errs["password"] = "Password must be at least 8 characters with an uppercase letter, a number and a special character"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type DepartmentRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	LeadEmployeeID *string `json:"lead_employee_id"`
}

func (req DepartmentRequest) Validate() map[string]string {
	errs := map[string]string{}
	if req.Name == "" {
		errs["name"] = "Name is required"
	}
	validateEmailField(errs, "email", req.Email, false)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type RoleRequest struct {
	Title            string `json:"title"`
	Responsibilities string `json:"responsibilities"`
	DepartmentID     string `json:"department_id"`
}

func (req RoleRequest) Validate() map[string]string {
	errs := map[string]string{}
	if req.Title == "" {
		errs["title"] = "Title is required"
	}
	if req.DepartmentID == "" {
		errs["department_id"] = "Department id is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type EmployeeRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DepartmentID string `json:"department_id"`
	RoleID       string `json:"role_id"`
	StartDate    string `json:"start_date"` // YYYY-MM-DD
}

func (req EmployeeRequest) Validate() map[string]string {
	errs := map[string]string{}
	if req.FirstName == "" {
		errs["first_name"] = "First name is required"
	}
	if req.LastName == "" {
		errs["last_name"] = "Last name is required"
	}
	validateEmailField(errs, "email", req.Email, true)
	if req.DepartmentID == "" {
		errs["department_id"] = "Department id is required"
	}
	if req.RoleID == "" {
		errs["role_id"] = "Role id is required"
	}
	if req.StartDate == "" {
		errs["start_date"] = "Start date is required"
	} else if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
		errs["start_date"] = "Start date must be in YYYY-MM-DD format"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (req EmployeeRequest) toInput() service.EmployeeInput {
	start, _ := time.Parse("2006-01-02", req.StartDate) // validated already
	return service.EmployeeInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		RoleID:       req.RoleID,
		StartDate:    start,
	}
}

func validateEmailField(errs map[string]string, field, value string, required bool) {
	if value == "" {
		if required {
			errs[field] = "Email is required"
		}
		return
	}
	if !emailPattern.MatchString(value) {
		errs[field] = "Email is not a valid address"
	}
}

// Response payloads. Sensitive fields (password hash, token fingerprint)
// never leave the service.

type UserDTO struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	JobTitle        string `json:"job_title,omitempty"`
	Role            string `json:"role"`
	CompanyID       string `json:"company_id"`
	IsEmailVerified bool   `json:"is_email_verified"`
	HasPassword     bool   `json:"has_password"`
}

func toUserDTO(u domain.User) UserDTO {
	return UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		JobTitle:        u.JobTitle,
		Role:            string(u.Role),
		CompanyID:       u.CompanyID,
		IsEmailVerified: u.IsEmailVerified,
		HasPassword:     u.HasPassword(),
	}
}

type CompanyDTO struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email,omitempty"`
	Phone                string `json:"phone,omitempty"`
	CompanyCode          string `json:"company_code,omitempty"`
	EmployeeCount        string `json:"employee_count,omitempty"`
	IsOnboardingComplete bool   `json:"is_onboarding_complete"`
}

func toCompanyDTO(c domain.Company) CompanyDTO {
	return CompanyDTO{
		ID:                   c.ID,
		Name:                 c.Name,
		Email:                c.Email,
		Phone:                c.Phone,
		CompanyCode:          c.CompanyCode,
		EmployeeCount:        c.EmployeeCount,
		IsOnboardingComplete: c.IsOnboardingComplete,
	}
}

type DepartmentDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email,omitempty"`
	LeadEmployeeID *string `json:"lead_employee_id,omitempty"`
	CompanyID      string  `json:"company_id"`
}

func toDepartmentDTO(d domain.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		LeadEmployeeID: d.LeadEmployeeID,
		CompanyID:      d.CompanyID,
	}
}

type RoleDTO struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Responsibilities string `json:"responsibilities,omitempty"`
	DepartmentID     string `json:"department_id"`
	CompanyID        string `json:"company_id"`
}

func toRoleDTO(r domain.Role) RoleDTO {
	return RoleDTO{
		ID:               r.ID,
		Title:            r.Title,
		Responsibilities: r.Responsibilities,
		DepartmentID:     r.DepartmentID,
		CompanyID:        r.CompanyID,
	}
}

type EmployeeDTO struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	DepartmentID string `json:"department_id"`
	RoleID       string `json:"role_id"`
	StartDate    string `json:"start_date"`
	CompanyID    string `json:"company_id"`
}

func toEmployeeDTO(e domain.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Phone:        e.Phone,
		DepartmentID: e.DepartmentID,
		RoleID:       e.RoleID,
		StartDate:    e.StartDate.Format("2006-01-02"),
		CompanyID:    e.CompanyID,
	}
}
