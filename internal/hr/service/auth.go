package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
	"github.com/easyhrhq/easyhr/internal/hr/mail"
	"github.com/easyhrhq/easyhr/internal/hr/store"
	"github.com/easyhrhq/easyhr/pkg/cryptox"
	"github.com/easyhrhq/easyhr/pkg/idx"
	"github.com/easyhrhq/easyhr/pkg/jwtx"
	"github.com/easyhrhq/easyhr/pkg/slogx"
)

var (
	ErrInvalidAuthRequest     = errors.New("invalid auth request")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailNotVerified       = errors.New("email not verified")
	ErrPasswordNotSet         = errors.New("password not set")
	ErrTokenInvalid           = errors.New("verification token invalid or expired")
	ErrAlreadyVerified        = errors.New("email already verified")
	ErrWeakPassword           = errors.New("password does not meet strength requirements")
	ErrMailDelivery           = errors.New("failed to send verification email")
)

// VerificationTokenTTL is how long an emailed verification link stays valid.
const VerificationTokenTTL = 24 * time.Hour

// Mailer is what AuthService needs from the mail layer. Injected so tests
// and the dev preview mailer can stand in for real SMTP.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, link string) (mail.Receipt, error)
}

type AuthService struct {
	Store  store.Store
	Mailer Mailer
	Signer jwtx.Signer

	// FrontendURL is the base the emailed verification link points at.
	FrontendURL string

	// SessionTTL defaults to jwtx.DefaultSessionTTL when zero.
	SessionTTL time.Duration
}

type RegisterInput struct {
	CompanyName   string
	CompanyPhone  string
	CompanyCode   string
	EmployeeCount string

	FullName string
	Email    string
	JobTitle string
}

type RegisterResult struct {
	User    domain.User
	Company domain.Company

	// EmailSent is false when the verification email could not be
	// delivered. Registration still succeeds; the user can ask for a
	// resend once delivery recovers.
	EmailSent bool

	// PreviewURL carries the dev-mailer link so local flows can verify
	// without a mailbox. Empty in production.
	PreviewURL string
}

// Register creates a company with its first (admin) user and emails the
// verification link. Company and user are created in one transaction: a
// failure partway leaves nothing behind.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input. Field-level messages belong to the HTTP layer;
	// this is the backstop for callers that skip it.
	email := NormalizeEmail(in.Email)
	if in.CompanyName == "" || in.FullName == "" || email == "" {
		log.Warn("registration missing required fields")
		return RegisterResult{}, ErrInvalidAuthRequest
	}

	// 2. Check the address isn't taken. The unique index is the real
	// guarantee; this check exists for a friendlier error.
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		log.Warn("registration attempted with already-registered email")
		return RegisterResult{}, ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return RegisterResult{}, err
	}

	// 3. Mint the verification token. Only the fingerprint is stored; the
	// raw token exists in the email link and nowhere else.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate verification token", slog.Any("error", err))
		return RegisterResult{}, err
	}
	fingerprint := cryptox.FingerprintToken(token)
	expiresAt := time.Now().UTC().Add(VerificationTokenTTL)

	// The registrant's address doubles as the company contact address.
	company := domain.Company{
		ID:            idx.New().String(),
		Name:          in.CompanyName,
		Email:         email,
		Phone:         in.CompanyPhone,
		CompanyCode:   in.CompanyCode,
		EmployeeCount: in.EmployeeCount,
	}

	user := domain.User{
		ID:                         idx.New().String(),
		Email:                      email,
		FullName:                   in.FullName,
		JobTitle:                   in.JobTitle,
		Role:                       domain.RoleAdmin,
		CompanyID:                  company.ID,
		VerificationTokenHash:      &fingerprint,
		VerificationTokenExpiresAt: &expiresAt,
	}

	// 4. Create company and user atomically.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Companies().CreateCompany(ctx, company); err != nil {
			log.Error("failed to create company", slog.Any("error", err))
			return err
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				// Lost a race with a concurrent registration.
				return ErrEmailAlreadyRegistered
			}
			log.Error("failed to create user", slog.Any("error", err))
			return err
		}
		return nil
	})
	if err != nil {
		return RegisterResult{}, err
	}

	result := RegisterResult{User: user, Company: company}

	// 5. Send the verification email. Delivery failure does not undo the
	// registration; the account exists and a resend can follow.
	receipt, err := s.Mailer.SendVerificationEmail(ctx, email, in.FullName, s.verificationLink(token))
	if err != nil {
		log.Warn("verification email delivery failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	} else {
		result.EmailSent = true
		result.PreviewURL = receipt.PreviewURL
	}

	log.Info("company registered",
		slog.String("company_id", company.ID),
		slog.String("user_id", user.ID),
		slog.Bool("email_sent", result.EmailSent),
	)

	return result, nil
}

// LoginResult is a successful authentication: the session token plus the
// user and company projections the client caches.
type LoginResult struct {
	Token   string
	User    domain.User
	Company domain.Company
}

// Login authenticates by email and password and returns a signed session
// token. The checks run in a fixed order so the caller gets the most
// actionable error: unknown email and wrong password both collapse into
// ErrInvalidCredentials, but an unverified email or a never-set password
// are surfaced as themselves.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidAuthRequest
	}

	// 1. Look up the account. Unknown email reads as invalid credentials
	// so the endpoint doesn't confirm which addresses exist.
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempted with unknown email")
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return LoginResult{}, err
	}

	// 2. Verified email is a precondition for login.
	if !user.IsEmailVerified {
		log.Warn("login attempted before email verification", slog.String("user_id", user.ID))
		return LoginResult{}, ErrEmailNotVerified
	}

	// 3. The account may be verified but mid-setup, with no password yet.
	if !user.HasPassword() {
		log.Warn("login attempted before password setup", slog.String("user_id", user.ID))
		return LoginResult{}, ErrPasswordNotSet
	}

	// 4. Check the password.
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login attempted with wrong password", slog.String("user_id", user.ID))
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return LoginResult{}, err
	}

	// 5. The client caches the company alongside the user.
	company, err := s.Store.Companies().GetCompanyByID(ctx, user.CompanyID)
	if err != nil {
		log.Error("failed to fetch company", slog.Any("error", err))
		return LoginResult{}, err
	}

	// 6. Issue the session token.
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(user.ID, user.Email, string(user.Role), "", ttl, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return LoginResult{}, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return LoginResult{Token: token, User: user, Company: company}, nil
}

// VerifyEmail consumes a verification token from the emailed link. Invalid,
// expired and already-consumed tokens are indistinguishable to the caller.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.User{}, ErrTokenInvalid
	}

	// 1. Fingerprint and look up. The store only matches unexpired tokens.
	fingerprint := cryptox.FingerprintToken(token)
	user, err := s.Store.Users().GetUserByVerificationTokenHash(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("email verification attempted with invalid or expired token")
			return domain.User{}, ErrTokenInvalid
		}
		log.Error("failed to fetch user by verification token", slog.Any("error", err))
		return domain.User{}, err
	}

	// 2. Flip the flag and clear the token in one write, so the token
	// cannot be replayed.
	if err := s.Store.Users().MarkEmailVerified(ctx, user.ID); err != nil {
		log.Error("failed to mark email verified",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	user.IsEmailVerified = true
	user.VerificationTokenHash = nil
	user.VerificationTokenExpiresAt = nil

	log.Info("email verified", slog.String("user_id", user.ID))
	return user, nil
}

// ResendVerification issues a fresh token for an unverified account and
// emails it. Unlike registration, a delivery failure here IS the operation
// failing, so it propagates.
func (s *AuthService) ResendVerification(ctx context.Context, userID string) (mail.Receipt, error) {
	log := slogx.FromContext(ctx)

	if userID == "" {
		return mail.Receipt{}, ErrInvalidAuthRequest
	}

	// 1. The account must still be unverified.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("resend attempted for unknown user")
			return mail.Receipt{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return mail.Receipt{}, err
	}
	if user.IsEmailVerified {
		log.Warn("resend attempted for already-verified account", slog.String("user_id", user.ID))
		return mail.Receipt{}, ErrAlreadyVerified
	}

	// 2. Mint a replacement token; the previous one dies with the
	// overwrite.
	token, err := s.issueVerificationToken(ctx, user.ID)
	if err != nil {
		return mail.Receipt{}, err
	}

	// 3. Send. Failure propagates so the caller knows to retry.
	receipt, err := s.Mailer.SendVerificationEmail(ctx, user.Email, user.FullName, s.verificationLink(token))
	if err != nil {
		log.Warn("verification email delivery failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return mail.Receipt{}, ErrMailDelivery
	}

	log.Info("verification email resent", slog.String("user_id", user.ID))
	return receipt, nil
}

// UpdateEmail changes the account's address before verification, e.g. after
// a typo at registration. The account drops back to unverified and a fresh
// link goes to the new address.
func (s *AuthService) UpdateEmail(ctx context.Context, userID, newEmail string) (domain.User, mail.Receipt, error) {
	log := slogx.FromContext(ctx)

	newEmail = NormalizeEmail(newEmail)
	if userID == "" || newEmail == "" {
		return domain.User{}, mail.Receipt{}, ErrInvalidAuthRequest
	}

	// 1. The account must exist.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("email update attempted for unknown user")
			return domain.User{}, mail.Receipt{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, mail.Receipt{}, err
	}

	// 2. The new address must be free, unless it's the user's own (a
	// no-op rename still reissues the token below).
	if existing, err := s.Store.Users().GetUserByEmail(ctx, newEmail); err == nil {
		if existing.ID != user.ID {
			log.Warn("email update attempted with taken address", slog.String("user_id", user.ID))
			return domain.User{}, mail.Receipt{}, ErrEmailAlreadyRegistered
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.User{}, mail.Receipt{}, err
	}

	// 3. Swap the address and drop verified status.
	if err := s.Store.Users().UpdateEmail(ctx, user.ID, newEmail); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, mail.Receipt{}, ErrEmailAlreadyRegistered
		}
		log.Error("failed to update email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return domain.User{}, mail.Receipt{}, err
	}
	user.Email = newEmail
	user.IsEmailVerified = false

	// 4. New token, new email.
	token, err := s.issueVerificationToken(ctx, user.ID)
	if err != nil {
		return domain.User{}, mail.Receipt{}, err
	}

	receipt, err := s.Mailer.SendVerificationEmail(ctx, newEmail, user.FullName, s.verificationLink(token))
	if err != nil {
		log.Warn("verification email delivery failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return domain.User{}, mail.Receipt{}, ErrMailDelivery
	}

	log.Info("email updated, verification resent", slog.String("user_id", user.ID))
	return user, receipt, nil
}

// CreatePassword sets the password for an account mid-setup, and also
// serves as a plain password change.
func (s *AuthService) CreatePassword(ctx context.Context, userID, password string) error {
	log := slogx.FromContext(ctx)

	if userID == "" {
		return ErrInvalidAuthRequest
	}

	// 1. Strength is enforced here, not just at the HTTP edge.
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}

	// 2. The account must exist.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("password setup attempted for unknown user")
			return ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return err
	}

	// 3. Hash and persist.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		log.Error("failed to store password hash",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("password set", slog.String("user_id", user.ID))
	return nil
}

// issueVerificationToken mints a fresh token, stores its fingerprint and
// returns the raw token for the email link.
func (s *AuthService) issueVerificationToken(ctx context.Context, userID string) (string, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate verification token", slog.Any("error", err))
		return "", err
	}

	fingerprint := cryptox.FingerprintToken(token)
	expiresAt := time.Now().UTC().Add(VerificationTokenTTL)
	if err := s.Store.Users().SetVerificationToken(ctx, userID, fingerprint, expiresAt); err != nil {
		log.Error("failed to store verification token",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return "", err
	}

	return token, nil
}

func (s *AuthService) verificationLink(token string) string {
	base := strings.TrimRight(s.FrontendURL, "/")
	return base + "/verify-email?token=" + url.QueryEscape(token)
}

// NormalizeEmail lowercases and trims an address. All email comparison and
// storage goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePasswordStrength enforces the minimum password policy: at least
// 8 characters with an uppercase letter, a digit and a special character.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(`!@#$%^&*(),.?":{}|<>`, r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasDigit || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}
