package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Aman2975/hugli-backend/internal/users"
	pkgauth "github.com/Aman2975/hugli-backend/pkg/auth"
	"github.com/Aman2975/hugli-backend/pkg/auth/session"
	"github.com/Aman2975/hugli-backend/pkg/config"
	"github.com/Aman2975/hugli-backend/pkg/db/models"
	"github.com/Aman2975/hugli-backend/pkg/enums"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
	"github.com/Aman2975/hugli-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controllers.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	AdminLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, accessID string) error
	Profile(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*users.UserDTO, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
	SendOTP(ctx context.Context, req SendOTPRequest) error
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*LoginResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, dto users.UpdateProfileDTO) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
}

type sessionManager interface {
	Open(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

// CodeSender delivers one-time codes to the identifier's channel. Wire a
// mail or SMS gateway here; the dev build logs the code instead.
type CodeSender interface {
	SendCode(ctx context.Context, identifier string, purpose enums.OTPPurpose, code string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	OTPStore       otpStore
	Sender         CodeSender
	Logger         *logger.Logger
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	OTPConfig      config.OTPConfig
}

type service struct {
	users       userRepository
	session     sessionManager
	otp         *otpKeeper
	sender      CodeSender
	logg        *logger.Logger
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.OTPStore == nil {
		return nil, fmt.Errorf("otp store is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	sender := params.Sender
	if sender == nil {
		sender = &loggingSender{logg: params.Logger}
	}
	keeper, err := newOTPKeeper(params.OTPStore, params.OTPConfig)
	if err != nil {
		return nil, err
	}
	return &service{
		users:       params.UserRepo,
		session:     params.SessionManager,
		otp:         keeper,
		sender:      sender,
		logg:        params.Logger,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	email := normalizeEmail(req.Email)
	phone := normalizePhone(req.Phone)
	if email == nil && phone == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email or phone is required")
	}
	if len(req.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	if email != nil {
		if _, err := s.users.FindByEmail(ctx, *email); err == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}
	}
	if phone != nil {
		if _, err := s.users.FindByPhone(ctx, *phone); err == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check phone")
		}
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Name:         name,
		Email:        email,
		Phone:        phone,
		Company:      trimmedPtr(req.Company),
		PasswordHash: passwordHash,
		Role:         enums.UserRoleCustomer,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user registered")
	return s.issueToken(ctx, user, time.Now().UTC())
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Identifier, req.Password)
	if err != nil {
		return nil, err
	}
	now, err := s.recordLogin(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issueToken(ctx, user, now)
}

func (s *service) AdminLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Identifier, req.Password)
	if err != nil {
		return nil, err
	}
	if user.Role != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	now, err := s.recordLogin(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issueToken(ctx, user, now)
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return users.FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*users.UserDTO, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
	}
	dto := users.UpdateProfileDTO{
		Name:    trimmedPtr(req.Name),
		Company: trimmedPtr(req.Company),
		Phone:   normalizePhone(req.Phone),
	}
	if err := s.users.UpdateProfile(ctx, userID, dto); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return s.Profile(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	valid, err := security.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
	}
	if len(req.NewPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	s.logg.Info(s.logg.WithUserID(ctx, userID.String()), "password changed")
	return nil
}

func (s *service) SendOTP(ctx context.Context, req SendOTPRequest) error {
	if !req.Purpose.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid otp purpose")
	}
	identifier, err := s.otpIdentifier(ctx, req.Identifier, req.Purpose)
	if err != nil {
		return err
	}

	code, err := s.otp.Issue(ctx, req.Purpose, identifier)
	if err != nil {
		return err
	}
	if err := s.sender.SendCode(ctx, identifier, req.Purpose, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deliver otp")
	}
	s.logg.Info(s.logg.WithField(ctx, "purpose", req.Purpose.String()), "otp issued")
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*LoginResponse, error) {
	switch req.Purpose {
	case enums.OTPPurposeLogin, enums.OTPPurposeEmailVerify:
	case enums.OTPPurposePasswordReset:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "use the reset password endpoint")
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid otp purpose")
	}

	identifier := normalizeIdentifier(req.Identifier)
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if err := s.otp.Redeem(ctx, req.Purpose, identifier, req.Code); err != nil {
		return nil, err
	}

	if req.Purpose == enums.OTPPurposeEmailVerify {
		if err := s.users.MarkEmailVerified(ctx, user.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark email verified")
		}
		user.EmailVerified = true
	}

	now, err := s.recordLogin(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issueToken(ctx, user, now)
}

func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	return s.SendOTP(ctx, SendOTPRequest{
		Identifier: req.Identifier,
		Purpose:    enums.OTPPurposePasswordReset,
	})
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	identifier := normalizeIdentifier(req.Identifier)
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}
	if err := s.otp.Redeem(ctx, enums.OTPPurposePasswordReset, identifier, req.Code); err != nil {
		return err
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "password reset")
	return nil
}

func (s *service) authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	normalized := normalizeIdentifier(identifier)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.lookupByIdentifier(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

// findByIdentifier mirrors authenticate's lookup but reports a coded error
// suitable for the OTP flows.
func (s *service) findByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	if identifier == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "identifier is required")
	}
	user, err := s.lookupByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}

func (s *service) lookupByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	if strings.Contains(identifier, "@") {
		return s.users.FindByEmail(ctx, identifier)
	}
	return s.users.FindByPhone(ctx, identifier)
}

// otpIdentifier resolves and validates the target of an OTP send. Login and
// reset codes require an existing account; verification codes require the
// account to carry the matching email.
func (s *service) otpIdentifier(ctx context.Context, raw string, purpose enums.OTPPurpose) (string, error) {
	identifier := normalizeIdentifier(raw)
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return "", err
	}
	if purpose == enums.OTPPurposeEmailVerify {
		if user.Email == nil || *user.Email != identifier {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "email does not match the account")
		}
	}
	return identifier, nil
}

func (s *service) recordLogin(ctx context.Context, user *models.User) (time.Time, error) {
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now
	return now, nil
}

func (s *service) issueToken(ctx context.Context, user *models.User, now time.Time) (*LoginResponse, error) {
	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	if err := s.session.Open(ctx, accessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open session")
	}
	return &LoginResponse{
		AccessToken: accessToken,
		User:        users.FromModel(user),
	}, nil
}

func normalizeIdentifier(raw string) string {
	value := strings.TrimSpace(raw)
	if strings.Contains(value, "@") {
		return strings.ToLower(value)
	}
	return normalizePhoneString(value)
}

func normalizeEmail(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.ToLower(strings.TrimSpace(*raw))
	if value == "" {
		return nil
	}
	return &value
}

func normalizePhone(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := normalizePhoneString(*raw)
	if value == "" {
		return nil
	}
	return &value
}

// normalizePhoneString strips spacing and punctuation so the same number
// always hits the same unique index.
func normalizePhoneString(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func trimmedPtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil
	}
	return &value
}
