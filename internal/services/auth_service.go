package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"apthire/config"
	"apthire/internal/auth"
	"apthire/internal/models"
	"apthire/internal/notifier"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"

	"github.com/jackc/pgx/v5"
)

type authService struct {
	users         storage.UserRepository
	txManager     storage.TxManager
	notifier      Notifier
	tokens        *auth.TokenIssuer
	tokenStore    auth.TokenStore
	allowList     *AdminAllowList
	otp           otpPolicy
	notifyTimeout time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	users storage.UserRepository,
	txManager storage.TxManager,
	n Notifier,
	tokens *auth.TokenIssuer,
	tokenStore auth.TokenStore,
	allowList *AdminAllowList,
	cfg config.AuthConfig,
) AuthService {
	return &authService{
		users:         users,
		txManager:     txManager,
		notifier:      n,
		tokens:        tokens,
		tokenStore:    tokenStore,
		allowList:     allowList,
		otp:           otpPolicy{digits: cfg.OTPDigits, ttl: cfg.OTPTTL},
		notifyTimeout: cfg.NotifyTimeout,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	role, err := resolveSignupRole(s.allowList, email, req.Role)
	if err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	code, otpHash, err := s.otp.generate()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.otp.ttl)

	var created *models.User
	err = s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		users := s.users.WithTx(tx)

		existing, err := users.GetByEmail(ctx, email)
		switch {
		case err == nil && existing.Verified:
			log.Printf("Register: Email %s already registered", email)
			return fmt.Errorf("%w: an account with this email already exists", ErrConflict)
		case err == nil:
			// Abandoned signup, start over.
			log.Printf("Register: Replacing unverified account %s for %s", existing.ID, email)
			if err := users.Delete(ctx, existing.ID); err != nil {
				return mapRepoError(err, "removing unverified account")
			}
		case !errors.Is(err, storage.ErrNotFound):
			return mapRepoError(err, "looking up email")
		}

		created, err = users.Create(ctx, &models.User{
			Name:         req.Name,
			Email:        email,
			PasswordHash: &passwordHash,
			Role:         role,
			Verified:     false,
			OTPHash:      &otpHash,
			OTPExpiresAt: &expiresAt,
		})
		if err != nil {
			return mapRepoError(err, "creating user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendOTP(ctx, created, code, notifier.PurposeVerify); err != nil {
		// Compensate so the email can register again.
		if delErr := s.users.Delete(context.WithoutCancel(ctx), created.ID); delErr != nil && !errors.Is(delErr, storage.ErrNotFound) {
			log.Printf("Register: Failed to remove user %s after notification failure: %v", created.ID, delErr)
		}
		return nil, err
	}

	log.Printf("Register: User %s registered as %s, awaiting verification", created.ID, created.Role)
	return &dto.RegisterResponse{
		Email:   created.Email,
		Message: "verification code sent",
	}, nil
}

// sendOTP dispatches a code under the configured timeout.
func (s *authService) sendOTP(ctx context.Context, user *models.User, code string, purpose notifier.Purpose) error {
	notifyCtx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	if err := s.notifier.SendOTP(notifyCtx, user.Email, user.Name, code, purpose); err != nil {
		log.Printf("sendOTP: Failed to send %s code to %s: %v", purpose, user.Email, err)
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}
	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, mapRepoError(err, "looking up user")
	}
	if user.Verified {
		return nil, ErrAlreadyVerified
	}
	if err := s.otp.check(user.OTPHash, user.OTPExpiresAt, req.OTP, time.Now()); err != nil {
		log.Printf("VerifyOTP: Rejected code for %s: %v", user.Email, err)
		return nil, err
	}

	verified, err := s.users.MarkVerified(ctx, user.ID)
	if err != nil {
		return nil, mapRepoError(err, "verifying user")
	}
	return s.session(verified)
}

func (s *authService) ResendOTP(ctx context.Context, req *dto.EmailRequest) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return mapRepoError(err, "looking up user")
	}
	if user.Verified {
		return ErrAlreadyVerified
	}
	return s.issueOTP(ctx, user, notifier.PurposeVerify)
}

func (s *authService) issueOTP(ctx context.Context, user *models.User, purpose notifier.Purpose) error {
	code, otpHash, err := s.otp.generate()
	if err != nil {
		return err
	}
	if err := s.users.SetOTP(ctx, user.ID, otpHash, time.Now().Add(s.otp.ttl)); err != nil {
		return mapRepoError(err, "storing verification code")
	}
	return s.sendOTP(ctx, user, code, purpose)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Login attempt failed for email %s: user not found", email)
			return nil, ErrInvalidCredentials
		}
		return nil, mapRepoError(err, "looking up user")
	}

	if !passwordMatches(user.PasswordHash, req.Password) {
		log.Printf("Login attempt failed for email %s: invalid password", email)
		return nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, ErrNotVerified
	}

	if user, err = s.healAdminRole(ctx, user); err != nil {
		return nil, err
	}
	return s.session(user)
}

// healAdminRole promotes allow-listed accounts that lost the admin role.
func (s *authService) healAdminRole(ctx context.Context, user *models.User) (*models.User, error) {
	if !s.allowList.Contains(user.Email) || user.Role == models.RoleAdmin {
		return user, nil
	}
	log.Printf("Promoting allow-listed user %s to admin", user.ID)
	healed, err := s.users.UpdateRole(ctx, user.ID, models.RoleAdmin)
	if err != nil {
		return nil, mapRepoError(err, "promoting admin")
	}
	return healed, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *dto.EmailRequest) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return mapRepoError(err, "looking up user")
	}
	return s.issueOTP(ctx, user, notifier.PurposeReset)
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return mapRepoError(err, "looking up user")
	}
	if err := s.otp.check(user.OTPHash, user.OTPExpiresAt, req.OTP, time.Now()); err != nil {
		log.Printf("ResetPassword: Rejected code for %s: %v", user.Email, err)
		return err
	}

	passwordHash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash, true); err != nil {
		return mapRepoError(err, "resetting password")
	}
	log.Printf("ResetPassword: Password reset for user %s", user.ID)
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return mapRepoError(err, "looking up user")
	}
	// OAuth-only accounts set their first password without a current one.
	if user.HasPassword() && !passwordMatches(user.PasswordHash, req.CurrentPassword) {
		return ErrInvalidCredentials
	}

	passwordHash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash, false); err != nil {
		return mapRepoError(err, "changing password")
	}
	return nil
}

func (s *authService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if req.TokenID == "" {
		return fmt.Errorf("%w: token has no id", ErrValidation)
	}
	if err := s.tokenStore.Revoke(ctx, req.TokenID, time.Until(req.ExpiresAt)); err != nil {
		log.Printf("Logout: Failed to revoke token %s: %v", req.TokenID, err)
		return fmt.Errorf("internal error revoking token: %w", err)
	}
	return nil
}

func (s *authService) session(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("Error generating token for user %s: %v", user.ID, err)
		return nil, fmt.Errorf("failed to generate login token: %w", err)
	}
	return newAuthResponse(user, token), nil
}
