package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"apthire/internal/auth"
	"apthire/internal/models"
	"apthire/internal/storage"
	"apthire/internal/transport/dto"
)

type oauthService struct {
	users     storage.UserRepository
	provider  OAuthProvider
	tokens    *auth.TokenIssuer
	allowList *AdminAllowList
}

// NewOAuthService creates a new instance of OAuthService.
func NewOAuthService(users storage.UserRepository, provider OAuthProvider, tokens *auth.TokenIssuer, allowList *AdminAllowList) OAuthService {
	return &oauthService{
		users:     users,
		provider:  provider,
		tokens:    tokens,
		allowList: allowList,
	}
}

func (s *oauthService) LoginURL() (string, string, error) {
	return s.provider.AuthCodeURL()
}

func (s *oauthService) Callback(ctx context.Context, req *dto.OAuthCodeRequest) (*dto.AuthResponse, error) {
	profile, err := s.provider.Exchange(ctx, req.Code)
	if err != nil {
		log.Printf("OAuth callback: Exchange failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrOAuthFailed, err)
	}
	return s.LinkOrCreate(ctx, profile)
}

// LinkOrCreate signs in the account owning the profile's email, creating a
// verified account without a role when there is none.
func (s *oauthService) LinkOrCreate(ctx context.Context, profile *dto.OAuthProfile) (*dto.AuthResponse, error) {
	email := normalizeEmail(profile.Email)
	if email == "" || profile.ExternalID == "" {
		return nil, fmt.Errorf("%w: provider profile has no email or id", ErrOAuthFailed)
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user, err = s.linkExisting(ctx, user, profile.ExternalID); err != nil {
			return nil, err
		}
	case errors.Is(err, storage.ErrNotFound):
		if user, err = s.createFromProfile(ctx, email, profile); err != nil {
			return nil, err
		}
	default:
		return nil, mapRepoError(err, "looking up user")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("OAuth: Error generating token for user %s: %v", user.ID, err)
		return nil, fmt.Errorf("failed to generate login token: %w", err)
	}
	return newAuthResponse(user, token), nil
}

func (s *oauthService) linkExisting(ctx context.Context, user *models.User, externalID string) (*models.User, error) {
	if user.GoogleID == nil {
		err := s.users.LinkGoogleID(ctx, user.ID, externalID)
		switch {
		case err == nil:
			user.GoogleID = &externalID
			log.Printf("OAuth: Linked external id to user %s", user.ID)
		case errors.Is(err, storage.ErrNotFound):
			// Linked concurrently; nothing to do.
		default:
			return nil, mapRepoError(err, "linking external account")
		}
	}

	// The provider vouches for the email, which completes a pending signup.
	if !user.Verified {
		verified, err := s.users.MarkVerified(ctx, user.ID)
		if err != nil {
			return nil, mapRepoError(err, "verifying linked account")
		}
		log.Printf("OAuth: Marked pending signup %s as verified", user.ID)
		user = verified
	}

	if s.allowList.Contains(user.Email) && user.Role != models.RoleAdmin {
		log.Printf("OAuth: Promoting allow-listed user %s to admin", user.ID)
		healed, err := s.users.UpdateRole(ctx, user.ID, models.RoleAdmin)
		if err != nil {
			return nil, mapRepoError(err, "promoting admin")
		}
		return healed, nil
	}
	return user, nil
}

func (s *oauthService) createFromProfile(ctx context.Context, email string, profile *dto.OAuthProfile) (*models.User, error) {
	role := models.RoleUnset
	if s.allowList.Contains(email) {
		role = models.RoleAdmin
	}
	name := strings.TrimSpace(profile.DisplayName)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	externalID := profile.ExternalID

	user, err := s.users.Create(ctx, &models.User{
		Name:     name,
		Email:    email,
		Role:     role,
		Verified: true,
		GoogleID: &externalID,
	})
	if err != nil {
		return nil, mapRepoError(err, "creating user from external account")
	}
	log.Printf("OAuth: Created user %s (role %q)", user.ID, user.Role)
	return user, nil
}

// AssignRole sets the role of an account that has none yet. The store
// update only matches rows whose role is still empty.
func (s *oauthService) AssignRole(ctx context.Context, req *dto.AssignRoleRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, mapRepoError(err, "looking up user")
	}
	if user.Role != models.RoleUnset {
		return nil, ErrRoleAlreadySet
	}
	if req.Role == models.RoleAdmin {
		log.Printf("AssignRole: User %s attempted to self-assign admin", req.UserID)
		return nil, fmt.Errorf("%w: admin cannot be self-assigned", ErrForbidden)
	}
	if req.Role != models.RoleCandidate && req.Role != models.RoleRecruiter {
		return nil, fmt.Errorf("%w: role must be candidate or recruiter", ErrValidation)
	}

	updated, err := s.users.AssignRoleIfUnset(ctx, req.UserID, req.Role)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrRoleAlreadySet
		}
		return nil, mapRepoError(err, "assigning role")
	}

	token, err := s.tokens.Issue(updated.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate login token: %w", err)
	}
	log.Printf("AssignRole: User %s is now %s", updated.ID, updated.Role)
	return newAuthResponse(updated, token), nil
}
