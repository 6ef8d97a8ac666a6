package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"apthire/internal/auth"
	"apthire/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	userIDCtx           = "userID"
	userRoleCtx         = "userRole"
	userCtx             = "user"
	claimsCtx           = "claims"
)

// UserLookup resolves the subject of a token to the stored account.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type authenticator struct {
	issuer *auth.TokenIssuer
	store  auth.TokenStore
	users  UserLookup
}

// authenticate validates the bearer token and loads the current user. The
// returned message is safe to send to the client.
func (a *authenticator) authenticate(c *gin.Context, tokenString string) (*auth.Claims, *models.User, string) {
	claims, err := a.issuer.Parse(tokenString)
	if err != nil {
		log.Printf("Auth middleware: Error parsing token: %v", err)
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, nil, "Token has expired"
		}
		return nil, nil, "Invalid token"
	}

	if a.store != nil {
		revoked, err := a.store.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Redis being down must not lock every user out.
			log.Printf("Auth middleware: Error checking revocation for token %s: %v", claims.ID, err)
		} else if revoked {
			return nil, nil, "Token has been revoked"
		}
	}

	userID, err := claims.UserID()
	if err != nil {
		log.Printf("Auth middleware: Error parsing user ID from token subject '%s': %v", claims.Subject, err)
		return nil, nil, "Invalid user identifier in token"
	}

	user, err := a.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Auth middleware: Error loading user %s: %v", userID, err)
		return nil, nil, "User no longer exists"
	}
	return claims, user, ""
}

func setIdentity(c *gin.Context, claims *auth.Claims, user *models.User) {
	c.Set(userIDCtx, user.ID)
	c.Set(userRoleCtx, user.Role)
	c.Set(userCtx, user)
	c.Set(claimsCtx, claims)
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message, "code": "unauthorized"})
}

// RequireAuth rejects requests without a valid, unrevoked session token.
// The role placed in the context is read from the store, not from the token.
func RequireAuth(issuer *auth.TokenIssuer, store auth.TokenStore, users UserLookup) gin.HandlerFunc {
	a := &authenticator{issuer: issuer, store: store, users: users}
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}
		tokenString, ok := bearerToken(authHeader)
		if !ok {
			abortUnauthorized(c, "Invalid Authorization header format")
			return
		}

		claims, user, message := a.authenticate(c, tokenString)
		if message != "" {
			abortUnauthorized(c, message)
			return
		}

		setIdentity(c, claims, user)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a usable token is present
// and otherwise lets the request through anonymously.
func OptionalAuth(issuer *auth.TokenIssuer, store auth.TokenStore, users UserLookup) gin.HandlerFunc {
	a := &authenticator{issuer: issuer, store: store, users: users}
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader(authorizationHeader))
		if ok {
			if claims, user, message := a.authenticate(c, tokenString); message == "" {
				setIdentity(c, claims, user)
			}
		}
		c.Next()
	}
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	userIDAny, exists := c.Get(userIDCtx)
	if !exists {
		return uuid.Nil, errors.New("user ID not found in context")
	}

	userID, ok := userIDAny.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user ID in context is of invalid type")
	}

	return userID, nil
}

// GetUserRoleFromContext returns the authenticated user's current role.
func GetUserRoleFromContext(c *gin.Context) (models.Role, error) {
	roleAny, exists := c.Get(userRoleCtx)
	if !exists {
		return models.RoleUnset, errors.New("user role not found in context")
	}
	role, ok := roleAny.(models.Role)
	if !ok {
		return models.RoleUnset, errors.New("user role in context is of invalid type")
	}
	return role, nil
}

// GetClaimsFromContext returns the verified token claims.
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, error) {
	claimsAny, exists := c.Get(claimsCtx)
	if !exists {
		return nil, errors.New("token claims not found in context")
	}
	claims, ok := claimsAny.(*auth.Claims)
	if !ok {
		return nil, errors.New("token claims in context are of invalid type")
	}
	return claims, nil
}
