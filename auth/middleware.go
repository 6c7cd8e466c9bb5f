package auth

import (
	"slices"
	"strings"

	"github.com/Yulian302/findit-gateway/auth/types"
	apperror "github.com/Yulian302/findit-gateway/common/errors"
	jwttypes "github.com/Yulian302/findit-gateway/common/jwt"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

func JWTMiddleware(secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFrom(ctx)
		if token == "" {
			apperror.UnauthorizedResponse(ctx, "unauthorized")
			return
		}

		if !authenticate(ctx, secretKey, token) {
			return
		}
		ctx.Next()
	}
}

// OptionalJWTMiddleware lets anonymous requests through without an identity.
// A token that is present but invalid is still rejected.
func OptionalJWTMiddleware(secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFrom(ctx)
		if token == "" {
			ctx.Next()
			return
		}

		if !authenticate(ctx, secretKey, token) {
			return
		}
		ctx.Next()
	}
}

func authenticate(ctx *gin.Context, secretKey, token string) bool {
	claims, err := jwttypes.ParseAccessToken(secretKey, token)
	if err != nil {
		apperror.UnauthorizedResponse(ctx, "invalid_token")
		return false
	}

	if claims.Type != jwttypes.TokenTypeAccess {
		apperror.UnauthorizedResponse(ctx, "invalid token type")
		return false
	}
	if claims.Subject == "" {
		apperror.UnauthorizedResponse(ctx, "token has no subject")
		return false
	}

	ctx.Set(identityKey, types.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
	})
	return true
}

func tokenFrom(ctx *gin.Context) string {
	if token, err := ctx.Cookie(jwttypes.CookieName); err == nil && token != "" {
		return token
	}

	header := ctx.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// IdentityFrom returns the identity set by one of the JWT middlewares.
func IdentityFrom(ctx *gin.Context) (types.Identity, bool) {
	v, ok := ctx.Get(identityKey)
	if !ok {
		return types.Identity{}, false
	}
	id, ok := v.(types.Identity)
	if !ok || id.IsZero() {
		return types.Identity{}, false
	}
	return id, true
}

// RequireAdmin must run after JWTMiddleware.
func RequireAdmin(userIDs []string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := IdentityFrom(ctx)
		if !ok {
			apperror.UnauthorizedResponse(ctx, "unauthorized")
			return
		}
		if !slices.Contains(userIDs, id.UserID) {
			apperror.ForbiddenResponse(ctx, "admin access required")
			return
		}
		ctx.Next()
	}
}
