package middleware

import (
	"net/http"
	"strings"
	"wonders-cms/internal/auth"
	"wonders-cms/internal/logger"
)

// Enforcer decides whether a subject may perform an action on an object.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authorizer creates a new middleware for authorization.
// A request without a token is anonymous; a bearer token must be valid.
// The resulting subject is checked with Casbin against the path and method:
// denied anonymous requests get 401, denied authenticated requests get 403.
func Authorizer(e Enforcer, tokens TokenVerifier, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userInfo := &UserInfo{Subject: auth.RoleAnonymous}

			if header := r.Header.Get("Authorization"); header != "" {
				token, ok := bearerToken(header)
				if !ok {
					WriteError(w, r, http.StatusUnauthorized, "Invalid authorization header")
					return
				}
				claims, err := tokens.Verify(token)
				if err != nil {
					WriteError(w, r, http.StatusUnauthorized, "Invalid or expired token")
					return
				}
				adminID, err := claims.AdminID()
				if err != nil {
					WriteError(w, r, http.StatusUnauthorized, "Invalid or expired token")
					return
				}
				userInfo = &UserInfo{Subject: claims.Role, AdminID: adminID, TokenID: claims.ID}
			}

			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			allowed, err := e.Enforce(userInfo.Subject, r.URL.Path, r.Method)
			if err != nil {
				log.Error(err, "Authorization error")
				WriteError(w, r, http.StatusInternalServerError, "Authorization error")
				return
			}
			if !allowed {
				if userInfo.Subject == auth.RoleAnonymous {
					WriteError(w, r, http.StatusUnauthorized, "Authentication required")
					return
				}
				WriteError(w, r, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
