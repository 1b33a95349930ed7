package middleware

import (
	"context"
	"wonders-cms/internal/auth"
)

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey = contextKey("user")

// UserInfo represents the caller of a request.
type UserInfo struct {
	// Subject is the casbin subject: auth.RoleAdmin or auth.RoleAnonymous.
	Subject string
	AdminID int64
	TokenID string
}

// IsAdmin reports whether the caller presented a valid admin token.
func (u *UserInfo) IsAdmin() bool {
	return u.Subject == auth.RoleAdmin && u.AdminID != 0
}

// GetUserInfo retrieves the user information from the request context.
func GetUserInfo(ctx context.Context) *UserInfo {
	if userInfo, ok := ctx.Value(userContextKey).(*UserInfo); ok {
		return userInfo
	}
	// Return an anonymous user if no user info is found in the context.
	return &UserInfo{Subject: auth.RoleAnonymous}
}

// SetUserInfo adds the user information to the request context.
func SetUserInfo(ctx context.Context, userInfo *UserInfo) context.Context {
	return context.WithValue(ctx, userContextKey, userInfo)
}
