package backend

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/panelworks/admin-console/internal/core/domain"
)

// DecodeAuthUser extracts the identity claims from a bearer token without
// verifying its signature. The token is the backend's word; the console only
// reads the payload segment it carries. Verification can be added here later
// without touching any call site.
func DecodeAuthUser(token string) (*domain.AuthUser, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	return &domain.AuthUser{
		ID:     stringClaim(claims, "id"),
		Email:  stringClaim(claims, "email"),
		Name:   stringClaim(claims, "name"),
		RoleID: stringClaim(claims, "roleId"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
