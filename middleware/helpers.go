package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/racket-tournament-system/models"
	"github.com/golang-jwt/jwt/v4"
)

// Имена JWT-клеймов
const (
	jwtClaimName = "name"
	jwtClaimRole = "role"
)

func GetUserNameFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	nameClaim, ok := claims[jwtClaimName]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimName)
	}

	name, ok := nameClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimName, nameClaim)
	}
	if name == "" {
		return "", fmt.Errorf("empty '%s' claim in token", jwtClaimName)
	}
	return name, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}

	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, roleClaim)
	}

	role := models.UserRole(roleStr)
	if !role.Valid() {
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
	return role, nil
}
