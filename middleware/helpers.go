package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Dosada05/worldcup-system/models"
	"github.com/golang-jwt/jwt/v4"
)

// Имена JWT claims, которые выдаёт AuthHandler.Login.
const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
	jwtClaimTier   = "tier"
)

func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return 0, errors.New("user claims not found in context or invalid type")
	}

	userIDClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim in token", jwtClaimUserID)
	}

	// encoding/json декодирует числа в float64, но подстрахуемся и на строку.
	userIDFloat, ok := userIDClaim.(float64)
	if !ok {
		if userIDStr, okStr := userIDClaim.(string); okStr {
			userIDInt, err := strconv.Atoi(userIDStr)
			if err == nil && userIDInt > 0 {
				return userIDInt, nil
			}
		}
		return 0, fmt.Errorf("invalid type for '%s' claim: expected float64 or string, got %T", jwtClaimUserID, userIDClaim)
	}

	userID := int(userIDFloat)
	if userID <= 0 {
		return 0, fmt.Errorf("invalid user ID value in '%s' claim: %d", jwtClaimUserID, userID)
	}

	return userID, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	roleStr, ok := claims[jwtClaimRole].(string)
	if !ok {
		return "", fmt.Errorf("missing or invalid '%s' claim in token", jwtClaimRole)
	}

	role := models.UserRole(roleStr)
	switch role {
	case models.RoleAdmin, models.RolePlayer:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}

func GetUserTierFromContext(ctx context.Context) (models.MembershipTier, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	tierStr, ok := claims[jwtClaimTier].(string)
	if !ok {
		return "", fmt.Errorf("missing or invalid '%s' claim in token", jwtClaimTier)
	}

	tier := models.MembershipTier(tierStr)
	switch tier {
	case models.TierFree, models.TierPro:
		return tier, nil
	default:
		return "", fmt.Errorf("invalid tier value in claim: %q", tierStr)
	}
}
