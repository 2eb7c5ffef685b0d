package middleware

import (
	"net/http"
	"strings"

	"localGuide/pkg/logger"
	"localGuide/pkg/utils"

	jsonres "localGuide/pkg/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") || tokenParts[1] == "" {
		return "", false
	}

	return tokenParts[1], true
}

// authenticate validates the token and returns the caller's user id.
func authenticate(token, secret string) (string, *utils.Claims, error) {
	claims, err := utils.ParseJWT(token, secret)
	if err != nil {
		return "", nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", nil, err
	}

	return userID.String(), claims, nil
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			tokenString, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid authorization format", nil,
				))
			}

			userID, claims, err := authenticate(tokenString, secret)
			if err != nil {
				logger.Warn("Rejected bearer token", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			c.Set("user_id", userID)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c)
			if !ok {
				return next(c)
			}

			userID, claims, err := authenticate(tokenString, secret)
			if err != nil {
				logger.Debug("Ignoring invalid bearer token on public route", "error", err.Error())
				return next(c)
			}

			c.Set("user_id", userID)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
