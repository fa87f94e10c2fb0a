package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HeaderAPIKey is the request header every mutating route must present.
const HeaderAPIKey = "x-api-key"

// APIKey guards mutating routes with a static shared key. The comparison is
// constant-time; a missing or mismatched key is rejected before any handler
// or persistence call runs.
func APIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(HeaderAPIKey)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Invalid API Key")
			}
			return next(c)
		}
	}
}
