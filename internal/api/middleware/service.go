package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/datapulse/identity-api/internal/api/metrics"
)

// ServiceAuth gates the internal path namespace with the symmetric
// service-to-service scheme. The signing secret is distinct from the user
// token secret, and the token's "service" claim must be in the allow-list.
// No principal is attached on success: downstream handlers on this namespace
// must not expect one. All failures are the same plain 401; expired, invalid
// and disallowed are told apart only in logs and metrics.
func ServiceAuth(secret string, allowedServices []string, log zerolog.Logger) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedServices))
	for _, s := range allowedServices {
		allowed[s] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.ServiceAuthTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tkn.Valid {
				if errors.Is(err, jwt.ErrTokenExpired) {
					metrics.ServiceAuthTotal.WithLabelValues("expired").Inc()
					log.Debug().Str("path", c.Path()).Msg("service token expired")
				} else {
					metrics.ServiceAuthTotal.WithLabelValues("invalid_token").Inc()
					log.Debug().Err(err).Str("path", c.Path()).Msg("service token rejected")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			service, _ := claims["service"].(string)
			if _, ok := allowed[service]; !ok {
				metrics.ServiceAuthTotal.WithLabelValues("disallowed_service").Inc()
				log.Warn().Str("service", service).Str("path", c.Path()).Msg("service not in allow-list")
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			metrics.ServiceAuthTotal.WithLabelValues("ok").Inc()
			return next(c)
		}
	}
}
