package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strconv"  // parse the numeric subject claim
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the session claims into the request context. The provided
// secret must match the one used when issuing tokens. Handlers behind
// this middleware read the session via `c.Get("user_id")`,
// `c.Get("username")`, `c.Get("full_name")` and `c.Get("role")` — the
// token is the session, there is no process-global login state.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header. A valid header starts with
            // "Bearer " followed by the JWT; anything else is rejected
            // with 401 before the handler runs.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse the token using the HS256 signing method and our
            // secret. The callback supplies the signing key and rejects
            // tokens signed with a different algorithm.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // Store the session claims in the context. The subject is
            // normalized to int64: JSON numbers decode as float64.
            var userID int64
            switch sub := claims["sub"].(type) {
            case float64:
                userID = int64(sub)
            case string:
                if n, perr := strconv.ParseInt(sub, 10, 64); perr == nil {
                    userID = n
                }
            }
            if userID == 0 {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }
            c.Set("user_id", userID)
            c.Set("username", claims["username"])
            c.Set("full_name", claims["full_name"])
            c.Set("role", claims["role"])
            return next(c)
        }
    }
}
