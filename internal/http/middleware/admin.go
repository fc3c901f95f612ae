package middleware

import (
	"crypto/sha256"
	"crypto/subtle"

	echo "github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
)

// AdminAuth gates a route group behind HTTP Basic credentials. Both fields
// are hashed and compared in constant time, and both comparisons always run,
// so a wrong username and a wrong password are indistinguishable to a caller
// timing the responses. A failed check yields echo's standard 401 with a
// WWW-Authenticate challenge.
func AdminAuth(username, password string) echo.MiddlewareFunc {
	userHash := sha256.Sum256([]byte(username))
	passHash := sha256.Sum256([]byte(password))

	return echoMid.BasicAuthWithConfig(echoMid.BasicAuthConfig{
		Realm: "hostdesk",
		Validator: func(u, p string, c echo.Context) (bool, error) {
			uh := sha256.Sum256([]byte(u))
			ph := sha256.Sum256([]byte(p))
			userOK := subtle.ConstantTimeCompare(uh[:], userHash[:])
			passOK := subtle.ConstantTimeCompare(ph[:], passHash[:])
			return userOK&passOK == 1, nil
		},
	})
}
