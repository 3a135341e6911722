package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionCookie is where the opaque cart session token lives on the client.
const SessionCookie = "cart_session"

// SessionToken returns the token carried by the request, or "" when the
// client has none yet.
func SessionToken(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// SetSessionToken persists the (possibly newly generated) token back to the
// client.
func SetSessionToken(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
