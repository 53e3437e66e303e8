package commands

import (
	"errors"
	"net/http"

	"github.com/campus-dev/campus/internal/cli/api"
)

// loginFailureMessage maps a login failure to the message shown to the user.
// Wrong credentials, suspended accounts, server trouble and connectivity
// problems each get their own wording; raw errors never reach the screen.
func loginFailureMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized:
			return "invalid email or password"
		case statusErr.StatusCode == http.StatusForbidden:
			return "your account has been suspended. Contact the institute"
		case statusErr.StatusCode >= 500:
			return "server error. Try again in a moment"
		default:
			return "login failed. Check your details and try again"
		}
	}
	return "could not reach the server. Check your connection"
}
