package services

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/client"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
)

// authMessage maps a provider failure to user-facing text. Entries match by
// stable code first; substring matching on the provider's message is the
// fallback for providers without codes.
type authMessage struct {
	code    string
	matches func(text string) bool
	message string
}

func containsAny(subs ...string) func(string) bool {
	return func(text string) bool {
		for _, s := range subs {
			if strings.Contains(text, s) {
				return true
			}
		}
		return false
	}
}

var authMessages = []authMessage{
	{
		code:    client.CodeInvalidCredentials,
		matches: containsAny("Invalid login credentials"),
		message: "Invalid email or password",
	},
	{
		code:    client.CodeUserAlreadyExists,
		matches: containsAny("User already registered"),
		message: "This email is already registered. Please sign in instead.",
	},
	{
		matches: func(text string) bool {
			return strings.Contains(text, "password") && strings.Contains(text, "leak")
		},
		message: "This password has been found in a data breach. Please choose a different, more secure password.",
	},
	{
		code:    client.CodeWeakPassword,
		matches: containsAny("weak_password", "too weak"),
		message: "Password is too weak. Please use a stronger password with at least 8 characters.",
	},
}

// lookupAuthMessage returns the text for code or text, or text itself when
// nothing matches.
func lookupAuthMessage(code, text string) string {
	if code != "" {
		for _, m := range authMessages {
			if m.code == code {
				return m.message
			}
		}
	}
	for _, m := range authMessages {
		if m.matches(text) {
			return m.message
		}
	}
	return text
}

// MapAuthError wraps a provider failure into a *common.AuthError carrying
// the user-facing message. The original error stays reachable via Unwrap.
func MapAuthError(err error) error {
	if err == nil {
		return nil
	}

	code, text := "", err.Error()
	var ae *common.AuthError
	if errors.As(err, &ae) {
		code, text = ae.Code, ae.Message
	}
	return &common.AuthError{Code: code, Message: lookupAuthMessage(code, text), Err: err}
}
