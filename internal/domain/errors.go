package domain

import "errors"

// Errors whose text is shown to the user as a notification.
var (
	ErrMissingUsername = errors.New("Please enter a GitHub username")
	ErrProfileNotFound = errors.New("GitHub user not found or rate limit exceeded.")
)

// ErrMalformedPayload is returned when an upstream response lacks a member the
// pipeline relies on.
var ErrMalformedPayload = errors.New("malformed upstream payload")

// IsNotification reports whether err is one of the failures that are surfaced
// to the user as a notification.
func IsNotification(err error) bool {
	return errors.Is(err, ErrMissingUsername) || errors.Is(err, ErrProfileNotFound)
}

// Notification returns the user-visible text for err, or "" when err is not
// reported to the user.
func Notification(err error) string {
	switch {
	case errors.Is(err, ErrMissingUsername):
		return ErrMissingUsername.Error()
	case errors.Is(err, ErrProfileNotFound):
		return ErrProfileNotFound.Error()
	default:
		return ""
	}
}
