package domain

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrPreferencesNotFound      = errors.New("preferences not found")
	ErrContactAlreadyRegistered = errors.New("email or phone number already registered")
)
