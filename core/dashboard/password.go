package dashboard

import (
	"context"
	"sync"

	"github.com/trezcool/alumni/core"
)

// PasswordResetSuccessPath is where the front end goes once a reset was requested.
const PasswordResetSuccessPath = "/auth/forget-password/success"

// PasswordResetForm requests a password reset link for an email.
type PasswordResetForm struct {
	client Client
	logger core.Logger

	mu          sync.RWMutex
	email       string
	fieldErrors map[string]string
	err         error
	redirect    string
}

func NewPasswordResetForm(client Client, logger core.Logger) *PasswordResetForm {
	return &PasswordResetForm{client: client, logger: logger}
}

func (f *PasswordResetForm) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
}

func (f *PasswordResetForm) Email() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.email
}

// Submit requests the reset. On success Redirect returns PasswordResetSuccessPath; failures are
// kept in FieldError/Err.
func (f *PasswordResetForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	email := f.email
	f.redirect = ""
	f.mu.Unlock()

	res := submit(ctx, f.logger, "PasswordResetForm", func(ctx context.Context) error {
		return f.client.RequestPasswordReset(ctx, email)
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fieldErrors = res.fieldErrors
	f.err = res.err
	switch {
	case res.ok():
		f.redirect = PasswordResetSuccessPath
		return nil
	case res.err != nil:
		return res.err
	default:
		return ErrInvalid
	}
}

// Redirect returns the path to go to after a successful Submit, "" otherwise.
func (f *PasswordResetForm) Redirect() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.redirect
}

func (f *PasswordResetForm) FieldError(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fieldErrors[name]
}

func (f *PasswordResetForm) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}
