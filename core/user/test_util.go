package user

import "github.com/trezcool/alumni/core"

// MakeToken exposes the reset token of usr; used by tests to exercise ResetPassword.
func MakeToken(usr User, conf *core.Config) string {
	return newTokenGenerator(conf.SecretKey, conf.PasswordResetTimeoutDelta).makeToken(usr)
}
