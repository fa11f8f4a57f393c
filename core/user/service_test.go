package user_test

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/user"
	appfs "github.com/trezcool/alumni/fs"
	emailsvc "github.com/trezcool/alumni/services/email"
	inmemdb "github.com/trezcool/alumni/storage/database/inmem"
	"github.com/trezcool/alumni/testutil"
)

type fixture struct {
	conf    *core.Config
	repo    user.Repository
	mailSvc *emailsvc.ConsoleServiceMock
	svc     user.Service
}

func setup(t *testing.T) fixture {
	conf := core.NewTestConfig()
	logger := testutil.Logger{T: t}
	core.ParseEmailTemplates(appfs.FS, conf, logger)
	validate, _ := testutil.NewValidator()

	repo := inmemdb.NewUserRepository(inmemdb.Open())
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	return fixture{
		conf:    conf,
		repo:    repo,
		mailSvc: mailSvc,
		svc:     user.NewService(repo, validate, mailSvc, conf),
	}
}

func TestService_Create(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.repo, "Taken", "taken@test.cd", "", true)

	tests := []struct {
		name      string
		nu        user.NewUser
		wantField string
	}{
		{name: "missing name", nu: user.NewUser{Email: "a@test.cd", Password: "Xk9#mQ2!vL", PasswordConfirm: "Xk9#mQ2!vL"}, wantField: "name"},
		{name: "password mismatch", nu: user.NewUser{Name: "A", Email: "a@test.cd", Password: "Xk9#mQ2!vL", PasswordConfirm: "lol"}, wantField: "password_confirm"},
		{name: "weak password", nu: user.NewUser{Name: "A", Email: "a@test.cd", Password: "password", PasswordConfirm: "password"}, wantField: "password"},
		{name: "email taken", nu: user.NewUser{Name: "A", Email: " Taken@test.cd", Password: "Xk9#mQ2!vL", PasswordConfirm: "Xk9#mQ2!vL"}, wantField: "email"},
		{name: "created", nu: user.NewUser{Name: " Admin ", Email: "Admin@Test.cd", Password: "Xk9#mQ2!vL", PasswordConfirm: "Xk9#mQ2!vL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := f.svc.Create(ctx, tt.nu)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, "Admin", usr.Name)
				assert.Equal(t, "admin@test.cd", usr.Email)
				assert.True(t, usr.IsActive)
				assert.NoError(t, usr.CheckPassword("Xk9#mQ2!vL"))
				return
			}
			require.Error(t, err)
			assert.Contains(t, errorFields(t, err), tt.wantField)
		})
	}
}

func TestService_RequestPasswordReset(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	active := testutil.CreateUser(t, f.repo, "Admin", "admin@test.cd", "Xk9#mQ2!vL", true)
	testutil.CreateUser(t, f.repo, "Gone", "gone@test.cd", "Xk9#mQ2!vL", false)

	tests := []struct {
		name     string
		email    string
		wantErr  bool
		wantSent bool
	}{
		{name: "invalid email", email: "lol", wantErr: true},
		{name: "unknown user", email: "nope@test.cd"},
		{name: "inactive user", email: "gone@test.cd"},
		{name: "active user", email: " Admin@test.cd ", wantSent: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.mailSvc.Reset()
			err := f.svc.RequestPasswordReset(ctx, user.PasswordResetRequest{Email: tt.email})
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)

			sent := f.mailSvc.SentMessages()
			if !tt.wantSent {
				assert.Empty(t, sent)
				return
			}
			require.Len(t, sent, 1)
			assert.Equal(t, active.Email, sent[0].To[0].Address)
			assert.Equal(t, "password_reset", sent[0].TemplateName)
			assert.Contains(t, sent[0].TextContent, "http://localhost:3000/auth/reset-password?uid="+user.EncodeUID(active)+"&token=")
			assert.Contains(t, sent[0].HTMLContent, user.EncodeUID(active))
		})
	}
}

func TestService_RequestPasswordReset_queuesBeforeReturning(t *testing.T) {
	f := setup(t)
	testutil.CreateUser(t, f.repo, "Admin", "admin@test.cd", "Xk9#mQ2!vL", true)
	validate, _ := testutil.NewValidator()

	var out bytes.Buffer
	mailSvc := emailsvc.NewConsoleService(log.New(&out, "", 0), f.conf, testutil.Logger{T: t})
	svc := user.NewService(f.repo, validate, mailSvc, f.conf)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), user.PasswordResetRequest{Email: "admin@test.cd"}))
	mailSvc.Wait()
	assert.Contains(t, out.String(), "Subject: [Alumni Registry] Password Reset")
	assert.Contains(t, out.String(), "To: \"Admin\" <admin@test.cd>")
}

func TestService_ResetPassword(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	usr := testutil.CreateUser(t, f.repo, "Admin", "admin@test.cd", "Xk9#mQ2!vL", true)
	inactive := testutil.CreateUser(t, f.repo, "Gone", "gone@test.cd", "Xk9#mQ2!vL", false)

	uid := user.EncodeUID(usr)
	token := user.MakeToken(usr, f.conf)
	newPwd := "Qz7$wN4&rT"

	tests := []struct {
		name      string
		rp        user.ResetUserPassword
		wantField string
	}{
		{name: "missing fields", rp: user.ResetUserPassword{}, wantField: "uid"},
		{name: "mismatch", rp: user.ResetUserPassword{UID: uid, Token: token, Password: newPwd, PasswordConfirm: "lol"}, wantField: "password_confirm"},
		{name: "invalid uid", rp: user.ResetUserPassword{UID: "!!", Token: token, Password: newPwd, PasswordConfirm: newPwd}, wantField: "token"},
		{name: "unknown uid", rp: user.ResetUserPassword{UID: user.EncodeUID(user.User{ID: "nope"}), Token: token, Password: newPwd, PasswordConfirm: newPwd}, wantField: "token"},
		{name: "inactive user", rp: user.ResetUserPassword{UID: user.EncodeUID(inactive), Token: user.MakeToken(inactive, f.conf), Password: newPwd, PasswordConfirm: newPwd}, wantField: "token"},
		{name: "bad token", rp: user.ResetUserPassword{UID: uid, Token: "HE4TS-lol", Password: newPwd, PasswordConfirm: newPwd}, wantField: "token"},
		{name: "weak password", rp: user.ResetUserPassword{UID: uid, Token: token, Password: "abcdefgh", PasswordConfirm: "abcdefgh"}, wantField: "password"},
		{name: "reset", rp: user.ResetUserPassword{UID: uid, Token: token, Password: newPwd, PasswordConfirm: newPwd}},
		// the password hash changed, so the token is spent
		{name: "token reused", rp: user.ResetUserPassword{UID: uid, Token: token, Password: newPwd, PasswordConfirm: newPwd}, wantField: "token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := f.svc.ResetPassword(ctx, tt.rp)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.NoError(t, updated.CheckPassword(newPwd))
				return
			}
			require.Error(t, err)
			assert.Contains(t, errorFields(t, err), tt.wantField)
		})
	}
}

func TestService_SetPassword(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.repo, "Admin", "admin@test.cd", "Xk9#mQ2!vL", true)

	usr, err := f.svc.SetPassword(ctx, "ADMIN@test.cd", "simple")
	require.NoError(t, err)
	assert.NoError(t, usr.CheckPassword("simple"))

	_, err = f.svc.SetPassword(ctx, "nope@test.cd", "simple")
	assert.Equal(t, user.ErrNotFound, err)
}

// errorFields returns the fields in error, whether err comes from the validator or the service.
func errorFields(t *testing.T, err error) []string {
	t.Helper()
	var fields []string
	if vErrs, ok := err.(validator.ValidationErrors); ok {
		for _, vErr := range vErrs {
			fields = append(fields, vErr.Field())
		}
		return fields
	}
	vErr, ok := core.AsValidationError(err)
	require.True(t, ok, "unexpected error: %v", err)
	for _, fErr := range vErr.Fields {
		fields = append(fields, fErr.Field)
	}
	return fields
}
