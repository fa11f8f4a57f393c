package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/user"
	"github.com/trezcool/alumni/testutil"
)

const (
	resetRequestedText = "If the email address supplied is associated with an active account on this system, " +
		"an email will arrive in your inbox shortly with instructions to reset your password."
)

type httpSuccess struct {
	Success string `json:"success"`
}

func Test_authApi_forgetPassword(t *testing.T) {
	e := setup(t)
	testutil.CreateUser(t, e.usrRepo, "Admin", "admin@test.cd", "Sup3r.S3cret", true)
	testutil.CreateUser(t, e.usrRepo, "Naughty", "naughty@test.cd", "Sup3r.S3cret", false)

	success := marshallObj(t, httpSuccess{Success: resetRequestedText})

	tests := []struct {
		httpTest
		wantMails int
	}{
		{
			httpTest: httpTest{
				name:     "invalid email",
				body:     marshallObj(t, user.PasswordResetRequest{Email: "admin"}),
				wantCode: http.StatusBadRequest,
				wantData: marshallObj(t, httpErrs{Errors: map[string]string{"email": "enter a valid email address"}}),
			},
		},
		{httpTest: httpTest{name: "unknown email", body: marshallObj(t, user.PasswordResetRequest{Email: "nobody@test.cd"}), wantCode: http.StatusOK, wantData: success}},
		{httpTest: httpTest{name: "inactive user", body: marshallObj(t, user.PasswordResetRequest{Email: "naughty@test.cd"}), wantCode: http.StatusOK, wantData: success}},
		{httpTest: httpTest{name: "active user", body: marshallObj(t, user.PasswordResetRequest{Email: "admin@test.cd"}), wantCode: http.StatusOK, wantData: success}, wantMails: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.mailSvc.Reset()
			req, rec := newRequest(http.MethodPost, "/api/auth/forget-password", tt.body)
			e.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt.httpTest, rec)
			assert.Len(t, e.mailSvc.SentMessages(), tt.wantMails)
		})
	}
}

func Test_authApi_rateLimit(t *testing.T) {
	e := setup(t, func(conf *core.Config) { conf.Server.PasswordResetLimit = "2-M" })
	body := marshallObj(t, user.PasswordResetRequest{Email: "nobody@test.cd"})

	for i := 0; i < 2; i++ {
		req, rec := newRequest(http.MethodPost, "/api/auth/forget-password", body)
		e.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	req, rec := newRequest(http.MethodPost, "/api/auth/forget-password", body)
	e.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSONCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	assert.JSONEq(t, `{"error": "Too Many Requests"}`, rec.Body.String())
}

func Test_authApi_resetPassword(t *testing.T) {
	e := setup(t)
	usr := testutil.CreateUser(t, e.usrRepo, "Admin", "admin@test.cd", "Sup3r.S3cret", true)
	uid, token := user.EncodeUID(usr), user.MakeToken(usr, e.conf)

	reset := func(token, pwd, confirm string) []byte {
		return marshallObj(t, user.ResetUserPassword{UID: uid, Token: token, Password: pwd, PasswordConfirm: confirm})
	}
	invalidToken := marshallObj(t, httpErrs{Errors: map[string]string{"token": "invalid or expired token"}})

	runHTTPTests(t, e.app, []httpTest{
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/api/auth/reset-password",
			body:     marshallObj(t, user.ResetUserPassword{UID: uid}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErrs{Errors: map[string]string{
				"token":            "this field is required",
				"password":         "this field is required",
				"password_confirm": "this field is required",
			}}),
		},
		{
			name:     "invalid token",
			method:   http.MethodPost,
			path:     "/api/auth/reset-password",
			body:     reset("MJQXE-nope", "N3w.Passw0rd!", "N3w.Passw0rd!"),
			wantCode: http.StatusBadRequest,
			wantData: invalidToken,
		},
		{
			name:     "weak password",
			method:   http.MethodPost,
			path:     "/api/auth/reset-password",
			body:     reset(token, "password", "password"),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErrs{Errors: map[string]string{"password": "password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character"}}),
		},
		{
			name:     "success",
			method:   http.MethodPost,
			path:     "/api/auth/reset-password",
			body:     reset(token, "N3w.Passw0rd!", "N3w.Passw0rd!"),
			wantCode: http.StatusOK,
			wantData: marshallObj(t, httpSuccess{Success: "Your password has been reset."}),
		},
		{
			name:     "token is single use",
			method:   http.MethodPost,
			path:     "/api/auth/reset-password",
			body:     reset(token, "An0ther.Passw0rd!", "An0ther.Passw0rd!"),
			wantCode: http.StatusBadRequest,
			wantData: invalidToken,
		},
	})

	updated, err := e.usrRepo.GetUser(t.Context(), user.GetFilter{ID: usr.ID})
	require.NoError(t, err)
	assert.NoError(t, updated.CheckPassword("N3w.Passw0rd!"))
}
