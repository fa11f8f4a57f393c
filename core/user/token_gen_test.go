package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMakeVerifyToken(t *testing.T) {
	timeout := 3 * 24 * time.Hour
	tg := newTokenGenerator("secret", timeout)

	now := time.Now()
	usr := User{
		ID:        "8f8a3c4e-5be4-4c3e-9a57-5d3f0e0f7a11",
		Name:      "T",
		Email:     "t@test.cd",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		LastLogin: now,
	}
	_ = usr.SetPassword("pwd")

	validToken := tg.makeToken(usr)

	// generate an expired token
	dayLate := timeout + (24 * time.Hour)
	nowFunc = func() time.Time { return time.Now().Add(-dayLate) }
	expiredToken := tg.makeToken(usr)
	nowFunc = time.Now // reset

	// the token is bound to the password hash
	usedUsr := usr
	_ = usedUsr.SetPassword("new-pwd")

	tests := []struct {
		name    string
		usr     User
		tg      tokenGenerator
		token   string
		wantErr error
	}{
		{name: "no token", usr: usr, tg: tg, wantErr: errInvalidToken},
		{name: "invalid parts len", usr: usr, tg: tg, token: "lmaooolol", wantErr: errInvalidToken},
		{name: "invalid base32", usr: usr, tg: tg, token: "hahaha-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid timestamp", usr: usr, tg: tg, token: "NRXWY-sigsig-sig", wantErr: errInvalidToken},
		{name: "invalid token", usr: usr, tg: tg, token: "HE4TS-sigsig-sig", wantErr: errInvalidToken},
		{name: "expired token", usr: usr, tg: tg, token: expiredToken, wantErr: errTokenExpired},
		{name: "password changed", usr: usedUsr, tg: tg, token: validToken, wantErr: errInvalidToken},
		{name: "other secret", usr: usr, tg: newTokenGenerator("other", timeout), token: validToken, wantErr: errInvalidToken},
		{name: "valid token", usr: usr, tg: tg, token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, tt.tg.verifyToken(tt.usr, tt.token))
		})
	}
}

func TestEncodeDecodeUID(t *testing.T) {
	usr := User{ID: "8f8a3c4e-5be4-4c3e-9a57-5d3f0e0f7a11"}
	id, err := decodeUID(EncodeUID(usr))
	assert.NoError(t, err)
	assert.Equal(t, usr.ID, id)

	_, err = decodeUID("not base64!")
	assert.Error(t, err)
}
