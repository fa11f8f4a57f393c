// Package testutil holds the helpers shared by the tests of the other packages.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
	"github.com/trezcool/alumni/core/user"
)

// NewValidator returns a validator with every app validator registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	alumni.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate, translator
}

// Logger is a core.Logger printing to the test log.
type Logger struct {
	T testing.TB
}

var _ core.Logger = Logger{}

func (l Logger) log(level, msg string, args []interface{}) {
	l.T.Helper()
	l.T.Logf("%s: %s %v", level, msg, args)
}

func (l Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l Logger) Fatal(msg string, args ...interface{}) {
	l.T.Helper()
	l.T.Fatalf("FATAL: %s %v", msg, args)
}

func CreateUser(t testing.TB, repo user.Repository, name, email, pwd string, isActive bool) user.User {
	t.Helper()
	now := time.Now().UTC()
	usr := user.User{
		Name:      name,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

// CreateRecord stores an alumni.Record named "<firstName> <lastName>"; records are created one second apart.
func CreateRecord(t testing.TB, repo alumni.Repository, firstName, lastName, gradYear string) alumni.Record {
	t.Helper()
	recordCount++
	rec, err := repo.CreateRecord(context.Background(), alumni.Record{
		FirstName:     firstName,
		LastName:      lastName,
		EmailAddress:  fmt.Sprintf("%s.%s@test.cd", firstName, lastName),
		GraduatedYear: gradYear,
		CreatedAt:     recordsEpoch.Add(time.Duration(recordCount) * time.Second),
	})
	if err != nil {
		t.Fatalf("createRecord() failed: %v", err)
	}
	return rec
}

var (
	recordsEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	recordCount  int
)
