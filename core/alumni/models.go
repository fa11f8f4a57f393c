package alumni

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alumni/core"
)

// OrderingFields maps the orderable Record json fields to their column names.
var OrderingFields = map[string]string{
	"firstName":         "first_name",
	"lastName":          "last_name",
	"graduatedYear":     "graduated_year",
	"locationOrCountry": "location_or_country",
	"createdAt":         "created_at",
}

// Record is one alumnus' contact and career data.
type Record struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	MiddleName        string    `json:"middleName"`
	EmailAddress      string    `json:"emailAddress"`
	PhoneNumber       string    `json:"phoneNumber"`
	GraduatedYear     string    `json:"graduatedYear"`
	PreviousJob       string    `json:"previousJob"`
	CurrentJob        string    `json:"currentJob"`
	LocationOrCountry string    `json:"locationOrCountry"`
	Supervisor        string    `json:"supervisor"`
	Advice            string    `json:"advice"`
	Social            string    `json:"social"`
	CreatedAt         time.Time `json:"createdAt"` // UTC
}

// FullName is "firstName lastName".
func (r Record) FullName() string {
	return r.FirstName + " " + r.LastName
}

// NewRecord is the submission payload of the alumni form.
type NewRecord struct {
	FirstName         string `json:"firstName" validate:"required,max=255"`
	LastName          string `json:"lastName" validate:"required,max=255"`
	MiddleName        string `json:"middleName" validate:"omitempty,max=255"`
	EmailAddress      string `json:"emailAddress" validate:"required,email,max=255"`
	PhoneNumber       string `json:"phoneNumber" validate:"omitempty,phone"`
	GraduatedYear     string `json:"graduatedYear" validate:"required,gradyear"`
	PreviousJob       string `json:"previousJob" validate:"omitempty,max=255"`
	CurrentJob        string `json:"currentJob" validate:"omitempty,max=255"`
	LocationOrCountry string `json:"locationOrCountry" validate:"omitempty,max=255"`
	Supervisor        string `json:"supervisor" validate:"omitempty,max=255"`
	Advice            string `json:"advice" validate:"omitempty,max=2000"`
	Social            string `json:"social" validate:"omitempty,max=255"`
}

// Clean trims every field, lowers the email and strips the phone number down to its digits.
func (nr *NewRecord) Clean() {
	nr.FirstName = core.CleanString(nr.FirstName)
	nr.LastName = core.CleanString(nr.LastName)
	nr.MiddleName = core.CleanString(nr.MiddleName)
	nr.EmailAddress = core.CleanString(nr.EmailAddress, true /* lower */)
	nr.PhoneNumber = cleanPhoneNumber(nr.PhoneNumber)
	nr.GraduatedYear = core.CleanString(nr.GraduatedYear)
	nr.PreviousJob = core.CleanString(nr.PreviousJob)
	nr.CurrentJob = core.CleanString(nr.CurrentJob)
	nr.LocationOrCountry = core.CleanString(nr.LocationOrCountry)
	nr.Supervisor = core.CleanString(nr.Supervisor)
	nr.Advice = core.CleanString(nr.Advice)
	nr.Social = core.CleanString(nr.Social)
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	nr.Clean()
	return validate.Struct(nr)
}

// QueryFilter narrows down the Records returned by Service.Query.
type QueryFilter struct {
	// Search does a case-insensitive substring match on Record.FirstName or Record.LastName.
	Search string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf == nil || qf.Search == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

func cleanPhoneNumber(phone string) string {
	phone = core.CleanString(phone)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.', '+':
			return -1
		}
		return r
	}, phone)
}
