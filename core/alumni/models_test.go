package alumni

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/alumni/core"
)

func newValidate() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func validRecord() NewRecord {
	return NewRecord{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		EmailAddress:  "ada@test.cd",
		GraduatedYear: "1990",
	}
}

func TestNewRecord_Validate(t *testing.T) {
	validate := newValidate()

	NowFunc = func() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) }
	defer func() { NowFunc = time.Now }()

	tests := []struct {
		name       string
		mutate     func(nr *NewRecord)
		wantFields []string
	}{
		{name: "valid", mutate: func(nr *NewRecord) {}},
		{name: "missing email", mutate: func(nr *NewRecord) { nr.EmailAddress = "" }, wantFields: []string{"emailAddress"}},
		{name: "blank names", mutate: func(nr *NewRecord) { nr.FirstName = "  "; nr.LastName = "" }, wantFields: []string{"firstName", "lastName"}},
		{name: "invalid email", mutate: func(nr *NewRecord) { nr.EmailAddress = "lol" }, wantFields: []string{"emailAddress"}},
		{name: "year too old", mutate: func(nr *NewRecord) { nr.GraduatedYear = "1899" }, wantFields: []string{"graduatedYear"}},
		{name: "year in the future", mutate: func(nr *NewRecord) { nr.GraduatedYear = "2025" }, wantFields: []string{"graduatedYear"}},
		{name: "year not numeric", mutate: func(nr *NewRecord) { nr.GraduatedYear = "19x0" }, wantFields: []string{"graduatedYear"}},
		{name: "formatted phone", mutate: func(nr *NewRecord) { nr.PhoneNumber = "+243 (81) 555-0100" }},
		{name: "short phone", mutate: func(nr *NewRecord) { nr.PhoneNumber = "+12" }, wantFields: []string{"phoneNumber"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nr := validRecord()
			tt.mutate(&nr)
			err := nr.Validate(validate)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "want validator.ValidationErrors, got %T", err)
			fields := make([]string, 0, len(vErrs))
			for _, vErr := range vErrs {
				fields = append(fields, vErr.Field())
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestNewRecord_Clean(t *testing.T) {
	nr := NewRecord{
		FirstName:    "  Ada ",
		EmailAddress: " Ada@Test.CD ",
		PhoneNumber:  "+243 81-555.0100",
	}
	nr.Clean()
	assert.Equal(t, "Ada", nr.FirstName)
	assert.Equal(t, "ada@test.cd", nr.EmailAddress)
	assert.Equal(t, "243815550100", nr.PhoneNumber)
}
