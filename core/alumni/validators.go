package alumni

import (
	"regexp"
	"strconv"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alumni/core"
)

var (
	NowFunc = time.Now // mockable

	minGraduatedYear = 1900
	gradYearTag      = "gradyear"
	gradYearText     = "enter a valid graduation year"

	phoneTag   = "phone"
	phoneText  = "enter a valid phone number"
	phoneRegex = regexp.MustCompile(`^[0-9]{7,15}$`)
)

// InitValidators registers the alumni validators and their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradYearTag, gradYearValidation)
	core.RegisterCustomTranslation(validate, translator, gradYearTag, gradYearText)

	_ = validate.RegisterValidation(phoneTag, phoneValidation)
	core.RegisterCustomTranslation(validate, translator, phoneTag, phoneText)
}

// gradYearValidation only allows 4-digit years between 1900 and the current year.
func gradYearValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if len(val) != 4 {
		return false
	}
	year, err := strconv.Atoi(val)
	if err != nil {
		return false
	}
	return year >= minGraduatedYear && year <= NowFunc().Year()
}

// phoneValidation checks that a cleaned phone number only holds 7 to 15 digits (E.164 without "+").
func phoneValidation(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
