package validate

import (
	"errors"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate

var translator ut.Translator

// phonePattern mirrors the server-side rule: optional +, up to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

func init() {
	validate = validator.New()

	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	en_translations.RegisterDefaultTranslations(validate, translator)
}

// Check validates the struct tags on val and returns the first violation as
// a plain translated message.
func Check(val any) error {
	if err := validate.Struct(val); err != nil {
		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		if len(verrors) < 1 {
			return nil
		}
		return errors.New(verrors[0].Translate(translator))
	}
	return nil
}

func CheckPhone(number string) error {
	if !phonePattern.MatchString(number) {
		return errors.New("Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed.")
	}
	return nil
}
