package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/kwadwoankamah/duesflow/internal/constants"
	"github.com/kwadwoankamah/duesflow/internal/dto"
	svc "github.com/kwadwoankamah/duesflow/internal/services"
)

// momoNumberPattern matches MTN mobile-money numbers: +233 or 0, a carrier
// prefix, then seven digits. Whitespace is stripped before matching.
var momoNumberPattern = regexp.MustCompile(`^(\+233|0)(24|54|55|59)\d{7}$`)

// fieldMessage maps struct field + failing tag to the inline message the
// forms have always shown.
var fieldMessages = map[string]map[string]string{
	"Name":  {"required": "Name is required"},
	"Email": {"required": "Email is required", "email": "Please enter a valid email"},
	"Phone": {"required": "Phone is required"},
	"Region": {
		"required": "Please select a region",
		"region":   "Please select a region",
	},
	"ProfilePictureSize": {"lte": "Image must be less than 5MB"},
	"PhoneNumber": {
		"required": "Phone number is required",
		"momo":     "Invalid MTN number format",
	},
}

// fieldKeys maps struct fields to the keys callers use for inline display.
var fieldKeys = map[string]string{
	"Name":               "name",
	"Email":              "email",
	"Phone":              "phone",
	"Region":             "region",
	"ProfilePictureSize": "profilePicture",
	"PhoneNumber":        "phoneNumber",
}

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func New() (*Validator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, fmt.Errorf("en translator not found")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("region", validRegion); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("momo", validMomoNumber); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, trans: trans}, nil
}

func validRegion(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value != constants.AllRegions && constants.IsValidRegion(value)
}

func validMomoNumber(fl validator.FieldLevel) bool {
	stripped := strings.Join(strings.Fields(fl.Field().String()), "")
	return momoNumberPattern.MatchString(stripped)
}

// ValidateMember checks a candidate member and returns field-keyed inline
// messages. An empty map means the draft is valid. Free-text fields are
// trimmed before the required checks so whitespace-only input fails.
func (v *Validator) ValidateMember(draft dto.MemberDraft) map[string]string {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Email = strings.TrimSpace(draft.Email)
	draft.Phone = strings.TrimSpace(draft.Phone)
	draft.Region = strings.TrimSpace(draft.Region)

	return v.collect(v.validate.Struct(draft))
}

// ValidatePayment checks a mobile-money collection form.
func (v *Validator) ValidatePayment(draft dto.PaymentDraft) map[string]string {
	return v.collect(v.validate.Struct(draft))
}

func (v *Validator) collect(err error) map[string]string {
	fieldErrors := map[string]string{}
	if err == nil {
		return fieldErrors
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fieldErrors["_"] = err.Error()
		return fieldErrors
	}

	for _, fe := range ve {
		key, ok := fieldKeys[fe.StructField()]
		if !ok {
			key = fe.Field()
		}

		if msg, ok := fieldMessages[fe.StructField()][fe.Tag()]; ok {
			fieldErrors[key] = msg
			continue
		}
		fieldErrors[key] = fe.Translate(v.trans)
	}
	return fieldErrors
}

// Struct exposes raw struct validation for request decoding.
func (v *Validator) Struct(s any) error {
	return v.validate.Struct(s)
}

// Translate converts validator errors into the field errors carried on an
// APIError.
func (v *Validator) Translate(err error) []svc.FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	fieldErrors := make([]svc.FieldError, 0, len(ve))
	for _, fe := range ve {
		fieldErrors = append(fieldErrors, svc.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.trans),
		})
	}
	return fieldErrors
}
