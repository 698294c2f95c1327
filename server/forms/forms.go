package forms

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator"
	"github.com/ldelaney/rolodex/server/models"
)

// NonFieldErrorKey is where errors that belong to the whole form land,
// e.g. a failed login attempt.
const NonFieldErrorKey = "__all__"

// FieldErrors maps a submitted form field to its error messages.
// An empty map means the input passed validation.
type FieldErrors map[string][]string

func (fieldErrors FieldErrors) Add(field, message string) {
	fieldErrors[field] = append(fieldErrors[field], message)
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		// if whitespace in password return false
		err := validate.Var(fl.Field().String(), "contains= ")
		if err == nil {
			return false
		}
		return len(fl.Field().String()) > 0
	})
}

// ---------------------------------------------------------------------------------//
// Contact
// --------------------------------------------------------------------------------//

type ContactInput struct {
	FirstName string `validate:"notblank"`
	LastName  string `validate:"notblank"`
	Email     string `validate:"omitempty,email"`
	Linkedin  string `validate:"omitempty,url"`
}

var contactFieldNames = map[string]string{
	"FirstName": "first_name",
	"LastName":  "last_name",
	"Email":     "email",
	"Linkedin":  "linkedin",
}

// ParseContact normalizes & validates contact form input.
func ParseContact(values url.Values) (*ContactInput, FieldErrors) {
	input := &ContactInput{
		FirstName: strings.TrimSpace(values.Get("first_name")),
		LastName:  strings.TrimSpace(values.Get("last_name")),
		Email:     strings.TrimSpace(values.Get("email")),
		Linkedin:  strings.TrimSpace(values.Get("linkedin")),
	}

	return input, collectFieldErrors(validate.Struct(input), contactFieldNames)
}

// ---------------------------------------------------------------------------------//
// Phone number
// --------------------------------------------------------------------------------//

type PhoneNumberInput struct {
	PhoneType string `validate:"oneof=mobile home work other"`
	Number    string `validate:"notblank"`
}

var phoneNumberFieldNames = map[string]string{
	"PhoneType": "phone_type",
	"Number":    "number",
}

// ParsePhoneNumber validates phone form input. A non-empty prefix reads
// the fields as "<prefix>-number"/"<prefix>-phone_type", which is how the
// inline phone form on the add-contact page submits. An omitted phone
// type defaults to mobile.
func ParsePhoneNumber(values url.Values, prefix string) (*PhoneNumberInput, FieldErrors) {
	input := &PhoneNumberInput{
		PhoneType: strings.TrimSpace(values.Get(prefixedField(prefix, "phone_type"))),
		Number:    strings.TrimSpace(values.Get(prefixedField(prefix, "number"))),
	}

	if input.PhoneType == "" {
		input.PhoneType = models.DEFAULT_PHONE_TYPE
	}

	return input, collectFieldErrors(validate.Struct(input), phoneNumberFieldNames)
}

// ---------------------------------------------------------------------------------//
// Registration
// --------------------------------------------------------------------------------//

type RegistrationInput struct {
	Username             string `validate:"notblank"`
	Email                string `validate:"notblank,email"`
	Password             string `validate:"required,password,min=8"`
	PasswordConfirmation string `validate:"eqfield=Password"`
}

var registrationFieldNames = map[string]string{
	"Username":             "username",
	"Email":                "email",
	"Password":             "password",
	"PasswordConfirmation": "password_confirmation",
}

// ParseRegistration validates registration input. The duplicate
// username/email checks are live lookups against current storage state,
// case-sensitive exact match. The error return is for storage failures only.
func ParseRegistration(values url.Values) (*RegistrationInput, FieldErrors, error) {
	input := &RegistrationInput{
		Username:             strings.TrimSpace(values.Get("username")),
		Email:                strings.TrimSpace(values.Get("email")),
		Password:             values.Get("password"),
		PasswordConfirmation: values.Get("password_confirmation"),
	}

	fieldErrors := collectFieldErrors(validate.Struct(input), registrationFieldNames)

	if len(fieldErrors["username"]) == 0 {
		taken, err := models.UserUsernameTaken(input.Username)
		if err != nil {
			return nil, nil, err
		}

		if taken {
			fieldErrors.Add("username", "A user with that username already exists.")
		}
	}

	if len(fieldErrors["email"]) == 0 {
		taken, err := models.UserEmailTaken(input.Email)
		if err != nil {
			return nil, nil, err
		}

		if taken {
			fieldErrors.Add("email", "A user with this email already exists.")
		}
	}

	return input, fieldErrors, nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func prefixedField(prefix, field string) string {
	if prefix == "" {
		return field
	}

	return prefix + "-" + field
}

func collectFieldErrors(err error, fieldNames map[string]string) FieldErrors {
	fieldErrors := FieldErrors{}
	if err == nil {
		return fieldErrors
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrors.Add(NonFieldErrorKey, err.Error())
		return fieldErrors
	}

	for _, fieldError := range validationErrors {
		field := fieldNames[fieldError.Field()]
		if field == "" {
			field = fieldError.Field()
		}
		fieldErrors.Add(field, messageFor(fieldError))
	}

	return fieldErrors
}

func messageFor(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "notblank", "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "oneof":
		return "Select a valid choice."
	case "min":
		return "This password is too short. It must contain at least 8 characters."
	case "password":
		return "Password cannot contain whitespace."
	case "eqfield":
		return "The two password fields didn't match."
	}

	return "Enter a valid value."
}
