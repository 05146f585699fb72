package artisan

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/sos-artisans/internal/apperr"
)

const (
	MsgNomTooShort      = "Le nom doit contenir au moins 2 caractères"
	MsgMetierRequired   = "Le métier est requis"
	MsgVilleTooShort    = "La ville doit contenir au moins 2 caractères"
	MsgQuartierTooShort = "Le quartier doit contenir au moins 2 caractères"
	MsgContactTooShort  = "Le contact doit contenir au moins 8 caractères"
	MsgNoteOutOfRange   = "La note doit être comprise entre 0 et 5"
	MsgCommentTooShort  = "Le commentaire doit contenir au moins 10 caractères"
	MsgCommentTooLong   = "Le commentaire ne peut pas dépasser 500 caractères"
)

// artisanMessages maps a CreateData field to the message shown when it fails.
var artisanMessages = map[string]string{
	"Nom":      MsgNomTooShort,
	"Metier":   MsgMetierRequired,
	"Ville":    MsgVilleTooShort,
	"Quartier": MsgQuartierTooShort,
	"Contact":  MsgContactTooShort,
	"Note":     MsgNoteOutOfRange,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "trimmin", trimmedLen(func(n, limit int) bool { return n >= limit }))
	mustRegister(v, "trimmax", trimmedLen(func(n, limit int) bool { return n <= limit }))
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("registering validation " + tag + ": " + err.Error())
	}
}

// trimmedLen compares the rune count of the trimmed field with the tag param.
func trimmedLen(cmp func(n, limit int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
		return cmp(n, limit)
	}
}

// ValidateArtisanData returns every rule the data breaks, in field order.
// An empty result means the data can be sent.
func ValidateArtisanData(data CreateData) []string {
	errs := []string{}

	var verrs validator.ValidationErrors
	if err := validate.Struct(data); err != nil && errors.As(err, &verrs) {
		for _, fe := range verrs {
			if msg, ok := artisanMessages[fe.StructField()]; ok {
				errs = append(errs, msg)
			}
		}
	}
	return errs
}

// ValidateCommentaireData checks that the content has 10 to 500 characters
// once trimmed.
func ValidateCommentaireData(contenu string) []string {
	errs := []string{}

	var verrs validator.ValidationErrors
	if err := validate.Var(contenu, "trimmin=10,trimmax=500"); err != nil && errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "trimmin":
				errs = append(errs, MsgCommentTooShort)
			case "trimmax":
				errs = append(errs, MsgCommentTooLong)
			}
		}
	}
	return errs
}

// CheckArtisanData returns a validation error when data breaks a rule.
func CheckArtisanData(data CreateData) error {
	if errs := ValidateArtisanData(data); len(errs) > 0 {
		return apperr.Validation(errs)
	}
	return nil
}

// CheckCommentaireData returns a validation error when contenu breaks a rule.
func CheckCommentaireData(contenu string) error {
	if errs := ValidateCommentaireData(contenu); len(errs) > 0 {
		return apperr.Validation(errs)
	}
	return nil
}
