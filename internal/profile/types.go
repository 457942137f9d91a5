package profile

import (
	"fmt"

	"github.com/hottake/hottake/internal/errors"
)

// MaxAge is the upper bound for a self-reported age.
const MaxAge = 150

// Gender is the self-reported gender of a profile.
// The empty string means "not set".
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid reports whether the gender is one of the known values.
// The empty string is valid (unset).
func (g Gender) IsValid() bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// ParseGender converts a string into a Gender, rejecting unknown values.
func ParseGender(s string) (Gender, error) {
	g := Gender(s)
	if !g.IsValid() {
		return "", errors.NewValidationError(
			fmt.Sprintf("gender must be one of %q, %q, %q", GenderMale, GenderFemale, GenderOther)).
			WithField("gender").
			WithValue(s)
	}
	return g, nil
}

// Profile is the local user's self-reported identity. The ID is assigned
// exactly once, on the first successful update, and never changes afterward.
// Age and Gender are optional; nil/empty means the user has not set them.
type Profile struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Age    *int   `json:"age,omitempty"`
	Gender Gender `json:"gender,omitempty"`
}

// Validate checks that the profile is fit to persist: a non-empty name,
// an age of nil or within [0, MaxAge], and a known gender value.
func (p Profile) Validate() error {
	if p.Name == "" {
		return errors.NewValidationError("name must not be empty").WithField("name")
	}
	if err := ValidateAge(p.Age); err != nil {
		return err
	}
	if !p.Gender.IsValid() {
		return errors.NewValidationError("unknown gender").
			WithField("gender").
			WithValue(string(p.Gender))
	}
	return nil
}

// ValidateAge checks that an age is nil or within [0, MaxAge].
func ValidateAge(age *int) error {
	if age == nil {
		return nil
	}
	if *age < 0 || *age > MaxAge {
		return errors.NewValidationError(
			fmt.Sprintf("age must be between 0 and %d", MaxAge)).
			WithField("age").
			WithValue(*age)
	}
	return nil
}

// Label renders the profile the way a session view labels its occupants:
// "name, age, gender" with unset parts omitted.
func (p Profile) Label() string {
	label := p.Name
	if p.Age != nil {
		label = fmt.Sprintf("%s, %d", label, *p.Age)
	}
	if p.Gender != "" {
		label = fmt.Sprintf("%s, %s", label, p.Gender)
	}
	return label
}
