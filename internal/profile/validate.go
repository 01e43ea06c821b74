package profile

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldError is a single form-level constraint violation, keyed by the field
// it belongs to so it can be rendered inline next to the offending input.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates field errors for one submission attempt.
// It never leaves the form layer.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ByField returns the message for a field, or "" when the field is clean.
func (e *ValidationError) ByField(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

const minInterestsLen = 10

// Validate checks the profile against the submission rules. A nil return
// means the profile may be submitted.
func (p Profile) Validate() *ValidationError {
	var errs []FieldError

	if p.Age < 1 {
		errs = append(errs, FieldError{Field: "age", Message: "Age is required"})
	} else if p.Age > 120 {
		errs = append(errs, FieldError{Field: "age", Message: "Please enter a valid age"})
	}

	if p.Gender == "" {
		errs = append(errs, FieldError{Field: "gender", Message: "Gender is required"})
	} else if !validGender(p.Gender) {
		errs = append(errs, FieldError{Field: "gender", Message: "Unknown gender value"})
	}

	if p.Location == "" {
		errs = append(errs, FieldError{Field: "location", Message: "Location is required"})
	} else if !KnownCountry(p.Location) {
		errs = append(errs, FieldError{Field: "location", Message: "Unknown country"})
	}

	if p.BudgetMin < 0 {
		errs = append(errs, FieldError{Field: "budgetMin", Message: "Minimum budget must be 0 or greater"})
	}
	if p.BudgetMax < 1 {
		errs = append(errs, FieldError{Field: "budgetMax", Message: "Maximum budget must be greater than 0"})
	} else if p.BudgetMax <= p.BudgetMin {
		// Strictly greater: equal budgets are rejected.
		errs = append(errs, FieldError{Field: "budgetMax", Message: "Maximum budget must be greater than minimum budget"})
	}

	if len(p.Categories) == 0 {
		errs = append(errs, FieldError{Field: "categories", Message: "Please select at least one category"})
	} else {
		for _, id := range p.Categories {
			if !KnownCategory(id) {
				errs = append(errs, FieldError{Field: "categories", Message: fmt.Sprintf("Unknown category %q", id)})
				break
			}
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(p.Interests)) < minInterestsLen {
		errs = append(errs, FieldError{Field: "interests", Message: "Please describe your interests (minimum 10 characters)"})
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validGender(g string) bool {
	for _, known := range Genders {
		if known == g {
			return true
		}
	}
	return false
}
