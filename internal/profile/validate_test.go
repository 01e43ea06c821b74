package profile

import (
	"strings"
	"testing"
)

func validProfile() Profile {
	return Profile{
		Age:        28,
		Gender:     "female",
		Location:   "United Kingdom",
		BudgetMin:  20,
		BudgetMax:  150,
		Categories: []string{"electronics", "books-stationery"},
		Interests:  "hiking, sci-fi novels and mechanical keyboards",
	}
}

func TestValidate_CleanProfile(t *testing.T) {
	if errs := validProfile().Validate(); errs != nil {
		t.Fatalf("expected clean profile to validate, got %v", errs)
	}
}

func TestValidate_BudgetMustBeStrictlyGreater(t *testing.T) {
	p := validProfile()
	p.BudgetMin = 50
	p.BudgetMax = 50

	errs := p.Validate()
	if errs == nil {
		t.Fatal("expected equal budgets to fail validation")
	}
	if msg := errs.ByField("budgetMax"); !strings.Contains(msg, "greater than minimum") {
		t.Errorf("expected budgetMax error, got %q", msg)
	}
}

func TestValidate_BudgetRange(t *testing.T) {
	cases := []struct {
		name     string
		min, max float64
		field    string
	}{
		{"negative min", -1, 100, "budgetMin"},
		{"zero max", 0, 0, "budgetMax"},
		{"inverted", 200, 100, "budgetMax"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProfile()
			p.BudgetMin = tc.min
			p.BudgetMax = tc.max
			errs := p.Validate()
			if errs == nil {
				t.Fatal("expected validation failure")
			}
			if errs.ByField(tc.field) == "" {
				t.Errorf("expected error on %s, got %v", tc.field, errs)
			}
		})
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	p := Profile{}
	errs := p.Validate()
	if errs == nil {
		t.Fatal("expected empty profile to fail validation")
	}
	for _, field := range []string{"age", "gender", "location", "categories", "interests"} {
		if errs.ByField(field) == "" {
			t.Errorf("expected error on %s", field)
		}
	}
}

func TestValidate_AgeBounds(t *testing.T) {
	p := validProfile()
	p.Age = 121
	if errs := p.Validate(); errs == nil || errs.ByField("age") == "" {
		t.Error("expected age > 120 to fail")
	}

	p.Age = 120
	if errs := p.Validate(); errs != nil {
		t.Errorf("age 120 should be accepted, got %v", errs)
	}
}

func TestValidate_InterestsMinLength(t *testing.T) {
	p := validProfile()
	p.Interests = "too short"
	if errs := p.Validate(); errs == nil || errs.ByField("interests") == "" {
		t.Error("expected short interests to fail")
	}

	// Whitespace padding does not count toward the minimum.
	p.Interests = "   hi   \n\t "
	if errs := p.Validate(); errs == nil || errs.ByField("interests") == "" {
		t.Error("expected padded short interests to fail")
	}
}

func TestValidate_UnknownValues(t *testing.T) {
	p := validProfile()
	p.Gender = "other"
	if errs := p.Validate(); errs == nil || errs.ByField("gender") == "" {
		t.Error("expected unknown gender to fail")
	}

	p = validProfile()
	p.Location = "Atlantis"
	if errs := p.Validate(); errs == nil || errs.ByField("location") == "" {
		t.Error("expected unknown country to fail")
	}

	p = validProfile()
	p.Categories = []string{"electronics", "time-machines"}
	if errs := p.Validate(); errs == nil || errs.ByField("categories") == "" {
		t.Error("expected unknown category to fail")
	}
}

func TestCatalogHelpers(t *testing.T) {
	if len(Catalog) != 30 {
		t.Errorf("expected 30 catalog entries, got %d", len(Catalog))
	}
	if !KnownCategory("electronics") {
		t.Error("electronics should be a known category")
	}
	if KnownCategory("time-machines") {
		t.Error("time-machines should not be known")
	}
	if got := CategoryLabel("home-kitchen"); got != "Home & Kitchen" {
		t.Errorf("unexpected label %q", got)
	}
	if got := CategoryLabel("mystery"); got != "mystery" {
		t.Errorf("unknown ids fall back to themselves, got %q", got)
	}

	filtered := FilterKnown([]string{"electronics", "nope", "fashion"})
	if len(filtered) != 2 || filtered[0] != "electronics" || filtered[1] != "fashion" {
		t.Errorf("FilterKnown wrong result: %v", filtered)
	}

	if got := CurrencyFor("Japan"); got != "¥" {
		t.Errorf("expected yen for Japan, got %q", got)
	}
	if got := CurrencyFor("Atlantis"); got != "$" {
		t.Errorf("expected dollar fallback, got %q", got)
	}
}
