// Package profile holds the user's demographic and preference record for the
// current browsing session, the fixed category/country catalogs, and the
// export/import codec. The profile lives only in memory unless explicitly
// exported to a file or submitted to the backend.
package profile

// Profile is the demographic and preference record describing the current
// user. Zero values mean "not provided yet"; Validate enforces the submission
// rules.
type Profile struct {
	Age        int      `json:"age,omitempty"`
	Gender     string   `json:"gender,omitempty"`
	Location   string   `json:"location,omitempty"`
	BudgetMin  float64  `json:"budgetMin"`
	BudgetMax  float64  `json:"budgetMax"`
	Categories []string `json:"categories"`
	Interests  string   `json:"interests,omitempty"`
}

// Genders is the closed set of accepted gender values.
var Genders = []string{"male", "female", "non-binary", "prefer-not-to-say"}

// Clone returns a deep copy so holder snapshots cannot alias caller state.
func (p Profile) Clone() Profile {
	out := p
	if p.Categories != nil {
		out.Categories = append([]string(nil), p.Categories...)
	}
	return out
}
