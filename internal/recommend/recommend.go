// Package recommend models shopping queries and the recommendation results
// the backend returns. Responses are decoded against a validated schema so a
// malformed payload fails loudly instead of rendering blanks.
package recommend

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"eventually/internal/profile"
)

// Query is one shopping request. Created fresh per submission, never
// persisted; only the response is kept in view state.
type Query struct {
	Occasion        string `json:"occasion"`
	BrandsPreferred string `json:"brandsPreferred,omitempty"`
	ShoppingInput   string `json:"shoppingInput"`
}

const minInputLen = 10

// Validate checks the query before any network call is made.
func (q Query) Validate() *profile.ValidationError {
	var errs []profile.FieldError

	if q.Occasion == "" {
		errs = append(errs, profile.FieldError{Field: "occasion", Message: "Occasion is required"})
	} else if !profile.KnownOccasion(q.Occasion) {
		errs = append(errs, profile.FieldError{Field: "occasion", Message: "Unknown occasion"})
	}

	if utf8.RuneCountInString(strings.TrimSpace(q.ShoppingInput)) < minInputLen {
		errs = append(errs, profile.FieldError{Field: "shoppingInput", Message: "Please describe what you're looking for (minimum 10 characters)"})
	}

	if len(errs) > 0 {
		return &profile.ValidationError{Fields: errs}
	}
	return nil
}

// Product is a single recommendation.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Image     string  `json:"image"`
	BuyURL    string  `json:"buyUrl"`
	Category  string  `json:"category"`
	Rating    float64 `json:"rating"`
	Reasoning string  `json:"reasoning"`
}

// Result is the ordered product list from the single most recent query.
// Each new query replaces it wholesale; results are never merged.
type Result struct {
	Products []Product
	// Note carries the backend's caveat when it fell back to sample data.
	Note string
}

type wireResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Products *json.RawMessage `json:"products"`
	Note     string           `json:"note"`
}

// Decode parses a recommendation response. The wire shape is a sum: either a
// success document carrying a products array, or an error document carrying a
// message. Anything else is a malformed payload.
func Decode(data []byte) (Result, error) {
	var wire wireResponse
	if err := json.Unmarshal(data, &wire); err != nil {
		return Result{}, fmt.Errorf("malformed recommendation response: %w", err)
	}

	if wire.Status == "error" {
		if wire.Message == "" {
			wire.Message = "recommendation request failed"
		}
		return Result{}, fmt.Errorf("%s", wire.Message)
	}

	if wire.Products == nil {
		return Result{}, fmt.Errorf("malformed recommendation response: missing products")
	}

	var products []Product
	if err := json.Unmarshal(*wire.Products, &products); err != nil {
		return Result{}, fmt.Errorf("malformed recommendation response: %w", err)
	}

	return Result{Products: products, Note: wire.Note}, nil
}
