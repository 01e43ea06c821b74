package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"eventually/internal/logging"

	"github.com/google/uuid"
)

// Document is the export file shape. The session identity is intentionally
// not embedded on export; the import path still honors a sessionId key when
// one is present in a hand-carried file.
type Document struct {
	Profile    Profile `json:"profile"`
	ExportedAt string  `json:"exportedAt"`
}

// ImportError signals a malformed import file. State is left untouched when
// it is returned.
type ImportError struct {
	cause error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("invalid file format: %v", e.cause)
}

func (e *ImportError) Unwrap() error { return e.cause }

// SessionSlot is the part of the session store the codec needs.
type SessionSlot interface {
	Get() (string, bool)
	Set(id string) error
}

// Submitter re-submits an imported profile to the backend. The returned id is
// the server's canonical session id when the backend issues one.
type Submitter interface {
	SubmitProfile(ctx context.Context, p Profile, sessionID string) (string, error)
}

// Export serializes the profile to the export document. Deterministic given
// the same profile, modulo the timestamp.
func Export(p Profile, now time.Time) ([]byte, error) {
	doc := Document{
		Profile:    p,
		ExportedAt: now.UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export document: %w", err)
	}
	return data, nil
}

// ExportToFile writes the export document to path.
func ExportToFile(p Profile, path string, now time.Time) error {
	data, err := Export(p, now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	logging.ImportInfo("exported profile to %s", path)
	return nil
}

// ImportResult reports what an import changed.
type ImportResult struct {
	// Applied is false when the document carried no profile key; that case
	// is a success-no-op, not an error.
	Applied   bool
	Profile   Profile
	SessionID string
}

// Importer applies import documents to client state.
type Importer struct {
	Holder  *Holder
	Session SessionSlot
	Backend Submitter // optional; nil skips re-submission
	NewID   func() string
}

// flexibleStrings accepts either a JSON array of strings or a single string,
// coercing the latter to a one-element slice.
type flexibleStrings []string

func (f *flexibleStrings) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*f = flexibleStrings{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*f = flexibleStrings(many)
	return nil
}

type importedProfile struct {
	Age        int             `json:"age"`
	Gender     string          `json:"gender"`
	Location   string          `json:"location"`
	BudgetMin  float64         `json:"budgetMin"`
	BudgetMax  float64         `json:"budgetMax"`
	Categories flexibleStrings `json:"categories"`
	Interests  string          `json:"interests"`
}

type importDoc struct {
	Profile   json.RawMessage `json:"profile"`
	SessionID string          `json:"sessionId"`
}

// Import applies a raw import document:
//
//  1. Parse failure leaves state untouched and returns ImportError.
//  2. A missing profile key is a success-no-op.
//  3. A single-string categories value is coerced to a one-element set, then
//     unknown ids are dropped silently, even when that empties the set.
//  4. The result wholesale-replaces the holder.
//  5. A sessionId key replaces the current session identity unvalidated.
//  6. The profile is re-submitted to the backend; failure there is swallowed
//     and the import still succeeds.
func (im *Importer) Import(ctx context.Context, data []byte) (ImportResult, error) {
	var doc importDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return ImportResult{}, &ImportError{cause: err}
	}

	if doc.Profile == nil {
		logging.ImportWarn("import document has no profile key; nothing to do")
		return ImportResult{}, nil
	}

	var raw importedProfile
	if err := json.Unmarshal(doc.Profile, &raw); err != nil {
		return ImportResult{}, &ImportError{cause: err}
	}

	p := Profile{
		Age:        raw.Age,
		Gender:     raw.Gender,
		Location:   raw.Location,
		BudgetMin:  raw.BudgetMin,
		BudgetMax:  raw.BudgetMax,
		Categories: FilterKnown(raw.Categories),
		Interests:  raw.Interests,
	}

	im.Holder.Write(p)

	if doc.SessionID != "" {
		// The imported id is accepted as-is, no shape check.
		if err := im.Session.Set(doc.SessionID); err != nil {
			logging.ImportWarn("could not persist imported session id: %v", err)
		}
	}

	id, ok := im.Session.Get()
	if !ok {
		id = im.newID()
		if err := im.Session.Set(id); err != nil {
			logging.ImportWarn("could not persist generated session id: %v", err)
		}
	}

	// Best-effort server sync; the import is reported successful regardless.
	if im.Backend != nil {
		if serverID, err := im.Backend.SubmitProfile(ctx, p, id); err != nil {
			logging.ImportWarn("import re-submission failed: %v", err)
		} else if serverID != "" && serverID != id {
			if err := im.Session.Set(serverID); err == nil {
				id = serverID
			}
		}
	}

	logging.ImportInfo("imported profile with %d categories under session %s", len(p.Categories), id)
	return ImportResult{Applied: true, Profile: p, SessionID: id}, nil
}

// ImportFile reads and applies an import document from disk. A read failure
// is reported as a format error, matching the file-picker behavior where an
// unreadable selection and a malformed one are the same notice.
func (im *Importer) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, &ImportError{cause: err}
	}
	return im.Import(ctx, data)
}

func (im *Importer) newID() string {
	if im.NewID != nil {
		return im.NewID()
	}
	return uuid.NewString()
}
