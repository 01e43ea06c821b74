package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeSlot struct {
	id     string
	setErr error
	sets   []string
}

func (s *fakeSlot) Get() (string, bool) { return s.id, s.id != "" }

func (s *fakeSlot) Set(id string) error {
	s.sets = append(s.sets, id)
	if s.setErr != nil {
		return s.setErr
	}
	s.id = id
	return nil
}

type fakeSubmitter struct {
	calls    int
	gotID    string
	got      Profile
	serverID string
	err      error
}

func (f *fakeSubmitter) SubmitProfile(_ context.Context, p Profile, sessionID string) (string, error) {
	f.calls++
	f.got = p
	f.gotID = sessionID
	return f.serverID, f.err
}

func TestExport_Shape(t *testing.T) {
	p := validProfile()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	data, err := Export(p, now)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if _, ok := doc["profile"]; !ok {
		t.Error("export missing profile key")
	}
	var stamp string
	if err := json.Unmarshal(doc["exportedAt"], &stamp); err != nil {
		t.Fatalf("exportedAt: %v", err)
	}
	if stamp != "2026-03-14T09:26:53Z" {
		t.Errorf("unexpected timestamp %q", stamp)
	}
	if _, ok := doc["sessionId"]; ok {
		t.Error("session identity must not be embedded on export")
	}
}

func TestImport_RoundTripDropsStaleIDs(t *testing.T) {
	p := validProfile()
	p.Categories = []string{"electronics", "retired-category", "fashion"}

	data, err := Export(p, time.Now())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	holder := NewHolder()
	slot := &fakeSlot{}
	im := &Importer{Holder: holder, Session: slot, NewID: func() string { return "gen-1" }}

	res, err := im.Import(context.Background(), data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !res.Applied {
		t.Fatal("expected import to apply")
	}

	want := p.Clone()
	want.Categories = []string{"electronics", "fashion"}
	if diff := cmp.Diff(want, holder.Read()); diff != "" {
		t.Errorf("holder mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_ParseFailureLeavesStateUntouched(t *testing.T) {
	holder := NewHolder()
	holder.Write(validProfile())
	before := holder.Read()
	beforeVersion := holder.Version()
	slot := &fakeSlot{id: "existing"}
	im := &Importer{Holder: holder, Session: slot}

	_, err := im.Import(context.Background(), []byte("{not json"))
	var ie *ImportError
	if !errors.As(err, &ie) {
		t.Fatalf("expected ImportError, got %v", err)
	}
	if diff := cmp.Diff(before, holder.Read()); diff != "" {
		t.Errorf("holder changed on parse failure:\n%s", diff)
	}
	if holder.Version() != beforeVersion {
		t.Error("holder version advanced on parse failure")
	}
	if len(slot.sets) != 0 {
		t.Errorf("session touched on parse failure: %v", slot.sets)
	}
}

func TestImport_MissingProfileKeyIsNoOp(t *testing.T) {
	holder := NewHolder()
	holder.Write(validProfile())
	before := holder.Read()
	slot := &fakeSlot{id: "keep-me"}
	im := &Importer{Holder: holder, Session: slot}

	res, err := im.Import(context.Background(), []byte(`{"sessionId":"smuggled"}`))
	if err != nil {
		t.Fatalf("expected no-op success, got %v", err)
	}
	if res.Applied {
		t.Error("no-op must report Applied=false")
	}
	if diff := cmp.Diff(before, holder.Read()); diff != "" {
		t.Errorf("holder changed on no-op:\n%s", diff)
	}
	if slot.id != "keep-me" {
		t.Errorf("session replaced on no-op: %q", slot.id)
	}
}

func TestImport_SingleStringCategoryCoerced(t *testing.T) {
	holder := NewHolder()
	im := &Importer{Holder: holder, Session: &fakeSlot{id: "s-1"}}

	doc := `{"profile":{"age":30,"gender":"male","location":"Japan","budgetMin":10,"budgetMax":50,"categories":"electronics","interests":"retro game consoles"}}`
	res, err := im.Import(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want := []string{"electronics"}
	if diff := cmp.Diff(want, res.Profile.Categories); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
}

func TestImport_SessionIDReplacedUnvalidated(t *testing.T) {
	holder := NewHolder()
	slot := &fakeSlot{id: "old-id"}
	im := &Importer{Holder: holder, Session: slot}

	doc := `{"profile":{"age":30,"gender":"male","location":"Japan","budgetMin":10,"budgetMax":50,"categories":["electronics"],"interests":"retro game consoles"},"sessionId":"not-even-a-uuid"}`
	res, err := im.Import(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if slot.id != "not-even-a-uuid" {
		t.Errorf("session id not replaced: %q", slot.id)
	}
	if res.SessionID != "not-even-a-uuid" {
		t.Errorf("result carries wrong session id: %q", res.SessionID)
	}
}

func TestImport_GeneratesIDWhenAbsent(t *testing.T) {
	holder := NewHolder()
	slot := &fakeSlot{}
	im := &Importer{Holder: holder, Session: slot, NewID: func() string { return "fresh-id" }}

	doc := `{"profile":{"age":30,"gender":"male","location":"Japan","budgetMin":10,"budgetMax":50,"categories":["electronics"],"interests":"retro game consoles"}}`
	res, err := im.Import(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.SessionID != "fresh-id" || slot.id != "fresh-id" {
		t.Errorf("expected generated id persisted, got result=%q slot=%q", res.SessionID, slot.id)
	}
}

func TestImport_ResubmissionFailureSwallowed(t *testing.T) {
	holder := NewHolder()
	slot := &fakeSlot{id: "s-1"}
	backend := &fakeSubmitter{err: errors.New("backend down")}
	im := &Importer{Holder: holder, Session: slot, Backend: backend}

	doc := `{"profile":{"age":30,"gender":"male","location":"Japan","budgetMin":10,"budgetMax":50,"categories":["electronics"],"interests":"retro game consoles"}}`
	res, err := im.Import(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("re-submission failure must not fail the import: %v", err)
	}
	if !res.Applied {
		t.Error("import must still apply")
	}
	if backend.calls != 1 {
		t.Errorf("expected one submission attempt, got %d", backend.calls)
	}
	if backend.gotID != "s-1" {
		t.Errorf("submitted under wrong session id %q", backend.gotID)
	}
}

func TestImport_AdoptsServerSessionID(t *testing.T) {
	holder := NewHolder()
	slot := &fakeSlot{id: "client-id"}
	backend := &fakeSubmitter{serverID: "server-id"}
	im := &Importer{Holder: holder, Session: slot, Backend: backend}

	doc := `{"profile":{"age":30,"gender":"male","location":"Japan","budgetMin":10,"budgetMax":50,"categories":["electronics"],"interests":"retro game consoles"}}`
	res, err := im.Import(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if slot.id != "server-id" || res.SessionID != "server-id" {
		t.Errorf("server id not adopted: slot=%q result=%q", slot.id, res.SessionID)
	}
}

func TestImportFile_MissingFileIsFormatError(t *testing.T) {
	im := &Importer{Holder: NewHolder(), Session: &fakeSlot{}}
	_, err := im.ImportFile(context.Background(), "/nonexistent/export.json")
	var ie *ImportError
	if !errors.As(err, &ie) {
		t.Fatalf("expected ImportError for unreadable file, got %v", err)
	}
}
