package sync

import (
	"errors"
	"testing"
	"time"

	"github.com/kms-app/dinnerboard/internal/models"
	"github.com/kms-app/dinnerboard/internal/remote"
	"github.com/kms-app/dinnerboard/internal/schedule"
)

// fakeCache is an in-memory storage.Provider for controller tests.
type fakeCache struct {
	answers  map[string]models.AnswerRecord
	nickname string
	saveErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{answers: make(map[string]models.AnswerRecord)}
}

func (c *fakeCache) Init() error  { return nil }
func (c *fakeCache) Load() error  { return nil }
func (c *fakeCache) Close() error { return nil }

func (c *fakeCache) GetSettings() (models.Settings, error) { return models.Settings{}, nil }
func (c *fakeCache) SaveSettings(models.Settings) error    { return nil }
func (c *fakeCache) GetNickname() (string, error)          { return c.nickname, nil }
func (c *fakeCache) SaveNickname(name string) error        { c.nickname = name; return nil }

func (c *fakeCache) GetAnswers(ownerID string) (models.AnswerRecord, error) {
	rec, ok := c.answers[ownerID]
	if !ok {
		return models.AnswerRecord{}, nil
	}
	return rec, nil
}

func (c *fakeCache) SaveAnswers(ownerID string, rec models.AnswerRecord) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	snapshot := make(models.AnswerRecord, len(rec))
	for k, v := range rec {
		snapshot[k] = v
	}
	c.answers[ownerID] = snapshot
	return nil
}

func (c *fakeCache) DeleteAnswers(ownerID string) error {
	delete(c.answers, ownerID)
	return nil
}

func (c *fakeCache) GetConfigPath() string { return "" }

// fakeRemote records store calls and can fail or block on demand.
type fakeRemote struct {
	records map[string]models.UserRecord

	putCalls    int
	getCalls    int
	deleteCalls int

	putErr    error
	getErr    error
	deleteErr error

	// When set, PutRecord blocks until the channel is closed, simulating
	// an in-flight remote call.
	putGate chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{records: make(map[string]models.UserRecord)}
}

func (r *fakeRemote) Init() error  { return nil }
func (r *fakeRemote) Load() error  { return nil }
func (r *fakeRemote) Close() error { return nil }

func (r *fakeRemote) PutRecord(rec models.UserRecord) (models.UserRecord, error) {
	r.putCalls++
	if r.putGate != nil {
		<-r.putGate
	}
	if r.putErr != nil {
		return models.UserRecord{}, r.putErr
	}
	rec.UpdatedAt = time.Now()
	r.records[rec.OwnerID] = rec
	return rec, nil
}

func (r *fakeRemote) GetAllRecords() ([]models.UserRecord, error) {
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := make([]models.UserRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeRemote) DeleteRecord(ownerID string) error {
	r.deleteCalls++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.records[ownerID]; !ok {
		return remote.ErrRecordNotFound
	}
	delete(r.records, ownerID)
	return nil
}

// fakeIdentity returns a fixed token, or an error when offline.
type fakeIdentity struct {
	token string
	err   error
}

func (f fakeIdentity) Establish() (string, error) { return f.token, f.err }

var testRef = time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)

func startController(t *testing.T, cache *fakeCache, rem *fakeRemote, ident fakeIdentity) *Controller {
	t.Helper()
	ctrl := New(cache, rem, ident)
	if err := ctrl.Start(testRef, 7); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return ctrl
}

func TestStartReconcilesCachedRecord(t *testing.T) {
	cache := newFakeCache()
	cache.answers["owner-1"] = models.AnswerRecord{
		"2026-03-09": {Status: models.StatusNotEat}, // fell off the front
		"2026-03-10": {Status: models.StatusEatEarly, Time: "19:00"},
	}

	ctrl := startController(t, cache, newFakeRemote(), fakeIdentity{token: "owner-1"})

	rec := ctrl.Record()
	if len(rec) != 7 {
		t.Fatalf("Record() has %d entries, want 7", len(rec))
	}
	if _, ok := rec["2026-03-09"]; ok {
		t.Error("expired day survived reconciliation")
	}
	if got := rec["2026-03-10"]; got != (models.DayAnswer{Status: models.StatusEatEarly, Time: "19:00"}) {
		t.Errorf("kept day = %v, want verbatim copy", got)
	}
	if got := rec["2026-03-16"]; got != models.Default() {
		t.Errorf("new day = %v, want default", got)
	}

	// The reconciled record must be written back immediately
	cached := cache.answers["owner-1"]
	if _, ok := cached["2026-03-09"]; ok {
		t.Error("cache still holds the expired day after Start")
	}
}

func TestStartWithUnreachableRemoteStaysReady(t *testing.T) {
	rem := newFakeRemote()
	rem.getErr = errors.New("connection refused")

	ctrl := New(newFakeCache(), rem, fakeIdentity{token: "owner-1"})
	err := ctrl.Start(testRef, 7)
	if !errors.Is(err, ErrRemoteRead) {
		t.Fatalf("Start() error = %v, want ErrRemoteRead", err)
	}
	if ctrl.Phase() != PhaseReady {
		t.Errorf("Phase() = %v, want PhaseReady after snapshot failure", ctrl.Phase())
	}
}

func TestStartWithoutIdentityAllowsLocalEditing(t *testing.T) {
	ctrl := New(newFakeCache(), newFakeRemote(), fakeIdentity{err: errors.New("keyring locked")})
	err := ctrl.Start(testRef, 7)
	if !errors.Is(err, ErrIdentityUnavailable) {
		t.Fatalf("Start() error = %v, want ErrIdentityUnavailable", err)
	}

	if err := ctrl.SetAnswer("2026-03-12", models.StatusEatLate, ""); err != nil {
		t.Errorf("SetAnswer() failed while offline: %v", err)
	}
}

func TestSetAnswerWritesThrough(t *testing.T) {
	cache := newFakeCache()
	ctrl := startController(t, cache, newFakeRemote(), fakeIdentity{token: "owner-1"})

	if err := ctrl.SetAnswer("2026-03-11", models.StatusAwa, "20:00"); err != nil {
		t.Fatalf("SetAnswer() failed: %v", err)
	}

	want := models.DayAnswer{Status: models.StatusAwa, Time: "20:00"}
	if got := ctrl.Record()["2026-03-11"]; got != want {
		t.Errorf("Record() = %v, want %v", got, want)
	}
	if got := cache.answers["owner-1"]["2026-03-11"]; got != want {
		t.Errorf("cache = %v, want %v (write-through)", got, want)
	}
}

func TestSetAnswerRejectsOutOfWindowDay(t *testing.T) {
	ctrl := startController(t, newFakeCache(), newFakeRemote(), fakeIdentity{token: "owner-1"})

	if err := ctrl.SetAnswer("2026-03-09", models.StatusNotEat, ""); err == nil {
		t.Error("SetAnswer() accepted a day outside the window")
	}
	if err := ctrl.SetAnswer("2026-03-17", models.StatusNotEat, ""); err == nil {
		t.Error("SetAnswer() accepted a day past the window")
	}
}

func TestSaveWithoutIdentity(t *testing.T) {
	rem := newFakeRemote()
	ctrl := New(newFakeCache(), rem, fakeIdentity{err: errors.New("no keyring")})
	_ = ctrl.Start(testRef, 7)
	rem.putCalls, rem.getCalls = 0, 0

	err := ctrl.Save("Alice")
	if !errors.Is(err, ErrIdentityUnavailable) {
		t.Fatalf("Save() error = %v, want ErrIdentityUnavailable", err)
	}
	if rem.putCalls != 0 || rem.getCalls != 0 {
		t.Errorf("Save() issued store calls (%d put, %d get), want none", rem.putCalls, rem.getCalls)
	}
}

func TestSaveWithEmptyNickname(t *testing.T) {
	rem := newFakeRemote()
	ctrl := startController(t, newFakeCache(), rem, fakeIdentity{token: "owner-1"})
	rem.putCalls, rem.getCalls = 0, 0

	for _, name := range []string{"", "   "} {
		err := ctrl.Save(name)
		if !errors.Is(err, ErrMissingNickname) {
			t.Errorf("Save(%q) error = %v, want ErrMissingNickname", name, err)
		}
	}
	if rem.putCalls != 0 || rem.getCalls != 0 {
		t.Errorf("Save() issued store calls (%d put, %d get), want none", rem.putCalls, rem.getCalls)
	}
}

func TestSavePutsThenRefetches(t *testing.T) {
	cache := newFakeCache()
	rem := newFakeRemote()
	ctrl := startController(t, cache, rem, fakeIdentity{token: "owner-1"})
	rem.putCalls, rem.getCalls = 0, 0

	if err := ctrl.SetAnswer("2026-03-10", models.StatusEatEarly, ""); err != nil {
		t.Fatalf("SetAnswer() failed: %v", err)
	}
	if err := ctrl.Save("Alice"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if rem.putCalls != 1 {
		t.Errorf("putCalls = %d, want exactly 1", rem.putCalls)
	}
	if rem.getCalls != 1 {
		t.Errorf("getCalls = %d, want exactly 1", rem.getCalls)
	}

	stored := rem.records["owner-1"]
	if stored.Nickname != "Alice" {
		t.Errorf("stored nickname = %q, want Alice", stored.Nickname)
	}
	if stored.Answers["2026-03-10"].Status != models.StatusEatEarly {
		t.Errorf("stored answer = %v, want eat_early", stored.Answers["2026-03-10"])
	}
	if stored.UpdatedAt.IsZero() {
		t.Error("stored record has no UpdatedAt stamp")
	}

	// The everyone-view reflects the refetched snapshot
	everyone := ctrl.Everyone()
	if len(everyone) != 1 || everyone[0].OwnerID != "owner-1" {
		t.Errorf("Everyone() = %v, want the saved record", everyone)
	}

	// Save also persists the nickname locally
	if cache.nickname != "Alice" {
		t.Errorf("cached nickname = %q, want Alice", cache.nickname)
	}

	if ctrl.Phase() != PhaseReady {
		t.Errorf("Phase() = %v, want PhaseReady after save", ctrl.Phase())
	}
}

func TestSaveFailureLeavesStateUnchanged(t *testing.T) {
	rem := newFakeRemote()
	ctrl := startController(t, newFakeCache(), rem, fakeIdentity{token: "owner-1"})
	rem.putErr = errors.New("write timeout")
	rem.getCalls = 0

	err := ctrl.Save("Alice")
	if !errors.Is(err, ErrRemoteWrite) {
		t.Fatalf("Save() error = %v, want ErrRemoteWrite", err)
	}
	if rem.getCalls != 0 {
		t.Error("Save() refetched the snapshot after a failed put")
	}
	if ctrl.Phase() != PhaseReady {
		t.Errorf("Phase() = %v, want PhaseReady after failed save", ctrl.Phase())
	}
}

func TestDeleteResetsRecordAndRefetches(t *testing.T) {
	cache := newFakeCache()
	rem := newFakeRemote()
	ctrl := startController(t, cache, rem, fakeIdentity{token: "owner-1"})

	_ = ctrl.SetAnswer("2026-03-12", models.StatusEatLate, "21:30")
	if err := ctrl.Save("Alice"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	rem.getCalls = 0

	if err := ctrl.Delete(); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if rem.deleteCalls != 1 {
		t.Errorf("deleteCalls = %d, want 1", rem.deleteCalls)
	}
	if rem.getCalls != 1 {
		t.Errorf("getCalls = %d, want 1 after delete", rem.getCalls)
	}

	rec := ctrl.Record()
	if len(rec) != 7 {
		t.Fatalf("Record() has %d entries, want 7", len(rec))
	}
	for day, a := range rec {
		if a != models.Default() {
			t.Errorf("Record()[%s] = %v, want default after delete", day, a)
		}
	}

	// Reset is written through to the cache
	if got := cache.answers["owner-1"]["2026-03-12"]; got != models.Default() {
		t.Errorf("cache after delete = %v, want default", got)
	}
}

func TestDeleteMissingRecord(t *testing.T) {
	rem := newFakeRemote()
	ctrl := startController(t, newFakeCache(), rem, fakeIdentity{token: "owner-1"})

	_ = ctrl.SetAnswer("2026-03-12", models.StatusEatLate, "")
	err := ctrl.Delete()
	if !errors.Is(err, remote.ErrRecordNotFound) {
		t.Fatalf("Delete() error = %v, want ErrRecordNotFound", err)
	}

	// Local state is untouched when there was nothing to delete
	if got := ctrl.Record()["2026-03-12"].Status; got != models.StatusEatLate {
		t.Errorf("Record() = %v, want local answer preserved", got)
	}
}

func TestConcurrentMutationRejected(t *testing.T) {
	rem := newFakeRemote()
	rem.putGate = make(chan struct{})
	ctrl := startController(t, newFakeCache(), rem, fakeIdentity{token: "owner-1"})

	saveDone := make(chan error, 1)
	go func() { saveDone <- ctrl.Save("Alice") }()

	// Wait until the save is inside the remote call
	for i := 0; ctrl.Phase() != PhaseSaving; i++ {
		if i > 1000 {
			t.Fatal("save never entered PhaseSaving")
		}
		time.Sleep(time.Millisecond)
	}

	if err := ctrl.Delete(); !errors.Is(err, ErrBusy) {
		t.Errorf("Delete() during save error = %v, want ErrBusy", err)
	}
	if err := ctrl.Save("Alice"); !errors.Is(err, ErrBusy) {
		t.Errorf("second Save() error = %v, want ErrBusy", err)
	}
	if err := ctrl.Refresh(); !errors.Is(err, ErrBusy) {
		t.Errorf("Refresh() during save error = %v, want ErrBusy", err)
	}

	// Local edits remain allowed while the remote call is pending
	if err := ctrl.SetAnswer("2026-03-13", models.StatusNotEat, ""); err != nil {
		t.Errorf("SetAnswer() during save failed: %v", err)
	}

	close(rem.putGate)
	if err := <-saveDone; err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if rem.deleteCalls != 0 {
		t.Errorf("deleteCalls = %d, want 0 (rejected delete must not reach the store)", rem.deleteCalls)
	}
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	rem := newFakeRemote()
	rem.records["other"] = models.UserRecord{OwnerID: "other", Nickname: "Bob", Answers: models.AnswerRecord{}}
	ctrl := startController(t, newFakeCache(), rem, fakeIdentity{token: "owner-1"})

	if len(ctrl.Everyone()) != 1 {
		t.Fatalf("Everyone() = %v, want Bob's record", ctrl.Everyone())
	}

	rem.getErr = errors.New("network down")
	if err := ctrl.Refresh(); !errors.Is(err, ErrRemoteRead) {
		t.Fatalf("Refresh() error = %v, want ErrRemoteRead", err)
	}

	// Stale-but-present beats blank
	if len(ctrl.Everyone()) != 1 {
		t.Error("Refresh() failure blanked the everyone view")
	}
}

func TestOperationsBeforeStart(t *testing.T) {
	ctrl := New(newFakeCache(), newFakeRemote(), fakeIdentity{token: "owner-1"})

	if err := ctrl.Save("Alice"); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Save() before Start error = %v, want ErrNotStarted", err)
	}
	if err := ctrl.Delete(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Delete() before Start error = %v, want ErrNotStarted", err)
	}
	if err := ctrl.Refresh(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Refresh() before Start error = %v, want ErrNotStarted", err)
	}
	if err := ctrl.SetAnswer("2026-03-10", models.StatusAwa, ""); !errors.Is(err, ErrNotStarted) {
		t.Errorf("SetAnswer() before Start error = %v, want ErrNotStarted", err)
	}
}

func TestStartTwice(t *testing.T) {
	ctrl := startController(t, newFakeCache(), newFakeRemote(), fakeIdentity{token: "owner-1"})
	if err := ctrl.Start(testRef.AddDate(0, 0, 1), 7); err == nil {
		t.Error("second Start() should fail; the window is fixed per session")
	}
}

func TestWindowIsFixedAtStart(t *testing.T) {
	ctrl := startController(t, newFakeCache(), newFakeRemote(), fakeIdentity{token: "owner-1"})

	w := ctrl.Window()
	want := schedule.Generate(testRef, 7)
	for i := range want {
		if w[i] != want[i] {
			t.Fatalf("Window()[%d] = %s, want %s", i, w[i], want[i])
		}
	}

	// Mutating the returned slice must not affect the controller
	w[0] = "mutated"
	if ctrl.Window()[0] == "mutated" {
		t.Error("Window() exposes internal state")
	}
}
