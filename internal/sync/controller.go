package sync

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kms-app/dinnerboard/internal/identity"
	"github.com/kms-app/dinnerboard/internal/logger"
	"github.com/kms-app/dinnerboard/internal/models"
	"github.com/kms-app/dinnerboard/internal/remote"
	"github.com/kms-app/dinnerboard/internal/schedule"
	"github.com/kms-app/dinnerboard/internal/storage"
	"github.com/kms-app/dinnerboard/internal/validation"
)

// Phase is the controller's lifecycle phase.
type Phase int

const (
	PhaseUnauthenticated Phase = iota
	PhaseAuthenticating
	PhaseReady
	PhaseSaving
	PhaseDeleting
)

var (
	// ErrIdentityUnavailable blocks save/delete when no owner identity was
	// established; local editing is unaffected.
	ErrIdentityUnavailable = errors.New("no owner identity established")
	// ErrMissingNickname blocks save/delete until a display name is set
	ErrMissingNickname = errors.New("display name is required")
	// ErrBusy rejects a mutating call while another one is still in flight
	ErrBusy = errors.New("another remote operation is still in flight")
	// ErrNotStarted is returned when the controller is used before Start
	ErrNotStarted = errors.New("controller not started")

	// Remote failure kinds, wrapped around the store's own error
	ErrRemoteRead   = errors.New("failed to read shared records")
	ErrRemoteWrite  = errors.New("failed to write shared record")
	ErrRemoteDelete = errors.New("failed to delete shared record")
)

// Controller orchestrates the session's answer state: local cache in,
// reconcile onto the current window, shared snapshot out. One controller
// owns one session; its window is fixed at Start and never regenerated.
//
// Mutating remote calls (Save, Delete) are serialized: a second call is
// rejected with ErrBusy until the first settles. Local edits remain allowed
// while a remote call is pending and are captured by the next Save.
type Controller struct {
	mu     sync.Mutex
	phase  Phase
	cache  storage.Provider
	remote remote.Store
	ident  identity.Provider

	ownerID  string
	window   schedule.Window
	record   models.AnswerRecord
	everyone []models.UserRecord
}

func New(cache storage.Provider, store remote.Store, ident identity.Provider) *Controller {
	return &Controller{
		phase:  PhaseUnauthenticated,
		cache:  cache,
		remote: store,
		ident:  ident,
	}
}

// Start fixes the session window at ref, establishes the owner identity,
// loads and reconciles the cached record, and fetches the shared snapshot.
//
// Identity and snapshot failures are non-fatal: the controller still enters
// Ready for local editing, and the returned error is the notice to surface.
// Only a cache failure aborts the session.
func (c *Controller) Start(ref time.Time, days int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseUnauthenticated {
		return fmt.Errorf("controller already started")
	}

	c.phase = PhaseAuthenticating
	ownerID, identErr := c.ident.Establish()
	if identErr != nil {
		// Local editing stays available; save/delete will report it.
		logger.Warn("Identity unavailable, continuing offline", "error", identErr)
		ownerID = ""
	}
	c.ownerID = ownerID
	c.window = schedule.Generate(ref, days)

	stored, err := c.cache.GetAnswers(c.ownerID)
	if err != nil {
		c.phase = PhaseUnauthenticated
		return fmt.Errorf("failed to load cached answers: %w", err)
	}
	c.record = schedule.Reconcile(stored, c.window)

	// Write the reconciled record straight back so the cache tracks the
	// current window from the first moment of the session.
	if err := c.cache.SaveAnswers(c.ownerID, c.record); err != nil {
		c.phase = PhaseUnauthenticated
		return fmt.Errorf("failed to cache reconciled answers: %w", err)
	}

	c.phase = PhaseReady

	if err := c.refreshLocked(); err != nil {
		return err
	}
	if identErr != nil {
		return fmt.Errorf("%w: %v", ErrIdentityUnavailable, identErr)
	}
	return nil
}

// refreshLocked replaces the everyone-view wholesale from the shared store.
// On failure the previous snapshot is kept; a transient network error should
// not blank the board. Callers must hold c.mu.
func (c *Controller) refreshLocked() error {
	records, err := c.remote.GetAllRecords()
	if err != nil {
		logger.Warn("Snapshot refresh failed, keeping previous view", "error", err)
		return fmt.Errorf("%w: %v", ErrRemoteRead, err)
	}
	c.everyone = records
	return nil
}

// Refresh re-reads the shared snapshot. Like Save and Delete it is a
// user-triggered remote action, so it is rejected while one is in flight.
func (c *Controller) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseUnauthenticated || c.phase == PhaseAuthenticating {
		return ErrNotStarted
	}
	if c.phase != PhaseReady {
		return ErrBusy
	}
	return c.refreshLocked()
}

// SetAnswer mutates one day of the session's own record and writes through
// to the local cache, so a reload mid-session loses nothing.
func (c *Controller) SetAnswer(dayKey string, status models.AnswerStatus, timeNote string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseUnauthenticated || c.phase == PhaseAuthenticating {
		return ErrNotStarted
	}
	if !c.window.Contains(dayKey) {
		return fmt.Errorf("day %s is outside the current window", dayKey)
	}
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	c.record[dayKey] = models.DayAnswer{Status: status, Time: timeNote}
	if err := c.cache.SaveAnswers(c.ownerID, c.record); err != nil {
		return fmt.Errorf("failed to cache answers: %w", err)
	}
	return nil
}

// Save pushes the session's record to the shared store under the given
// display name, then re-reads the snapshot so the caller sees its own update
// the same way every other viewer does.
func (c *Controller) Save(nickname string) error {
	c.mu.Lock()
	if c.phase == PhaseUnauthenticated || c.phase == PhaseAuthenticating {
		c.mu.Unlock()
		return ErrNotStarted
	}
	if c.phase != PhaseReady {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.ownerID == "" {
		c.mu.Unlock()
		return ErrIdentityUnavailable
	}
	if err := validation.ValidateNickname(nickname); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrMissingNickname, err)
	}

	rec := models.UserRecord{
		OwnerID:  c.ownerID,
		Nickname: nickname,
		Answers:  c.snapshotRecordLocked(),
	}
	c.phase = PhaseSaving
	c.mu.Unlock()

	// Remote call happens outside the lock so local edits stay responsive;
	// the Saving phase keeps a second mutating call out.
	stored, err := c.remote.PutRecord(rec)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseReady

	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteWrite, err)
	}

	if err := c.cache.SaveNickname(nickname); err != nil {
		logger.Warn("Failed to cache nickname", "error", err)
	}
	logger.Debug("Saved shared record", "owner", stored.OwnerID, "updated_at", stored.UpdatedAt)

	return c.refreshLocked()
}

// Delete removes the owner's shared record, resets the session record to
// all-undecided defaults for the current window, and re-reads the snapshot.
// Returns remote.ErrRecordNotFound (wrapped) when there was nothing to
// delete; local state is untouched in that case.
func (c *Controller) Delete() error {
	c.mu.Lock()
	if c.phase == PhaseUnauthenticated || c.phase == PhaseAuthenticating {
		c.mu.Unlock()
		return ErrNotStarted
	}
	if c.phase != PhaseReady {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.ownerID == "" {
		c.mu.Unlock()
		return ErrIdentityUnavailable
	}
	c.phase = PhaseDeleting
	c.mu.Unlock()

	err := c.remote.DeleteRecord(c.ownerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseReady

	if err != nil {
		if errors.Is(err, remote.ErrRecordNotFound) {
			return fmt.Errorf("%w for %s", remote.ErrRecordNotFound, c.ownerID)
		}
		return fmt.Errorf("%w: %v", ErrRemoteDelete, err)
	}

	c.record = schedule.Blank(c.window)
	if err := c.cache.SaveAnswers(c.ownerID, c.record); err != nil {
		return fmt.Errorf("failed to cache reset answers: %w", err)
	}

	return c.refreshLocked()
}

// Phase returns the controller's current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// OwnerID returns the established identity token, empty when offline.
func (c *Controller) OwnerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ownerID
}

// Window returns the session's fixed day-key window.
func (c *Controller) Window() schedule.Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := make(schedule.Window, len(c.window))
	copy(w, c.window)
	return w
}

// Record returns a copy of the session's own answer record.
func (c *Controller) Record() models.AnswerRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotRecordLocked()
}

func (c *Controller) snapshotRecordLocked() models.AnswerRecord {
	rec := make(models.AnswerRecord, len(c.record))
	for day, a := range c.record {
		rec[day] = a
	}
	return rec
}

// Everyone returns the latest shared snapshot, in arrival order.
func (c *Controller) Everyone() []models.UserRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.UserRecord, len(c.everyone))
	copy(out, c.everyone)
	return out
}
