package registration

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/catalog"
	"github.com/esamadhan/volunteer-api/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultConfirmationDelay = 2 * time.Second
	defaultDisplayDuration   = 5 * time.Second
)

// State is the position of a form session in its lifecycle
type State int

const (
	StateClosed State = iota
	StateFormOpen
	StateSubmitting
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateFormOpen:
		return "form_open"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Notifier shows transient, non-blocking messages to the user
type Notifier interface {
	Notify(message string, kind models.NotificationType)
}

// Options tune a Controller. Zero values select the defaults.
type Options struct {
	// ConfirmationDelay is the pause between the success notice and the confirmation
	ConfirmationDelay time.Duration
	// DisplayDuration is how long the confirmation stays up before the session closes
	DisplayDuration time.Duration
	Logger          *zap.Logger
	Now             func() time.Time
}

// Controller drives one registration form session.
//
// A draft exists only in the FormOpen and Submitting states. The delayed
// confirmation runs on a timer goroutine, so all state is guarded by mu.
type Controller struct {
	catalog  *catalog.Catalog
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
	delay    time.Duration
	display  time.Duration

	mu       sync.Mutex
	state    State
	category models.TaskCategory
	draft    *models.RegistrationDraft
	result   *models.RegistrationResult
	timer    *time.Timer
	gen      uint64
}

// NewController creates a controller in the Closed state
func NewController(cat *catalog.Catalog, notifier Notifier, opts Options) *Controller {
	c := &Controller{
		catalog:  cat,
		notifier: notifier,
		logger:   opts.Logger,
		now:      opts.Now,
		delay:    opts.ConfirmationDelay,
		display:  opts.DisplayDuration,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.delay <= 0 {
		c.delay = defaultConfirmationDelay
	}
	if c.display <= 0 {
		c.display = defaultDisplayDuration
	}
	return c
}

// OpenForm starts a new draft for categoryID, replacing any open one.
// An unknown category leaves the controller untouched.
func (c *Controller) OpenForm(categoryID string) error {
	cat, err := c.catalog.Lookup(categoryID)
	if err != nil {
		c.notify(fmt.Sprintf("❌ Unknown volunteer category: %s", categoryID), models.NotifyError)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
	c.category = cat
	c.draft = models.NewRegistrationDraft(cat.ID, c.now())
	c.state = StateFormOpen

	c.logger.Debug("registration form opened", zap.String("category", cat.ID))
	return nil
}

// ToggleSkill flips membership of a skill label in the draft
func (c *Controller) ToggleSkill(label string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFormOpen {
		return false, ErrFormNotOpen
	}
	return toggle(c.draft.Skills, label), nil
}

// ToggleAvailabilitySlot flips membership of an availability slot in the draft
func (c *Controller) ToggleAvailabilitySlot(slot models.AvailabilitySlot) (bool, error) {
	if !slot.Valid() {
		return false, fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFormOpen {
		return false, ErrFormNotOpen
	}
	return toggle(c.draft.Slots, slot), nil
}

// ToggleTaskSelection flips membership of a task of the draft's category
func (c *Controller) ToggleTaskSelection(taskID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFormOpen {
		return false, ErrFormNotOpen
	}
	if !c.hasTask(taskID) {
		return false, fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}
	return toggle(c.draft.TaskIDs, taskID), nil
}

// UpdateFields applies user input to the free-text and checkbox fields
func (c *Controller) UpdateFields(f models.DraftFields) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFormOpen {
		return ErrFormNotOpen
	}

	d := c.draft
	setString(&d.Personal.Name, f.Name)
	setString(&d.Personal.Email, f.Email)
	setString(&d.Personal.Phone, f.Phone)
	setString(&d.Personal.Address, f.Address)
	setString(&d.Experience, f.Experience)
	setString(&d.Motivation, f.Motivation)
	setString(&d.AvailabilityNotes, f.AvailabilityNotes)
	if f.Age != nil {
		d.Personal.Age = *f.Age
	}
	if f.TermsAccepted != nil {
		d.TermsAccepted = *f.TermsAccepted
	}
	if f.UpdatesOptIn != nil {
		d.UpdatesOptIn = *f.UpdatesOptIn
	}
	return nil
}

// Status returns nil when the draft can be submitted, the first failed
// requirement as a *ValidationError otherwise, or ErrFormNotOpen.
func (c *Controller) Status() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFormOpen {
		return ErrFormNotOpen
	}
	return Validate(c.draft)
}

// Submit validates the draft and, on success, schedules the confirmation.
// A failed validation keeps the form open and editable.
func (c *Controller) Submit() (*models.RegistrationResult, error) {
	c.mu.Lock()

	if c.state != StateFormOpen {
		c.mu.Unlock()
		return nil, ErrFormNotOpen
	}

	if err := Validate(c.draft); err != nil {
		categoryID := c.category.ID
		c.mu.Unlock()
		if verr, ok := err.(*ValidationError); ok {
			c.notify("⚠️ "+verr.Message(), models.NotifyError)
		}
		c.logger.Debug("registration rejected",
			zap.String("category", categoryID),
			zap.Error(err))
		return nil, err
	}

	result := c.buildResultLocked()
	c.result = result
	c.state = StateSubmitting
	// The success notice must precede the confirmation the timer emits.
	c.notify("✅ Registration submitted successfully!", models.NotifySuccess)
	gen := c.gen
	c.timer = time.AfterFunc(c.delay, func() { c.confirm(gen) })
	c.mu.Unlock()

	c.logger.Info("registration submitted",
		zap.String("category", result.CategoryID),
		zap.String("reference", result.Reference),
		zap.Int("tasks", len(result.TaskTitles)))

	return cloneResult(result), nil
}

// Cancel discards the draft and closes the form. It always succeeds.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
}

// Close is Cancel under the name the modal's close button uses
func (c *Controller) Close() {
	c.Cancel()
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Draft returns a copy of the open draft, or nil when none exists
func (c *Controller) Draft() *models.RegistrationDraft {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.draft.Clone()
}

// Snapshot is a consistent view of a controller taken under one lock
type Snapshot struct {
	State    State
	Category *models.TaskCategory
	Draft    *models.RegistrationDraft
	Result   *models.RegistrationResult
}

// Snapshot returns the state, category, draft and result together, so a
// timer firing between reads cannot produce a mixed view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:  c.state,
		Draft:  c.draft.Clone(),
		Result: cloneResult(c.result),
	}
	if c.state != StateClosed {
		cat := c.category
		snap.Category = &cat
	}
	return snap
}

// confirm runs after the confirmation delay: the form closes and the
// confirmation is shown until the display period ends.
func (c *Controller) confirm(gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.state != StateSubmitting {
		c.mu.Unlock()
		return
	}
	c.draft = nil
	c.state = StateConfirmed
	result := c.result
	c.timer = time.AfterFunc(c.display, func() { c.expire(gen) })
	c.mu.Unlock()

	c.notify(fmt.Sprintf("🎉 Thank you %s! You are registered for: %s",
		result.VolunteerName, strings.Join(result.TaskTitles, ", ")), models.NotifySuccess)
}

func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen || c.state != StateConfirmed {
		return
	}
	c.result = nil
	c.state = StateClosed
	c.gen++
}

// resetLocked discards all session state and invalidates pending timers
func (c *Controller) resetLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	c.state = StateClosed
	c.category = models.TaskCategory{}
	c.draft = nil
	c.result = nil
}

func (c *Controller) hasTask(taskID string) bool {
	for _, t := range c.category.Tasks {
		if t.ID == taskID {
			return true
		}
	}
	return false
}

// buildResultLocked lists selected task titles in catalog order
func (c *Controller) buildResultLocked() *models.RegistrationResult {
	var titles []string
	for _, t := range c.category.Tasks {
		if c.draft.TaskIDs[t.ID] {
			titles = append(titles, t.Title)
		}
	}
	slots := make([]string, 0, len(c.draft.Slots))
	for _, s := range models.AvailabilitySlots {
		if c.draft.Slots[s] {
			slots = append(slots, string(s))
		}
	}
	return &models.RegistrationResult{
		Reference:     uuid.NewString(),
		CategoryID:    c.category.ID,
		CategoryName:  c.category.Name,
		VolunteerName: c.draft.Personal.Name,
		TaskTitles:    titles,
		Slots:         slots,
		SubmittedAt:   c.now(),
	}
}

func (c *Controller) notify(message string, kind models.NotificationType) {
	if c.notifier != nil {
		c.notifier.Notify(message, kind)
	}
}

func toggle[K comparable](set map[K]bool, key K) bool {
	if set[key] {
		delete(set, key)
		return false
	}
	set[key] = true
	return true
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func cloneResult(r *models.RegistrationResult) *models.RegistrationResult {
	if r == nil {
		return nil
	}
	out := *r
	out.TaskTitles = append([]string(nil), r.TaskTitles...)
	out.Slots = append([]string(nil), r.Slots...)
	return &out
}
