package trainer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/perf"
	"github.com/verte-zerg/tuimorse/internal/persist"
	"github.com/verte-zerg/tuimorse/internal/tracker"
)

// Settings namespaces of the training modes.
const (
	ReadNamespace = "ReadTrainer"
	CopyNamespace = "copyTrainer"
)

// Adjustment policy.
const (
	TrackerSize = 5

	growMaxAbove   = 0.8
	shrinkMaxBelow = 0.2
	growMinAt      = 1.0
	shrinkMinBelow = 0.1
)

// ErrInvalidCount is returned for attempts with a non-positive total or
// out-of-range success count.
var ErrInvalidCount = errors.New("invalid attempt counts")

// SettingsGateway loads and stores settings payloads by namespace.
type SettingsGateway interface {
	persist.Saver
	LoadSettings(ctx context.Context, namespace string) ([]byte, bool, error)
}

// Options configures a Controller.
type Options struct {
	Namespace string
	Policy    Policy
	MinLength int
	MaxLength int
	// Adaptive enables per-length trackers and bound adjustment.
	Adaptive bool
	// KeepTiming stores elapsed time alongside word scores.
	KeepTiming  bool
	TrackerSize int
	Debounce    time.Duration
	OnError     func(error)
}

// ReadTrainerOptions returns the options of the adaptive read trainer.
func ReadTrainerOptions() Options {
	return Options{
		Namespace:   ReadNamespace,
		Policy:      Policy{Floor: 2, ClampToFloor: true},
		MinLength:   2,
		MaxLength:   3,
		Adaptive:    true,
		KeepTiming:  true,
		TrackerSize: TrackerSize,
		Debounce:    persist.DefaultDelay,
	}
}

// CopyTrainerOptions returns the options of the copy trainer, which keeps
// bare word scores and never adjusts its bounds.
func CopyTrainerOptions() Options {
	return Options{
		Namespace: CopyNamespace,
		Policy:    Policy{Floor: 0},
		MinLength: 2,
		MaxLength: 3,
		Debounce:  persist.DefaultDelay,
	}
}

// Controller owns the difficulty bounds of one training mode, the per-length
// result trackers, and the word performance store.
type Controller struct {
	opts     Options
	settings SettingsGateway
	words    *perf.Store
	saver    *persist.Debounced

	mu            sync.Mutex
	bounds        Bounds
	trackers      map[int]*tracker.ResultTracker
	hydrating     bool
	boundsTouched bool
}

// NewController returns a controller in its default state. Call Hydrate to
// load persisted settings and words.
func NewController(settings SettingsGateway, words perf.Gateway, opts Options) *Controller {
	if opts.TrackerSize <= 0 {
		opts.TrackerSize = TrackerSize
	}
	c := &Controller{
		opts:     opts,
		settings: settings,
		words:    perf.New(words),
		saver:    persist.NewDebounced(settings, opts.Namespace, opts.Debounce, opts.OnError),
	}
	c.resetState()
	return c
}

func (c *Controller) resetState() {
	c.bounds = NewBounds(c.opts.Policy, c.opts.MinLength, c.opts.MaxLength)
	c.trackers = map[int]*tracker.ResultTracker{}
	c.hydrating = false
	c.boundsTouched = false
}

// Namespace returns the settings namespace.
func (c *Controller) Namespace() string {
	return c.opts.Namespace
}

// Bounds returns the current length window.
func (c *Controller) Bounds() (minLength, maxLength int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounds.Min(), c.bounds.Max()
}

// Words returns the word performance store.
func (c *Controller) Words() *perf.Store {
	return c.words
}

// Tracker returns the tracker of the given item length, if one was created.
func (c *Controller) Tracker(length int) (*tracker.ResultTracker, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.trackers[length]
	return t, ok
}

// SetMinLength sets the lower bound from raw user input.
func (c *Controller) SetMinLength(raw string) error {
	return c.updateBounds(func(b *Bounds) { b.SetMin(raw) })
}

// SetMaxLength sets the upper bound from raw user input.
func (c *Controller) SetMaxLength(raw string) error {
	return c.updateBounds(func(b *Bounds) { b.SetMax(raw) })
}

func (c *Controller) updateBounds(fn func(*Bounds)) error {
	c.mu.Lock()
	fn(&c.bounds)
	if c.hydrating {
		c.boundsTouched = true
	}
	payload, err := c.settingsPayloadLocked()
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.saver.Schedule(payload)
}

type settingsPayload struct {
	MinLength int `json:"minLength"`
	MaxLength int `json:"maxLength"`
}

func (c *Controller) settingsPayloadLocked() ([]byte, error) {
	return json.Marshal(settingsPayload{MinLength: c.bounds.Min(), MaxLength: c.bounds.Max()})
}

// RecordAttempt stores the outcome for every word of text and, for the
// adaptive mode, moves the bounds when a boundary length's window fills.
func (c *Controller) RecordAttempt(a model.Attempt) error {
	if a.Total <= 0 || a.Success < 0 || a.Success > a.Total {
		return fmt.Errorf("%d/%d: %w", a.Success, a.Total, ErrInvalidCount)
	}
	elapsed := a.ElapsedMs
	if !c.opts.KeepTiming {
		elapsed = nil
	}
	for _, w := range strings.Fields(a.Text) {
		c.words.RecordOutcome(w, a.Success, a.Total, elapsed)
	}
	if !c.opts.Adaptive {
		return nil
	}

	c.mu.Lock()
	before := c.bounds
	length := utf8.RuneCountInString(a.Text)
	t, ok := c.trackers[length]
	if !ok {
		t = tracker.New(c.opts.TrackerSize)
		c.trackers[length] = t
	}
	filled := t.Record(a.Success, a.Total)

	// Only the tracker recorded here can have just filled.
	if filled && length == c.bounds.Max() {
		ratio := t.TrailingRatio()
		if ratio > growMaxAbove {
			c.bounds.setMax(c.bounds.Max() + 1)
		} else if ratio < shrinkMaxBelow {
			c.bounds.setMax(c.bounds.Max() - 1)
		}
	}
	if filled && length == c.bounds.Min() {
		ratio := t.TrailingRatio()
		if ratio == growMinAt {
			c.bounds.setMin(c.bounds.Min() + 1)
		} else if ratio < shrinkMinBelow {
			c.bounds.setMin(c.bounds.Min() - 1)
		}
	}
	changed := before != c.bounds
	payload, err := c.settingsPayloadLocked()
	c.mu.Unlock()
	if err != nil || !changed {
		return err
	}
	return c.saver.Schedule(payload)
}

// Hydrate loads persisted bounds and word records. Bounds changed by the
// user while hydration runs are kept.
func (c *Controller) Hydrate(ctx context.Context) error {
	c.beginHydration()

	var errs []error
	if err := c.hydrateSettings(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := c.words.Hydrate(ctx); err != nil {
		errs = append(errs, err)
	}

	c.mu.Lock()
	c.hydrating = false
	c.mu.Unlock()
	return errors.Join(errs...)
}

// beginHydration starts tracking user bound changes unless a hydration is
// already pending.
func (c *Controller) beginHydration() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hydrating {
		return
	}
	c.hydrating = true
	c.boundsTouched = false
}

type rawSettings struct {
	MinLength json.RawMessage `json:"minLength"`
	MaxLength json.RawMessage `json:"maxLength"`
}

func (c *Controller) hydrateSettings(ctx context.Context) error {
	payload, ok, err := c.settings.LoadSettings(ctx, c.opts.Namespace)
	if err != nil {
		return &model.StorageError{Op: "load settings", Key: c.opts.Namespace, Err: err}
	}
	if !ok {
		return nil
	}
	var raw rawSettings
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("failed to decode %s settings: %w", c.opts.Namespace, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.boundsTouched {
		return nil
	}
	c.bounds.SetMin(rawValue(raw.MinLength))
	c.bounds.SetMax(rawValue(raw.MaxLength))
	if current, err := c.settingsPayloadLocked(); err == nil {
		c.saver.Seen(current)
	}
	return nil
}

func rawValue(msg json.RawMessage) string {
	return strings.Trim(string(msg), `"`)
}

// Sync reconciles word records with storage.
func (c *Controller) Sync(ctx context.Context) error {
	return c.words.Sync(ctx)
}

// Flush writes pending settings and word records now.
func (c *Controller) Flush(ctx context.Context) error {
	return errors.Join(c.saver.Flush(ctx), c.words.Sync(ctx))
}

// Reset returns bounds, trackers, and words to their defaults without
// touching storage.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saver.Reset()
	c.words.Reset()
	c.resetState()
}
