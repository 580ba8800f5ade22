package trainer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuimorse/internal/dictionary"
	"github.com/verte-zerg/tuimorse/internal/model"
	"github.com/verte-zerg/tuimorse/internal/perf"
	"github.com/verte-zerg/tuimorse/internal/persist"
	"github.com/verte-zerg/tuimorse/internal/picker"
)

// DictionaryNamespace stores the dictionary choices.
const DictionaryNamespace = "dictionary"

// Gateway is the persistence used by a Session.
type Gateway interface {
	SettingsGateway
	Words(namespace string) perf.Gateway
	InsertAttempt(ctx context.Context, rec model.AttemptRecord) error
	Clear(ctx context.Context) error
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Mode       model.Mode
	Dictionary *dictionary.Dictionary
	Debounce   time.Duration
	Rand       *rand.Rand
	// OnError receives storage failures, including those of delayed writes.
	OnError func(error)
	Now     func() time.Time
}

// Session is one practice run: it owns a Controller, the dictionary, and
// the picker, and hands every outcome back to the controller.
type Session struct {
	id      string
	mode    model.Mode
	gw      Gateway
	onError func(error)
	now     func() time.Time

	controller *Controller
	dictSaver  *persist.Debounced
	hydrated   chan struct{}

	mu       sync.Mutex
	dict     *dictionary.Dictionary
	picker   *picker.Picker
	previous string
	// set once the user edits the dictionary while hydration runs
	dictTouched bool
	hydrating   bool
}

// NewSession builds a session in its default state.
func NewSession(gw Gateway, opts SessionOptions) (*Session, error) {
	var copts Options
	switch opts.Mode {
	case model.ModeRead, "":
		opts.Mode = model.ModeRead
		copts = ReadTrainerOptions()
	case model.ModeCopy:
		copts = CopyTrainerOptions()
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.Mode)
	}
	if opts.Dictionary == nil {
		opts.Dictionary = dictionary.New(dictionary.DefaultEntries())
	}
	if opts.OnError == nil {
		opts.OnError = logStorageError
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	copts.Debounce = opts.Debounce
	copts.OnError = opts.OnError

	s := &Session{
		id:       uuid.New().String(),
		mode:     opts.Mode,
		gw:       gw,
		onError:  opts.OnError,
		now:      opts.Now,
		dict:     opts.Dictionary,
		hydrated: make(chan struct{}),
	}
	s.controller = NewController(gw, gw.Words(copts.Namespace), copts)
	s.dictSaver = persist.NewDebounced(gw, DictionaryNamespace, opts.Debounce, opts.OnError)
	s.picker = picker.New(s.dict, opts.Rand)
	return s, nil
}

// ID returns the session id used in the attempt log.
func (s *Session) ID() string { return s.id }

// Mode returns the training mode.
func (s *Session) Mode() model.Mode { return s.mode }

// Controller returns the difficulty controller.
func (s *Session) Controller() *Controller { return s.controller }

// Start hydrates settings and words in the background. The session is
// usable with defaults before Hydrated is closed.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	s.hydrating = true
	s.dictTouched = false
	hydrated := s.hydrated
	s.mu.Unlock()
	s.controller.beginHydration()
	go func() {
		defer close(hydrated)
		if err := s.hydrate(ctx); err != nil {
			s.onError(err)
		}
	}()
}

// Hydrated is closed once the background hydration finished.
func (s *Session) Hydrated() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

func (s *Session) hydrate(ctx context.Context) error {
	var errs []error
	if err := s.hydrateDictionary(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.controller.Hydrate(ctx); err != nil {
		errs = append(errs, err)
	}
	s.mu.Lock()
	s.hydrating = false
	s.mu.Unlock()
	return errors.Join(errs...)
}

func (s *Session) hydrateDictionary(ctx context.Context) error {
	payload, ok, err := s.gw.LoadSettings(ctx, DictionaryNamespace)
	if err != nil {
		return &model.StorageError{Op: "load settings", Key: DictionaryNamespace, Err: err}
	}
	if !ok {
		return nil
	}
	var settings dictionary.Settings
	if err := json.Unmarshal(payload, &settings); err != nil {
		return fmt.Errorf("failed to decode dictionary settings: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dictTouched {
		return nil
	}
	if err := s.dict.ApplySettings(settings); err != nil {
		return err
	}
	if current, err := s.dict.MarshalSettings(); err == nil {
		s.dictSaver.Seen(current)
	}
	return nil
}

// Bounds returns the current length window.
func (s *Session) Bounds() (minLength, maxLength int) {
	return s.controller.Bounds()
}

// Next picks the next practice item within the bounds, never repeating the
// previous one.
func (s *Session) Next() (string, error) {
	minLength, maxLength := s.controller.Bounds()
	s.mu.Lock()
	defer s.mu.Unlock()
	length, err := s.picker.PickLength(minLength, maxLength, s.previous)
	if err != nil {
		return "", err
	}
	word, err := s.picker.PickWord(length, s.previous)
	if err != nil {
		return "", err
	}
	s.previous = word
	return word, nil
}

// Report records an attempt, reconciles word records, and logs the attempt.
func (s *Session) Report(ctx context.Context, a model.Attempt) error {
	var errs []error
	if err := s.controller.RecordAttempt(a); err != nil {
		if errors.Is(err, ErrInvalidCount) {
			return err
		}
		errs = append(errs, err)
	}
	if err := s.controller.Sync(ctx); err != nil {
		errs = append(errs, err)
	}
	rec := model.AttemptRecord{
		SessionID: s.id,
		Namespace: s.controller.Namespace(),
		Text:      a.Text,
		Length:    utf8.RuneCountInString(a.Text),
		Success:   a.Success,
		Total:     a.Total,
		ElapsedMs: a.ElapsedMs,
		At:        s.now(),
	}
	if err := s.gw.InsertAttempt(ctx, rec); err != nil {
		errs = append(errs, &model.StorageError{Op: "log attempt", Key: a.Text, Err: err})
	}
	err := errors.Join(errs...)
	if err != nil {
		s.onError(err)
	}
	return err
}

// SetMinLength sets the lower bound from raw user input.
func (s *Session) SetMinLength(raw string) error {
	return s.controller.SetMinLength(raw)
}

// SetMaxLength sets the upper bound from raw user input.
func (s *Session) SetMaxLength(raw string) error {
	return s.controller.SetMaxLength(raw)
}

// AddType enables a dictionary category.
func (s *Session) AddType(t dictionary.EntryType) error {
	return s.updateDictionary(func(d *dictionary.Dictionary) { d.AddType(t) })
}

// RemoveType disables a dictionary category.
func (s *Session) RemoveType(t dictionary.EntryType) error {
	return s.updateDictionary(func(d *dictionary.Dictionary) { d.RemoveType(t) })
}

// SetDictionarySize bounds the active pool.
func (s *Session) SetDictionarySize(n int) error {
	return s.updateDictionary(func(d *dictionary.Dictionary) { d.SetActiveSize(n) })
}

// ApplyDictionarySettings replaces the enabled types and active size. Called
// after Start, it takes precedence over the stored choice.
func (s *Session) ApplyDictionarySettings(settings dictionary.Settings) error {
	var applyErr error
	err := s.updateDictionary(func(d *dictionary.Dictionary) {
		applyErr = d.ApplySettings(settings)
	})
	if applyErr != nil {
		return applyErr
	}
	return err
}

// Dictionary calls fn with the dictionary held under the session lock.
func (s *Session) Dictionary(fn func(d *dictionary.Dictionary)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.dict)
}

func (s *Session) updateDictionary(fn func(*dictionary.Dictionary)) error {
	s.mu.Lock()
	fn(s.dict)
	if s.hydrating {
		s.dictTouched = true
	}
	payload, err := s.dict.MarshalSettings()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.dictSaver.Schedule(payload)
}

// Clear wipes all persisted state and resets the session to defaults.
// It cannot be undone.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.gw.Clear(ctx); err != nil {
		return &model.StorageError{Op: "clear", Err: err}
	}
	s.controller.Reset()
	s.dictSaver.Reset()
	s.mu.Lock()
	s.dict.Reset()
	s.previous = ""
	s.mu.Unlock()
	return nil
}

// Close flushes pending settings and word records.
func (s *Session) Close(ctx context.Context) error {
	return errors.Join(s.dictSaver.Flush(ctx), s.controller.Flush(ctx))
}

func logStorageError(err error) {
	if _, werr := fmt.Fprintf(os.Stderr, "storage error: %v\n", err); werr != nil {
		// Best-effort logging to stderr.
		_ = werr
	}
}
