// Package customizer holds the client-side state of an in-progress car
// customization: the selected model, color, parts and services, and the
// save lifecycle that turns that state into a persisted build.
package customizer

import (
	"context"
	"errors"
	"sync"
)

type State int

const (
	StateIdle State = iota
	StateEditing
	StateSaving
	StateSaved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateSaved:
		return "saved"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

type Part string

const (
	PartWheels  Part = "wheels"
	PartSpoiler Part = "spoiler"
	PartLights  Part = "lights"
	PartExhaust Part = "exhaust"
)

var (
	ErrLoginRequired = errors.New("login required to save a draft")
	ErrSaveInFlight  = errors.New("a save is already in progress")
	ErrUnknownPart   = errors.New("unknown part")
)

// Config is the visual configuration under edit.
type Config struct {
	ModelID   string
	ModelName string
	BodyColor string
	Wheels    string
	Spoiler   string
	Lights    string
	Exhaust   string
}

// BaselineConfig is the fixed reference configuration a fresh session starts from.
func BaselineConfig() Config {
	return Config{
		ModelID:   "porsche-911-turbo-s",
		ModelName: "Porsche 911 Turbo S",
		BodyColor: "#FF6B35",
		Wheels:    "sport",
		Spoiler:   "standard",
		Lights:    "led",
		Exhaust:   "dual",
	}
}

// EditIntent carries an existing build into a session, field by field.
// It is passed explicitly by the caller (e.g. the dashboard choosing
// "edit") rather than smuggled through shared storage.
type EditIntent struct {
	BuildID          string
	Config           Config
	SelectedServices []string
	ModelImage       string
}

// BuildWriter is the subset of the build store the session saves through.
type BuildWriter interface {
	CreateBuild(ctx context.Context, payload BuildPayload) (*BuildRecord, error)
	UpdateBuild(ctx context.Context, buildID string, payload BuildPayload) (*BuildRecord, error)
}

// Identity answers whether the session has an authenticated user to save as.
type Identity interface {
	Authenticated() bool
}

// Session is a single user's in-progress customization. Field mutations are
// synchronous; only Save performs I/O. Methods are safe for concurrent use,
// though the intended caller is a single UI loop.
type Session struct {
	mu       sync.Mutex
	store    BuildWriter
	identity Identity

	state      State
	cfg        Config
	services   []string
	modelImage string
	prices     map[string]int64

	editingBuildID string
	saving         bool
	failure        string
}

func NewSession(store BuildWriter, identity Identity) *Session {
	return &Session{
		store:    store,
		identity: identity,
		state:    StateIdle,
		cfg:      BaselineConfig(),
	}
}

// StartEditing enters the Editing state. A nil intent starts a fresh draft
// from the baseline; a non-nil intent seeds every field from the existing
// build and remembers its id so Save issues an update instead of a create.
func (s *Session) StartEditing(intent *EditIntent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if intent == nil {
		s.cfg = BaselineConfig()
		s.services = nil
		s.modelImage = ""
		s.editingBuildID = ""
		s.state = StateEditing
		return
	}

	base := BaselineConfig()
	cfg := intent.Config
	if cfg.ModelID == "" {
		cfg.ModelID = base.ModelID
	}
	if cfg.ModelName == "" {
		cfg.ModelName = base.ModelName
	}
	if cfg.BodyColor == "" {
		cfg.BodyColor = base.BodyColor
	}
	if cfg.Wheels == "" {
		cfg.Wheels = base.Wheels
	}
	if cfg.Spoiler == "" {
		cfg.Spoiler = base.Spoiler
	}
	if cfg.Lights == "" {
		cfg.Lights = base.Lights
	}
	if cfg.Exhaust == "" {
		cfg.Exhaust = base.Exhaust
	}

	s.cfg = cfg
	s.services = append([]string(nil), intent.SelectedServices...)
	s.modelImage = intent.ModelImage
	s.editingBuildID = intent.BuildID
	s.state = StateEditing
	s.failure = ""
}

func (s *Session) SelectModel(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.ModelID = id
	s.cfg.ModelName = name
	s.markEditing()
}

func (s *Session) SetBodyColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.BodyColor = color
	s.markEditing()
}

func (s *Session) SetModelImage(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modelImage = url
	s.markEditing()
}

// SetPart changes exactly one part slot; the others are untouched.
func (s *Session) SetPart(part Part, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch part {
	case PartWheels:
		s.cfg.Wheels = value
	case PartSpoiler:
		s.cfg.Spoiler = value
	case PartLights:
		s.cfg.Lights = value
	case PartExhaust:
		s.cfg.Exhaust = value
	default:
		return ErrUnknownPart
	}

	s.markEditing()
	return nil
}

// ToggleService adds the id if absent and removes it if present.
func (s *Session) ToggleService(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.services {
		if v == id {
			s.services = append(s.services[:i], s.services[i+1:]...)
			s.markEditing()
			return
		}
	}

	s.services = append(s.services, id)
	s.markEditing()
}

// SetCatalogPrices supplies the service price list the estimated total is
// derived from. Prices live in the catalog, never in the session.
func (s *Session) SetCatalogPrices(prices map[string]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices = prices
}

// TotalEstimatedCost recomputes the running total from the current service
// selection. It is never stored client-side; Save sends it only as a snapshot.
func (s *Session) TotalEstimatedCost() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *Session) totalLocked() int64 {
	var total int64
	for _, id := range s.services {
		total += s.prices[id]
	}
	return total
}

// Save persists the session as a build: a create when no build id is
// remembered, an update otherwise. Without an authenticated identity it
// returns ErrLoginRequired before any request is made; the caller is
// expected to redirect to login. Overlapping saves are rejected with
// ErrSaveInFlight rather than interleaved.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()

	if s.saving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}

	if s.identity == nil || !s.identity.Authenticated() {
		s.mu.Unlock()
		return ErrLoginRequired
	}

	payload := BuildPayload{
		CarModel: s.cfg.ModelID,
		Color:    s.cfg.BodyColor,
		SelectedParts: PartSelection{
			Wheels:  s.cfg.Wheels,
			Spoiler: s.cfg.Spoiler,
			Lights:  s.cfg.Lights,
			Exhaust: s.cfg.Exhaust,
		},
		SelectedServices:   append([]string(nil), s.services...),
		ModelName:          s.cfg.ModelName,
		ModelImage:         s.modelImage,
		TotalEstimatedCost: s.totalLocked(),
	}
	buildID := s.editingBuildID

	s.saving = true
	s.state = StateSaving
	s.mu.Unlock()

	var err error
	if buildID == "" {
		_, err = s.store.CreateBuild(ctx, payload)
	} else {
		_, err = s.store.UpdateBuild(ctx, buildID, payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false

	if err != nil {
		s.state = StateFailed
		s.failure = saveFailureMessage(err)
		return err
	}

	s.state = StateSaved
	s.editingBuildID = ""
	s.failure = ""
	return nil
}

// Reset returns to Idle with the baseline configuration, forgetting the
// edited build id and all selected services.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = BaselineConfig()
	s.services = nil
	s.modelImage = ""
	s.editingBuildID = ""
	s.failure = ""
	s.state = StateIdle
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *Session) SelectedServices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.services...)
}

// EditingBuildID is the remembered build id, empty for a fresh draft.
func (s *Session) EditingBuildID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingBuildID
}

// FailureMessage is the server-reported message from the last failed save.
func (s *Session) FailureMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// markEditing moves any settled state back to Editing after a field change.
// A failed save stays retryable: the next mutation clears the failure.
func (s *Session) markEditing() {
	s.state = StateEditing
	s.failure = ""
}

func saveFailureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Unable to connect to server"
}
