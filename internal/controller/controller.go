// Package controller owns the fetch/create/update/delete lifecycle for one
// asset resource: the list snapshot, client-side search, and modal form
// state. Every list a controller holds is a full snapshot of server state as
// of the last fetch; after any mutation the controller discards it and
// re-fetches rather than patching locally, so server-assigned fields never
// diverge.
package controller

import (
	"context"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/louisbranch/assetdeck/internal/api"
	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
)

// Phase tracks where a controller is in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseLoadError
	PhaseSubmitting
	PhaseDeleting
)

// String renders the phase for logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseLoadError:
		return "load-error"
	case PhaseSubmitting:
		return "submitting"
	case PhaseDeleting:
		return "deleting"
	default:
		return "unknown"
	}
}

// Form holds the editable field state for one create or edit dialog. Values
// are keyed by wire field name; ImagePreview carries the existing stored
// image reference when editing.
type Form struct {
	Values       map[string]string
	ImagePreview string
}

func (f Form) clone() Form {
	values := make(map[string]string, len(f.Values))
	for key, value := range f.Values {
		values[key] = value
	}
	return Form{Values: values, ImagePreview: f.ImagePreview}
}

// Resource binds the typed API operations and form mapping for one entity
// type.
type Resource[T any] struct {
	Name       string
	List       func(ctx context.Context) ([]T, error)
	Create     func(ctx context.Context, record T, file *api.Upload) (api.MutationResult[T], error)
	Update     func(ctx context.Context, id string, record T, file *api.Upload) (api.MutationResult[T], error)
	Delete     func(ctx context.Context, id string) error
	ID         func(T) string
	SearchText func(T) string
	ToForm     func(T) Form
	FromForm   func(Form) (T, error)
}

// Controller drives one resource's list and form state. Operations are
// serial by design: mutations re-fetch before the next one starts, and a
// submit or delete is rejected while another is outstanding.
type Controller[T any] struct {
	res Resource[T]

	mu        sync.Mutex
	phase     Phase
	items     []T
	lastError string
	notice    string
	form      *Form
	editID    string
}

// New creates a controller for the given resource bindings.
func New[T any](res Resource[T]) *Controller[T] {
	return &Controller[T]{res: res, phase: PhaseIdle}
}

// Phase returns the current lifecycle phase.
func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Items returns a copy of the loaded snapshot. After a failed load it is
// empty: callers show zero rows plus the error, never stale data.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// LastError returns the message of the most recent failure, if any.
func (c *Controller[T]) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// Notice returns the last server confirmation message. Callers surface it
// verbatim and never parse it.
func (c *Controller[T]) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// Load fetches the full list snapshot. A failure settles the controller
// into the load-error phase with an empty list.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseLoading || c.phase == PhaseSubmitting || c.phase == PhaseDeleting {
		return apperrors.New(apperrors.CodeSubmitInFlight, "an operation is already in progress")
	}
	return c.reload(ctx)
}

// reload runs the list fetch. Callers must hold c.mu.
func (c *Controller[T]) reload(ctx context.Context) error {
	c.phase = PhaseLoading
	c.items = nil
	items, err := c.res.List(ctx)
	if err != nil {
		c.phase = PhaseLoadError
		c.lastError = apperrors.MessageOf(err)
		return err
	}
	c.phase = PhaseLoaded
	c.items = items
	c.lastError = ""
	return nil
}

// Search filters the loaded snapshot by a case- and diacritic-insensitive
// substring match over the resource's designated text fields. It is purely
// client-side and never re-fetches; an empty query returns the full
// snapshot.
func (c *Controller[T]) Search(text string) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if text == "" {
		return append([]T(nil), c.items...)
	}

	pattern := search.New(language.Und, search.Loose).CompileString(text)
	var matched []T
	for _, item := range c.items {
		if start, _ := pattern.IndexString(c.res.SearchText(item)); start >= 0 {
			matched = append(matched, item)
		}
	}
	return matched
}

// OpenCreateForm initializes empty form state with no edit target.
func (c *Controller[T]) OpenCreateForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = &Form{Values: map[string]string{}}
	c.editID = ""
}

// OpenEditForm seeds form state from an existing record, normalizing any
// server-specific encodings into the form's input shape and carrying the
// stored image reference as the attachment preview.
func (c *Controller[T]) OpenEditForm(record T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	form := c.res.ToForm(record)
	c.form = &form
	c.editID = c.res.ID(record)
}

// CloseForm discards any open form state.
func (c *Controller[T]) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = nil
	c.editID = ""
}

// SetValue updates one form field. The form must be open.
func (c *Controller[T]) SetValue(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form == nil {
		return apperrors.New(apperrors.CodeFormNotOpen, "no form is open")
	}
	c.form.Values[key] = value
	return nil
}

// FormSnapshot returns a copy of the open form state for rendering.
func (c *Controller[T]) FormSnapshot() (Form, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form == nil {
		return Form{}, false
	}
	return c.form.clone(), true
}

// Submit validates the open form and dispatches a create or update
// depending on whether an edit target is set. Validation failures never
// reach the network. On success the form closes and the list re-fetches; on
// failure the form stays open with its values preserved for correction.
func (c *Controller[T]) Submit(ctx context.Context, file *api.Upload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form == nil {
		return apperrors.New(apperrors.CodeFormNotOpen, "no form is open")
	}
	if c.phase == PhaseSubmitting || c.phase == PhaseDeleting || c.phase == PhaseLoading {
		return apperrors.New(apperrors.CodeSubmitInFlight, "a submission is already in progress")
	}

	record, err := c.res.FromForm(*c.form)
	if err != nil {
		c.lastError = apperrors.MessageOf(err)
		return err
	}

	previous := c.phase
	c.phase = PhaseSubmitting

	var result api.MutationResult[T]
	if c.editID == "" {
		result, err = c.res.Create(ctx, record, file)
	} else {
		result, err = c.res.Update(ctx, c.editID, record, file)
	}
	if err != nil {
		c.phase = previous
		c.lastError = apperrors.MessageOf(err)
		return err
	}

	c.notice = result.Message
	c.form = nil
	c.editID = ""
	return c.reload(ctx)
}

// ConfirmDelete dispatches a delete only after the confirmation gesture
// reports approval. On failure the loaded snapshot is left untouched: the
// record stays visible because the client never speculatively removes it.
func (c *Controller[T]) ConfirmDelete(ctx context.Context, id string, confirm func() bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseSubmitting || c.phase == PhaseDeleting || c.phase == PhaseLoading {
		return apperrors.New(apperrors.CodeSubmitInFlight, "an operation is already in progress")
	}
	if c.phase != PhaseLoaded {
		return apperrors.New(apperrors.CodeListNotLoaded, "list is not loaded")
	}
	if confirm == nil || !confirm() {
		return apperrors.New(apperrors.CodeDeleteNotConfirmed, "delete was not confirmed")
	}

	c.phase = PhaseDeleting
	if err := c.res.Delete(ctx, id); err != nil {
		c.phase = PhaseLoaded
		c.lastError = apperrors.MessageOf(err)
		return err
	}
	return c.reload(ctx)
}
