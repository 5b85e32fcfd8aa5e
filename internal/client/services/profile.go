// Package services contains the application services of the settings client.
// This file implements ProfileController, the profile-update submission
// controller: validation, the network call, session reconciliation and the
// status the view renders.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophprofile/internal/client/client"
	"github.com/dmitrijs2005/gophprofile/internal/client/form"
	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/session"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
)

// User-facing status messages.
const (
	MsgEmptyName        = "Name cannot be empty."
	MsgUpdated          = "Profile updated successfully!"
	MsgUpdateFailed     = "Failed to update profile."
	MsgNotAuthenticated = "Not authenticated."
	MsgSessionNotSaved  = "Profile updated, but the session could not be saved."
)

var (
	// ErrSubmissionInProgress is returned by Submit when another submission
	// has not resolved yet. The call has no other effect.
	ErrSubmissionInProgress = errors.New("profile update already in progress")

	// ErrEmptyName classifies the local validation failure.
	ErrEmptyName = errors.New("name cannot be empty")
)

// StatusListener receives every status transition.
type StatusListener func(status models.SubmissionStatus)

// ProfileController orchestrates a profile update.
//
// Contract:
//   - Submit validates the edited name, issues at most one transport call,
//     and always ends in exactly one terminal status (Succeeded or Failed).
//   - The session store is written, identity and credential together, only
//     when the service reports success.
//   - While a call is outstanding further Submit calls are rejected with
//     ErrSubmissionInProgress and change nothing.
//   - Editing the name never changes the status.
//
// ProfileController is safe for concurrent use.
type ProfileController struct {
	form   *form.NameForm
	store  session.Store
	client client.Client
	logger logging.Logger

	mu       sync.Mutex
	status   models.SubmissionStatus
	inFlight bool

	listenersMu sync.Mutex
	listeners   map[int]StatusListener
	nextID      int

	unsubscribeStore func()
}

// NewProfileController builds a controller over store and c. The edited
// name starts from the stored identity and follows every identity change.
func NewProfileController(store session.Store, c client.Client, logger logging.Logger) *ProfileController {
	if logger == nil {
		logger = logging.NewNop()
	}
	pc := &ProfileController{
		form:      form.NewNameForm(store.Identity()),
		store:     store,
		client:    c,
		logger:    logger,
		status:    models.Idle(),
		listeners: make(map[int]StatusListener),
	}
	pc.unsubscribeStore = store.Subscribe(pc.form.SyncFromIdentity)
	return pc
}

// Close detaches the controller from the session store.
func (pc *ProfileController) Close() {
	if pc.unsubscribeStore != nil {
		pc.unsubscribeStore()
		pc.unsubscribeStore = nil
	}
}

func (pc *ProfileController) SetName(raw string) { pc.form.SetName(raw) }

func (pc *ProfileController) Name() string { return pc.form.Name() }

func (pc *ProfileController) CanSubmit() bool {
	return pc.form.IsValid() && !pc.Status().InProgress()
}

func (pc *ProfileController) Identity() models.Identity { return pc.store.Identity() }

func (pc *ProfileController) Status() models.SubmissionStatus {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.status
}

// Subscribe registers fn for status transitions and returns a function that
// removes it. Listeners run on the goroutine that caused the transition.
func (pc *ProfileController) Subscribe(fn StatusListener) func() {
	pc.listenersMu.Lock()
	defer pc.listenersMu.Unlock()

	id := pc.nextID
	pc.nextID++
	pc.listeners[id] = fn

	return func() {
		pc.listenersMu.Lock()
		delete(pc.listeners, id)
		pc.listenersMu.Unlock()
	}
}

// Submit runs one profile-update attempt and returns its terminal status.
// Failures are reported through the status, never as an error; the only
// error is ErrSubmissionInProgress.
func (pc *ProfileController) Submit(ctx context.Context) (models.SubmissionStatus, error) {
	pc.mu.Lock()
	if pc.inFlight {
		pc.mu.Unlock()
		pc.logger.Debug(ctx, "profile update ignored: already submitting")
		return models.Submitting(), ErrSubmissionInProgress
	}

	if !pc.form.IsValid() {
		st := models.Failed(MsgEmptyName)
		pc.status = st
		pc.mu.Unlock()

		pc.logger.Info(ctx, "profile update rejected locally", "error", ErrEmptyName)
		pc.publish(st)
		return st, nil
	}

	credential := pc.store.Credential()
	if credential.Empty() {
		st := models.Failed(MsgNotAuthenticated)
		pc.status = st
		pc.mu.Unlock()

		pc.logger.Warn(ctx, "profile update without credential", "error", session.ErrNoCredential)
		pc.publish(st)
		return st, nil
	}

	name := pc.form.Trimmed()
	pc.inFlight = true
	pc.status = models.Submitting()
	pc.mu.Unlock()
	pc.publish(models.Submitting())

	st := pc.send(ctx, name, credential)

	pc.mu.Lock()
	pc.status = st
	pc.inFlight = false
	pc.mu.Unlock()

	pc.publish(st)
	return st, nil
}

func (pc *ProfileController) send(ctx context.Context, name string, credential models.Credential) models.SubmissionStatus {
	logger := pc.logger.With("user_id", pc.store.Identity().ID)
	logger.Info(ctx, "profile update started")

	update, err := pc.client.UpdateProfile(ctx, name, credential)
	if err != nil {
		logger.Warn(ctx, "profile update failed", "error", err)
		return models.Failed(failureMessage(err))
	}

	if err := pc.store.Update(ctx, update.Identity, update.Credential); err != nil {
		logger.Error(ctx, "session write after profile update failed", "error", err)
		return models.Failed(MsgSessionNotSaved)
	}

	logger.Info(ctx, "profile updated")
	return models.Succeeded(MsgUpdated)
}

func (pc *ProfileController) publish(st models.SubmissionStatus) {
	pc.listenersMu.Lock()
	fns := make([]StatusListener, 0, len(pc.listeners))
	for id := 0; id < pc.nextID; id++ {
		if fn, ok := pc.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	pc.listenersMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// failureMessage picks the most specific message available for err.
func failureMessage(err error) string {
	var rej *client.RejectionError
	if errors.As(err, &rej) && rej.Reason != "" {
		return rej.Reason
	}
	if errors.Is(err, client.ErrUnauthorized) {
		return MsgNotAuthenticated
	}
	return MsgUpdateFailed
}
