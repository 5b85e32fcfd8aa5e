package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophprofile/internal/client/client"
	"github.com/dmitrijs2005/gophprofile/internal/client/models"
	"github.com/dmitrijs2005/gophprofile/internal/client/services"
)

// getToken is an indirection used to facilitate testing.
var getToken = GetToken

// Login reads an access token without echo and signs in with it.
func (a *App) Login(ctx context.Context) error {
	token, err := getToken(a.out)
	if err != nil {
		return err
	}

	if err := a.session.SignIn(ctx, models.Credential(token)); err != nil {
		a.logger.Warn(ctx, "login unsuccessful", "error", err)
		fmt.Fprintln(a.out, renderError(loginFailure(err)))
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}

	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, renderSuccess("Signed in as "+a.store.Identity().DisplayName))
	return nil
}

func loginFailure(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable."
	case errors.Is(err, client.ErrUnauthorized):
		return "Token is not valid."
	default:
		return "Login failed."
	}
}

// Logout drops the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, renderError("Logout failed."))
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Show prints the stored profile and the name being edited.
func (a *App) Show(ctx context.Context) error {
	fmt.Fprintln(a.out, renderProfile(a.controller.Identity(), a.controller.Name()))
	return nil
}

// SetName replaces the edited name. The submission status is left as is.
func (a *App) SetName(ctx context.Context, raw string) error {
	a.controller.SetName(raw)
	return nil
}

// Save submits the edited name. Progress and the outcome are printed by
// the status listener.
func (a *App) Save(ctx context.Context) error {
	_, err := a.controller.Submit(ctx)
	if errors.Is(err, services.ErrSubmissionInProgress) {
		fmt.Fprintln(a.out, renderPending("An update is already in progress."))
	}
	return err
}

// Status prints the last submission status.
func (a *App) Status(ctx context.Context) error {
	st := a.controller.Status()
	if st.Phase == models.PhaseIdle {
		fmt.Fprintln(a.out, "No changes submitted yet.")
		return nil
	}
	fmt.Fprintln(a.out, renderStatus(st))
	return nil
}

// Refresh reloads the profile from the service, which also resets the
// edited name.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.session.Refresh(ctx); err != nil {
		a.logger.Warn(ctx, "profile refresh failed", "error", err)
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}
	a.setMode(ModeOnline)
	return nil
}

func (a *App) printStatus(st models.SubmissionStatus) {
	if st.Phase == models.PhaseIdle {
		return
	}
	fmt.Fprintln(a.out, renderStatus(st))
}
