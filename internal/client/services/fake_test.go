package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
)

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	mu sync.Mutex

	UpdateRet models.ProfileUpdate
	UpdateErr error
	// Gate, when set, blocks UpdateProfile until it is closed.
	Gate chan struct{}
	// Entered receives a value each time UpdateProfile starts.
	Entered chan struct{}

	GetProfileRet models.Identity
	GetProfileErr error

	PingErr  error
	CloseErr error

	UpdateCalls         int
	LastUpdateName      string
	LastUpdateCred      models.Credential
	LastGetProfileCred  models.Credential
	GetProfileCallCount int
}

func (f *fakeClient) UpdateProfile(ctx context.Context, name string, cred models.Credential) (models.ProfileUpdate, error) {
	f.mu.Lock()
	f.UpdateCalls++
	f.LastUpdateName = name
	f.LastUpdateCred = cred
	gate, entered := f.Gate, f.Entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) GetProfile(ctx context.Context, cred models.Credential) (models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetProfileCallCount++
	f.LastGetProfileCred = cred
	return f.GetProfileRet, f.GetProfileErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.UpdateCalls
}
