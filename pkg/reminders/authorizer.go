// FILE: reminders/authorizer.go

package reminders

import (
	"context"
	"sync"
)

// AuthorizationStatus mirrors the platform notification permission states.
type AuthorizationStatus string

const (
	StatusNotDetermined AuthorizationStatus = "NOT_DETERMINED"
	StatusAuthorized    AuthorizationStatus = "AUTHORIZED"
	StatusDenied        AuthorizationStatus = "DENIED"
)

// Authorizer reports and requests permission to post notifications.
// RequestAuthorization must call done exactly once.
type Authorizer interface {
	Status(ctx context.Context) AuthorizationStatus
	RequestAuthorization(ctx context.Context, done func(granted bool, err error))
}

// MemoryAuthorizer is an Authorizer whose answer to a permission request is
// fixed up front. Once answered, later requests repeat the same answer.
type MemoryAuthorizer struct {
	sync.Mutex
	status AuthorizationStatus
	grant  bool
}

// NewMemoryAuthorizer starts in initial and answers requests with grant.
func NewMemoryAuthorizer(initial AuthorizationStatus, grant bool) *MemoryAuthorizer {
	if initial == "" {
		initial = StatusNotDetermined
	}
	return &MemoryAuthorizer{status: initial, grant: grant}
}

func (a *MemoryAuthorizer) Status(ctx context.Context) AuthorizationStatus {
	a.Lock()
	defer a.Unlock()
	return a.status
}

func (a *MemoryAuthorizer) RequestAuthorization(ctx context.Context, done func(granted bool, err error)) {
	a.Lock()
	switch a.status {
	case StatusNotDetermined:
		if a.grant {
			a.status = StatusAuthorized
		} else {
			a.status = StatusDenied
		}
	}
	granted := a.status == StatusAuthorized
	a.Unlock()

	done(granted, nil)
}
