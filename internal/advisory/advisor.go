package advisory

import (
	"context"
	"errors"
)

//go:generate mockgen -source=$GOFILE -destination=advisor_mocks_test.go -package=advisory_test

// ErrAdvisoryUnavailable is the only error the advisory client returns: the remote
// call could not be completed (network, auth, timeout, bad status, empty choices).
var ErrAdvisoryUnavailable = errors.New("advisory service unavailable")

// Prompt is the two-turn message list sent to the advisory service.
type Prompt struct {
	System string
	User   string
}

// Advisor is the remote generative-text capability.
// Send returns the raw reply text, or an error if the call itself failed.
type Advisor interface {
	Send(ctx context.Context, prompt Prompt) (string, error)
}

// Static is an Advisor returning a fixed reply. Used in development and tests.
type Static struct {
	Reply string
	Err   error
}

func (s Static) Send(_ context.Context, _ Prompt) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Reply, nil
}
