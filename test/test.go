package test

import (
	"context"
	"time"
)

// DefaultTestTimeout is the default timeout for test environments.
const DefaultTestTimeout = 30 * time.Second

// DefaultPollTimeout bounds droplet state polling in test environments.
const DefaultPollTimeout = 2 * time.Second

// Option represents a configuration option for the test environment.
type Option func(*TestEnvironment)

// WithTimeout returns an option that sets the test environment timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(env *TestEnvironment) {
		if env.cancelFunc != nil {
			env.cancelFunc()
		}
		env.ctx, env.cancelFunc = context.WithTimeout(context.Background(), timeout)
	}
}

// WithCleanupFunc returns an option that adds a cleanup function to be
// called when the environment is cleaned up.
func WithCleanupFunc(cleanup func()) Option {
	return func(env *TestEnvironment) {
		oldCleanup := env.cleanup
		env.cleanup = func() {
			if cleanup != nil {
				cleanup()
			}
			if oldCleanup != nil {
				oldCleanup()
			}
		}
	}
}

// WithInput returns an option that feeds input to every prompt, one answer per line.
func WithInput(input string) Option {
	return func(env *TestEnvironment) {
		env.input = input
	}
}

// WithPollTimeout returns an option that bounds droplet state polling.
func WithPollTimeout(timeout time.Duration) Option {
	return func(env *TestEnvironment) {
		env.pollTimeout = timeout
	}
}

// WithFakeAPI returns an option that talks to an in-process fake DigitalOcean
// API through the real godo client instead of the function mocks.
func WithFakeAPI() Option {
	return func(env *TestEnvironment) {
		env.useFakeAPI = true
	}
}
