// Package test provides infrastructure and utilities for integration testing
// dropletforge.
//
// The package provides:
//
//   - TestEnvironment: a complete setup with a DigitalOcean client, a
//     temporary SSH directory and captured operator input and output
//
//   - FakeAPI: an in-process DigitalOcean API that the real godo client can
//     talk to, so requests are checked as they appear on the wire
//
//   - Suite: a testify suite base that builds a fresh environment per test
//
// Example Usage:
//
//	func TestExample(t *testing.T) {
//	    env := test.NewTestEnvironment(t, test.WithFakeAPI())
//	    defer env.Cleanup()
//
//	    result, err := env.InstanceService().Create(env.Context(), services.CreateRequest{Name: "box"})
//	    // Use env.API to inspect what the provider received
//	}
package test
