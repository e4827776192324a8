// Package mocks provides mock implementations of the DigitalOcean service
// interfaces used by dropletforge.
//
// Each mock implementation follows these principles:
//  1. Implements the same interface as the real component
//  2. Provides configurable behavior through function fields
//  3. Records the requests it receives so tests can assert on them
//  4. Includes Simulate* helpers for common failure scenarios
//
// Example usage:
//
//	mockClient := mocks.NewMockDOClient()
//	mockClient.MockDropletService.QueueGet(
//		mocks.NewDroplet(42, "test-server", "new", ""),
//		mocks.NewDroplet(42, "test-server", "active", "203.0.113.9"),
//	)
package mocks
