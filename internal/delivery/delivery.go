// Package delivery defines the contract every transport surface implements.
package delivery

import "context"

// Delivery is a long-running server surface (HTTP today) started by the
// application entry point.
type Delivery interface {
	// Serve blocks until the server stops or fails to start.
	Serve(ctx context.Context) error
}
