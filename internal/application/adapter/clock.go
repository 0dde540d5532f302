// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock abstracts the current time so schedulers and usecases can be tested
// against a fixed instant.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}
