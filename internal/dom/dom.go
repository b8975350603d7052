// Package dom defines the DOM query capabilities the extraction engine needs
// and the drivers that provide them.
//
// A Scope is both a query root and a query result: Nth returns a new Scope
// rooted at the matched element, so locators can be chained without knowing
// which engine sits underneath.
package dom

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTimeout reports that navigation or an element wait exceeded its budget.
	ErrTimeout = errors.New("dom: timeout")
	// ErrNoMatch reports an index lookup on a selector with too few matches.
	ErrNoMatch = errors.New("dom: no match")
)

// Scope is a subtree of the document that can be queried
type Scope interface {
	// Count returns the number of elements matching selector inside the scope.
	Count(ctx context.Context, selector string) (int, error)
	// Nth returns the i-th element matching selector as a new scope.
	Nth(ctx context.Context, selector string, i int) (Scope, error)
	// Text returns the rendered text of the first element matching selector.
	// An empty selector reads the scope itself. found is false when nothing matches.
	Text(ctx context.Context, selector string) (text string, found bool, err error)
}

// Document is a Scope that can also wait for content to be rendered
type Document interface {
	Scope
	// WaitFor blocks until selector matches at least once or timeout elapses,
	// in which case it returns an error wrapping ErrTimeout.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error
}

// Page is a navigable Document
type Page interface {
	Document
	// Navigate loads url and waits for it to settle within timeout.
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	Close() error
}

// Browser hands out pages
type Browser interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// IsTimeout reports whether err is a navigation or wait timeout
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
