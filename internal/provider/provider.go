// Package provider implements token metadata lookups against external data
// providers, one client per chain, composed by a fallback resolver for
// families where a contract may live on more than one chain.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"token-mention-bot/internal/domain"
)

// DefaultTimeout bounds every outbound provider request.
const DefaultTimeout = 15 * time.Second

// ErrNotFound marks an address the data source does not recognize,
// as opposed to a transport or decoding failure.
var ErrNotFound = errors.New("token not found")

// Client performs a remote metadata lookup for one concrete chain.
// A lookup issues exactly one primary outbound request; no internal retry.
type Client interface {
	// Chain returns the chain this client queries.
	Chain() domain.Chain

	// Lookup returns normalized metadata for address, or a *LookupError.
	// A zero-result response is a not-found failure, never an empty record.
	Lookup(ctx context.Context, address string) (*domain.TokenMetadata, error)
}

// Resolver resolves an address to token metadata, possibly trying several
// chains. Implemented by Single and FallbackResolver.
type Resolver interface {
	Resolve(ctx context.Context, address string) (*domain.TokenMetadata, error)
}

// LookupError is a typed lookup failure carrying enough context to log.
type LookupError struct {
	Provider string
	Chain    domain.Chain
	Address  string
	Err      error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup of %s on %s: %v", e.Provider, e.Address, e.Chain, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// ExhaustedError aggregates per-chain failures after every configured chain
// has been tried. Callers treat it as "not found on any configured chain".
type ExhaustedError struct {
	Address string
	Chains  []domain.Chain
	Errs    []error
}

func (e *ExhaustedError) Error() string {
	names := make([]string, len(e.Chains))
	for i, c := range e.Chains {
		names[i] = c.String()
	}
	return fmt.Sprintf("address %s not resolvable on any chain [%s]", e.Address, strings.Join(names, ", "))
}

func (e *ExhaustedError) Unwrap() []error {
	return e.Errs
}

// IsNotFound reports whether err is a not-found failure rather than a
// transport one.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// newHTTPClient is the shared default transport for provider clients.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}
