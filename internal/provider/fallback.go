package provider

import (
	"context"

	"go.uber.org/zap"

	"token-mention-bot/internal/domain"
)

// single adapts one Client to the Resolver contract, for families with a
// single candidate chain.
type single struct {
	client Client
}

// Single wraps a lone client as a Resolver.
func Single(c Client) Resolver {
	return single{client: c}
}

func (s single) Resolve(ctx context.Context, address string) (*domain.TokenMetadata, error) {
	return s.client.Lookup(ctx, address)
}

// FallbackResolver tries each chain's client strictly in priority order and
// returns the first success. No chain is tried more than once per resolution.
type FallbackResolver struct {
	clients []Client
	log     *zap.Logger
}

// NewFallbackResolver creates a resolver over clients in priority order.
func NewFallbackResolver(log *zap.Logger, clients ...Client) *FallbackResolver {
	return &FallbackResolver{clients: clients, log: log}
}

// Resolve walks the configured chains. A per-chain failure moves to the next
// chain rather than retrying; if every chain fails the result is an
// *ExhaustedError aggregating each chain's failure.
func (r *FallbackResolver) Resolve(ctx context.Context, address string) (*domain.TokenMetadata, error) {
	exhausted := &ExhaustedError{Address: address}

	for _, client := range r.clients {
		meta, err := client.Lookup(ctx, address)
		if err == nil {
			return meta, nil
		}

		r.log.Warn("chain lookup failed, trying next",
			zap.String("address", address),
			zap.String("chain", client.Chain().String()),
			zap.Error(err))

		exhausted.Chains = append(exhausted.Chains, client.Chain())
		exhausted.Errs = append(exhausted.Errs, err)
	}

	return nil, exhausted
}

var _ Resolver = (*FallbackResolver)(nil)
