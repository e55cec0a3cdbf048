package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"token-mention-bot/internal/domain"
)

// DefaultJupiterBaseURL is the public Jupiter token API host.
const DefaultJupiterBaseURL = "https://lite-api.jup.ag"

// JupiterClient looks up Solana tokens through the Jupiter search API.
type JupiterClient struct {
	baseURL    string
	client     *http.Client
	translator *Translator
	log        *zap.Logger
}

// JupiterOption configures a JupiterClient.
type JupiterOption func(*JupiterClient)

// WithJupiterBaseURL overrides the API host. Used by tests.
func WithJupiterBaseURL(u string) JupiterOption {
	return func(c *JupiterClient) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithJupiterHTTPClient sets a custom http.Client.
func WithJupiterHTTPClient(hc *http.Client) JupiterOption {
	return func(c *JupiterClient) {
		c.client = hc
	}
}

// WithJupiterTranslator enables best-effort CJK name glossing.
func WithJupiterTranslator(tr *Translator) JupiterOption {
	return func(c *JupiterClient) {
		c.translator = tr
	}
}

// NewJupiterClient creates a Solana token lookup client.
func NewJupiterClient(log *zap.Logger, opts ...JupiterOption) *JupiterClient {
	c := &JupiterClient{
		baseURL: DefaultJupiterBaseURL,
		client:  newHTTPClient(),
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chain returns the chain this client queries.
func (c *JupiterClient) Chain() domain.Chain {
	return domain.ChainSolana
}

// jupiterToken is one entry of the search response.
type jupiterToken struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Symbol string           `json:"symbol"`
	Mcap   *decimal.Decimal `json:"mcap"`
}

// Lookup queries the Jupiter search endpoint for the mint address.
func (c *JupiterClient) Lookup(ctx context.Context, address string) (*domain.TokenMetadata, error) {
	endpoint := fmt.Sprintf("%s/tokens/v2/search?query=%s", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.failure(address, fmt.Errorf("create request: %w", err))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.failure(address, fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.failure(address, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.failure(address, fmt.Errorf("read response: %w", err))
	}

	var tokens []jupiterToken
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, c.failure(address, fmt.Errorf("unmarshal response: %w", err))
	}
	if len(tokens) == 0 {
		return nil, c.failure(address, ErrNotFound)
	}

	// The closest match sits at the end of the result list.
	tok := tokens[len(tokens)-1]

	meta := &domain.TokenMetadata{
		ID:        tok.ID,
		Name:      tok.Name,
		Symbol:    tok.Symbol,
		MarketCap: tok.Mcap,
		Chain:     domain.ChainSolana,
	}
	glossName(ctx, c.translator, c.log, meta)

	return meta, nil
}

func (c *JupiterClient) failure(address string, err error) *LookupError {
	return &LookupError{
		Provider: "jupiter",
		Chain:    domain.ChainSolana,
		Address:  address,
		Err:      err,
	}
}

var _ Client = (*JupiterClient)(nil)
