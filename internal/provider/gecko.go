package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"token-mention-bot/internal/domain"
)

// DefaultGeckoBaseURL is the public GeckoTerminal API host.
const DefaultGeckoBaseURL = "https://api.geckoterminal.com"

// geckoNetworks maps chains to GeckoTerminal network slugs.
var geckoNetworks = map[domain.Chain]string{
	domain.ChainBSC:  "bsc",
	domain.ChainBase: "base",
}

// GeckoClient looks up EVM tokens on one concrete chain through the
// GeckoTerminal API.
type GeckoClient struct {
	baseURL    string
	chain      domain.Chain
	network    string
	client     *http.Client
	translator *Translator
	log        *zap.Logger
}

// GeckoOption configures a GeckoClient.
type GeckoOption func(*GeckoClient)

// WithGeckoBaseURL overrides the API host. Used by tests.
func WithGeckoBaseURL(u string) GeckoOption {
	return func(c *GeckoClient) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithGeckoHTTPClient sets a custom http.Client.
func WithGeckoHTTPClient(hc *http.Client) GeckoOption {
	return func(c *GeckoClient) {
		c.client = hc
	}
}

// WithGeckoTranslator enables best-effort CJK name glossing.
func WithGeckoTranslator(tr *Translator) GeckoOption {
	return func(c *GeckoClient) {
		c.translator = tr
	}
}

// NewGeckoClient creates a lookup client for one EVM chain.
func NewGeckoClient(chain domain.Chain, log *zap.Logger, opts ...GeckoOption) *GeckoClient {
	network, ok := geckoNetworks[chain]
	if !ok {
		network = chain.String()
	}
	c := &GeckoClient{
		baseURL: DefaultGeckoBaseURL,
		chain:   chain,
		network: network,
		client:  newHTTPClient(),
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chain returns the chain this client queries.
func (c *GeckoClient) Chain() domain.Chain {
	return c.chain
}

// geckoResponse is the token endpoint envelope.
type geckoResponse struct {
	Data *struct {
		Attributes struct {
			Address      string  `json:"address"`
			Name         string  `json:"name"`
			Symbol       string  `json:"symbol"`
			MarketCapUSD *string `json:"market_cap_usd"`
		} `json:"attributes"`
	} `json:"data"`
}

// Lookup queries the GeckoTerminal token endpoint for the contract address.
func (c *GeckoClient) Lookup(ctx context.Context, address string) (*domain.TokenMetadata, error) {
	endpoint := fmt.Sprintf("%s/api/v2/networks/%s/tokens/%s", c.baseURL, c.network, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.failure(address, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.failure(address, fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, c.failure(address, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.failure(address, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.failure(address, fmt.Errorf("read response: %w", err))
	}

	var envelope geckoResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, c.failure(address, fmt.Errorf("unmarshal response: %w", err))
	}
	if envelope.Data == nil {
		return nil, c.failure(address, ErrNotFound)
	}

	attrs := envelope.Data.Attributes
	meta := &domain.TokenMetadata{
		ID:     attrs.Address,
		Name:   attrs.Name,
		Symbol: attrs.Symbol,
		Chain:  c.chain,
	}
	if meta.ID == "" {
		meta.ID = address
	}
	if attrs.MarketCapUSD != nil {
		cap, err := decimal.NewFromString(*attrs.MarketCapUSD)
		if err != nil {
			return nil, c.failure(address, fmt.Errorf("parse market cap %q: %w", *attrs.MarketCapUSD, err))
		}
		meta.MarketCap = &cap
	}
	glossName(ctx, c.translator, c.log, meta)

	return meta, nil
}

func (c *GeckoClient) failure(address string, err error) *LookupError {
	return &LookupError{
		Provider: "geckoterminal",
		Chain:    c.chain,
		Address:  address,
		Err:      err,
	}
}

var _ Client = (*GeckoClient)(nil)
