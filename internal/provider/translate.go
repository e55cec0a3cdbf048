package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"token-mention-bot/internal/domain"
)

// DefaultTranslateBaseURL is the public Google translate endpoint.
const DefaultTranslateBaseURL = "https://translate.googleapis.com"

// Translator glosses CJK token names into English. It is strictly
// best-effort: callers must swallow its failures.
type Translator struct {
	baseURL string
	client  *http.Client
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithTranslatorBaseURL overrides the endpoint. Used by tests.
func WithTranslatorBaseURL(u string) TranslatorOption {
	return func(t *Translator) {
		t.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithTranslatorHTTPClient sets a custom http.Client.
func WithTranslatorHTTPClient(c *http.Client) TranslatorOption {
	return func(t *Translator) {
		t.client = c
	}
}

// NewTranslator creates a Translator against the public endpoint.
func NewTranslator(opts ...TranslatorOption) *Translator {
	t := &Translator{
		baseURL: DefaultTranslateBaseURL,
		client:  newHTTPClient(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate returns the English gloss of text.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/translate_a/single?client=gtx&sl=auto&tl=en&dt=t&q=%s",
		t.baseURL, url.QueryEscape(text),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	return parseTranslation(body)
}

// parseTranslation extracts the translated segments from the endpoint's
// nested-array payload: [[["gloss","original",...],...],...].
func parseTranslation(body []byte) (string, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(outer) == 0 {
		return "", fmt.Errorf("empty translation payload")
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(outer[0], &segments); err != nil {
		return "", fmt.Errorf("unmarshal segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		var parts []json.RawMessage
		if err := json.Unmarshal(seg, &parts); err != nil || len(parts) == 0 {
			continue
		}
		var gloss string
		if err := json.Unmarshal(parts[0], &gloss); err != nil {
			continue
		}
		sb.WriteString(gloss)
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("no translated segments in payload")
	}
	return result, nil
}

// cjkMarks covers script-Common marks that occur inside CJK names and are
// absent from the script tables: 々 (iteration mark), ・ (middle dot) and
// ー (prolonged sound mark).
var cjkMarks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3005, Hi: 0x3005, Stride: 1},
		{Lo: 0x30fb, Hi: 0x30fc, Stride: 1},
	},
}

// cjkRanges covers the scripts a name must consist of to warrant a gloss.
var cjkRanges = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
	cjkMarks,
}

// isCJKName reports whether name is composed entirely of CJK-range runes.
func isCJKName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsOneOf(cjkRanges, r) {
			return false
		}
	}
	return true
}

// glossName appends an English gloss to a fully-CJK display name as
// "{original} ({translation})". Translation failures leave the name
// unmodified and never fail the primary lookup.
func glossName(ctx context.Context, tr *Translator, log *zap.Logger, meta *domain.TokenMetadata) {
	if tr == nil || !isCJKName(meta.Name) {
		return
	}

	gloss, err := tr.Translate(ctx, meta.Name)
	if err != nil {
		log.Debug("name translation failed",
			zap.String("address", meta.ID),
			zap.String("name", meta.Name),
			zap.Error(err))
		return
	}

	meta.Name = fmt.Sprintf("%s (%s)", meta.Name, gloss)
}
