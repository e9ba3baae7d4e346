package hyrule

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public Hyrule Compendium API endpoint, version 2.
const DefaultBaseURL = "https://botw-compendium.herokuapp.com/api/v2"

// Client wraps the Hyrule Compendium API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new compendium client. An empty baseURL selects the
// public v2 API.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  options.userAgent,
		logger:     logger,
	}, nil
}

// apiResponse is the envelope every compendium endpoint wraps its payload in.
type apiResponse struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// doRequest performs a GET against the API and returns the raw body.
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().Str("url", requestURL).Msg("Requesting compendium data")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Path:       "/" + path,
			Body:       string(body),
		}
	}

	return body, nil
}

// fetch performs a request and decodes the envelope's data into v. A
// non-empty message field means the API found nothing for the path.
func (c *Client) fetch(ctx context.Context, path string, v any) error {
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return err
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if envelope.Message != "" {
		return fmt.Errorf("%w for /%s: %s", ErrNoData, path, envelope.Message)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

// fetchEntry fetches a single typed entry and rejects empty payloads, which
// the API sometimes returns instead of a 404.
func (c *Client) fetchEntry(ctx context.Context, path string, v Entry) error {
	if err := c.fetch(ctx, path, v); err != nil {
		return err
	}
	if v.Core().isZero() {
		return fmt.Errorf("%w for /%s", ErrNoData, path)
	}
	return nil
}

func entryPath(id Identifier, mode Mode) string {
	if mode == ModeMaster {
		return "master_mode/entry/" + id.PathSegment()
	}
	return "entry/" + id.PathSegment()
}

// TestConnection verifies the client can reach the compendium API.
func (c *Client) TestConnection(ctx context.Context) error {
	// Entry 1 (horse) has been stable across API versions.
	if _, err := c.Entry(ctx, ByID(1)); err != nil {
		return fmt.Errorf("failed to connect to compendium API: %w", err)
	}
	return nil
}

// Entry fetches a single entry of any category. The concrete type of the
// returned Entry depends on the entry's category tag.
func (c *Client) Entry(ctx context.Context, id Identifier) (Entry, error) {
	var raw json.RawMessage
	if err := c.fetch(ctx, entryPath(id, ModeStandard), &raw); err != nil {
		return nil, err
	}
	return DecodeEntry(raw)
}

// Monster fetches a monster entry by identifier.
func (c *Client) Monster(ctx context.Context, id Identifier) (*MonsterEntry, error) {
	var entry MonsterEntry
	if err := c.fetchEntry(ctx, entryPath(id, ModeStandard), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// MasterModeMonster fetches a monster that exists only in master mode.
func (c *Client) MasterModeMonster(ctx context.Context, id Identifier) (*MonsterEntry, error) {
	var entry MonsterEntry
	if err := c.fetchEntry(ctx, entryPath(id, ModeMaster), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Creature fetches a creature entry by identifier.
func (c *Client) Creature(ctx context.Context, id Identifier) (*CreatureEntry, error) {
	var entry CreatureEntry
	if err := c.fetchEntry(ctx, entryPath(id, ModeStandard), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Material fetches a material entry by identifier.
func (c *Client) Material(ctx context.Context, id Identifier) (*MaterialEntry, error) {
	var entry MaterialEntry
	if err := c.fetchEntry(ctx, entryPath(id, ModeStandard), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Equipment fetches an equipment entry by identifier.
func (c *Client) Equipment(ctx context.Context, id Identifier) (*EquipmentEntry, error) {
	var entry EquipmentEntry
	if err := c.fetchEntry(ctx, entryPath(id, ModeStandard), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Treasure fetches a treasure entry by identifier.
func (c *Client) Treasure(ctx context.Context, id Identifier) (*TreasureEntry, error) {
	var entry TreasureEntry
	if err := c.fetchEntry(ctx, entryPath(id, ModeStandard), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Category fetches every entry of a single category. Creatures keep the
// food / non-food split the API returns them in.
func (c *Client) Category(ctx context.Context, cat Category) (*CategoryEntries, error) {
	path := "category/" + cat.String()
	result := &CategoryEntries{Category: cat}

	switch cat {
	case CategoryCreatures:
		var creatures CreatureEntries
		if err := c.fetch(ctx, path, &creatures); err != nil {
			return nil, err
		}
		result.Creatures = &creatures
	case CategoryMonsters:
		if err := c.fetch(ctx, path, &result.Monsters); err != nil {
			return nil, err
		}
	case CategoryMaterials:
		if err := c.fetch(ctx, path, &result.Materials); err != nil {
			return nil, err
		}
	case CategoryEquipment:
		if err := c.fetch(ctx, path, &result.Equipment); err != nil {
			return nil, err
		}
	case CategoryTreasure:
		if err := c.fetch(ctx, path, &result.Treasure); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(cat))
	}

	c.logger.Debug().
		Str("category", cat.String()).
		Int("count", result.Count()).
		Msg("Retrieved category entries")

	return result, nil
}

// AllEntries fetches every standard-mode entry in one request.
func (c *Client) AllEntries(ctx context.Context) (*AllEntries, error) {
	var all AllEntries
	if err := c.fetch(ctx, "all", &all); err != nil {
		return nil, err
	}
	return &all, nil
}

// AllMasterModeEntries fetches every master-mode entry. The compendium only
// tracks monsters in master mode.
func (c *Client) AllMasterModeEntries(ctx context.Context) ([]MonsterEntry, error) {
	var monsters []MonsterEntry
	if err := c.fetch(ctx, "master_mode/all", &monsters); err != nil {
		return nil, err
	}
	return monsters, nil
}

// DownloadImage fetches the image an entry links to.
func (c *Client) DownloadImage(ctx context.Context, entry Entry) ([]byte, error) {
	core := entry.Core()
	if core.Image == "" {
		return nil, fmt.Errorf("%w: entry %q has no image", ErrNoData, core.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, core.Image, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Path: core.Image}
	}

	return io.ReadAll(resp.Body)
}

// DecodeEntry decodes a single entry payload, dispatching on its category
// tag. An unrecognized tag is an error.
func DecodeEntry(data []byte) (Entry, error) {
	var probe struct {
		Category Category `json:"category"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse entry: %w", err)
	}

	if probe.Category == "" {
		return nil, fmt.Errorf("%w: entry payload has no category", ErrNoData)
	}

	var entry Entry
	switch probe.Category {
	case CategoryMonsters:
		entry = &MonsterEntry{}
	case CategoryCreatures:
		entry = &CreatureEntry{}
	case CategoryMaterials:
		entry = &MaterialEntry{}
	case CategoryEquipment:
		entry = &EquipmentEntry{}
	case CategoryTreasure:
		entry = &TreasureEntry{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(probe.Category))
	}

	if err := json.Unmarshal(data, entry); err != nil {
		return nil, fmt.Errorf("failed to parse %s entry: %w", probe.Category, err)
	}
	if entry.Core().isZero() {
		return nil, fmt.Errorf("%w: entry payload is empty", ErrNoData)
	}
	return entry, nil
}
