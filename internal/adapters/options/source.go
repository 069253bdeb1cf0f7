// Package options implements the upstream option source for choice
// fields. Fetches are best-effort: the engine degrades any failure
// here to an empty option list.
package options

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/ports"
)

// maxBodySize caps the response we are willing to parse.
const maxBodySize = 1 << 20

// Source implements ports.OptionSource over HTTP, extracting
// (value, label) pairs from a JSON response via path specs.
type Source struct {
	client *http.Client
}

var _ ports.OptionSource = (*Source)(nil)

// NewSource creates an option source. A nil client gets a default
// with its own transport-level timeout; the engine additionally
// bounds each call through the request context.
func NewSource(client *http.Client) *Source {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Source{client: client}
}

// Fetch retrieves and extracts the option list for one endpoint.
func (s *Source) Fetch(ctx context.Context, endpoint *domain.OptionsEndpoint) ([]domain.Option, error) {
	if endpoint == nil || endpoint.URL == "" {
		return nil, fmt.Errorf("option endpoint has no url")
	}

	url := endpoint.URL
	if endpoint.Query != "" {
		url += "?" + endpoint.Query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build option request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("option fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("option fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read option response: %w", err)
	}

	return extract(body, endpoint)
}

// extract walks the JSON body with the endpoint's path specs.
func extract(body []byte, endpoint *domain.OptionsEndpoint) ([]domain.Option, error) {
	items := gjson.ParseBytes(body)
	if endpoint.ItemsPath != "" {
		items = items.Get(endpoint.ItemsPath)
	}
	if !items.IsArray() {
		return nil, fmt.Errorf("option response is not an array at %q", endpoint.ItemsPath)
	}

	var out []domain.Option
	items.ForEach(func(_, item gjson.Result) bool {
		value := item.Get(endpoint.ValuePath).String()
		if value == "" {
			return true // skip entries without a value
		}
		label := item.Get(endpoint.LabelPath).String()
		if label == "" {
			label = value
		}
		out = append(out, domain.Option{Value: value, Label: label})
		return true
	})
	return out, nil
}
