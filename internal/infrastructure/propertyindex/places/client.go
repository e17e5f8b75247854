// Package places provides a property index and geocoder backed by an
// external places HTTP API.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/infrastructure/config"
)

const httpTimeout = 10 * time.Second

// Client queries a places API for existing properties near a point and
// for address geocoding.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a places API client.
func NewClient(cfg config.PlacesConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("places base_url is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("places api_key is required")
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: httpTimeout},
	}, nil
}

// placesResponse mirrors the top-level nearby-search JSON response.
type placesResponse struct {
	Results []placesResult `json:"results"`
}

// placesResult mirrors a single place listing.
type placesResult struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// geocodeResponse mirrors the geocoding JSON response.
type geocodeResponse struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Found bool    `json:"found"`
}

// FindPropertiesNear returns the properties the API reports within
// radiusMeters of the given coordinates. Any transport, status or decode
// failure surfaces as a *entities.GeoLookupError.
func (c *Client) FindPropertiesNear(ctx context.Context, lat, lon, radiusMeters float64) ([]entities.ExistingProperty, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("radius", strconv.FormatFloat(radiusMeters, 'f', -1, 64))

	body, err := c.get(ctx, "/places/nearby", params)
	if err != nil {
		return nil, &entities.GeoLookupError{Provider: "places", Err: err}
	}

	var apiResp placesResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &entities.GeoLookupError{Provider: "places", Err: fmt.Errorf("json unmarshal: %w", err)}
	}

	props := make([]entities.ExistingProperty, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		props = append(props, entities.ExistingProperty{
			ID:   r.ID,
			Name: r.Name,
			Lat:  r.Lat,
			Lon:  r.Lon,
		})
	}

	return props, nil
}

// Geocode resolves a street address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (entities.Location, error) {
	params := url.Values{}
	params.Set("address", address)

	body, err := c.get(ctx, "/geocode", params)
	if err != nil {
		return entities.Location{}, &entities.GeoLookupError{Provider: "places", Err: err}
	}

	var apiResp geocodeResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return entities.Location{}, &entities.GeoLookupError{Provider: "places", Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	if !apiResp.Found {
		return entities.Location{}, &entities.GeoLookupError{Provider: "places", Err: fmt.Errorf("address not found: %q", address)}
	}

	return entities.Location{Lat: apiResp.Lat, Lon: apiResp.Lon}, nil
}

// get performs an authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API returned %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
