package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"travelbuddy/internal/models"
	"travelbuddy/internal/observability"
)

// HotelService proxies hotel search to the TripAdvisor RapidAPI. The API
// key stays server-side; clients never see it.
type HotelService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	apiHost string
}

// NewHotelService returns a HotelService with a sensible default client.
func NewHotelService(baseURL, apiKey, apiHost string) *HotelService {
	return &HotelService{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		apiHost: apiHost,
	}
}

// NewHotelServiceWithClient is used by tests to inject a client and server.
func NewHotelServiceWithClient(client *http.Client, baseURL, apiKey, apiHost string) *HotelService {
	return &HotelService{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		apiHost: apiHost,
	}
}

// HotelSearchInput carries a hotel search request.
type HotelSearchInput struct {
	Query    string
	CheckIn  string
	CheckOut string
}

type locationResponse struct {
	Data []struct {
		GeoID json.Number `json:"geoId"`
	} `json:"data"`
}

// HotelSearchResult is the upstream hotel payload, passed through as-is.
type HotelSearchResult struct {
	Data json.RawMessage `json:"data"`
}

// SearchHotels resolves the query to a geo ID, then fetches hotels for it.
func (s *HotelService) SearchHotels(ctx context.Context, input HotelSearchInput) (*HotelSearchResult, error) {
	if input.Query == "" {
		return nil, models.NewValidationError("Search query is required")
	}

	geoID, err := s.lookupGeoID(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("geoId", geoID)
	params.Set("checkIn", input.CheckIn)
	params.Set("checkOut", input.CheckOut)
	params.Set("pageNumber", "1")
	params.Set("adults", "1")
	params.Set("currencyCode", "USD")

	var result HotelSearchResult
	if err := s.get(ctx, "/api/v1/hotels/searchHotels", params, &result); err != nil {
		return nil, err
	}

	observability.ExternalAPICalls.WithLabelValues("tripadvisor", "ok").Inc()
	return &result, nil
}

func (s *HotelService) lookupGeoID(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("query", query)

	var loc locationResponse
	if err := s.get(ctx, "/api/v1/hotels/searchLocation", params, &loc); err != nil {
		return "", err
	}
	if len(loc.Data) == 0 {
		return "", models.NewNotFoundError("Location", query)
	}
	return loc.Data[0].GeoID.String(), nil
}

func (s *HotelService) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return models.NewInternalError(err)
	}
	req.Header.Set("x-rapidapi-key", s.apiKey)
	req.Header.Set("x-rapidapi-host", s.apiHost)

	resp, err := s.client.Do(req)
	if err != nil {
		observability.ExternalAPICalls.WithLabelValues("tripadvisor", "error").Inc()
		return models.NewInternalError(fmt.Errorf("hotel API request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.ExternalAPICalls.WithLabelValues("tripadvisor", "error").Inc()
		return models.NewInternalError(fmt.Errorf("hotel API returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return models.NewInternalError(fmt.Errorf("decode hotel API response: %w", err))
	}
	return nil
}
