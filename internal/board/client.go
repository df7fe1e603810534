// Package board is the polling client behind the terminal dashboard.
// It fetches the full schedule from the API and classifies it locally.
package board

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusboard/busboard/internal/domain"
)

// Client reads the schedule from a running API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the API rooted at baseURL.
// A nil httpClient selects one with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type busResponse struct {
	ID                 uuid.UUID `json:"id"`
	Origin             string    `json:"origin"`
	SpecialOrigin      *string   `json:"special_origin"`
	Destination        string    `json:"destination"`
	SpecialDestination *string   `json:"special_destination"`
	DepartureTime      time.Time `json:"departure_time"`
	Status             string    `json:"status"`
	IsPaid             bool      `json:"is_paid"`
}

// FetchSchedule returns every bus currently stored by the API.
func (c *Client) FetchSchedule(ctx context.Context) ([]domain.ScheduleEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/buses", nil)
	if err != nil {
		return nil, fmt.Errorf("board.Client.FetchSchedule: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("board.Client.FetchSchedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("board.Client.FetchSchedule: unexpected status %d", resp.StatusCode)
	}

	var body []busResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("board.Client.FetchSchedule: decode: %w", err)
	}

	entries := make([]domain.ScheduleEntry, 0, len(body))
	for _, b := range body {
		entries = append(entries, domain.ScheduleEntry{
			ID:            b.ID,
			Origin:        domain.LocationFromColumns(b.Origin, b.SpecialOrigin),
			Destination:   domain.LocationFromColumns(b.Destination, b.SpecialDestination),
			DepartureTime: b.DepartureTime,
			Status:        b.Status,
			IsPaid:        b.IsPaid,
		})
	}
	return entries, nil
}
