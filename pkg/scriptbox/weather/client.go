package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cognicore/scriptbox/internal/logger"
	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Client calls the Weatherbit current-conditions endpoint.
type Client struct {
	BaseURL string
	APIKey  string

	HTTPClient *http.Client
	Logger     *logger.Logger
}

type currentResponse struct {
	Minutely []minuteRecord `json:"minutely"`
	Data     []struct {
		CityName string `json:"city_name"`
	} `json:"data"`
	Error string `json:"error"`
}

type minuteRecord struct {
	TimestampLocal string   `json:"timestamp_local"`
	TimestampUTC   string   `json:"timestamp_utc"`
	Temp           *float64 `json:"temp"`
	Precip         float64  `json:"precip"`
	Snow           float64  `json:"snow"`
}

// Current fetches current conditions with the minutely forecast for a point.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Report, error) {
	if c.BaseURL == "" || c.APIKey == "" {
		return nil, fmt.Errorf("%w: weather: base URL and API key required", internalerr.ErrInvalidConfig)
	}

	endpoint, err := c.endpoint(lat, lon)
	if err != nil {
		return nil, err
	}
	c.log().Debug("weather request", "url", logger.RedactURL(endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read weather response: %w", err)
	}

	var payload currentResponse
	decodeErr := json.Unmarshal(body, &payload)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && payload.Error != "" {
			return nil, fmt.Errorf("weather api: %s: %s", resp.Status, payload.Error)
		}
		return nil, fmt.Errorf("weather api: %s", resp.Status)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode weather response: %v", internalerr.ErrInvalidInput, decodeErr)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("weather api error: %s", payload.Error)
	}

	return buildReport(payload)
}

func (c *Client) endpoint(lat, lon float64) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("%w: weather base URL: %v", internalerr.ErrInvalidConfig, err)
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("key", c.APIKey)
	q.Set("include", "minutely")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (c *Client) log() *logger.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logger.Nop()
}

func buildReport(payload currentResponse) (*Report, error) {
	if payload.Minutely == nil {
		return nil, fmt.Errorf("%w: minutely", internalerr.ErrMissingField)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("%w: data[0]", internalerr.ErrMissingField)
	}
	city := payload.Data[0].CityName
	if city == "" {
		return nil, fmt.Errorf("%w: data[0].city_name", internalerr.ErrMissingField)
	}

	points := make([]Minute, 0, len(payload.Minutely))
	for i, rec := range payload.Minutely {
		if rec.Temp == nil {
			return nil, fmt.Errorf("%w: minutely[%d].temp", internalerr.ErrMissingField, i)
		}
		local, err := ParseTimestamp(rec.TimestampLocal)
		if err != nil {
			return nil, fmt.Errorf("minutely[%d].timestamp_local: %w", i, err)
		}
		utc, err := ParseTimestamp(rec.TimestampUTC)
		if err != nil {
			return nil, fmt.Errorf("minutely[%d].timestamp_utc: %w", i, err)
		}
		points = append(points, Minute{
			Local:  local,
			UTC:    utc.UTC(),
			Temp:   *rec.Temp,
			Precip: rec.Precip,
			Snow:   rec.Snow,
		})
	}

	return &Report{City: city, Minutely: NewSeries(points)}, nil
}
