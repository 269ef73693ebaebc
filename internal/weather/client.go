// README: OpenWeatherMap current-weather client with a synthesized fallback.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripsmith/internal/metrics"
)

type owmResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Client calls OpenWeatherMap. It implements Source.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	rnd     RandSource
	log     *zap.Logger
}

// NewClient builds a client; an empty apiKey makes every lookup use the fallback.
func NewClient(baseURL, apiKey string, rnd RandSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		rnd:     rnd,
		log:     log,
	}
}

// GetWeather never fails.
func (c *Client) GetWeather(ctx context.Context, city string) Snapshot {
	snap, err := c.fetch(ctx, city)
	if err != nil {
		c.log.Warn("weather lookup failed, using fallback", zap.String("city", city), zap.Error(err))
		metrics.WeatherLookups.WithLabelValues("fallback").Inc()
		return FallbackSnapshot(city, c.rnd)
	}
	metrics.WeatherLookups.WithLabelValues("api").Inc()
	return snap
}

func (c *Client) fetch(ctx context.Context, city string) (Snapshot, error) {
	if c.apiKey == "" {
		return Snapshot{}, fmt.Errorf("weather api key not configured")
	}
	if strings.TrimSpace(city) == "" {
		return Snapshot{}, fmt.Errorf("empty city")
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return Snapshot{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return Snapshot{}, fmt.Errorf("weather api status %d: %s", resp.StatusCode, body)
	}

	var data owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Snapshot{}, fmt.Errorf("decode weather response: %w", err)
	}
	if len(data.Weather) == 0 {
		return Snapshot{}, fmt.Errorf("weather response without conditions")
	}

	location := data.Name
	if location == "" {
		location = city
	}
	snap := Snapshot{
		Location:           location,
		TemperatureCelsius: data.Main.Temp,
		Condition:          data.Weather[0].Description,
		Humidity:           data.Main.Humidity,
		WindSpeed:          data.Wind.Speed,
		APISuccess:         true,
	}
	if icon := data.Weather[0].Icon; icon != "" {
		snap.IconRef = "https://openweathermap.org/img/wn/" + icon + "@2x.png"
	}
	return snap, nil
}
