package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// DailyForecast is one day out of the multi-day response (16 days max).
type DailyForecast struct {
	Date           time.Time
	MaxTemperature float64
	MinTemperature float64
	Humidity       float64
	WindSpeed      float64
	Pop            float64
}

// HourlyForecast is one hour out of the 48-hour response.
type HourlyForecast struct {
	Time       time.Time
	Visibility float64
}

type Alert struct {
	Event       string
	Description string
	Start       time.Time
	End         time.Time
}

// HourlyEnvelope is the hourly forecast window plus any active alerts,
// used by the lift-off gate.
type HourlyEnvelope struct {
	Hours  []HourlyForecast
	Alerts []Alert
}

// GeocodedPlace is one geocoding result: the provider's canonical place
// name plus its coordinates.
type GeocodedPlace struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Fetcher is the outbound weather/geocoding collaborator. Calls are
// synchronous; the planner holds its session lock across them.
type Fetcher interface {
	FetchDaily(ctx context.Context, lat, lon float64) ([]DailyForecast, error)
	FetchHourly(ctx context.Context, lat, lon float64) (*HourlyEnvelope, error)
	GeocodeName(ctx context.Context, placeName string) (GeocodedPlace, error)
}

// OpenWeatherClient talks to the OpenWeather One Call and geocoding APIs.
type OpenWeatherClient struct {
	HTTP   *http.Client
	APIKey string
	Host   string
}

func NewOpenWeatherClient() *OpenWeatherClient {
	return &OpenWeatherClient{
		HTTP:   &http.Client{Timeout: 15 * time.Second},
		APIKey: os.Getenv("OPENWEATHER_API_KEY"),
		Host:   "api.openweathermap.org",
	}
}

type oneCallResponse struct {
	Daily []struct {
		Dt   int64 `json:"dt"`
		Temp struct {
			Max float64 `json:"max"`
			Min float64 `json:"min"`
		} `json:"temp"`
		Humidity  float64 `json:"humidity"`
		WindSpeed float64 `json:"wind_speed"`
		Pop       float64 `json:"pop"`
	} `json:"daily"`
	Hourly []struct {
		Dt         int64   `json:"dt"`
		Visibility float64 `json:"visibility"`
	} `json:"hourly"`
	Alerts []struct {
		Event       string `json:"event"`
		Description string `json:"description"`
		Start       int64  `json:"start"`
		End         int64  `json:"end"`
	} `json:"alerts"`
}

func (c *OpenWeatherClient) oneCall(ctx context.Context, lat, lon float64) (*oneCallResponse, error) {
	u := url.URL{
		Scheme: "https",
		Host:   c.Host,
		Path:   "/data/2.5/onecall",
	}
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("appid", c.APIKey)
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("onecall http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("onecall bad status: %s", resp.Status)
	}

	var payload oneCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("onecall decode: %w", err)
	}
	return &payload, nil
}

func (c *OpenWeatherClient) FetchDaily(ctx context.Context, lat, lon float64) ([]DailyForecast, error) {
	payload, err := c.oneCall(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	days := make([]DailyForecast, 0, len(payload.Daily))
	for _, d := range payload.Daily {
		days = append(days, DailyForecast{
			Date:           time.Unix(d.Dt, 0).UTC(),
			MaxTemperature: d.Temp.Max,
			MinTemperature: d.Temp.Min,
			Humidity:       d.Humidity,
			WindSpeed:      d.WindSpeed,
			Pop:            d.Pop,
		})
	}
	return days, nil
}

func (c *OpenWeatherClient) FetchHourly(ctx context.Context, lat, lon float64) (*HourlyEnvelope, error) {
	payload, err := c.oneCall(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	env := &HourlyEnvelope{}
	for _, h := range payload.Hourly {
		env.Hours = append(env.Hours, HourlyForecast{
			Time:       time.Unix(h.Dt, 0).UTC(),
			Visibility: h.Visibility,
		})
	}
	for _, a := range payload.Alerts {
		env.Alerts = append(env.Alerts, Alert{
			Event:       a.Event,
			Description: a.Description,
			Start:       time.Unix(a.Start, 0).UTC(),
			End:         time.Unix(a.End, 0).UTC(),
		})
	}
	return env, nil
}

func (c *OpenWeatherClient) GeocodeName(ctx context.Context, placeName string) (GeocodedPlace, error) {
	u := url.URL{
		Scheme: "https",
		Host:   c.Host,
		Path:   "/geo/1.0/direct",
	}
	q := url.Values{}
	q.Set("q", placeName)
	q.Set("appid", c.APIKey)
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return GeocodedPlace{}, fmt.Errorf("geocode http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return GeocodedPlace{}, fmt.Errorf("geocode bad status: %s", resp.Status)
	}

	var payload []struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lon  float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return GeocodedPlace{}, fmt.Errorf("geocode decode: %w", err)
	}
	if len(payload) == 0 {
		return GeocodedPlace{}, fmt.Errorf("geocode: no results for %q", placeName)
	}
	return GeocodedPlace{Name: payload[0].Name, Latitude: payload[0].Lat, Longitude: payload[0].Lon}, nil
}
