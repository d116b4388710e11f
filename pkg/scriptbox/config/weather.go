package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/cognicore/scriptbox/pkg/scriptbox/internalerr"
)

// Weather holds settings for the weather plot tool.
type Weather struct {
	APIKey    string
	BaseURL   string
	Latitude  float64
	Longitude float64
	Output    string
	Timeout   time.Duration
}

// Weather defaults. The coordinates are Raleigh, NC.
const (
	DefaultWeatherBaseURL = "https://api.weatherbit.io/v2.0/current"
	DefaultLatitude       = 35.7796
	DefaultLongitude      = -78.6382
	DefaultWeatherOutput  = "visualizationBoard.png"
)

// LoadWeather reads weather settings from .env files and the environment.
// Keys: WEATHERBIT_API_KEY, WEATHERBIT_BASE_URL, WEATHER_LAT, WEATHER_LON,
// WEATHER_OUTPUT, WEATHER_TIMEOUT. envFiles that don't exist are ignored.
func LoadWeather(envFiles ...string) (*Weather, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.SetDefault("weatherbit_base_url", DefaultWeatherBaseURL)
	v.SetDefault("weather_lat", DefaultLatitude)
	v.SetDefault("weather_lon", DefaultLongitude)
	v.SetDefault("weather_output", DefaultWeatherOutput)
	v.SetDefault("weather_timeout", "15s")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"weatherbit_api_key", "weatherbit_base_url", "weather_lat", "weather_lon", "weather_output", "weather_timeout"} {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}

	cfg := &Weather{
		APIKey:    v.GetString("weatherbit_api_key"),
		BaseURL:   v.GetString("weatherbit_base_url"),
		Latitude:  v.GetFloat64("weather_lat"),
		Longitude: v.GetFloat64("weather_lon"),
		Output:    v.GetString("weather_output"),
		Timeout:   v.GetDuration("weather_timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required weather settings.
func (w *Weather) Validate() error {
	switch {
	case w.APIKey == "":
		return fmt.Errorf("%w: WEATHERBIT_API_KEY not set", internalerr.ErrInvalidConfig)
	case w.Latitude < -90 || w.Latitude > 90:
		return fmt.Errorf("%w: latitude %v out of range", internalerr.ErrInvalidConfig, w.Latitude)
	case w.Longitude < -180 || w.Longitude > 180:
		return fmt.Errorf("%w: longitude %v out of range", internalerr.ErrInvalidConfig, w.Longitude)
	case w.Output == "":
		return fmt.Errorf("%w: empty output path", internalerr.ErrInvalidConfig)
	case w.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", internalerr.ErrInvalidConfig)
	}
	return nil
}
