package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/deckhand-ai/deckhand/internal/weather"
	"github.com/deckhand-ai/deckhand/mcp"
)

type weatherArgs struct {
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
	Units       string `json:"units"`
}

type forecastArgs struct {
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
	Days        *int   `json:"days"`
}

// WeatherTools returns the weather tools backed by the demo-mode provider.
func WeatherTools() []mcp.Tool {
	cityProp := &jsonschema.Schema{
		Type:        "string",
		Description: "The city name to get weather for",
	}
	countryProp := &jsonschema.Schema{
		Type:        "string",
		Description: "Optional two-letter country code (e.g. 'US', 'UK')",
	}

	return []mcp.Tool{
		{
			Name:        "get_weather",
			Description: "Get current weather information for a specified city.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"city":         cityProp,
					"country_code": countryProp,
					"units": {
						Type:        "string",
						Description: "Temperature units (default: metric)",
						Enum:        []interface{}{"metric", "imperial", "kelvin"},
					},
				},
				Required: []string{"city"},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
				var args weatherArgs
				if err := json.Unmarshal(raw, &args); err != nil {
					return nil, fmt.Errorf("decoding arguments: %w", err)
				}

				units := weather.Units(args.Units)
				if units == "" {
					units = weather.UnitsMetric
				}
				return weather.Current(args.City, args.CountryCode, units), nil
			},
		},
		{
			Name:        "get_weather_forecast",
			Description: "Get a multi-day weather forecast for a specified city.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"city":         cityProp,
					"country_code": countryProp,
					"days": {
						Type:        "integer",
						Description: "Number of forecast days, 1 to 5 (default: 5)",
					},
				},
				Required: []string{"city"},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
				var args forecastArgs
				if err := json.Unmarshal(raw, &args); err != nil {
					return nil, fmt.Errorf("decoding arguments: %w", err)
				}

				days := 5
				if args.Days != nil {
					days = *args.Days
				}
				return weather.Forecast(args.City, args.CountryCode, days), nil
			},
		},
	}
}
