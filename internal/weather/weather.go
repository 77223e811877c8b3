// Package weather serves demo-mode weather payloads. Every function is
// pure and deterministic: the values are fixed placeholders shaped exactly
// like a real provider's response, so swapping in a live backend later does
// not change the tool contract.
package weather

import (
	"strings"
	"time"
)

const (
	mockTimestamp = "2025-10-27T22:55:00Z"
	mockSource    = "OpenWeatherMap API (Demo Mode)"
)

// Units selects the unit labels embedded in a report. The values are
// static, so no conversion happens; only the labels change.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
	UnitsKelvin   Units = "kelvin"
)

// Location names the place a report describes.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Wind is a speed and compass direction pair.
type Wind struct {
	Speed     float64 `json:"speed"`
	Direction int     `json:"direction"`
}

// Conditions is a short weather summary.
type Conditions struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// Readings holds the instantaneous measurements of a current-weather
// report.
type Readings struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	Visibility  int     `json:"visibility"`
	Wind        Wind    `json:"wind"`
}

// UnitLabels names the units the numeric fields are expressed in.
type UnitLabels struct {
	Temperature string `json:"temperature"`
	WindSpeed   string `json:"wind_speed"`
	Humidity    string `json:"humidity"`
	Pressure    string `json:"pressure"`
}

// CurrentReport is the payload for a current-weather request.
type CurrentReport struct {
	Location  Location   `json:"location"`
	Current   Readings   `json:"current"`
	Condition Conditions `json:"condition"`
	Units     UnitLabels `json:"units"`
	Timestamp string     `json:"timestamp"`
	Source    string     `json:"source"`
	Success   bool       `json:"success"`
}

// TempRange is a daily high and low.
type TempRange struct {
	High int `json:"high"`
	Low  int `json:"low"`
}

// Precipitation is a chance percentage and expected amount.
type Precipitation struct {
	Chance int     `json:"chance"`
	Amount float64 `json:"amount"`
}

// ForecastDay is one day of a forecast.
type ForecastDay struct {
	Date          string        `json:"date"`
	Temperature   TempRange     `json:"temperature"`
	Condition     Conditions    `json:"condition"`
	Precipitation Precipitation `json:"precipitation"`
	Wind          Wind          `json:"wind"`
}

// ForecastReport is the payload for a forecast request.
type ForecastReport struct {
	Location     Location      `json:"location"`
	Forecast     []ForecastDay `json:"forecast"`
	ForecastDays int           `json:"forecast_days"`
	Timestamp    string        `json:"timestamp"`
	Source       string        `json:"source"`
	Success      bool          `json:"success"`
}

var forecastConditions = []Conditions{
	{Main: "Sunny", Description: "clear sky"},
	{Main: "Cloudy", Description: "few clouds"},
	{Main: "Rainy", Description: "light rain"},
	{Main: "Partly Cloudy", Description: "partly cloudy"},
	{Main: "Clear", Description: "clear sky"},
}

var (
	precipitationChances = []int{10, 30, 80, 20, 5}
	precipitationAmounts = []float64{0, 0.2, 5.4, 1.1, 0}
)

// forecastBase is the first forecast date; later days advance through the
// real calendar, rolling over month boundaries.
var forecastBase = time.Date(2025, time.October, 28, 0, 0, 0, 0, time.UTC)

// Current returns the demo current-weather report for a city.
func Current(city, countryCode string, units Units) *CurrentReport {
	return &CurrentReport{
		Location: location(city, countryCode),
		Current: Readings{
			Temperature: 22.5,
			FeelsLike:   21.8,
			Humidity:    65,
			Pressure:    1013,
			Visibility:  10000,
			Wind:        Wind{Speed: 3.6, Direction: 230},
		},
		Condition: Conditions{Main: "Clear", Description: "clear sky"},
		Units:     labelsFor(units),
		Timestamp: mockTimestamp,
		Source:    mockSource,
		Success:   true,
	}
}

// Forecast returns the demo forecast for a city. Days outside [1, 5] are
// clamped to the nearest bound.
func Forecast(city, countryCode string, days int) *ForecastReport {
	days = min(max(days, 1), 5)

	const baseTemp = 20
	forecast := make([]ForecastDay, 0, days)
	for i := 0; i < days; i++ {
		forecast = append(forecast, ForecastDay{
			Date: forecastBase.AddDate(0, 0, i).Format("2006-01-02"),
			Temperature: TempRange{
				High: baseTemp + i + 2,
				Low:  baseTemp + i - 3,
			},
			Condition: forecastConditions[i%5],
			Precipitation: Precipitation{
				Chance: precipitationChances[i%5],
				Amount: precipitationAmounts[i%5],
			},
			Wind: Wind{
				Speed:     3.0 + float64(i)*0.5,
				Direction: 180 + i*30,
			},
		})
	}

	return &ForecastReport{
		Location:     location(city, countryCode),
		Forecast:     forecast,
		ForecastDays: days,
		Timestamp:    mockTimestamp,
		Source:       mockSource,
		Success:      true,
	}
}

func location(city, countryCode string) Location {
	country := "Unknown"
	if countryCode != "" {
		country = strings.ToUpper(countryCode)
	}
	return Location{City: city, Country: country}
}

func labelsFor(units Units) UnitLabels {
	labels := UnitLabels{Humidity: "%", Pressure: "hPa"}
	switch units {
	case UnitsImperial:
		labels.Temperature = "°F"
		labels.WindSpeed = "mph"
	case UnitsKelvin:
		labels.Temperature = "K"
		labels.WindSpeed = "m/s"
	default:
		labels.Temperature = "°C"
		labels.WindSpeed = "m/s"
	}
	return labels
}
