package schema

// Weather payloads follow the OpenWeatherMap shape the backend proxies.

type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type WeatherMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

type WeatherWind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
	Gust  float64 `json:"gust,omitempty"`
}

type WeatherRain struct {
	OneHour   float64 `json:"1h,omitempty"`
	ThreeHour float64 `json:"3h,omitempty"`
}

type WeatherCoord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type Weather struct {
	Coord      WeatherCoord       `json:"coord"`
	Conditions []WeatherCondition `json:"weather"`
	Main       WeatherMain        `json:"main"`
	Visibility float64            `json:"visibility"`
	Wind       WeatherWind        `json:"wind"`
	Rain       *WeatherRain       `json:"rain,omitempty"`
	Name       string             `json:"name"`
	Timestamp  int64              `json:"dt"`
}

// WeatherSeverity groups current conditions into alert levels.
type WeatherSeverity string

const (
	WeatherSafe    WeatherSeverity = "safe"
	WeatherWarning WeatherSeverity = "warning"
	WeatherDanger  WeatherSeverity = "danger"
)
