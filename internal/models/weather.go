package models

// Defaults applied when the provider gives no usable reading
const (
	DefaultTemperature = 25.0
	DefaultCondition   = ""
)

// WeatherSnapshot is the current weather at the caller's coordinates.
// Raw is the provider body as decoded, returned to clients untouched.
type WeatherSnapshot struct {
	Temperature float64
	Condition   string
	Raw         map[string]any
}
