package weather

// Day holds the daily forecast for a single date of the requested window.
type Day struct {
	Date        string  `json:"datetime"`
	TempMax     float64 `json:"tempmax"`
	TempMin     float64 `json:"tempmin"`
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feelslike"`
	Humidity    float64 `json:"humidity"`
	PrecipProb  float64 `json:"precipprob"`
	WindSpeed   float64 `json:"windspeed"`
	Conditions  string  `json:"conditions"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Report is the forecast returned by the provider for one location and date window.
type Report struct {
	Address         string `json:"address"`
	ResolvedAddress string `json:"resolvedAddress"`
	Timezone        string `json:"timezone"`
	Description     string `json:"description,omitempty"`
	Days            []Day  `json:"days"`
}
