package domain

import (
	"context"
	"time"
)

// RawRecord is the flat JSON structure produced by the underway logger.
// Pointers distinguish missing values from zeros.
type RawRecord struct {
	Time         string   `json:"time"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	XCO2         *float64 `json:"xco2_ppm"`
	PEqu         *float64 `json:"p_equ"` // hPa, Pa or atm
	TEqu         *float64 `json:"t_equ"` // °C or K
	SST          *float64 `json:"sst"`   // °C or K
	Salinity     *float64 `json:"salinity,omitempty"`
	Conductivity *float64 `json:"conductivity,omitempty"` // mS/cm
	Air          string   `json:"air,omitempty"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Quality labels.
const (
	QualityGood         = "good"
	QualityQuestionable = "questionable"
	QualityBad          = "bad"
)

// QC flags.
const (
	FlagPositionRange   = "position_range"
	FlagSalinityDefault = "salinity_default"
	FlagXCO2Range       = "xco2_range"
	FlagDeltaT          = "delta_t"
	FlagTimeFromMessage = "time_from_message"
)

// Salinity sources.
const (
	SalinityMeasured     = "measured"
	SalinityConductivity = "conductivity"
	SalinityDefault      = "default"
)

// Observation is the derived, quality-controlled measurement.
type Observation struct {
	ID   string    `json:"id"`
	Time time.Time `json:"time"`
	Geo  Geo       `json:"geo"`

	XCO2           float64  `json:"xco2_ppm"`
	PEqu           float64  `json:"p_equ_atm"`
	TEqu           float64  `json:"t_equ_c"`
	SST            float64  `json:"sst_c"`
	Salinity       float64  `json:"salinity"`
	SalinitySource string   `json:"salinity_source"`
	Conductivity   *float64 `json:"conductivity,omitempty"`
	Air            string   `json:"air"`

	PCO2Equ float64 `json:"pco2_equ_uatm"`
	PCO2SST float64 `json:"pco2_sst_uatm"`
	FCO2SST float64 `json:"fco2_sst_uatm"`

	Quality    string    `json:"quality"`
	Flags      []string  `json:"flags,omitempty"`
	TimeBucket time.Time `json:"time_bucket"`

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}
