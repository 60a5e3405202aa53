package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/couchcryptid/my-code-base/ocean"
	"github.com/couchcryptid/my-code-base/units"
)

var (
	// ErrMissingField is returned when a record lacks a value required for the derivation.
	ErrMissingField = errors.New("missing required field")

	// ErrNonFinite is returned when a derived quantity is NaN or infinite.
	// Such an observation cannot be encoded as JSON.
	ErrNonFinite = errors.New("non-finite derived value")
)

const (
	defaultSalinity = 35.0
	minXCO2         = 100.0
	maxXCO2         = 1000.0
	maxDeltaT       = 3.0
)

// timeLayouts are tried in order when parsing the record time.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseRawEvent deserializes a RawEvent's value into an Observation. Only
// decoding and presence checks happen here; see EnrichObservation for the
// derived quantities.
func ParseRawEvent(raw RawEvent) (Observation, error) {
	var rec RawRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Observation{}, fmt.Errorf("parse raw event: %w", err)
	}

	required := []struct {
		name  string
		value *float64
	}{
		{"lat", rec.Lat}, {"lon", rec.Lon}, {"xco2_ppm", rec.XCO2},
		{"p_equ", rec.PEqu}, {"t_equ", rec.TEqu}, {"sst", rec.SST},
	}
	for _, f := range required {
		if f.value == nil || math.IsNaN(*f.value) {
			return Observation{}, fmt.Errorf("parse raw event: %w: %s", ErrMissingField, f.name)
		}
	}

	obs := Observation{
		Geo:          Geo{Lat: *rec.Lat, Lon: *rec.Lon},
		XCO2:         *rec.XCO2,
		PEqu:         *rec.PEqu,
		TEqu:         *rec.TEqu,
		SST:          *rec.SST,
		Conductivity: rec.Conductivity,
		Air:          rec.Air,
		RawPayload:   raw.Value,
	}
	if rec.Salinity != nil && !math.IsNaN(*rec.Salinity) {
		obs.Salinity = *rec.Salinity
		obs.SalinitySource = SalinityMeasured
	}

	t, ok := parseTime(rec.Time)
	if !ok {
		t = raw.Timestamp.UTC()
		obs.Flags = append(obs.Flags, FlagTimeFromMessage)
	}
	obs.Time = t
	obs.ID = generateID(t, obs.Geo.Lat, obs.Geo.Lon, obs.XCO2)
	return obs, nil
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// generateID produces a deterministic ID from the observation's key fields.
func generateID(t time.Time, lat, lon, xco2 float64) string {
	input := fmt.Sprintf("%s|%.4f|%.4f|%.3f", t.UTC().Format(time.RFC3339), lat, lon, xco2)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:8])
}

// EnrichObservation normalizes units, fills in salinity, derives pCO2 and
// fCO2 at SST, applies quality control and assigns the hourly bucket.
func EnrichObservation(obs Observation) (Observation, error) {
	p, err := units.PressureScalarToAtm(obs.PEqu)
	if err != nil {
		return obs, fmt.Errorf("p_equ: %w", err)
	}
	obs.PEqu = p
	obs.TEqu = units.CelsiusScalar(obs.TEqu)
	obs.SST = units.CelsiusScalar(obs.SST)

	air, err := ocean.ParseAir(obs.Air)
	if err != nil {
		return obs, err
	}
	obs.Air = string(air)

	if err := fillSalinity(&obs); err != nil {
		return obs, err
	}

	obs.PCO2Equ, err = ocean.PPMToMicroatm(obs.XCO2, obs.PEqu, air, obs.TEqu, obs.Salinity)
	if err != nil {
		return obs, err
	}
	obs.PCO2SST, err = ocean.TemperatureCorrection(obs.PCO2Equ, obs.SST, obs.TEqu, ocean.Takahashi2009)
	if err != nil {
		return obs, err
	}
	xco2 := obs.XCO2
	obs.FCO2SST, err = ocean.Fugacity(obs.PCO2SST, obs.PEqu, obs.SST, &xco2)
	if err != nil {
		return obs, err
	}
	if err := checkFinite(obs); err != nil {
		return obs, err
	}

	obs.Flags = qualityFlags(obs)
	obs.Quality = deriveQuality(obs.Flags)
	obs.TimeBucket = deriveTimeBucket(obs.Time)
	obs.ProcessedAt = clock.Now()
	return obs, nil
}

// checkFinite rejects observations whose derived fields are NaN or ±Inf.
func checkFinite(obs Observation) error {
	derived := []struct {
		name  string
		value float64
	}{
		{"salinity", obs.Salinity}, {"pco2_equ_uatm", obs.PCO2Equ},
		{"pco2_sst_uatm", obs.PCO2SST}, {"fco2_sst_uatm", obs.FCO2SST},
	}
	for _, f := range derived {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s=%v", ErrNonFinite, f.name, f.value)
		}
	}
	return nil
}

// fillSalinity keeps a measured salinity, derives it from conductivity at
// SST, or falls back to defaultSalinity.
func fillSalinity(obs *Observation) error {
	if obs.SalinitySource == SalinityMeasured {
		return nil
	}
	if obs.Conductivity != nil && !math.IsNaN(*obs.Conductivity) {
		s, err := ocean.CondToSal(*obs.Conductivity, obs.SST, obs.PEqu)
		if err != nil {
			return fmt.Errorf("salinity from conductivity: %w", err)
		}
		obs.Salinity, obs.SalinitySource = s, SalinityConductivity
		return nil
	}
	obs.Salinity, obs.SalinitySource = defaultSalinity, SalinityDefault
	return nil
}

// qualityFlags returns the QC flags of obs, keeping flags set during parsing.
func qualityFlags(obs Observation) []string {
	var flags []string
	for _, f := range obs.Flags {
		if f == FlagTimeFromMessage {
			flags = append(flags, f)
		}
	}
	if obs.Geo.Lat < -90 || obs.Geo.Lat > 90 || obs.Geo.Lon < -180 || obs.Geo.Lon > 360 {
		flags = append(flags, FlagPositionRange)
	}
	if obs.SalinitySource == SalinityDefault {
		flags = append(flags, FlagSalinityDefault)
	}
	if obs.XCO2 < minXCO2 || obs.XCO2 > maxXCO2 {
		flags = append(flags, FlagXCO2Range)
	}
	if math.Abs(obs.SST-obs.TEqu) > maxDeltaT {
		flags = append(flags, FlagDeltaT)
	}
	return flags
}

// deriveQuality maps flags to a quality label: any position problem makes
// the observation bad, any other flag questionable.
func deriveQuality(flags []string) string {
	quality := QualityGood
	for _, f := range flags {
		if f == FlagPositionRange {
			return QualityBad
		}
		quality = QualityQuestionable
	}
	return quality
}

// deriveTimeBucket truncates the observation time to the hour in UTC.
// Returns zero time if the input is zero.
func deriveTimeBucket(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(time.Hour)
}
