// Package domain models underway surface-ocean CO2 observations.
//
// # Data Source
//
// Raw records come from an equilibrator-based pCO2 system on a research
// vessel. The upstream logger publishes one flat JSON object per
// measurement cycle to the Kafka source topic:
//
//	{"time":"2023-07-14T06:12:00Z","lat":54.32,"lon":10.15,"xco2_ppm":412.3,
//	 "p_equ":1013.2,"t_equ":17.9,"sst":17.4,"salinity":15.2,"air":"wet"}
//
// # Conventions
//
// Units are not fixed by the logger and are inferred per value:
//
//	p_equ: hPa, Pa or atm, from its order of magnitude.
//	t_equ, sst: °C below 100, K otherwise.
//	conductivity: mS/cm (S/m must be multiplied by 10 upstream).
//	air: "wet" or "dry"; empty means wet.
//
// Salinity is taken from the record if present, otherwise derived from
// conductivity at SST, otherwise set to 35 PSU and flagged.
//
// # Derivation
//
//	xCO2 ─► pCO2 at T_equ ─► pCO2 at SST (Takahashi 2009) ─► fCO2 at SST
//
// # Quality Control
//
// Each observation carries flags and a quality label derived from them:
//
//	bad:          position out of range
//	questionable: default salinity, xCO2 outside 100..1000 ppm,
//	              |SST − T_equ| above 3 K, time taken from the message
//	good:         no flags
//
// # ID Generation
//
// Observation IDs are deterministic SHA-256 hashes of time|lat|lon|xco2,
// so replays of the same raw record produce the same ID and downstream
// upserts stay idempotent. See [generateID].
package domain
