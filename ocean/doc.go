// Package ocean provides routines for oceanic biogeochemistry.
//
// # Carbonate system conversions
//
// The typical processing chain of an underway CO2 system is
//
//	xCO2 (ppm, at the equilibrator)
//	  -> pCO2 (µatm)            PPMToMicroatm, Dickson et al. (2007)
//	  -> pCO2 at SST             TemperatureCorrection, Takahashi et al. (2009)
//	  -> fCO2 at SST             Fugacity, Dickson et al. (2007) SOP 5
//
// Temperatures may be given in °C or K and pressures in hPa, Pa or atm; the
// units are inferred via package units. TemperatureCorrection is the
// exception: it works on temperature differences and expects both
// temperatures in the same unit.
//
// # Hydrography
//
// CondToSal derives practical salinity from conductivity following
// Lewis (1981). WaterVaporPressure follows Weiss and Price (1980).
package ocean
