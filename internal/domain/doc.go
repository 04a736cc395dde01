// Package domain models the wire contract of the ET compute service.
//
// # Source topic
//
// Upstream forcing collectors publish one JSON ForcingMessage per timestep
// per model variant:
//
//	{
//	  "model": "pt_hourly",
//	  "timestep": "202407151230",
//	  "series": {
//	    "temperature":   {"101": 21.4, "102": -9999},
//	    "net_radiation": {"101": 412.5},
//	    "pressure":      {"101": 98.2}
//	  },
//	  "parameters": {"alpha": 1.26}
//	}
//
// Station keys are integer station/basin identifiers. The value -9999 is the
// collectors' missing-observation sentinel and passes through to the engine
// unchanged. Entire variables may be omitted; the engine substitutes the
// configured defaults. "timestep" is the UTC timestep in YYYYMMDDHHmm form,
// required only by the hourly Priestley-Taylor model (day/night switch).
//
// Expected variables per model:
//
//	fao_daily   max_temperature (driving), min_temperature, net_radiation,
//	            wind, relative_humidity, pressure
//	fao_hourly  net_radiation (driving), temperature, wind,
//	            relative_humidity, pressure
//	pt_daily    temperature (driving), net_radiation, pressure
//	pt_hourly   temperature (driving), net_radiation, pressure
//
// Units follow the collectors' conventions: temperatures °C, wind m/s,
// relative humidity %, net radiation W/m², pressure deci-kPa for the FAO
// models and kPa for Priestley-Taylor. The etp package documents the
// conversions.
//
// # Sink topic
//
// Each successfully computed timestep becomes one ResultEvent with a
// per-station ET mapping in mm per timestep, a deterministic ID (see
// resultID) enabling idempotent downstream upserts, and "model" and
// "processed_at" routing headers.
package domain
