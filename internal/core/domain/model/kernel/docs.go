// Package kernel provides the shared value objects of the courier tracker:
//   - GeoPoint: a validated latitude/longitude pair with Haversine distance
//   - UUID: identifiers for resources the tracker owns, such as map view handles
//
// Values are immutable and must be created through their constructors; zero
// values fail Validate.
package kernel
