// Package position defines the vehicle position record model and the
// utilities built around it. It includes:
//   - Record and Query value types
//   - Decode/Encode for the flat binary positions file
//   - SquaredDistance, the planar metric used by nearest searches
//   - SQLiteStore: durable storage for decoded records
package position
