// Package query provides the points nearest searches are run for: a built-in
// default set, comma separated text, and NMEA GPS sentences.
package query
