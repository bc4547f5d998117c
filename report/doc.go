// Package report renders search results as console lines or JSON and
// publishes them to an MQTT broker.
package report
