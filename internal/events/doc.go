// Package events publishes task and account lifecycle events over MQTT.
//
// Publishing is best-effort: a broker outage never fails the HTTP request
// that triggered the event. A nil Publisher is a valid no-op, which is how
// the service runs when MQTT is disabled in configuration.
package events
