// Package telemetry receives athlete snapshots from the host's websocket
// event stream and paces their delivery to the panel.
package telemetry
