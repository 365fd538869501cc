// Package model defines the domain data structures shared across the HUD:
// field descriptors and their persisted state, panel geometry, and the
// telemetry snapshots delivered by the host. Structures are plain values so
// the catalog, layout and formatter can copy them freely.
package model
