// Package platform contains OS integration: locating the bundled icon
// assets and preparing the data directory.
package platform
