// Package config manages application settings.
//
// Settings are stored as JSON and cover the output location, download
// behavior (zoom level, recursion, concurrency, timeouts) and logging.
// Loading a missing file silently yields the defaults, so a settings file is
// never required.
package config
