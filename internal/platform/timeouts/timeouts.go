// Package timeouts defines shared timeout constants used across the console.
// Centralizing these values prevents drift between call sites and makes the
// durations discoverable.
package timeouts

import "time"

// APIRequest caps the time allowed for a single REST call from the console
// to the asset service.
const APIRequest = 15 * time.Second

// Upload caps multipart submissions that carry an image attachment.
const Upload = 60 * time.Second

// Shutdown limits how long the tracing pipeline waits to flush spans when
// the console exits.
const Shutdown = 5 * time.Second
