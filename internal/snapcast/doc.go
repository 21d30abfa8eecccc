// Package snapcast wraps the Snapcast podcast host REST API.
//
// The Client covers the episode operations the admin tool needs: listing a
// feed, resolving an episode reference (numeric ID, UUID, or -1 for the
// latest episode), patching single fields, and deleting episodes. Episode
// payloads are decoded into native types, converting wire seconds into
// durations and ISO timestamps into time values.
package snapcast
