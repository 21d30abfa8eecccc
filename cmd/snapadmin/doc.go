// Package main hosts the snapadmin CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into calls
// against the Snapcast podcast host API, the media object bucket, and the
// local episode cache. It centralizes configuration resolution and logging
// setup so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
