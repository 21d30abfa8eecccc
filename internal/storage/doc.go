// Package storage manages the media objects backing episode files.
//
// Episode audio lives in a Backblaze B2 bucket; the host only stores the
// public media URL. The ObjectStore interface covers the two operations the
// admin tool needs, listing bucket contents and deleting every version of a
// named object, so commands can be tested against fakes.
package storage
