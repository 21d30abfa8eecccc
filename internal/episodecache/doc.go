// Package episodecache persists the last fetched episode list in SQLite.
//
// The cache is write-through: every successful online listing replaces the
// cached rows for the feed, and `snapadmin list --cached` reads them back
// without touching the network. The store holds an advisory file lock while
// open so concurrent invocations cannot interleave writes.
package episodecache
