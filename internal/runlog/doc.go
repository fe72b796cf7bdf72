// Package runlog persists a history of completed runs to a local SQLite
// database. The history is informational: the progress file remains the
// sole coordination authority, and a missing or deleted run database
// never affects claiming.
package runlog
