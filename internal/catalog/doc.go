// Package catalog parses the master library list into ordered work items.
//
// The catalog is a markdown document: "## Category:" headings group
// "### N. Name" entries, each carrying bold metadata fields and optional
// Known Issues, Advantages, and API Mapping subsections. Parsing stops at
// the "## Summary" section. Each item receives a deterministic slug derived
// from its display name; slugs key the shared progress table, so collisions
// are a data-integrity bug in the catalog rather than something handled
// defensively here.
//
// Tier classification comes from an optional YAML overrides file first, the
// catalog's own Tier field second, and defaults to the lowest priority.
package catalog
