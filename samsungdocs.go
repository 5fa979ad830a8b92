// Package samsungdocs maintains a locally persisted, incrementally updated
// mirror of the Samsung Developer documentation portal, keeps a full-text
// search index synchronized with that mirror, and refreshes stale pages on a
// TTL schedule.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, sqlite/, bleve/, goquery/).
package samsungdocs
