package samsungdocs

import (
	"context"
	"strings"
)

// ContentStore maps page keys to cached markdown documents.
//
// A document exists iff a fetch for its key has ever succeeded. Writes
// overwrite and are all-or-nothing from the perspective of readers. The
// caller (the populate pipeline or the resolver) is responsible for keeping
// the search index in lockstep with writes.
type ContentStore interface {
	// Read returns the cached document. Returns ENOTFOUND if the key has
	// never been written.
	Read(ctx context.Context, key PageKey) (string, error)

	// Write stores the document, replacing any prior content.
	Write(ctx context.Context, key PageKey, text string) error

	// Keys enumerates every cached key. The slice is a fresh copy per
	// call; enumeration is restartable by calling again.
	Keys(ctx context.Context) ([]PageKey, error)

	// Clear deletes every cached document and returns how many were
	// removed.
	Clear(ctx context.Context) (int, error)
}

// Cached documents start with a single provenance header line carrying the
// source URL and, when known, the minimum platform version. Everything the
// index needs is recoverable from the blob itself.
const (
	provenancePrefix = "<!-- source: "
	provenanceSince  = " since: "
	provenanceSuffix = " -->"
)

// UntitledPage is the title used when a document has no leading heading.
const UntitledPage = "Untitled page"

// FormatDocument renders a cached document blob: provenance header line,
// blank line, markdown content.
func FormatDocument(sourceURL, since, markdown string) string {
	var sb strings.Builder
	sb.WriteString(provenancePrefix)
	sb.WriteString(sourceURL)
	if since != "" {
		sb.WriteString(provenanceSince)
		sb.WriteString(since)
	}
	sb.WriteString(provenanceSuffix)
	sb.WriteString("\n\n")
	sb.WriteString(markdown)
	return sb.String()
}

// IsProvenanceLine reports whether line is a document's provenance header.
func IsProvenanceLine(line string) bool {
	return strings.HasPrefix(line, provenancePrefix)
}

// ParseProvenance extracts the source URL and version metadata from a
// document blob. Both are empty if the blob has no provenance header.
func ParseProvenance(text string) (sourceURL, since string) {
	line, _, _ := strings.Cut(text, "\n")
	if !IsProvenanceLine(line) || !strings.HasSuffix(line, provenanceSuffix) {
		return "", ""
	}
	line = strings.TrimPrefix(line, provenancePrefix)
	line = strings.TrimSuffix(line, provenanceSuffix)
	if url, version, ok := strings.Cut(line, provenanceSince); ok {
		return url, version
	}
	return line, ""
}

// ExtractTitle returns the document's leading markdown heading, falling
// back to UntitledPage when no heading line exists.
func ExtractTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || IsProvenanceLine(trimmed) {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
		// First non-blank line is not a heading; give up.
		break
	}
	return UntitledPage
}

// DocumentBody returns the blob without its provenance header line, which
// is what gets indexed and what snippets are extracted from.
func DocumentBody(text string) string {
	line, rest, found := strings.Cut(text, "\n")
	if !found || !IsProvenanceLine(line) {
		return text
	}
	return strings.TrimPrefix(rest, "\n")
}
