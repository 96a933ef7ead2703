package domain

// LibraryDocument is one file loaded from a domain's library directory.
type LibraryDocument struct {
	// ID is the slash-separated path relative to the library base path.
	// IDs are stable across runs for unchanged trees.
	ID string

	// Content is the file content, possibly truncated.
	Content string

	// Truncated is true when the file exceeded the per-document character
	// cap and only the prefix was kept.
	Truncated bool
}
