// Package library loads documents from a local library directory for
// retrieval. It is the filesystem-facing counterpart of the core's
// LibraryLoader port: deterministic enumeration, exclusion filtering,
// and hard resource ceilings so one query can never scan an unbounded
// tree.
package library
