// Package ingestion imports dict.cc source files into per-pair indexes.
//
// The Importer manages the import workflow for one source file:
//   - Reading the language pair from the header line
//   - Counting data rows so progress can be reported against a total
//   - Decoding and normalizing rows concurrently on a worker pool
//   - Writing documents into a staging index and swapping it into place
//
// Row-level failures are logged and the row is skipped; they never fail
// the import. Everything else aborts it and leaves any previous index for
// the pair untouched.
package ingestion
