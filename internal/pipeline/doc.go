// Package pipeline implements the LaTeX transformation and article splitting
// stages applied to pandoc output.
//
// The package is split by concern:
//   - Decoding of raw converter bytes (UTF-8 validation, line endings, NFC)
//   - A fixed, ordered table of pure text rewrites (see Pipeline)
//   - List restructuring, the only stage that keeps state across lines
//   - Balanced command removal, shared by every removed tag name
//   - Article splitting at classification markers (see Splitter)
//
// Every stage is a pure function over a string. Nothing in this package
// performs I/O or logs; invoking pandoc, writing fragments and extracting
// media is handled by the root newman package.
package pipeline
