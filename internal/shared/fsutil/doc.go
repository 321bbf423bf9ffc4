// Package fsutil holds the filesystem plumbing shared by the CLI and the HTTP
// surface: input discovery, text decoding, compressed output and data-file
// decoding.
//
// # Discovery
//
// Discover accepts plain paths, doublestar glob patterns and directories:
//
//	models/*.inp          glob
//	projects/**/*.bdl     recursive glob
//	runs/                 every model file below runs/
//
// # Text
//
// ReadText rejects binary input and transcodes legacy 8-bit encodings to
// UTF-8, so files saved by older editors parse the same as fresh ones.
//
// # Output
//
// CreateOutput picks gzip or zstd from the file extension (.gz, .zst) unless a
// compression is named explicitly.
package fsutil
