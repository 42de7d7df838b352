// Package vaultbridge runs the FileVault command-line tool on behalf of a
// front-end and normalises its output into a single trustworthy result.
package vaultbridge

// Version is the vaultbridge release version.
const Version = "0.3.0"
