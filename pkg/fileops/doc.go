// Package fileops provides the small set of file operations the docs and
// image tools share: atomic writes, path resolution against a base
// directory and entry-name validation.
//
// # Validation
//
// Names that arrive from tool arguments are checked before they reach the
// filesystem:
//
//	if err := fileops.ValidateEntryName(name); err != nil {
//	    return mcp.NewToolResultError(err.Error()), nil
//	}
//
// Paths that are allowed to point anywhere are still normalised against a
// fixed base directory, never the process working directory at call time:
//
//	abs, err := fileops.ResolvePath(baseDir, userPath)
//
// # Atomic Writes
//
// AtomicWriteFile writes to a temporary file next to the target and renames
// it into place, so readers see either the old file or the complete new one.
package fileops
