// Package census counts files and folders under a directory tree and
// buckets files into coarse categories by extension.
//
// A scan runs in two passes: a discovery pass enumerates every directory
// under the root (using fastwalk for parallel traversal) to fix a progress
// denominator, then a counting pass lists each directory in order, tallies
// its immediate entries, and reports progress after each one. Unreadable
// subdirectories are skipped; an unreadable or missing root fails the scan.
package census
