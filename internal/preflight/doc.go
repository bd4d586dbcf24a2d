// Package preflight provides readiness checks for the filesystem paths and
// inputs tagreview depends on.
//
// The CLI "doctor" command runs RunAll and prints each result. Directory
// checks fail when a path is missing, not a directory, or lacks
// read/write/execute permission for the current user.
package preflight
