// Package reviewerr defines the error taxonomy shared by the importer, record
// store, and review mutator.
//
// Callers classify failures with errors.Is against the exported sentinels.
// The typed errors carry the detail a reviewer needs to fix the input and
// retry: which columns are missing, which rows were rejected, which tags were
// outside the vocabulary.
package reviewerr
