//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/harvest --repository.default-branch master --repository.path /pkg/merge

// Package merge combines an existing catalog with newly harvested records.
//
// Records are keyed by filename. Existing records always survive unchanged
// and in their original order; new records are appended in arrival order
// unless their filename is already known. The first record seen for a
// filename wins, whether it came from the catalog or earlier in the batch.
package merge
