//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/harvest --repository.default-branch master --repository.path /

// Package harvest merges per-item metadata files into a canonical catalog
// without ever losing an existing record.
//
// A run loads the existing catalog, scans a metadata directory, converts each
// metadata record to the canonical schema, appends records whose filename is
// new, verifies that nothing was lost, and writes the result after copying
// the previous output aside.
package harvest
