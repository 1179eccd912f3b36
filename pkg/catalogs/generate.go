//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/harvest --repository.default-branch master --repository.path /pkg/catalogs

// Package catalogs provides the canonical catalog record type and the store
// that reads and writes catalog files.
//
// A catalog file is a UTF-8 JSON array of record objects. Records are
// identified by their filename. The store never returns a partially loaded
// catalog and never overwrites an output without first copying it aside.
package catalogs
