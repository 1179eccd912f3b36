//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/harvest --repository.default-branch master --repository.path /pkg/metadata

// Package metadata discovers and parses per-item metadata files.
//
// Each metadata file holds one JSON object describing a single archive item.
// Files are selected by name suffix and parsed independently, so one broken
// file never prevents the rest from loading.
package metadata
