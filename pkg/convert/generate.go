//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/harvest --repository.default-branch master --repository.path /pkg/convert

// Package convert maps per-item metadata records onto the canonical catalog
// schema.
package convert
