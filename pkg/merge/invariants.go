package merge

import "github.com/agentstation/harvest/pkg/errors"

// CheckInvariants rejects a merge that would lose existing records. The
// result must be at least as large as the existing catalog, and a non-empty
// catalog must never become empty.
func CheckInvariants(existingCount, resultCount int) error {
	if existingCount > 0 && resultCount == 0 {
		return errors.NewDataLossError(errors.InvariantNonEmpty, existingCount, resultCount)
	}
	if resultCount < existingCount {
		return errors.NewDataLossError(errors.InvariantMonotonicGrowth, existingCount, resultCount)
	}
	return nil
}
