package services

import (
	"github.com/learnity/learnity-backend/errs"
)

// AuthorizeOwner scopes access to an owner-bearing resource. An owner mismatch
// produces the exact error a missing entity would, so callers cannot learn
// whether another user's resource exists. Never applied to /all listings.
func AuthorizeOwner(resource string, entityOwnerID, claimedOwnerID int64) error {
	if entityOwnerID != claimedOwnerID {
		return errs.NewNotFoundError(resource + " not found")
	}
	return nil
}
