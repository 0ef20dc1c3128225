package services

import (
	"github.com/google/uuid"

	"givehub/internal/models/db_models"
	"givehub/pkg/utils"
)

// Identity is the resolved caller, threaded explicitly through every service
// call. A nil *Identity is an anonymous caller; the authorization decision is
// then a pure function of the identity, the resource owner and its status.
type Identity struct {
	AccountID uuid.UUID
	Role      string
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == db_models.RoleAdmin
}

func (id *Identity) Is(accountID uuid.UUID) bool {
	return id != nil && id.AccountID == accountID
}

// CanMutateListing: owner or admin; anonymous callers never mutate.
func CanMutateListing(id *Identity, ownerID uuid.UUID) error {
	if id == nil {
		return utils.ErrUnauthenticated
	}
	if id.IsAdmin() || id.AccountID == ownerID {
		return nil
	}
	return utils.ErrForbidden
}

// CanReadListing: public listings are open to everyone, the rest to the
// owner and admins only.
func CanReadListing(id *Identity, ownerID uuid.UUID, public bool) error {
	if public {
		return nil
	}
	return CanMutateListing(id, ownerID)
}

// CanActOnTransaction: either party or admin.
func CanActOnTransaction(id *Identity, donorID, recipientID uuid.UUID) error {
	if id == nil {
		return utils.ErrUnauthenticated
	}
	if id.IsAdmin() || id.AccountID == donorID || id.AccountID == recipientID {
		return nil
	}
	return utils.ErrForbidden
}

// CanAdvanceTransaction: only the recipient of the request, or an admin,
// may move the transaction status.
func CanAdvanceTransaction(id *Identity, recipientID uuid.UUID) error {
	if id == nil {
		return utils.ErrUnauthenticated
	}
	if id.IsAdmin() || id.AccountID == recipientID {
		return nil
	}
	return utils.ErrForbidden
}

func RequireAdmin(id *Identity) error {
	if id == nil {
		return utils.ErrUnauthenticated
	}
	if !id.IsAdmin() {
		return utils.ErrForbidden
	}
	return nil
}
