package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"givehub/internal/models/db_models"
	"givehub/pkg/utils"
)

func TestCanMutateListing(t *testing.T) {
	ownerID := uuid.New()
	owner := &Identity{AccountID: ownerID, Role: db_models.RoleUser}
	stranger := &Identity{AccountID: uuid.New(), Role: db_models.RoleUser}
	admin := &Identity{AccountID: uuid.New(), Role: db_models.RoleAdmin}

	assert.ErrorIs(t, CanMutateListing(nil, ownerID), utils.ErrUnauthenticated)
	assert.ErrorIs(t, CanMutateListing(stranger, ownerID), utils.ErrForbidden)
	assert.NoError(t, CanMutateListing(owner, ownerID))
	assert.NoError(t, CanMutateListing(admin, ownerID))
}

func TestCanReadListing(t *testing.T) {
	ownerID := uuid.New()
	owner := &Identity{AccountID: ownerID, Role: db_models.RoleUser}
	stranger := &Identity{AccountID: uuid.New(), Role: db_models.RoleUser}

	// Public listings are open to everyone, including anonymous.
	assert.NoError(t, CanReadListing(nil, ownerID, true))
	assert.NoError(t, CanReadListing(stranger, ownerID, true))

	assert.ErrorIs(t, CanReadListing(nil, ownerID, false), utils.ErrUnauthenticated)
	assert.ErrorIs(t, CanReadListing(stranger, ownerID, false), utils.ErrForbidden)
	assert.NoError(t, CanReadListing(owner, ownerID, false))
}

func TestCanActOnTransaction(t *testing.T) {
	donorID, recipientID := uuid.New(), uuid.New()
	donor := &Identity{AccountID: donorID, Role: db_models.RoleUser}
	recipient := &Identity{AccountID: recipientID, Role: db_models.RoleUser}
	stranger := &Identity{AccountID: uuid.New(), Role: db_models.RoleUser}
	admin := &Identity{AccountID: uuid.New(), Role: db_models.RoleAdmin}

	assert.ErrorIs(t, CanActOnTransaction(nil, donorID, recipientID), utils.ErrUnauthenticated)
	assert.ErrorIs(t, CanActOnTransaction(stranger, donorID, recipientID), utils.ErrForbidden)
	assert.NoError(t, CanActOnTransaction(donor, donorID, recipientID))
	assert.NoError(t, CanActOnTransaction(recipient, donorID, recipientID))
	assert.NoError(t, CanActOnTransaction(admin, donorID, recipientID))
}

func TestCanAdvanceTransaction(t *testing.T) {
	recipientID := uuid.New()
	recipient := &Identity{AccountID: recipientID, Role: db_models.RoleUser}
	donor := &Identity{AccountID: uuid.New(), Role: db_models.RoleUser}
	admin := &Identity{AccountID: uuid.New(), Role: db_models.RoleAdmin}

	assert.ErrorIs(t, CanAdvanceTransaction(nil, recipientID), utils.ErrUnauthenticated)
	assert.ErrorIs(t, CanAdvanceTransaction(donor, recipientID), utils.ErrForbidden)
	assert.NoError(t, CanAdvanceTransaction(recipient, recipientID))
	assert.NoError(t, CanAdvanceTransaction(admin, recipientID))
}

func TestRequireAdmin(t *testing.T) {
	assert.ErrorIs(t, RequireAdmin(nil), utils.ErrUnauthenticated)
	assert.ErrorIs(t, RequireAdmin(&Identity{AccountID: uuid.New(), Role: db_models.RoleUser}), utils.ErrForbidden)
	assert.NoError(t, RequireAdmin(&Identity{AccountID: uuid.New(), Role: db_models.RoleAdmin}))
}

func TestIdentityNilSafety(t *testing.T) {
	var id *Identity
	assert.False(t, id.IsAdmin())
	assert.False(t, id.Is(uuid.New()))
}
