package db_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationStatusTransitions(t *testing.T) {
	assert.True(t, DonationStatusPending.CanTransitionTo(DonationStatusApproved))
	assert.True(t, DonationStatusPending.CanTransitionTo(DonationStatusRejected))
	assert.True(t, DonationStatusApproved.CanTransitionTo(DonationStatusCompleted))
	assert.True(t, DonationStatusApproved.CanTransitionTo(DonationStatusCancelled))
	assert.True(t, DonationStatusReserved.CanTransitionTo(DonationStatusCompleted))
	assert.True(t, DonationStatusReserved.CanTransitionTo(DonationStatusCancelled))

	// Reservation only happens through the conditional update, never as a
	// plain status change.
	assert.False(t, DonationStatusApproved.CanTransitionTo(DonationStatusReserved))
	assert.False(t, DonationStatusPending.CanTransitionTo(DonationStatusCompleted))

	for _, terminal := range []DonationStatus{DonationStatusRejected, DonationStatusCompleted, DonationStatusCancelled} {
		assert.True(t, terminal.Terminal())
		for _, next := range []DonationStatus{DonationStatusPending, DonationStatusApproved, DonationStatusCompleted} {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
	}
}

func TestItemStatusTransitions(t *testing.T) {
	assert.True(t, ItemStatusDraft.CanTransitionTo(ItemStatusActive))
	assert.True(t, ItemStatusActive.CanTransitionTo(ItemStatusPending))
	assert.True(t, ItemStatusActive.CanTransitionTo(ItemStatusExpired))
	assert.True(t, ItemStatusPending.CanTransitionTo(ItemStatusActive))
	assert.True(t, ItemStatusPending.CanTransitionTo(ItemStatusSold))

	assert.False(t, ItemStatusSold.CanTransitionTo(ItemStatusActive))
	assert.False(t, ItemStatusCancelled.CanTransitionTo(ItemStatusActive))

	assert.True(t, ItemStatusSold.TerminalForUser())
	assert.True(t, ItemStatusCancelled.TerminalForUser())
	assert.False(t, ItemStatusPending.TerminalForUser())
}

func TestTransactionStatusTransitions(t *testing.T) {
	assert.True(t, TxnStatusPending.CanTransitionTo(TxnStatusProcessing))
	assert.True(t, TxnStatusPending.CanTransitionTo(TxnStatusCompleted))
	assert.True(t, TxnStatusPending.CanTransitionTo(TxnStatusCancelled))
	assert.True(t, TxnStatusProcessing.CanTransitionTo(TxnStatusRefunded))

	// Refunds only follow processing.
	assert.False(t, TxnStatusPending.CanTransitionTo(TxnStatusRefunded))

	for _, terminal := range []TransactionStatus{TxnStatusCompleted, TxnStatusCancelled, TxnStatusRefunded} {
		assert.True(t, terminal.Terminal())
		assert.False(t, terminal.CanTransitionTo(TxnStatusPending))
	}
}

func TestValidDonationType(t *testing.T) {
	for _, dt := range []DonationType{DonationTypeBlood, DonationTypeCash, DonationTypeFood, DonationTypeBooks, DonationTypeKnowledge, DonationTypeItems} {
		assert.True(t, ValidDonationType(dt))
	}
	assert.False(t, ValidDonationType("vehicles"))
}

func TestValidItemCategory(t *testing.T) {
	assert.True(t, ValidItemCategory(ItemCategoryClothing))
	assert.True(t, ValidItemCategory(ItemCategoryOther))
	assert.False(t, ValidItemCategory("weapons"))
}
