package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"givehub/internal/models/db_models"
	"givehub/internal/models/request_models"
	"givehub/internal/repositories"
	"givehub/pkg/utils"
)

func newDonationService(donationRepo *mockDonationRepo, recorder *notificationRecorder) DonationServiceInterface {
	return NewDonationService(donationRepo, &mockAccountRepo{}, recorder, &mockMailService{})
}

func userIdentity() *Identity {
	return &Identity{AccountID: uuid.New(), Role: db_models.RoleUser}
}

func adminIdentity() *Identity {
	return &Identity{AccountID: uuid.New(), Role: db_models.RoleAdmin}
}

func TestValidateDonationDetails(t *testing.T) {
	cases := []struct {
		name    string
		dtype   db_models.DonationType
		details string
		wantErr bool
	}{
		{"blood ok", db_models.DonationTypeBlood, `{"blood_type":"O+","eligible_to_donate":true}`, false},
		{"blood missing type", db_models.DonationTypeBlood, `{"eligible_to_donate":true}`, true},
		{"cash ok", db_models.DonationTypeCash, `{"amount_minor":5000,"currency":"USD"}`, false},
		{"cash zero amount", db_models.DonationTypeCash, `{"amount_minor":0,"currency":"USD"}`, true},
		{"cash negative amount", db_models.DonationTypeCash, `{"amount_minor":-100,"currency":"USD"}`, true},
		{"food ok", db_models.DonationTypeFood, `{"food_type":"canned"}`, false},
		{"food missing type", db_models.DonationTypeFood, `{"servings":4}`, true},
		{"books ok", db_models.DonationTypeBooks, `{"book_title":"The Go Programming Language"}`, false},
		{"books missing title", db_models.DonationTypeBooks, `{"author":"Donovan"}`, true},
		{"knowledge ok", db_models.DonationTypeKnowledge, `{"subject":"mathematics"}`, false},
		{"items ok", db_models.DonationTypeItems, `{"condition":"good"}`, false},
		{"wrong variant shape", db_models.DonationTypeCash, `{"blood_type":"O+"}`, true},
		{"empty payload", db_models.DonationTypeBlood, ``, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDonationDetails(tc.dtype, json.RawMessage(tc.details))
			if tc.wantErr {
				assert.ErrorIs(t, err, utils.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateDonationStartsPending(t *testing.T) {
	identity := userIdentity()

	var stored *db_models.Donation
	repo := &mockDonationRepo{
		createFunc: func(ctx context.Context, donation *db_models.Donation) (uuid.UUID, error) {
			donation.ID = uuid.New()
			stored = donation
			return donation.ID, nil
		},
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return stored, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	resp, err := svc.Create(context.Background(), identity, request_models.CreateDonationRequest{
		Type:        "cash",
		Title:       "School fund",
		Description: "Monthly contribution",
		Quantity:    1,
		Location:    "Hanoi",
		Details:     json.RawMessage(`{"amount_minor":10000,"currency":"USD"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, string(db_models.DonationStatusPending), resp.Status)
	assert.Equal(t, identity.AccountID, stored.DonorID)
}

func TestCreateDonationRejectsBadDetails(t *testing.T) {
	svc := newDonationService(&mockDonationRepo{}, &notificationRecorder{})

	_, err := svc.Create(context.Background(), userIdentity(), request_models.CreateDonationRequest{
		Type:        "cash",
		Title:       "School fund",
		Description: "Monthly contribution",
		Quantity:    1,
		Location:    "Hanoi",
		Details:     json.RawMessage(`{"amount_minor":0,"currency":"USD"}`),
	})

	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestListScopesNonAdminToPublicStatuses(t *testing.T) {
	var captured repositories.DonationFilter
	repo := &mockDonationRepo{
		listFunc: func(ctx context.Context, filter repositories.DonationFilter) ([]db_models.Donation, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	_, _, err := svc.List(context.Background(), nil, request_models.ListDonationsQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.ElementsMatch(t, db_models.PublicDonationStatuses, captured.Status)

	// A hidden status requested by a non-admin yields an empty page, not a
	// widened filter.
	donations, _, err := svc.List(context.Background(), userIdentity(), request_models.ListDonationsQuery{
		Status: "reserved", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, donations)

	_, _, err = svc.List(context.Background(), adminIdentity(), request_models.ListDonationsQuery{
		Status: "reserved", Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []db_models.DonationStatus{db_models.DonationStatusReserved}, captured.Status)
}

func TestGetHidesNonPublicDonationFromStrangers(t *testing.T) {
	donation := &db_models.Donation{
		DonorID: uuid.New(),
		Status:  db_models.DonationStatusRejected,
	}
	donation.ID = uuid.New()

	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	_, err := svc.Get(context.Background(), userIdentity(), donation.ID.String())
	assert.ErrorIs(t, err, utils.ErrDonationNotFound)

	// Owner still sees it.
	owner := &Identity{AccountID: donation.DonorID, Role: db_models.RoleUser}
	detail, err := svc.Get(context.Background(), owner, donation.ID.String())
	require.NoError(t, err)
	assert.Equal(t, donation.ID.String(), detail.Donation.ID)
}

func TestRequestReservesApprovedDonation(t *testing.T) {
	donorID := uuid.New()
	requester := userIdentity()

	donation := &db_models.Donation{
		DonorID: donorID,
		Title:   "Winter coats",
		Status:  db_models.DonationStatusApproved,
	}
	donation.ID = uuid.New()

	recorder := &notificationRecorder{}
	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
		reserveFunc: func(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
			assert.Equal(t, requester.AccountID, recipientID)
			donation.Status = db_models.DonationStatusReserved
			donation.RecipientID = &recipientID
			return true, nil
		},
	}
	svc := newDonationService(repo, recorder)

	resp, err := svc.Request(context.Background(), requester, donation.ID.String())

	require.NoError(t, err)
	assert.Equal(t, string(db_models.DonationStatusReserved), resp.Status)
	require.Len(t, recorder.dispatched, 1)
	assert.Equal(t, donorID, recorder.dispatched[0].AccountID)
	assert.Equal(t, db_models.NotifDonationRequest, recorder.dispatched[0].Type)
}

func TestRequestLosesRaceReturnsConflict(t *testing.T) {
	donation := &db_models.Donation{
		DonorID: uuid.New(),
		Status:  db_models.DonationStatusApproved,
	}
	donation.ID = uuid.New()

	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
		reserveFunc: func(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
			// Another request flipped the status first.
			return false, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	_, err := svc.Request(context.Background(), userIdentity(), donation.ID.String())
	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestRequestPendingDonationIsInvalidState(t *testing.T) {
	donation := &db_models.Donation{
		DonorID: uuid.New(),
		Status:  db_models.DonationStatusPending,
	}
	donation.ID = uuid.New()

	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	_, err := svc.Request(context.Background(), userIdentity(), donation.ID.String())
	assert.ErrorIs(t, err, utils.ErrInvalidState)
}

func TestRequestOwnDonationRejected(t *testing.T) {
	owner := userIdentity()
	donation := &db_models.Donation{
		DonorID: owner.AccountID,
		Status:  db_models.DonationStatusApproved,
	}
	donation.ID = uuid.New()

	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	_, err := svc.Request(context.Background(), owner, donation.ID.String())
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestSetStatusApproveRequiresAdmin(t *testing.T) {
	owner := userIdentity()
	donation := &db_models.Donation{
		DonorID: owner.AccountID,
		Status:  db_models.DonationStatusPending,
	}
	donation.ID = uuid.New()

	recorder := &notificationRecorder{}
	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
		updateStatusFunc: func(ctx context.Context, id uuid.UUID, status db_models.DonationStatus) error {
			donation.Status = status
			return nil
		},
	}
	svc := newDonationService(repo, recorder)

	_, err := svc.SetStatus(context.Background(), owner, donation.ID.String(),
		request_models.UpdateDonationStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	resp, err := svc.SetStatus(context.Background(), adminIdentity(), donation.ID.String(),
		request_models.UpdateDonationStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, string(db_models.DonationStatusApproved), resp.Status)
	require.Len(t, recorder.dispatched, 1)
	assert.Equal(t, db_models.NotifDonationApproved, recorder.dispatched[0].Type)
}

func TestSetStatusApproveMailsDonor(t *testing.T) {
	donor := &db_models.Account{Email: "donor@example.com", FirstName: "May", IsActive: true}
	donor.ID = uuid.New()

	donation := &db_models.Donation{
		DonorID: donor.ID,
		Title:   "Winter coats",
		Status:  db_models.DonationStatusPending,
	}
	donation.ID = uuid.New()

	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
	}
	accountRepo := &mockAccountRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
			return donor, nil
		},
	}

	mailed := make(chan string, 1)
	mail := &mockMailService{
		notifyFunc: func(to, subject, body string) error {
			mailed <- to
			return nil
		},
	}
	svc := NewDonationService(repo, accountRepo, &notificationRecorder{}, mail)

	_, err := svc.SetStatus(context.Background(), adminIdentity(), donation.ID.String(),
		request_models.UpdateDonationStatusRequest{Status: "approved"})
	require.NoError(t, err)

	select {
	case to := <-mailed:
		assert.Equal(t, donor.Email, to)
	case <-time.After(time.Second):
		t.Fatal("approval mail was never sent")
	}
}

func TestGetSimilarDonationsUsePublicStatuses(t *testing.T) {
	donation := &db_models.Donation{
		DonorID: uuid.New(),
		Type:    db_models.DonationTypeBooks,
		Status:  db_models.DonationStatusApproved,
	}
	donation.ID = uuid.New()

	var captured []db_models.DonationStatus
	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
		listSimilarFunc: func(ctx context.Context, id uuid.UUID, dtype db_models.DonationType, statuses []db_models.DonationStatus, limit int) ([]db_models.Donation, error) {
			captured = statuses
			return nil, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	_, err := svc.Get(context.Background(), nil, donation.ID.String())
	require.NoError(t, err)
	assert.ElementsMatch(t, db_models.PublicDonationStatuses, captured)
}

func TestToggleFeaturedDonationAdminOnly(t *testing.T) {
	donation := &db_models.Donation{
		DonorID: uuid.New(),
		Status:  db_models.DonationStatusApproved,
	}
	donation.ID = uuid.New()

	var setTo *bool
	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
		setFeaturedFunc: func(ctx context.Context, id uuid.UUID, featured bool) error {
			setTo = &featured
			return nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	_, err := svc.ToggleFeatured(context.Background(), userIdentity(), donation.ID.String())
	assert.ErrorIs(t, err, utils.ErrForbidden)
	assert.Nil(t, setTo)

	resp, err := svc.ToggleFeatured(context.Background(), adminIdentity(), donation.ID.String())
	require.NoError(t, err)
	assert.True(t, resp.IsFeatured)
	require.NotNil(t, setTo)
	assert.True(t, *setTo)

	// A second toggle turns it back off.
	resp, err = svc.ToggleFeatured(context.Background(), adminIdentity(), donation.ID.String())
	require.NoError(t, err)
	assert.False(t, resp.IsFeatured)
	assert.False(t, *setTo)
}

func TestSetStatusRejectsIllegalEdge(t *testing.T) {
	donation := &db_models.Donation{
		DonorID: uuid.New(),
		Status:  db_models.DonationStatusPending,
	}
	donation.ID = uuid.New()

	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	// pending -> completed is not a legal edge.
	_, err := svc.SetStatus(context.Background(), adminIdentity(), donation.ID.String(),
		request_models.UpdateDonationStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, utils.ErrInvalidState)
}

func TestUpdateTerminalDonationRejected(t *testing.T) {
	owner := userIdentity()
	donation := &db_models.Donation{
		DonorID: owner.AccountID,
		Status:  db_models.DonationStatusCompleted,
	}
	donation.ID = uuid.New()

	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	title := "new title"
	_, err := svc.Update(context.Background(), owner, donation.ID.String(),
		request_models.UpdateDonationRequest{Title: &title})
	assert.ErrorIs(t, err, utils.ErrInvalidState)
}

func TestDeleteReservedDonationRejected(t *testing.T) {
	owner := userIdentity()
	donation := &db_models.Donation{
		DonorID: owner.AccountID,
		Status:  db_models.DonationStatusReserved,
	}
	donation.ID = uuid.New()

	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	err := svc.Delete(context.Background(), owner, donation.ID.String())
	assert.ErrorIs(t, err, utils.ErrInvalidState)
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	identity := userIdentity()
	donation := &db_models.Donation{
		DonorID: uuid.New(),
		Status:  db_models.DonationStatusApproved,
	}
	donation.ID = uuid.New()

	favorited := false
	repo := &mockDonationRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
			return donation, nil
		},
		toggleFavoriteFunc: func(ctx context.Context, donationID, accountID uuid.UUID) (bool, error) {
			favorited = !favorited
			return favorited, nil
		},
	}
	svc := newDonationService(repo, &notificationRecorder{})

	first, err := svc.ToggleFavorite(context.Background(), identity, donation.ID.String())
	require.NoError(t, err)
	assert.True(t, first.IsFavorited)

	second, err := svc.ToggleFavorite(context.Background(), identity, donation.ID.String())
	require.NoError(t, err)
	assert.False(t, second.IsFavorited)
}

func TestDonationAnonymousWritesRejected(t *testing.T) {
	svc := newDonationService(&mockDonationRepo{}, &notificationRecorder{})

	_, err := svc.Create(context.Background(), nil, request_models.CreateDonationRequest{
		Type: "cash", Title: "x", Description: "y", Quantity: 1, Location: "z",
		Details: json.RawMessage(`{"amount_minor":100,"currency":"USD"}`),
	})
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = svc.MyDonations(context.Background(), nil)
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = svc.Request(context.Background(), nil, uuid.New().String())
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}
