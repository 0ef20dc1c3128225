package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"givehub/internal/models/db_models"
	"givehub/internal/models/request_models"
	"givehub/internal/models/response_models"
	"givehub/internal/repositories"
	"givehub/pkg/utils"
)

const similarDonationsLimit = 4

type DonationServiceInterface interface {
	Create(ctx context.Context, identity *Identity, req request_models.CreateDonationRequest) (*response_models.DonationResponse, error)
	List(ctx context.Context, identity *Identity, query request_models.ListDonationsQuery) ([]response_models.DonationResponse, *response_models.Pagination, error)
	Get(ctx context.Context, identity *Identity, id string) (*response_models.DonationDetailResponse, error)
	Update(ctx context.Context, identity *Identity, id string, req request_models.UpdateDonationRequest) (*response_models.DonationResponse, error)
	Delete(ctx context.Context, identity *Identity, id string) error
	SetStatus(ctx context.Context, identity *Identity, id string, req request_models.UpdateDonationStatusRequest) (*response_models.DonationResponse, error)
	// Request reserves an approved donation for the caller. At most one
	// request wins; later callers get a conflict.
	Request(ctx context.Context, identity *Identity, id string) (*response_models.DonationResponse, error)
	ToggleFavorite(ctx context.Context, identity *Identity, id string) (*response_models.FavoriteResponse, error)
	ToggleFeatured(ctx context.Context, identity *Identity, id string) (*response_models.DonationResponse, error)
	MyDonations(ctx context.Context, identity *Identity) ([]response_models.DonationResponse, error)
}

type DonationService struct {
	donationRepo        repositories.DonationRepository
	accountRepo         repositories.AccountRepository
	notificationService NotificationServiceInterface
	mailService         IMailService
}

func NewDonationService(
	donationRepo repositories.DonationRepository,
	accountRepo repositories.AccountRepository,
	notificationService NotificationServiceInterface,
	mailService IMailService,
) DonationServiceInterface {
	return &DonationService{
		donationRepo:        donationRepo,
		accountRepo:         accountRepo,
		notificationService: notificationService,
		mailService:         mailService,
	}
}

// validateDonationDetails decodes the Details payload into the variant the
// donation type selects and checks the variant's required fields. Unknown
// JSON keys are rejected so a payload cannot smuggle another variant's shape.
func validateDonationDetails(dtype db_models.DonationType, raw json.RawMessage) error {
	if len(raw) == 0 {
		return utils.ErrValidation
	}

	decode := func(v interface{}) error {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}

	switch dtype {
	case db_models.DonationTypeBlood:
		var d db_models.BloodDetails
		if err := decode(&d); err != nil || d.BloodType == "" {
			return utils.ErrValidation
		}
	case db_models.DonationTypeCash:
		var d db_models.CashDetails
		if err := decode(&d); err != nil || d.AmountMinor <= 0 || d.Currency == "" {
			return utils.ErrValidation
		}
	case db_models.DonationTypeFood:
		var d db_models.FoodDetails
		if err := decode(&d); err != nil || d.FoodType == "" {
			return utils.ErrValidation
		}
	case db_models.DonationTypeBooks:
		var d db_models.BookDetails
		if err := decode(&d); err != nil || d.BookTitle == "" {
			return utils.ErrValidation
		}
	case db_models.DonationTypeKnowledge:
		var d db_models.KnowledgeDetails
		if err := decode(&d); err != nil || d.Subject == "" {
			return utils.ErrValidation
		}
	case db_models.DonationTypeItems:
		var d db_models.ItemDetails
		if err := decode(&d); err != nil || d.Condition == "" {
			return utils.ErrValidation
		}
	default:
		return utils.ErrValidation
	}
	return nil
}

func (s *DonationService) Create(ctx context.Context, identity *Identity, req request_models.CreateDonationRequest) (*response_models.DonationResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	dtype := db_models.DonationType(req.Type)
	if !db_models.ValidDonationType(dtype) {
		return nil, utils.ErrValidation
	}
	if err := validateDonationDetails(dtype, req.Details); err != nil {
		return nil, err
	}

	var scheduled *int64
	if req.ScheduledAt != nil && *req.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			return nil, utils.ErrValidation
		}
		ts := t.Unix()
		scheduled = &ts
	}

	images, err := marshalImages(req.Images)
	if err != nil {
		return nil, utils.ErrValidation
	}

	donation := &db_models.Donation{
		DonorID:       identity.AccountID,
		Type:          dtype,
		Title:         req.Title,
		Description:   req.Description,
		Details:       datatypes.JSON(req.Details),
		Quantity:      req.Quantity,
		Location:      req.Location,
		Images:        images,
		Tags:          req.Tags,
		Status:        db_models.DonationStatusPending,
		ScheduledDate: scheduled,
	}

	id, err := s.donationRepo.Create(ctx, donation)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	created, err := s.donationRepo.FindByID(ctx, id)
	if err != nil || created == nil {
		return nil, utils.ErrDatabaseError
	}

	s.notificationService.Dispatch(ctx, identity.AccountID, db_models.NotifListingCreated,
		"Donation submitted", "Your donation \""+created.Title+"\" was submitted and is awaiting review.",
		map[string]interface{}{"donation_id": created.ID.String()})

	resp := toDonationResponse(created)
	return &resp, nil
}

func (s *DonationService) List(ctx context.Context, identity *Identity, query request_models.ListDonationsQuery) ([]response_models.DonationResponse, *response_models.Pagination, error) {
	if query.Page < 1 {
		return nil, nil, utils.ErrInvalidPage
	}
	if query.Limit < 1 || query.Limit > 100 {
		return nil, nil, utils.ErrInvalidPageSize
	}

	filter := repositories.DonationFilter{
		Type:        db_models.DonationType(query.Type),
		Location:    query.Location,
		Search:      query.Search,
		MinQuantity: query.MinQuantity,
		MaxQuantity: query.MaxQuantity,
		Page:        query.Page,
		PageSize:    query.Limit,
		SortBy:      query.SortBy,
		SortOrder:   query.SortOrder,
	}

	// Non-admin callers only ever see the public statuses; a requested
	// status filter narrows within that set instead of widening past it.
	if identity.IsAdmin() {
		if query.Status != "" {
			filter.Status = []db_models.DonationStatus{db_models.DonationStatus(query.Status)}
		}
	} else {
		filter.Status = db_models.PublicDonationStatuses
		if query.Status != "" {
			requested := db_models.DonationStatus(query.Status)
			if !containsStatus(db_models.PublicDonationStatuses, requested) {
				return []response_models.DonationResponse{}, &response_models.Pagination{Page: query.Page, Limit: query.Limit}, nil
			}
			filter.Status = []db_models.DonationStatus{requested}
		}
	}

	donations, total, err := s.donationRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	out := make([]response_models.DonationResponse, 0, len(donations))
	for i := range donations {
		out = append(out, toDonationResponse(&donations[i]))
	}
	pagination := response_models.NewPagination(total, query.Page, query.Limit)
	return out, &pagination, nil
}

func (s *DonationService) Get(ctx context.Context, identity *Identity, id string) (*response_models.DonationDetailResponse, error) {
	donationID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrDonationNotFound
	}

	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if donation == nil {
		return nil, utils.ErrDonationNotFound
	}

	public := containsStatus(db_models.PublicDonationStatuses, donation.Status)
	if err := CanReadListing(identity, donation.DonorID, public); err != nil {
		// Hidden listings look absent, not forbidden.
		return nil, utils.ErrDonationNotFound
	}

	// View counting is best-effort and off the request path.
	go func(id uuid.UUID) {
		if err := s.donationRepo.IncrementViews(context.Background(), id); err != nil {
			log.Printf("view increment for donation %s failed: %v", id, err)
		}
	}(donation.ID)

	similar, err := s.donationRepo.ListSimilar(ctx, donation.ID, donation.Type,
		db_models.PublicDonationStatuses, similarDonationsLimit)
	if err != nil {
		log.Printf("similar lookup for donation %s failed: %v", donation.ID, err)
		similar = nil
	}

	resp := &response_models.DonationDetailResponse{
		Donation: toDonationResponse(donation),
		Similar:  make([]response_models.DonationResponse, 0, len(similar)),
	}
	for i := range similar {
		resp.Similar = append(resp.Similar, toDonationResponse(&similar[i]))
	}
	return resp, nil
}

func (s *DonationService) Update(ctx context.Context, identity *Identity, id string, req request_models.UpdateDonationRequest) (*response_models.DonationResponse, error) {
	donationID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrDonationNotFound
	}

	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if donation == nil {
		return nil, utils.ErrDonationNotFound
	}
	if err := CanMutateListing(identity, donation.DonorID); err != nil {
		return nil, err
	}
	if donation.Status.Terminal() {
		return nil, utils.ErrInvalidState
	}

	if req.Title != nil {
		donation.Title = *req.Title
	}
	if req.Description != nil {
		donation.Description = *req.Description
	}
	if req.Quantity != nil {
		donation.Quantity = *req.Quantity
	}
	if req.Location != nil {
		donation.Location = *req.Location
	}
	if len(req.Details) > 0 {
		if err := validateDonationDetails(donation.Type, req.Details); err != nil {
			return nil, err
		}
		donation.Details = datatypes.JSON(req.Details)
	}
	if req.Tags != nil {
		donation.Tags = req.Tags
	}
	if req.Images != nil {
		images, err := marshalImages(req.Images)
		if err != nil {
			return nil, utils.ErrValidation
		}
		donation.Images = images
	}

	if err := s.donationRepo.Update(ctx, donation); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toDonationResponse(donation)
	return &resp, nil
}

func (s *DonationService) Delete(ctx context.Context, identity *Identity, id string) error {
	donationID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrDonationNotFound
	}

	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if donation == nil {
		return utils.ErrDonationNotFound
	}
	if err := CanMutateListing(identity, donation.DonorID); err != nil {
		return err
	}
	// Reserved donations have a committed recipient; cancel the
	// reservation first.
	if donation.Status == db_models.DonationStatusReserved {
		return utils.ErrInvalidState
	}

	if err := s.donationRepo.Delete(ctx, donationID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *DonationService) SetStatus(ctx context.Context, identity *Identity, id string, req request_models.UpdateDonationStatusRequest) (*response_models.DonationResponse, error) {
	donationID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrDonationNotFound
	}

	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if donation == nil {
		return nil, utils.ErrDonationNotFound
	}

	next := db_models.DonationStatus(req.Status)

	// Moderation (approve/reject) is admin-only; completion and
	// cancellation belong to the owner or admin.
	switch next {
	case db_models.DonationStatusApproved, db_models.DonationStatusRejected:
		if err := RequireAdmin(identity); err != nil {
			return nil, err
		}
	default:
		if err := CanMutateListing(identity, donation.DonorID); err != nil {
			return nil, err
		}
	}

	if !donation.Status.CanTransitionTo(next) {
		return nil, utils.ErrInvalidState
	}

	if err := s.donationRepo.UpdateStatus(ctx, donationID, next); err != nil {
		return nil, utils.ErrDatabaseError
	}

	switch next {
	case db_models.DonationStatusApproved:
		s.notificationService.Dispatch(ctx, donation.DonorID, db_models.NotifDonationApproved,
			"Donation approved", "Your donation \""+donation.Title+"\" is now live.",
			map[string]interface{}{"donation_id": donation.ID.String()})
		s.mailDonor(ctx, donation.DonorID, "Your donation is live",
			"Your donation \""+donation.Title+"\" was approved and is now visible to recipients.")
	case db_models.DonationStatusRejected:
		s.notificationService.Dispatch(ctx, donation.DonorID, db_models.NotifDonationRejected,
			"Donation rejected", "Your donation \""+donation.Title+"\" was not approved.",
			map[string]interface{}{"donation_id": donation.ID.String()})
	}

	updated, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil || updated == nil {
		return nil, utils.ErrDatabaseError
	}
	resp := toDonationResponse(updated)
	return &resp, nil
}

func (s *DonationService) Request(ctx context.Context, identity *Identity, id string) (*response_models.DonationResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}
	donationID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrDonationNotFound
	}

	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if donation == nil {
		return nil, utils.ErrDonationNotFound
	}
	if donation.DonorID == identity.AccountID {
		return nil, utils.ErrValidation
	}

	reserved, err := s.donationRepo.Reserve(ctx, donationID, identity.AccountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !reserved {
		// Either the donation was never approved or another request won
		// the reservation between our read and the conditional write.
		if donation.Status == db_models.DonationStatusApproved ||
			donation.Status == db_models.DonationStatusReserved {
			return nil, utils.ErrConflict
		}
		return nil, utils.ErrInvalidState
	}

	requester, err := s.accountRepo.FindByID(ctx, identity.AccountID)
	if err != nil {
		log.Printf("requester lookup for %s failed: %v", identity.AccountID, err)
	}
	requesterName := "Someone"
	if requester != nil {
		requesterName = requester.FullName()
	}
	s.notificationService.Dispatch(ctx, donation.DonorID, db_models.NotifDonationRequest,
		"Donation requested", requesterName+" requested your donation \""+donation.Title+"\".",
		map[string]interface{}{"donation_id": donation.ID.String(), "requester_id": identity.AccountID.String()})

	updated, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil || updated == nil {
		return nil, utils.ErrDatabaseError
	}
	resp := toDonationResponse(updated)
	return &resp, nil
}

func (s *DonationService) ToggleFavorite(ctx context.Context, identity *Identity, id string) (*response_models.FavoriteResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}
	donationID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrDonationNotFound
	}

	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if donation == nil {
		return nil, utils.ErrDonationNotFound
	}

	favorited, err := s.donationRepo.ToggleFavorite(ctx, donationID, identity.AccountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.FavoriteResponse{IsFavorited: favorited}, nil
}

// ToggleFeatured flips the admin-curated featured flag.
func (s *DonationService) ToggleFeatured(ctx context.Context, identity *Identity, id string) (*response_models.DonationResponse, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}
	donationID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrDonationNotFound
	}

	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if donation == nil {
		return nil, utils.ErrDonationNotFound
	}

	donation.IsFeatured = !donation.IsFeatured
	if err := s.donationRepo.SetFeatured(ctx, donationID, donation.IsFeatured); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toDonationResponse(donation)
	return &resp, nil
}

// mailDonor sends a best-effort mail to the donation's owner.
func (s *DonationService) mailDonor(ctx context.Context, donorID uuid.UUID, subject, body string) {
	donor, err := s.accountRepo.FindByID(ctx, donorID)
	if err != nil || donor == nil {
		log.Printf("donor lookup for %s failed: %v", donorID, err)
		return
	}
	go func(email string) {
		if err := s.mailService.SendMailToNotifyUser(email, subject, body); err != nil {
			log.Printf("mail to %s failed: %v", email, err)
		}
	}(donor.Email)
}

func (s *DonationService) MyDonations(ctx context.Context, identity *Identity) ([]response_models.DonationResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	donations, err := s.donationRepo.ListByDonor(ctx, identity.AccountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.DonationResponse, 0, len(donations))
	for i := range donations {
		out = append(out, toDonationResponse(&donations[i]))
	}
	return out, nil
}

func toDonationResponse(d *db_models.Donation) response_models.DonationResponse {
	resp := response_models.DonationResponse{
		ID:          d.ID.String(),
		Type:        string(d.Type),
		Title:       d.Title,
		Description: d.Description,
		Details:     d.Details,
		Quantity:    d.Quantity,
		Location:    d.Location,
		Status:      string(d.Status),
		Tags:        d.Tags,
		Images:      d.Images,
		IsFeatured:  d.IsFeatured,
		Views:       d.Views,
		CreatedAt:   utils.FormatUnixSeconds(d.CreatedAt),
		CompletedAt: utils.FormatUnixSecondsPtr(d.CompletedDate),
		Donor:       toAccountSummary(&d.Donor),
	}
	if d.Recipient != nil {
		resp.Recipient = toAccountSummary(d.Recipient)
	}
	return resp
}

func marshalImages(images []db_models.Image) (datatypes.JSON, error) {
	if images == nil {
		return datatypes.JSON("[]"), nil
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func containsStatus(statuses []db_models.DonationStatus, s db_models.DonationStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
