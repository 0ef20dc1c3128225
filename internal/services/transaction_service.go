package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"givehub/internal/models/db_models"
	"givehub/internal/models/request_models"
	"givehub/internal/models/response_models"
	"givehub/internal/repositories"
	"givehub/pkg/utils"
)

type TransactionServiceInterface interface {
	ListMine(ctx context.Context, identity *Identity) ([]response_models.TransactionResponse, error)
	List(ctx context.Context, identity *Identity, query request_models.ListTransactionsQuery) ([]response_models.TransactionResponse, *response_models.Pagination, error)
	Get(ctx context.Context, identity *Identity, id string) (*response_models.TransactionResponse, error)
	UpdateStatus(ctx context.Context, identity *Identity, id string, req request_models.UpdateTransactionStatusRequest) (*response_models.TransactionResponse, error)
	AddMessage(ctx context.Context, identity *Identity, id string, req request_models.SendMessageRequest) (*response_models.TransactionResponse, error)
	SubmitRating(ctx context.Context, identity *Identity, id string, req request_models.SubmitRatingRequest) (*response_models.TransactionResponse, error)
}

type TransactionService struct {
	transactionRepo     repositories.TransactionRepository
	notificationService NotificationServiceInterface
	accountService      AccountServiceInterface
}

func NewTransactionService(
	transactionRepo repositories.TransactionRepository,
	notificationService NotificationServiceInterface,
	accountService AccountServiceInterface,
) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo:     transactionRepo,
		notificationService: notificationService,
		accountService:      accountService,
	}
}

func (s *TransactionService) ListMine(ctx context.Context, identity *Identity) ([]response_models.TransactionResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	txns, err := s.transactionRepo.ListByAccount(ctx, identity.AccountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, toTransactionResponse(&txns[i]))
	}
	return out, nil
}

func (s *TransactionService) List(ctx context.Context, identity *Identity, query request_models.ListTransactionsQuery) ([]response_models.TransactionResponse, *response_models.Pagination, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, nil, err
	}
	if query.Page < 1 {
		return nil, nil, utils.ErrInvalidPage
	}
	if query.Limit < 1 || query.Limit > 100 {
		return nil, nil, utils.ErrInvalidPageSize
	}

	txns, total, err := s.transactionRepo.List(ctx, repositories.TransactionFilter{
		Type:     db_models.TransactionType(query.Type),
		Status:   db_models.TransactionStatus(query.Status),
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.Limit,
	})
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, toTransactionResponse(&txns[i]))
	}
	pagination := response_models.NewPagination(total, query.Page, query.Limit)
	return out, &pagination, nil
}

func (s *TransactionService) Get(ctx context.Context, identity *Identity, id string) (*response_models.TransactionResponse, error) {
	txn, err := s.loadForParty(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	resp := toTransactionResponse(txn)
	return &resp, nil
}

func (s *TransactionService) UpdateStatus(ctx context.Context, identity *Identity, id string, req request_models.UpdateTransactionStatusRequest) (*response_models.TransactionResponse, error) {
	txn, err := s.loadForParty(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if err := CanAdvanceTransaction(identity, txn.RecipientID); err != nil {
		return nil, err
	}

	next := db_models.TransactionStatus(req.Status)
	if !txn.Status.CanTransitionTo(next) {
		return nil, utils.ErrInvalidState
	}

	now := utils.NowUnixSeconds()
	txn.Status = next

	switch next {
	case db_models.TxnStatusCompleted:
		txn.CompletedDate = &now
		err = s.transactionRepo.Complete(ctx, txn)
	case db_models.TxnStatusCancelled:
		txn.CancelledDate = &now
		err = s.transactionRepo.Cancel(ctx, txn)
	default:
		err = s.transactionRepo.UpdateStatus(ctx, txn)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.notifyCounterparty(ctx, identity, txn, db_models.NotifTransactionUpdate,
		"Transaction updated", "Transaction status changed to "+string(next)+".")

	if next == db_models.TxnStatusCompleted {
		// Stats are a derived read model; refresh both parties best-effort.
		for _, accountID := range []uuid.UUID{txn.DonorID, txn.RecipientID} {
			if err := s.accountService.RecomputeStats(ctx, accountID); err != nil {
				log.Printf("stats recompute for %s failed: %v", accountID, err)
			}
		}
	}

	updated, err := s.transactionRepo.FindByID(ctx, txn.ID)
	if err != nil || updated == nil {
		return nil, utils.ErrDatabaseError
	}
	resp := toTransactionResponse(updated)
	return &resp, nil
}

func (s *TransactionService) AddMessage(ctx context.Context, identity *Identity, id string, req request_models.SendMessageRequest) (*response_models.TransactionResponse, error) {
	txn, err := s.loadForParty(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	message := &db_models.TransactionMessage{
		TransactionID: txn.ID,
		SenderID:      identity.AccountID,
		Body:          req.Message,
	}
	if err := s.transactionRepo.AddMessage(ctx, message); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.notifyCounterparty(ctx, identity, txn, db_models.NotifMessageReceived,
		"New message", "You have a new message on one of your transactions.")

	updated, err := s.transactionRepo.FindByID(ctx, txn.ID)
	if err != nil || updated == nil {
		return nil, utils.ErrDatabaseError
	}
	resp := toTransactionResponse(updated)
	return &resp, nil
}

func (s *TransactionService) SubmitRating(ctx context.Context, identity *Identity, id string, req request_models.SubmitRatingRequest) (*response_models.TransactionResponse, error) {
	txn, err := s.loadForParty(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	if txn.Status != db_models.TxnStatusCompleted {
		return nil, utils.ErrInvalidState
	}

	// Each side rates the other exactly once: the recipient rates the
	// donor, the donor rates the recipient.
	var ratedAccountID uuid.UUID
	updates := map[string]interface{}{}
	switch req.ForRole {
	case "donor":
		if !identity.IsAdmin() && identity.AccountID != txn.RecipientID {
			return nil, utils.ErrForbidden
		}
		if txn.DonorRating != nil {
			return nil, utils.ErrConflict
		}
		updates["donor_rating"] = req.Rating
		updates["donor_review"] = req.Review
		ratedAccountID = txn.DonorID
	case "recipient":
		if !identity.IsAdmin() && identity.AccountID != txn.DonorID {
			return nil, utils.ErrForbidden
		}
		if txn.RecipientRating != nil {
			return nil, utils.ErrConflict
		}
		updates["recipient_rating"] = req.Rating
		updates["recipient_review"] = req.Review
		ratedAccountID = txn.RecipientID
	default:
		return nil, utils.ErrValidation
	}

	if err := s.transactionRepo.SetRating(ctx, txn.ID, updates); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := s.accountService.RecomputeStats(ctx, ratedAccountID); err != nil {
		log.Printf("stats recompute for %s failed: %v", ratedAccountID, err)
	}

	updated, err := s.transactionRepo.FindByID(ctx, txn.ID)
	if err != nil || updated == nil {
		return nil, utils.ErrDatabaseError
	}
	resp := toTransactionResponse(updated)
	return &resp, nil
}

// loadForParty resolves the transaction and enforces party-or-admin access.
func (s *TransactionService) loadForParty(ctx context.Context, identity *Identity, id string) (*db_models.Transaction, error) {
	txnID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrTransactionNotFound
	}

	txn, err := s.transactionRepo.FindByID(ctx, txnID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if txn == nil {
		return nil, utils.ErrTransactionNotFound
	}
	if err := CanActOnTransaction(identity, txn.DonorID, txn.RecipientID); err != nil {
		return nil, err
	}
	return txn, nil
}

// notifyCounterparty tells every party that did not initiate the action.
// An admin acting on someone else's transaction notifies both parties.
func (s *TransactionService) notifyCounterparty(ctx context.Context, identity *Identity, txn *db_models.Transaction, ntype db_models.NotificationType, title, message string) {
	targets := []uuid.UUID{txn.DonorID, txn.RecipientID}
	if identity != nil {
		switch identity.AccountID {
		case txn.DonorID:
			targets = []uuid.UUID{txn.RecipientID}
		case txn.RecipientID:
			targets = []uuid.UUID{txn.DonorID}
		}
	}
	for _, target := range targets {
		s.notificationService.Dispatch(ctx, target, ntype, title, message,
			map[string]interface{}{"transaction_id": txn.ID.String()})
	}
}

func toTransactionResponse(txn *db_models.Transaction) response_models.TransactionResponse {
	resp := response_models.TransactionResponse{
		ID:              txn.ID.String(),
		Type:            string(txn.Type),
		Status:          string(txn.Status),
		AmountMinor:     txn.AmountMinor,
		Currency:        txn.Currency,
		PaymentMethod:   txn.PaymentMethod,
		TrackingNumber:  txn.TrackingNumber,
		ShippingAddress: txn.ShippingAddress,
		DonorRating:     txn.DonorRating,
		RecipientRating: txn.RecipientRating,
		DonorReview:     txn.DonorReview,
		RecipientReview: txn.RecipientReview,
		CreatedAt:       utils.FormatUnixSeconds(txn.CreatedAt),
		CompletedAt:     utils.FormatUnixSecondsPtr(txn.CompletedDate),
		CancelledAt:     utils.FormatUnixSecondsPtr(txn.CancelledDate),
		Donor:           toAccountSummary(&txn.Donor),
		Recipient:       toAccountSummary(&txn.Recipient),
	}
	if txn.DonationID != nil {
		resp.DonationID = txn.DonationID.String()
	}
	if txn.ItemID != nil {
		resp.ItemID = txn.ItemID.String()
	}
	for i := range txn.Messages {
		m := &txn.Messages[i]
		resp.Messages = append(resp.Messages, response_models.TransactionMessageResponse{
			ID:       m.ID.String(),
			SenderID: m.SenderID.String(),
			Body:     m.Body,
			SentAt:   utils.FormatUnixSeconds(m.CreatedAt),
		})
	}
	return resp
}
