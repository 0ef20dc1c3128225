package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"givehub/internal/models/db_models"
	"givehub/internal/models/request_models"
	"givehub/internal/models/response_models"
	"givehub/internal/repositories"
	"givehub/pkg/memcache"
	"givehub/pkg/utils"
)

const resetTokenTTL = 15 * time.Minute

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.AuthResponse, error)
	GetProfile(ctx context.Context, identity *Identity) (*response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, identity *Identity, req request_models.UpdateProfileRequest) (*response_models.AccountResponse, error)
	// PublicProfile returns the public view of an account: no email, phone
	// or stats. Deactivated accounts look absent.
	PublicProfile(ctx context.Context, id string) (*response_models.AccountResponse, error)
	ForgotPassword(ctx context.Context, req request_models.RequestForgotPassword) error
	ResetPassword(ctx context.Context, req request_models.ForgotPasswordRequest) error

	// Admin surface.
	ListAccounts(ctx context.Context, identity *Identity, query request_models.ListAccountsQuery) ([]response_models.AccountResponse, *response_models.Pagination, error)
	GetAccount(ctx context.Context, identity *Identity, id string) (*response_models.AccountResponse, error)
	UpdateAccount(ctx context.Context, identity *Identity, id string, req request_models.AdminUpdateAccountRequest) (*response_models.AccountResponse, error)
	DeleteAccount(ctx context.Context, identity *Identity, id string) error

	// RecomputeStats rebuilds the derived stats block for one account from
	// donations, items and transactions. Idempotent; safe to call any time.
	RecomputeStats(ctx context.Context, accountID uuid.UUID) error
}

type AccountService struct {
	accountRepo         repositories.AccountRepository
	transactionRepo     repositories.TransactionRepository
	dashboardRepo       repositories.DashboardRepository
	mailService         IMailService
	notificationService NotificationServiceInterface
	resetTokens         memcache.ResetTokenStore
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	transactionRepo repositories.TransactionRepository,
	dashboardRepo repositories.DashboardRepository,
	mailService IMailService,
	notificationService NotificationServiceInterface,
	resetTokens memcache.ResetTokenStore,
) AccountServiceInterface {
	return &AccountService{
		accountRepo:         accountRepo,
		transactionRepo:     transactionRepo,
		dashboardRepo:       dashboardRepo,
		mailService:         mailService,
		notificationService: notificationService,
		resetTokens:         resetTokens,
	}
}

func (s *AccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	userType := req.UserType
	if userType == "" {
		userType = db_models.UserTypeBoth
	}

	account := &db_models.Account{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         db_models.RoleUser,
		UserType:     userType,
		IsActive:     true,
	}
	if err := s.accountRepo.Insert(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	go func() {
		if err := s.mailService.SendWelcomeMail(account.Email, account.FirstName); err != nil {
			log.Printf("welcome mail to %s failed: %v", account.Email, err)
		}
	}()
	s.notificationService.Dispatch(ctx, account.ID, db_models.NotifSystem,
		"Welcome aboard", "Your account is ready. Post a donation or list an item to get started.", nil)

	return &response_models.AuthResponse{
		Token:   token,
		Account: toAccountResponse(account, true),
	}, nil
}

func (s *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, utils.ErrAccountDeactivated
	}

	now := utils.NowUnixSeconds()
	if err := s.accountRepo.UpdateLastLogin(ctx, account.ID, now); err != nil {
		log.Printf("last_login stamp for %s failed: %v", account.ID, err)
	}
	account.LastLogin = &now

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.AuthResponse{
		Token:   token,
		Account: toAccountResponse(account, true),
	}, nil
}

func (s *AccountService) GetProfile(ctx context.Context, identity *Identity) (*response_models.AccountResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	account, err := s.accountRepo.FindByID(ctx, identity.AccountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := toAccountResponse(account, true)
	return &resp, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, identity *Identity, req request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	account, err := s.accountRepo.FindByID(ctx, identity.AccountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if req.FirstName != nil {
		account.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
	}
	if req.Avatar != nil {
		account.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		account.Bio = *req.Bio
	}
	if req.UserType != nil {
		account.UserType = *req.UserType
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toAccountResponse(account, true)
	return &resp, nil
}

func (s *AccountService) PublicProfile(ctx context.Context, id string) (*response_models.AccountResponse, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil || !account.IsActive {
		return nil, utils.ErrAccountNotFound
	}

	resp := toAccountResponse(account, false)
	return &resp, nil
}

// ForgotPassword always reports success to the caller so the endpoint cannot
// be used to probe which emails are registered.
func (s *AccountService) ForgotPassword(ctx context.Context, req request_models.RequestForgotPassword) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil || !account.IsActive {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	s.resetTokens.Set(token, account.Email, resetTokenTTL)

	go func() {
		if err := s.mailService.SendMailToResetPassword(account.Email, token); err != nil {
			log.Printf("reset mail to %s failed: %v", account.Email, err)
		}
	}()
	return nil
}

func (s *AccountService) ResetPassword(ctx context.Context, req request_models.ForgotPasswordRequest) error {
	email := s.resetTokens.Consume(req.Token)
	if email == "" {
		return utils.ErrResetTokenInvalid
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrResetTokenInvalid
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := s.accountRepo.UpdatePassword(ctx, account.ID, hash); err != nil {
		return utils.ErrDatabaseError
	}

	s.notificationService.Dispatch(ctx, account.ID, db_models.NotifSystem,
		"Password changed", "Your password was just reset. If this wasn't you, contact support immediately.", nil)
	return nil
}

func (s *AccountService) ListAccounts(ctx context.Context, identity *Identity, query request_models.ListAccountsQuery) ([]response_models.AccountResponse, *response_models.Pagination, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, nil, err
	}
	if query.Page < 1 {
		return nil, nil, utils.ErrInvalidPage
	}
	if query.Limit < 1 || query.Limit > 100 {
		return nil, nil, utils.ErrInvalidPageSize
	}

	filter := repositories.AccountFilter{
		Search:   query.Search,
		Role:     query.Role,
		Page:     query.Page,
		PageSize: query.Limit,
	}
	switch query.Status {
	case "active":
		active := true
		filter.IsActive = &active
	case "inactive":
		inactive := false
		filter.IsActive = &inactive
	}

	accounts, total, err := s.accountRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	out := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResponse(&accounts[i], true))
	}
	pagination := response_models.NewPagination(total, query.Page, query.Limit)
	return out, &pagination, nil
}

func (s *AccountService) GetAccount(ctx context.Context, identity *Identity, id string) (*response_models.AccountResponse, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}
	accountID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := toAccountResponse(account, true)
	return &resp, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, identity *Identity, id string, req request_models.AdminUpdateAccountRequest) (*response_models.AccountResponse, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}
	accountID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if req.FirstName != nil {
		account.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
	}
	if req.Role != nil {
		account.Role = *req.Role
	}
	if req.UserType != nil {
		account.UserType = *req.UserType
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toAccountResponse(account, true)
	return &resp, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, identity *Identity, id string) error {
	if err := RequireAdmin(identity); err != nil {
		return err
	}
	accountID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrAccountNotFound
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}
	// Admin accounts are never deleted through the API; demote first.
	if account.Role == db_models.RoleAdmin {
		return utils.ErrForbidden
	}

	if err := s.accountRepo.Delete(ctx, accountID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *AccountService) RecomputeStats(ctx context.Context, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	var stats db_models.AccountStats

	if stats.TotalDonations, err = s.dashboardRepo.CountDonationsByDonor(ctx, accountID); err != nil {
		return utils.ErrDatabaseError
	}
	if stats.TotalItemsListed, err = s.dashboardRepo.CountItemsBySeller(ctx, accountID); err != nil {
		return utils.ErrDatabaseError
	}
	if stats.TotalTeachingSessions, err = s.dashboardRepo.CountCompletedKnowledgeByDonor(ctx, accountID); err != nil {
		return utils.ErrDatabaseError
	}
	if stats.TotalItemsReceived, err = s.transactionRepo.CountCompletedPurchasesByRecipient(ctx, accountID); err != nil {
		return utils.ErrDatabaseError
	}
	if stats.TotalAmountDonated, err = s.transactionRepo.SumCompletedAmountByDonor(ctx, accountID); err != nil {
		return utils.ErrDatabaseError
	}
	if stats.Rating, stats.ReviewCount, err = s.transactionRepo.RatingForAccount(ctx, accountID); err != nil {
		return utils.ErrDatabaseError
	}

	if err := s.accountRepo.UpdateStats(ctx, accountID, stats); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func toAccountResponse(account *db_models.Account, includePrivate bool) response_models.AccountResponse {
	resp := response_models.AccountResponse{
		ID:        account.ID.String(),
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Avatar:    account.Avatar,
		Bio:       account.Bio,
		Role:      account.Role,
		UserType:  account.UserType,
		IsActive:  account.IsActive,
		CreatedAt: utils.FormatUnixSeconds(account.CreatedAt),
		LastLogin: utils.FormatUnixSecondsPtr(account.LastLogin),
	}
	if includePrivate {
		resp.Email = account.Email
		resp.Phone = account.Phone
		resp.Stats = &account.Stats
	}
	return resp
}

func toAccountSummary(account *db_models.Account) *response_models.AccountSummary {
	if account == nil || account.ID == uuid.Nil {
		return nil
	}
	return &response_models.AccountSummary{
		ID:        account.ID.String(),
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Avatar:    account.Avatar,
		Rating:    account.Stats.Rating,
	}
}
