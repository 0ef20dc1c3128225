package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"givehub/internal/models/db_models"
	"givehub/internal/models/request_models"
	"givehub/internal/models/response_models"
	"givehub/internal/repositories"
)

// Hand-written mocks with overridable func fields. Methods without an
// override return zero values.

type mockAccountRepo struct {
	insertFunc          func(ctx context.Context, account *db_models.Account) error
	findByIDFunc        func(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	findByEmailFunc     func(ctx context.Context, email string) (*db_models.Account, error)
	updateFunc          func(ctx context.Context, account *db_models.Account) error
	updatePasswordFunc  func(ctx context.Context, id uuid.UUID, hash string) error
	updateLastLoginFunc func(ctx context.Context, id uuid.UUID, at int64) error
	updateStatsFunc     func(ctx context.Context, id uuid.UUID, stats db_models.AccountStats) error
	listFunc            func(ctx context.Context, filter repositories.AccountFilter) ([]db_models.Account, int64, error)
	deleteFunc          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAccountRepo) Insert(ctx context.Context, account *db_models.Account) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, account)
	}
	return nil
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockAccountRepo) Update(ctx context.Context, account *db_models.Account) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, account)
	}
	return nil
}

func (m *mockAccountRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, id, hash)
	}
	return nil
}

func (m *mockAccountRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at int64) error {
	if m.updateLastLoginFunc != nil {
		return m.updateLastLoginFunc(ctx, id, at)
	}
	return nil
}

func (m *mockAccountRepo) UpdateStats(ctx context.Context, id uuid.UUID, stats db_models.AccountStats) error {
	if m.updateStatsFunc != nil {
		return m.updateStatsFunc(ctx, id, stats)
	}
	return nil
}

func (m *mockAccountRepo) List(ctx context.Context, filter repositories.AccountFilter) ([]db_models.Account, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockDonationRepo struct {
	createFunc         func(ctx context.Context, donation *db_models.Donation) (uuid.UUID, error)
	findByIDFunc       func(ctx context.Context, id uuid.UUID) (*db_models.Donation, error)
	listFunc           func(ctx context.Context, filter repositories.DonationFilter) ([]db_models.Donation, int64, error)
	listByDonorFunc    func(ctx context.Context, donorID uuid.UUID) ([]db_models.Donation, error)
	listSimilarFunc    func(ctx context.Context, id uuid.UUID, dtype db_models.DonationType, statuses []db_models.DonationStatus, limit int) ([]db_models.Donation, error)
	updateFunc         func(ctx context.Context, donation *db_models.Donation) error
	updateStatusFunc   func(ctx context.Context, id uuid.UUID, status db_models.DonationStatus) error
	reserveFunc        func(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
	deleteFunc         func(ctx context.Context, id uuid.UUID) error
	incrementViewsFunc func(ctx context.Context, id uuid.UUID) error
	toggleFavoriteFunc func(ctx context.Context, donationID, accountID uuid.UUID) (bool, error)
	setFeaturedFunc    func(ctx context.Context, id uuid.UUID, featured bool) error
}

func (m *mockDonationRepo) Create(ctx context.Context, donation *db_models.Donation) (uuid.UUID, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, donation)
	}
	return uuid.New(), nil
}

func (m *mockDonationRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDonationRepo) List(ctx context.Context, filter repositories.DonationFilter) ([]db_models.Donation, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockDonationRepo) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]db_models.Donation, error) {
	if m.listByDonorFunc != nil {
		return m.listByDonorFunc(ctx, donorID)
	}
	return nil, nil
}

func (m *mockDonationRepo) ListSimilar(ctx context.Context, id uuid.UUID, dtype db_models.DonationType, statuses []db_models.DonationStatus, limit int) ([]db_models.Donation, error) {
	if m.listSimilarFunc != nil {
		return m.listSimilarFunc(ctx, id, dtype, statuses, limit)
	}
	return nil, nil
}

func (m *mockDonationRepo) Update(ctx context.Context, donation *db_models.Donation) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, donation)
	}
	return nil
}

func (m *mockDonationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.DonationStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockDonationRepo) Reserve(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	if m.reserveFunc != nil {
		return m.reserveFunc(ctx, id, recipientID)
	}
	return false, nil
}

func (m *mockDonationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockDonationRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if m.incrementViewsFunc != nil {
		return m.incrementViewsFunc(ctx, id)
	}
	return nil
}

func (m *mockDonationRepo) ToggleFavorite(ctx context.Context, donationID, accountID uuid.UUID) (bool, error) {
	if m.toggleFavoriteFunc != nil {
		return m.toggleFavoriteFunc(ctx, donationID, accountID)
	}
	return false, nil
}

func (m *mockDonationRepo) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	if m.setFeaturedFunc != nil {
		return m.setFeaturedFunc(ctx, id, featured)
	}
	return nil
}

type mockItemRepo struct {
	createFunc         func(ctx context.Context, item *db_models.Item) (uuid.UUID, error)
	findByIDFunc       func(ctx context.Context, id uuid.UUID) (*db_models.Item, error)
	listFunc           func(ctx context.Context, filter repositories.ItemFilter) ([]db_models.Item, int64, error)
	listBySellerFunc   func(ctx context.Context, sellerID uuid.UUID) ([]db_models.Item, error)
	listSimilarFunc    func(ctx context.Context, id uuid.UUID, category db_models.ItemCategory, limit int) ([]db_models.Item, error)
	updateFunc         func(ctx context.Context, item *db_models.Item) error
	updateStatusFunc   func(ctx context.Context, id uuid.UUID, status db_models.ItemStatus) error
	deleteFunc         func(ctx context.Context, id uuid.UUID) error
	incrementViewsFunc func(ctx context.Context, id uuid.UUID) error
	toggleFavoriteFunc func(ctx context.Context, itemID, accountID uuid.UUID) (bool, error)
	setFeaturedFunc    func(ctx context.Context, id uuid.UUID, featured bool) error
	purchaseFunc       func(ctx context.Context, itemID, buyerID uuid.UUID, txn *db_models.Transaction) (bool, error)
}

func (m *mockItemRepo) Create(ctx context.Context, item *db_models.Item) (uuid.UUID, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	return uuid.New(), nil
}

func (m *mockItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Item, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockItemRepo) List(ctx context.Context, filter repositories.ItemFilter) ([]db_models.Item, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockItemRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]db_models.Item, error) {
	if m.listBySellerFunc != nil {
		return m.listBySellerFunc(ctx, sellerID)
	}
	return nil, nil
}

func (m *mockItemRepo) ListSimilar(ctx context.Context, id uuid.UUID, category db_models.ItemCategory, limit int) ([]db_models.Item, error) {
	if m.listSimilarFunc != nil {
		return m.listSimilarFunc(ctx, id, category, limit)
	}
	return nil, nil
}

func (m *mockItemRepo) Update(ctx context.Context, item *db_models.Item) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, item)
	}
	return nil
}

func (m *mockItemRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ItemStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockItemRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if m.incrementViewsFunc != nil {
		return m.incrementViewsFunc(ctx, id)
	}
	return nil
}

func (m *mockItemRepo) ToggleFavorite(ctx context.Context, itemID, accountID uuid.UUID) (bool, error) {
	if m.toggleFavoriteFunc != nil {
		return m.toggleFavoriteFunc(ctx, itemID, accountID)
	}
	return false, nil
}

func (m *mockItemRepo) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	if m.setFeaturedFunc != nil {
		return m.setFeaturedFunc(ctx, id, featured)
	}
	return nil
}

func (m *mockItemRepo) Purchase(ctx context.Context, itemID, buyerID uuid.UUID, txn *db_models.Transaction) (bool, error) {
	if m.purchaseFunc != nil {
		return m.purchaseFunc(ctx, itemID, buyerID, txn)
	}
	return false, nil
}

type mockTransactionRepo struct {
	findByIDFunc      func(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error)
	listByAccountFunc func(ctx context.Context, accountID uuid.UUID) ([]db_models.Transaction, error)
	listFunc          func(ctx context.Context, filter repositories.TransactionFilter) ([]db_models.Transaction, int64, error)
	updateStatusFunc  func(ctx context.Context, txn *db_models.Transaction) error
	completeFunc      func(ctx context.Context, txn *db_models.Transaction) error
	cancelFunc        func(ctx context.Context, txn *db_models.Transaction) error
	addMessageFunc    func(ctx context.Context, message *db_models.TransactionMessage) error
	setRatingFunc     func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

func (m *mockTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Transaction, error) {
	if m.listByAccountFunc != nil {
		return m.listByAccountFunc(ctx, accountID)
	}
	return nil, nil
}

func (m *mockTransactionRepo) List(ctx context.Context, filter repositories.TransactionFilter) ([]db_models.Transaction, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTransactionRepo) UpdateStatus(ctx context.Context, txn *db_models.Transaction) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, txn)
	}
	return nil
}

func (m *mockTransactionRepo) Complete(ctx context.Context, txn *db_models.Transaction) error {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, txn)
	}
	return nil
}

func (m *mockTransactionRepo) Cancel(ctx context.Context, txn *db_models.Transaction) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, txn)
	}
	return nil
}

func (m *mockTransactionRepo) AddMessage(ctx context.Context, message *db_models.TransactionMessage) error {
	if m.addMessageFunc != nil {
		return m.addMessageFunc(ctx, message)
	}
	return nil
}

func (m *mockTransactionRepo) SetRating(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if m.setRatingFunc != nil {
		return m.setRatingFunc(ctx, id, updates)
	}
	return nil
}

func (m *mockTransactionRepo) CountCompletedPurchasesByRecipient(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *mockTransactionRepo) SumCompletedAmountByDonor(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *mockTransactionRepo) RatingForAccount(ctx context.Context, accountID uuid.UUID) (float64, int64, error) {
	return 0, 0, nil
}

type mockNotificationRepo struct {
	createFunc func(ctx context.Context, notification *db_models.Notification) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *db_models.Notification) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, notification)
	}
	return nil
}

func (m *mockNotificationRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, unreadOnly bool, page, pageSize int) ([]db_models.Notification, int64, error) {
	return nil, 0, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, accountID uuid.UUID) (bool, error) {
	return false, nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, accountID uuid.UUID) error {
	return nil
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id, accountID uuid.UUID) (bool, error) {
	return false, nil
}

// notificationRecorder captures dispatched notifications for assertions.
type notificationRecorder struct {
	dispatched []recordedNotification
}

type recordedNotification struct {
	AccountID uuid.UUID
	Type      db_models.NotificationType
	Title     string
}

func (r *notificationRecorder) Dispatch(ctx context.Context, accountID uuid.UUID, ntype db_models.NotificationType, title, message string, data map[string]interface{}) {
	r.dispatched = append(r.dispatched, recordedNotification{AccountID: accountID, Type: ntype, Title: title})
}

func (r *notificationRecorder) List(ctx context.Context, identity *Identity, unreadOnly bool, page, pageSize int) ([]response_models.NotificationResponse, int64, error) {
	return nil, 0, nil
}

func (r *notificationRecorder) UnreadCount(ctx context.Context, identity *Identity) (int64, error) {
	return 0, nil
}

func (r *notificationRecorder) MarkRead(ctx context.Context, identity *Identity, id string) error {
	return nil
}

func (r *notificationRecorder) MarkAllRead(ctx context.Context, identity *Identity) error {
	return nil
}

func (r *notificationRecorder) Delete(ctx context.Context, identity *Identity, id string) error {
	return nil
}

type mockMailService struct {
	welcomeFunc func(to, firstName string) error
	resetFunc   func(to, token string) error
	notifyFunc  func(to, subject, body string) error
}

func (m *mockMailService) SendWelcomeMail(to, firstName string) error {
	if m.welcomeFunc != nil {
		return m.welcomeFunc(to, firstName)
	}
	return nil
}

func (m *mockMailService) SendMailToResetPassword(to, token string) error {
	if m.resetFunc != nil {
		return m.resetFunc(to, token)
	}
	return nil
}

func (m *mockMailService) SendMailToNotifyUser(to, subject, body string) error {
	if m.notifyFunc != nil {
		return m.notifyFunc(to, subject, body)
	}
	return nil
}

type mockDashboardRepo struct {
	countDonationsByDonorFunc func(ctx context.Context, donorID uuid.UUID) (int64, error)
	countItemsBySellerFunc    func(ctx context.Context, sellerID uuid.UUID) (int64, error)
}

func (m *mockDashboardRepo) CountAccounts(ctx context.Context) (int64, error)       { return 0, nil }
func (m *mockDashboardRepo) CountActiveAccounts(ctx context.Context) (int64, error) { return 0, nil }
func (m *mockDashboardRepo) CountDonations(ctx context.Context) (int64, error)      { return 0, nil }
func (m *mockDashboardRepo) CountDonationsByStatus(ctx context.Context, status db_models.DonationStatus) (int64, error) {
	return 0, nil
}
func (m *mockDashboardRepo) CountItems(ctx context.Context) (int64, error) { return 0, nil }
func (m *mockDashboardRepo) CountItemsByStatus(ctx context.Context, status db_models.ItemStatus) (int64, error) {
	return 0, nil
}
func (m *mockDashboardRepo) CountTransactions(ctx context.Context) (int64, error) { return 0, nil }
func (m *mockDashboardRepo) CountTransactionsByStatus(ctx context.Context, status db_models.TransactionStatus) (int64, error) {
	return 0, nil
}
func (m *mockDashboardRepo) RevenueTotal(ctx context.Context) (int64, error) { return 0, nil }
func (m *mockDashboardRepo) RecentAccounts(ctx context.Context, limit int) ([]db_models.Account, error) {
	return nil, nil
}
func (m *mockDashboardRepo) RecentDonations(ctx context.Context, limit int) ([]db_models.Donation, error) {
	return nil, nil
}
func (m *mockDashboardRepo) RecentTransactions(ctx context.Context, limit int) ([]db_models.Transaction, error) {
	return nil, nil
}
func (m *mockDashboardRepo) DonationTypeBreakdown(ctx context.Context) ([]repositories.TypeCountRow, error) {
	return nil, nil
}
func (m *mockDashboardRepo) NewAccountsSeries(ctx context.Context, start, end time.Time, interval string) ([]repositories.BucketCountRow, error) {
	return nil, nil
}
func (m *mockDashboardRepo) CountDonationsByDonor(ctx context.Context, donorID uuid.UUID) (int64, error) {
	if m.countDonationsByDonorFunc != nil {
		return m.countDonationsByDonorFunc(ctx, donorID)
	}
	return 0, nil
}
func (m *mockDashboardRepo) CountCompletedKnowledgeByDonor(ctx context.Context, donorID uuid.UUID) (int64, error) {
	return 0, nil
}
func (m *mockDashboardRepo) CountItemsBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	if m.countItemsBySellerFunc != nil {
		return m.countItemsBySellerFunc(ctx, sellerID)
	}
	return 0, nil
}
func (m *mockDashboardRepo) RecentDonationsByDonor(ctx context.Context, donorID uuid.UUID, limit int) ([]db_models.Donation, error) {
	return nil, nil
}
func (m *mockDashboardRepo) RecentItemsBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]db_models.Item, error) {
	return nil, nil
}
func (m *mockDashboardRepo) RecentTransactionsByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Transaction, error) {
	return nil, nil
}

// mockAccountService satisfies AccountServiceInterface where a service under
// test only needs stats recomputation.
type mockAccountService struct {
	recomputeStatsFunc func(ctx context.Context, accountID uuid.UUID) error
}

func (m *mockAccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.AuthResponse, error) {
	return nil, nil
}

func (m *mockAccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.AuthResponse, error) {
	return nil, nil
}

func (m *mockAccountService) GetProfile(ctx context.Context, identity *Identity) (*response_models.AccountResponse, error) {
	return nil, nil
}

func (m *mockAccountService) UpdateProfile(ctx context.Context, identity *Identity, req request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	return nil, nil
}

func (m *mockAccountService) PublicProfile(ctx context.Context, id string) (*response_models.AccountResponse, error) {
	return nil, nil
}

func (m *mockAccountService) ForgotPassword(ctx context.Context, req request_models.RequestForgotPassword) error {
	return nil
}

func (m *mockAccountService) ResetPassword(ctx context.Context, req request_models.ForgotPasswordRequest) error {
	return nil
}

func (m *mockAccountService) ListAccounts(ctx context.Context, identity *Identity, query request_models.ListAccountsQuery) ([]response_models.AccountResponse, *response_models.Pagination, error) {
	return nil, nil, nil
}

func (m *mockAccountService) GetAccount(ctx context.Context, identity *Identity, id string) (*response_models.AccountResponse, error) {
	return nil, nil
}

func (m *mockAccountService) UpdateAccount(ctx context.Context, identity *Identity, id string, req request_models.AdminUpdateAccountRequest) (*response_models.AccountResponse, error) {
	return nil, nil
}

func (m *mockAccountService) DeleteAccount(ctx context.Context, identity *Identity, id string) error {
	return nil
}

func (m *mockAccountService) RecomputeStats(ctx context.Context, accountID uuid.UUID) error {
	if m.recomputeStatsFunc != nil {
		return m.recomputeStatsFunc(ctx, accountID)
	}
	return nil
}
