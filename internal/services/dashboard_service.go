package services

import (
	"context"
	"sort"
	"time"

	"givehub/internal/models/db_models"
	"givehub/internal/models/response_models"
	"givehub/internal/repositories"
	"givehub/pkg/utils"
)

const (
	recentActivityLimit = 5
	timelineLimit       = 10
)

type DashboardServiceInterface interface {
	AdminOverview(ctx context.Context, identity *Identity) (*response_models.AdminOverviewResponse, error)
	UserDashboard(ctx context.Context, identity *Identity) (*response_models.UserDashboardResponse, error)
	Analytics(ctx context.Context, identity *Identity, days int, interval string) (*response_models.AnalyticsResponse, error)
}

type DashboardService struct {
	dashboardRepo  repositories.DashboardRepository
	accountRepo    repositories.AccountRepository
	accountService AccountServiceInterface
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepository,
	accountRepo repositories.AccountRepository,
	accountService AccountServiceInterface,
) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo:  dashboardRepo,
		accountRepo:    accountRepo,
		accountService: accountService,
	}
}

func (s *DashboardService) AdminOverview(ctx context.Context, identity *Identity) (*response_models.AdminOverviewResponse, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}

	var (
		stats response_models.AdminStats
		err   error
	)
	if stats.TotalUsers, err = s.dashboardRepo.CountAccounts(ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if stats.ActiveUsers, err = s.dashboardRepo.CountActiveAccounts(ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if stats.TotalDonations, err = s.dashboardRepo.CountDonations(ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if stats.PendingDonations, err = s.dashboardRepo.CountDonationsByStatus(ctx, db_models.DonationStatusPending); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if stats.TotalItems, err = s.dashboardRepo.CountItems(ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if stats.ActiveItems, err = s.dashboardRepo.CountItemsByStatus(ctx, db_models.ItemStatusActive); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if stats.TotalTransactions, err = s.dashboardRepo.CountTransactions(ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if stats.PendingTransactions, err = s.dashboardRepo.CountTransactionsByStatus(ctx, db_models.TxnStatusPending); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if stats.TotalRevenueMinor, err = s.dashboardRepo.RevenueTotal(ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}

	accounts, err := s.dashboardRepo.RecentAccounts(ctx, recentActivityLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	donations, err := s.dashboardRepo.RecentDonations(ctx, recentActivityLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	txns, err := s.dashboardRepo.RecentTransactions(ctx, recentActivityLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	activity := response_models.RecentActivity{
		Accounts:     make([]response_models.AccountResponse, 0, len(accounts)),
		Donations:    make([]response_models.DonationResponse, 0, len(donations)),
		Transactions: make([]response_models.TransactionResponse, 0, len(txns)),
	}
	for i := range accounts {
		activity.Accounts = append(activity.Accounts, toAccountResponse(&accounts[i], false))
	}
	for i := range donations {
		activity.Donations = append(activity.Donations, toDonationResponse(&donations[i]))
	}
	for i := range txns {
		activity.Transactions = append(activity.Transactions, toTransactionResponse(&txns[i]))
	}

	return &response_models.AdminOverviewResponse{
		Stats:          stats,
		RecentActivity: activity,
	}, nil
}

func (s *DashboardService) UserDashboard(ctx context.Context, identity *Identity) (*response_models.UserDashboardResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	// Stats are refreshed on read so the dashboard never shows a stale
	// derived model for its own account.
	if err := s.accountService.RecomputeStats(ctx, identity.AccountID); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByID(ctx, identity.AccountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	donations, err := s.dashboardRepo.RecentDonationsByDonor(ctx, identity.AccountID, timelineLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	items, err := s.dashboardRepo.RecentItemsBySeller(ctx, identity.AccountID, timelineLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	txns, err := s.dashboardRepo.RecentTransactionsByAccount(ctx, identity.AccountID, timelineLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	type stamped struct {
		entry response_models.ActivityEntry
		at    int64
	}
	entries := make([]stamped, 0, len(donations)+len(items)+len(txns))
	for i := range donations {
		d := &donations[i]
		entries = append(entries, stamped{at: d.CreatedAt, entry: response_models.ActivityEntry{
			Kind:      "donation",
			ID:        d.ID.String(),
			Title:     d.Title,
			Status:    string(d.Status),
			CreatedAt: utils.FormatUnixSeconds(d.CreatedAt),
		}})
	}
	for i := range items {
		it := &items[i]
		entries = append(entries, stamped{at: it.CreatedAt, entry: response_models.ActivityEntry{
			Kind:      "item",
			ID:        it.ID.String(),
			Title:     it.Title,
			Status:    string(it.Status),
			CreatedAt: utils.FormatUnixSeconds(it.CreatedAt),
		}})
	}
	for i := range txns {
		t := &txns[i]
		entries = append(entries, stamped{at: t.CreatedAt, entry: response_models.ActivityEntry{
			Kind:      "transaction",
			ID:        t.ID.String(),
			Title:     string(t.Type) + " transaction",
			Status:    string(t.Status),
			CreatedAt: utils.FormatUnixSeconds(t.CreatedAt),
		}})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].at > entries[j].at })
	if len(entries) > timelineLimit {
		entries = entries[:timelineLimit]
	}

	timeline := make([]response_models.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		timeline = append(timeline, e.entry)
	}

	return &response_models.UserDashboardResponse{
		Stats:    account.Stats,
		Timeline: timeline,
	}, nil
}

func (s *DashboardService) Analytics(ctx context.Context, identity *Identity, days int, interval string) (*response_models.AnalyticsResponse, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}
	switch interval {
	case "day", "week", "month":
	default:
		interval = "day"
	}

	byType, err := s.dashboardRepo.DonationTypeBreakdown(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	series, err := s.dashboardRepo.NewAccountsSeries(ctx, start, end, interval)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := &response_models.AnalyticsResponse{
		DonationsByType: make([]response_models.TypeCount, 0, len(byType)),
		NewAccounts:     make([]response_models.BucketCount, 0, len(series)),
	}
	for _, row := range byType {
		resp.DonationsByType = append(resp.DonationsByType, response_models.TypeCount{
			Type:  row.Type,
			Count: row.Count,
		})
	}
	for _, row := range series {
		resp.NewAccounts = append(resp.NewAccounts, response_models.BucketCount{
			Bucket: utils.FormatRFC3339(row.Bucket),
			Count:  row.Count,
		})
	}
	return resp, nil
}
