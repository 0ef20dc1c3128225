package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"givehub/internal/models/db_models"
	"givehub/internal/models/request_models"
	"givehub/internal/models/response_models"
	"givehub/internal/repositories"
	"givehub/pkg/utils"
)

const similarItemsLimit = 4

type ItemServiceInterface interface {
	Create(ctx context.Context, identity *Identity, req request_models.CreateItemRequest) (*response_models.ItemResponse, error)
	List(ctx context.Context, identity *Identity, query request_models.ListItemsQuery) ([]response_models.ItemResponse, *response_models.Pagination, error)
	Get(ctx context.Context, identity *Identity, id string) (*response_models.ItemDetailResponse, error)
	Update(ctx context.Context, identity *Identity, id string, req request_models.UpdateItemRequest) (*response_models.ItemResponse, error)
	Delete(ctx context.Context, identity *Identity, id string) error
	SetStatus(ctx context.Context, identity *Identity, id string, req request_models.UpdateItemStatusRequest) (*response_models.ItemResponse, error)
	// Purchase atomically claims one unit of stock and opens the
	// transaction that tracks the exchange.
	Purchase(ctx context.Context, identity *Identity, id string, req request_models.PurchaseItemRequest) (*response_models.TransactionResponse, error)
	ToggleFavorite(ctx context.Context, identity *Identity, id string) (*response_models.FavoriteResponse, error)
	ToggleFeatured(ctx context.Context, identity *Identity, id string) (*response_models.ItemResponse, error)
	MyItems(ctx context.Context, identity *Identity) ([]response_models.ItemResponse, error)
}

type ItemService struct {
	itemRepo            repositories.ItemRepository
	transactionRepo     repositories.TransactionRepository
	notificationService NotificationServiceInterface
}

func NewItemService(
	itemRepo repositories.ItemRepository,
	transactionRepo repositories.TransactionRepository,
	notificationService NotificationServiceInterface,
) ItemServiceInterface {
	return &ItemService{
		itemRepo:            itemRepo,
		transactionRepo:     transactionRepo,
		notificationService: notificationService,
	}
}

func (s *ItemService) Create(ctx context.Context, identity *Identity, req request_models.CreateItemRequest) (*response_models.ItemResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	category := db_models.ItemCategory(req.Category)
	if !db_models.ValidItemCategory(category) {
		return nil, utils.ErrValidation
	}
	if req.IsFree && req.PriceMinor != 0 {
		return nil, utils.ErrValidation
	}
	if !req.IsFree && req.PriceMinor == 0 {
		req.IsFree = true
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	condition := req.Condition
	if condition == "" {
		condition = "good"
	}

	images, err := marshalImages(req.Images)
	if err != nil {
		return nil, utils.ErrValidation
	}

	item := &db_models.Item{
		SellerID:           identity.AccountID,
		Title:              req.Title,
		Description:        req.Description,
		Category:           category,
		Subcategory:        req.Subcategory,
		PriceMinor:         req.PriceMinor,
		OriginalPriceMinor: req.OriginalPriceMinor,
		Currency:           currency,
		IsFree:             req.IsFree,
		Condition:          condition,
		Quantity:           req.Quantity,
		Location:           req.Location,
		Images:             images,
		Specifications:     jsonOrEmptyObject(req.Specifications),
		Shipping:           jsonOrEmptyObject(req.Shipping),
		Tags:               req.Tags,
		Status:             db_models.ItemStatusActive,
	}

	id, err := s.itemRepo.Create(ctx, item)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	created, err := s.itemRepo.FindByID(ctx, id)
	if err != nil || created == nil {
		return nil, utils.ErrDatabaseError
	}

	s.notificationService.Dispatch(ctx, identity.AccountID, db_models.NotifListingCreated,
		"Item listed", "Your item \""+created.Title+"\" is now live on the marketplace.",
		map[string]interface{}{"item_id": created.ID.String()})

	resp := toItemResponse(created)
	return &resp, nil
}

func (s *ItemService) List(ctx context.Context, identity *Identity, query request_models.ListItemsQuery) ([]response_models.ItemResponse, *response_models.Pagination, error) {
	if query.Page < 1 {
		return nil, nil, utils.ErrInvalidPage
	}
	if query.Limit < 1 || query.Limit > 100 {
		return nil, nil, utils.ErrInvalidPageSize
	}

	filter := repositories.ItemFilter{
		Category:  db_models.ItemCategory(query.Category),
		Condition: query.Condition,
		Location:  query.Location,
		Search:    query.Search,
		IsFree:    query.IsFree,
		MinPrice:  query.MinPrice,
		MaxPrice:  query.MaxPrice,
		Page:      query.Page,
		PageSize:  query.Limit,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}

	// The public marketplace only lists active items; admins may browse
	// any status.
	if identity.IsAdmin() && query.Status != "" {
		filter.Status = []db_models.ItemStatus{db_models.ItemStatus(query.Status)}
	} else {
		filter.Status = []db_models.ItemStatus{db_models.ItemStatusActive}
	}

	items, total, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	pagination := response_models.NewPagination(total, query.Page, query.Limit)
	return out, &pagination, nil
}

func (s *ItemService) Get(ctx context.Context, identity *Identity, id string) (*response_models.ItemDetailResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrItemNotFound
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrItemNotFound
	}

	public := item.Status == db_models.ItemStatusActive
	if err := CanReadListing(identity, item.SellerID, public); err != nil {
		return nil, utils.ErrItemNotFound
	}

	go func(id uuid.UUID) {
		if err := s.itemRepo.IncrementViews(context.Background(), id); err != nil {
			log.Printf("view increment for item %s failed: %v", id, err)
		}
	}(item.ID)

	similar, err := s.itemRepo.ListSimilar(ctx, item.ID, item.Category, similarItemsLimit)
	if err != nil {
		log.Printf("similar lookup for item %s failed: %v", item.ID, err)
		similar = nil
	}

	resp := &response_models.ItemDetailResponse{
		Item:    toItemResponse(item),
		Similar: make([]response_models.ItemResponse, 0, len(similar)),
	}
	for i := range similar {
		resp.Similar = append(resp.Similar, toItemResponse(&similar[i]))
	}
	return resp, nil
}

func (s *ItemService) Update(ctx context.Context, identity *Identity, id string, req request_models.UpdateItemRequest) (*response_models.ItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrItemNotFound
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrItemNotFound
	}
	if err := CanMutateListing(identity, item.SellerID); err != nil {
		return nil, err
	}
	if item.Status.TerminalForUser() {
		return nil, utils.ErrInvalidState
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Subcategory != nil {
		item.Subcategory = *req.Subcategory
	}
	if req.PriceMinor != nil {
		item.PriceMinor = *req.PriceMinor
		item.IsFree = *req.PriceMinor == 0
	}
	if req.Condition != nil {
		item.Condition = *req.Condition
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if len(req.Specifications) > 0 {
		item.Specifications = datatypes.JSON(req.Specifications)
	}
	if len(req.Shipping) > 0 {
		item.Shipping = datatypes.JSON(req.Shipping)
	}
	if req.Tags != nil {
		item.Tags = req.Tags
	}
	if req.Images != nil {
		images, err := marshalImages(req.Images)
		if err != nil {
			return nil, utils.ErrValidation
		}
		item.Images = images
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toItemResponse(item)
	return &resp, nil
}

func (s *ItemService) Delete(ctx context.Context, identity *Identity, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrItemNotFound
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if item == nil {
		return utils.ErrItemNotFound
	}
	if err := CanMutateListing(identity, item.SellerID); err != nil {
		return err
	}
	// An item with an open purchase, or one already sold, keeps its row
	// for the transaction record.
	if item.Status == db_models.ItemStatusPending || item.Status == db_models.ItemStatusSold {
		return utils.ErrInvalidState
	}

	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ItemService) SetStatus(ctx context.Context, identity *Identity, id string, req request_models.UpdateItemStatusRequest) (*response_models.ItemResponse, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrItemNotFound
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrItemNotFound
	}

	next := db_models.ItemStatus(req.Status)
	if !item.Status.CanTransitionTo(next) {
		return nil, utils.ErrInvalidState
	}

	if err := s.itemRepo.UpdateStatus(ctx, itemID, next); err != nil {
		return nil, utils.ErrDatabaseError
	}

	updated, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil || updated == nil {
		return nil, utils.ErrDatabaseError
	}
	resp := toItemResponse(updated)
	return &resp, nil
}

func (s *ItemService) Purchase(ctx context.Context, identity *Identity, id string, req request_models.PurchaseItemRequest) (*response_models.TransactionResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrItemNotFound
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrItemNotFound
	}
	if item.SellerID == identity.AccountID {
		return nil, utils.ErrValidation
	}

	txn := &db_models.Transaction{
		DonorID:         item.SellerID,
		RecipientID:     identity.AccountID,
		Type:            db_models.TxnTypePurchase,
		ItemID:          &item.ID,
		AmountMinor:     item.PriceMinor,
		Currency:        item.Currency,
		PaymentMethod:   req.PaymentMethod,
		Status:          db_models.TxnStatusPending,
		ShippingAddress: jsonOrEmptyObject(req.ShippingAddress),
	}

	bought, err := s.itemRepo.Purchase(ctx, itemID, identity.AccountID, txn)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !bought {
		// Stock guard failed: the item was visible but is no longer
		// purchasable, or a concurrent buyer took the last unit.
		if item.Status == db_models.ItemStatusActive && item.Quantity >= 1 {
			return nil, utils.ErrConflict
		}
		return nil, utils.ErrInvalidState
	}

	s.notificationService.Dispatch(ctx, item.SellerID, db_models.NotifItemSold,
		"Item purchased", "Your item \""+item.Title+"\" has a buyer. Confirm the handover to complete the sale.",
		map[string]interface{}{"item_id": item.ID.String(), "transaction_id": txn.ID.String()})

	created, err := s.transactionRepo.FindByID(ctx, txn.ID)
	if err != nil || created == nil {
		return nil, utils.ErrDatabaseError
	}
	resp := toTransactionResponse(created)
	return &resp, nil
}

func (s *ItemService) ToggleFavorite(ctx context.Context, identity *Identity, id string) (*response_models.FavoriteResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrItemNotFound
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrItemNotFound
	}

	favorited, err := s.itemRepo.ToggleFavorite(ctx, itemID, identity.AccountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.FavoriteResponse{IsFavorited: favorited}, nil
}

// ToggleFeatured flips the admin-curated featured flag.
func (s *ItemService) ToggleFeatured(ctx context.Context, identity *Identity, id string) (*response_models.ItemResponse, error) {
	if err := RequireAdmin(identity); err != nil {
		return nil, err
	}
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrItemNotFound
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrItemNotFound
	}

	item.IsFeatured = !item.IsFeatured
	if err := s.itemRepo.SetFeatured(ctx, itemID, item.IsFeatured); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toItemResponse(item)
	return &resp, nil
}

func (s *ItemService) MyItems(ctx context.Context, identity *Identity) ([]response_models.ItemResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	items, err := s.itemRepo.ListBySeller(ctx, identity.AccountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	return out, nil
}

func toItemResponse(item *db_models.Item) response_models.ItemResponse {
	resp := response_models.ItemResponse{
		ID:                 item.ID.String(),
		Title:              item.Title,
		Description:        item.Description,
		Category:           string(item.Category),
		Subcategory:        item.Subcategory,
		PriceMinor:         item.PriceMinor,
		OriginalPriceMinor: item.OriginalPriceMinor,
		Currency:           item.Currency,
		IsFree:             item.IsFree,
		Condition:          item.Condition,
		Quantity:           item.Quantity,
		Location:           item.Location,
		Status:             string(item.Status),
		Tags:               item.Tags,
		Images:             item.Images,
		Specifications:     item.Specifications,
		Shipping:           item.Shipping,
		IsFeatured:         item.IsFeatured,
		Views:              item.Views,
		CreatedAt:          utils.FormatUnixSeconds(item.CreatedAt),
		SoldAt:             utils.FormatUnixSecondsPtr(item.SoldDate),
		Seller:             toAccountSummary(&item.Seller),
	}
	if item.Buyer != nil {
		resp.Buyer = toAccountSummary(item.Buyer)
	}
	return resp
}

func jsonOrEmptyObject(raw []byte) datatypes.JSON {
	if len(raw) == 0 {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}
