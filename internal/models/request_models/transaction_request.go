package request_models

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=processing completed cancelled refunded"`
}

type SendMessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

type SubmitRatingRequest struct {
	// ForRole names the rated party's role in the transaction.
	ForRole string `json:"for_role" binding:"required,oneof=donor recipient"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Review  string `json:"review" binding:"omitempty,max=2000"`
}

type ListTransactionsQuery struct {
	Type   string `form:"type" binding:"omitempty,oneof=donation purchase"`
	Status string `form:"status" binding:"omitempty,oneof=pending processing completed cancelled refunded"`
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

type ListAccountsQuery struct {
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,oneof=user admin"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

type ListNotificationsQuery struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page,default=1"`
	Limit      int  `form:"limit,default=20"`
}
