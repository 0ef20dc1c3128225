package response_models

import "gorm.io/datatypes"

type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      datatypes.JSON `json:"data,omitempty"`
	IsRead    bool           `json:"is_read"`
	Priority  string         `json:"priority"`
	CreatedAt string         `json:"created_at"`
}
