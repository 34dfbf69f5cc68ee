package dto

// SendNotificationRequest is the admin body for POST /notifications/send.
// Exactly one targeting mode applies: explicit user IDs, a role, or all
// active users. Overlapping targets receive a single notification.
type SendNotificationRequest struct {
	UserIDs  []int64 `json:"userIds,omitempty"`
	RoleType string  `json:"roleType,omitempty" binding:"omitempty,oneof=ADMIN STAFF TRAINER STUDENT"`
	All      bool    `json:"all,omitempty"`
	Title    string  `json:"title" binding:"required,max=200"`
	Message  string  `json:"message" binding:"required"`
	Level    string  `json:"level" binding:"omitempty,oneof=info warning error"`
}

// NotificationFilterRequest holds the query parameters for GET /notifications
type NotificationFilterRequest struct {
	UnreadOnly bool `form:"unreadOnly"`
	Page       int  `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int  `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}
