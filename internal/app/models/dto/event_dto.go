package dto

import "time"

// CreateEventRequest is the body for POST /events. When endDate is
// omitted it defaults to startDate.
type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required" example:"Summer exhibition"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `json:"startDate" binding:"required"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// UpdateEventRequest is the body for PUT /events/:id
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}
