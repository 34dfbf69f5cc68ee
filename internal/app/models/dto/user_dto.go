package dto

// CreateUserRequest is the admin-only body for POST /users
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50" example:"jdoe"`
	Email     string `json:"email" binding:"required,email" example:"jdoe@tailorwise.local"`
	Password  string `json:"password" binding:"required,min=8" example:"Password123!"`
	FirstName string `json:"firstName" binding:"required" example:"Jane"`
	LastName  string `json:"lastName" binding:"required" example:"Doe"`
	Phone     string `json:"phone,omitempty" example:"+905551234567"`
	Address   string `json:"address,omitempty"`
	RoleType  string `json:"roleType" binding:"required,oneof=ADMIN STAFF TRAINER STUDENT" example:"STAFF"`
}

// UpdateUserRequest is the body for PUT /users/:id. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// UserFilterRequest holds the query parameters for GET /users
type UserFilterRequest struct {
	RoleType string `form:"roleType" binding:"omitempty,oneof=ADMIN STAFF TRAINER STUDENT"`
	IsActive *bool  `form:"isActive"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// UserListResponse is the paginated body for GET /users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
