package models

// User is the public view of a users row.
type User struct {
	Username  string `json:"username" db:"username"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
	IsAdmin   bool   `json:"isAdmin" db:"is_admin"`
}

// UserRecord is a users row including the password hash. It never leaves
// the service layer.
type UserRecord struct {
	User
	Password string `json:"-" db:"password"`
}

// UserDetail is a user with the ids of the jobs they applied to.
type UserDetail struct {
	User
	Jobs []int `json:"jobs"`
}

// RegisterRequest is the public sign-up body. Registered users are never admins.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=25"`
	Password  string `json:"password" validate:"required,min=5,max=72"`
	FirstName string `json:"firstName" validate:"required,min=1,max=30"`
	LastName  string `json:"lastName" validate:"required,min=1,max=30"`
	Email     string `json:"email" validate:"required,email,max=60"`
}

// CreateUserRequest is the admin-only body for POST /users.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=25"`
	Password  string `json:"password" validate:"required,min=5,max=72"`
	FirstName string `json:"firstName" validate:"required,min=1,max=30"`
	LastName  string `json:"lastName" validate:"required,min=1,max=30"`
	Email     string `json:"email" validate:"required,email,max=60"`
	IsAdmin   bool   `json:"isAdmin"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries a partial update. IsAdmin is honoured only when
// the caller is an admin.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=30"`
	Email     *string `json:"email" validate:"omitempty,email,max=60"`
	Password  *string `json:"password" validate:"omitempty,min=5,max=72"`
	IsAdmin   *bool   `json:"isAdmin"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	User interface{} `json:"user"`
}

// CreatedUserResponse is returned by POST /users: the user and a token for them.
type CreatedUserResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type UsersListResponse struct {
	Users []User `json:"users"`
}

type ApplicationResponse struct {
	Applied int `json:"applied"`
}
