package domain

import "time"

// Role is the sole authorization signal distinguishing the admin and user
// dashboards.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Profile is the account record backing both dashboards. Department is a
// reference-table ID, nil when the account has none assigned.
type Profile struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Role         Role
	Department   *int64
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Department is a reference-table row accounts point at.
type Department struct {
	ID   int64
	Name string
}
