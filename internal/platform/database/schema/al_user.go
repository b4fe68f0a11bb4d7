// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package schema

// UserCategoryTable represents the 'al_user_category' table.
type UserCategoryTable struct {
	Table       string
	ID          string
	Name        string
	Description string
}

// UserCategory is the schema definition for al_user_category.
var UserCategory = UserCategoryTable{
	Table:       "al_user_category",
	ID:          "id",
	Name:        "category_name",
	Description: "description",
}

func (t UserCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description}
}

// UserTable represents the 'al_user' table.
type UserTable struct {
	Table        string
	ID           string
	Login        string
	Email        string
	Phone        string
	FirstName    string
	LastName     string
	Patronymic   string
	CategoryID   string
	PasswordHash string
	Role         string
	RegisteredAt string
	UpdatedAt    string
	DeletedAt    string
}

// User is the schema definition for al_user.
var User = UserTable{
	Table:        "al_user",
	ID:           "id",
	Login:        "login",
	Email:        "email",
	Phone:        "phone_number",
	FirstName:    "first_name",
	LastName:     "last_name",
	Patronymic:   "patronymic",
	CategoryID:   "user_category_id",
	PasswordHash: "password_hash",
	Role:         "role",
	RegisteredAt: "date_registrate",
	UpdatedAt:    "updated_at",
	DeletedAt:    "deleted_at",
}

func (t UserTable) Columns() []string {
	return []string{
		t.ID, t.Login, t.Email, t.Phone, t.FirstName, t.LastName, t.Patronymic,
		t.CategoryID, t.PasswordHash, t.Role, t.RegisteredAt, t.UpdatedAt,
	}
}

// SessionTable represents the 'al_session' table.
type SessionTable struct {
	Table     string
	ID        string
	UserID    string
	TokenHash string
	UserAgent string
	IPAddress string
	ExpiresAt string
	IsRevoked string
	CreatedAt string
}

// Session is the schema definition for al_session.
var Session = SessionTable{
	Table:     "al_session",
	ID:        "id",
	UserID:    "user_id",
	TokenHash: "token_hash",
	UserAgent: "user_agent",
	IPAddress: "ip_address",
	ExpiresAt: "expires_at",
	IsRevoked: "is_revoked",
	CreatedAt: "created_at",
}

func (t SessionTable) Columns() []string {
	return []string{t.ID, t.UserID, t.TokenHash, t.UserAgent, t.IPAddress, t.ExpiresAt, t.IsRevoked, t.CreatedAt}
}
