// Package models defines the resource types exchanged with the campaign API.
// Field names and JSON keys follow the server schemas.
package models

// User is the authenticated account profile.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt Timestamp `json:"created_at"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is returned by POST /auth/login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
