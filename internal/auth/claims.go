package auth

import "github.com/golang-jwt/jwt/v5"

type UserMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Claims mirrors the access tokens issued by the hosted auth service.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string       `json:"sub"`
	Email        string       `json:"email,omitempty"`
	Role         string       `json:"role,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata,omitempty"`
}
