package domain

import (
	"net/url"
	"strings"
)

type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

const avatarBase = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// AvatarFor derives a stable avatar URL from email.
func AvatarFor(email string) string {
	return avatarBase + url.QueryEscape(email)
}

// NameFromEmail returns the local part of email.
func NameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

// NormalizeEmail lowercases and trims email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
