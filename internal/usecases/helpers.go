package usecases

import (
	"strings"
	"unicode"

	"orama.backend/internal/domain/entities"
)

// normalizeEmail lowercases and trims an address so lookups and storage agree
// on a single canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// titleCase capitalizes the first letter of each word in a display name.
func titleCase(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// applyProfileUpdate merges a partial update onto a user. Empty fields are
// left unchanged.
func applyProfileUpdate(user *entities.User, input *entities.UpdateProfileInput) {
	if input.Name != "" {
		user.Name = titleCase(input.Name)
	}
	if input.ImageURL != "" {
		user.ImageURL = input.ImageURL
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.Pincode != "" {
		user.Pincode = input.Pincode
	}
	if input.DateOfBirth != "" {
		user.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.LanguagePreference != "" {
		user.LanguagePreference = input.LanguagePreference
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.SocialHandle != "" {
		user.SocialHandle = input.SocialHandle
	}
}
