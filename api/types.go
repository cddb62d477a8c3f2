package api

import "time"

// Song is one eaten track as submitted with a score
type Song struct {
	Order      int    `json:"order"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	CoverURL   string `json:"cover_url"`
	PreviewURL string `json:"preview_url,omitempty"`
	SpotifyURI string `json:"spotify_uri,omitempty"`
}

// Submission is the body of POST /score
type Submission struct {
	Score      int    `json:"score"`
	EatenSongs []Song `json:"eaten_songs"`
}

// Session is a stored game session
type Session struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Score      int       `json:"score"`
	EatenSongs []Song    `json:"eaten_songs"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserSummary is the player shown on the leaderboard
type UserSummary struct {
	ID           int    `json:"id"`
	DisplayName  string `json:"display_name"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// LeaderboardEntry is a user's best session
type LeaderboardEntry struct {
	ID        int         `json:"id"`
	Score     int         `json:"score"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUser is the body of POST /users
type NewUser struct {
	SpotifyID    string `json:"spotify_id" binding:"required"`
	DisplayName  string `json:"display_name" binding:"required"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// User is a registered player
type User struct {
	ID           int    `json:"id"`
	SpotifyID    string `json:"spotify_id"`
	DisplayName  string `json:"display_name"`
	ProfileImage string `json:"profile_image,omitempty"`
}
