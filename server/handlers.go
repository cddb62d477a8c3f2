package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"snakeify/api"
)

const maxLeaderboardLimit = 100

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   "snakeify",
	})
}

func (s *Server) registerUser(c *gin.Context) {
	var req api.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.store.UpsertUser(req)
	if err != nil {
		s.logger.Error("Failed to register user", "spotifyId", req.SpotifyID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	s.logger.Info("User registered", "user", user.ID, "name", user.DisplayName)
	c.JSON(http.StatusOK, user)
}

func (s *Server) submitScore(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("user_id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be a positive integer"})
		return
	}

	var sub api.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if sub.Score < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must not be negative"})
		return
	}

	session, err := s.store.CreateSession(userID, sub)
	if errors.Is(err, ErrUserNotFound) {
		s.logger.Warn("Score for unknown user", "user", userID)
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to save score", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	s.logger.Info("Score saved", "user", userID, "score", sub.Score, "songs", len(sub.EatenSongs))
	c.JSON(http.StatusOK, session)
}

func (s *Server) leaderboard(c *gin.Context) {
	limit := api.DefaultLeaderboardLimit
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(parsed, maxLeaderboardLimit)
	}

	entries, err := s.store.Leaderboard(limit)
	if err != nil {
		s.logger.Error("Failed to fetch leaderboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) history(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id must be an integer"})
		return
	}

	songs, err := s.store.History(id)
	if errors.Is(err, ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to fetch history", "session", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, songs)
}
