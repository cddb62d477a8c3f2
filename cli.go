package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"snakeify/api"
	"snakeify/game/manager"
)

func runRegister(ctx context.Context, client *api.Client, name string) int {
	user, err := client.RegisterUser(ctx, api.NewUser{
		SpotifyID:   "local:" + strings.ToLower(strings.TrimSpace(name)),
		DisplayName: strings.TrimSpace(name),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Registration failed: %v\n", err)
		return 1
	}
	fmt.Printf("Registered %s with id %d\n", user.DisplayName, user.ID)
	fmt.Printf("Play with: snakeify -user %d\n", user.ID)
	return 0
}

func runLeaderboard(ctx context.Context, client *api.Client, limit int) int {
	entries, err := client.Leaderboard(ctx, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch leaderboard: %v\n", err)
		return 1
	}
	if len(entries) == 0 {
		fmt.Println("No scores yet")
		return 0
	}

	fmt.Printf("%-4s %-24s %6s  %-8s %s\n", "#", "PLAYER", "SCORE", "SESSION", "DATE")
	for i, e := range entries {
		fmt.Printf("%-4d %-24s %6d  %-8d %s\n", i+1, clip(e.User.DisplayName, 24), e.Score, e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return 0
}

func runHistory(ctx context.Context, client *api.Client, sessionID int) int {
	songs, err := client.History(ctx, sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch history: %v\n", err)
		return 1
	}
	if len(songs) == 0 {
		fmt.Printf("Session %d ate no songs\n", sessionID)
		return 0
	}

	for i, s := range songs {
		order := s.Order
		if order == 0 {
			order = i + 1
		}
		fmt.Printf("%3d. %s - %s\n", order, s.Title, s.Artist)
	}
	return 0
}

func runStats(sm *manager.StateManager) int {
	sum := sm.Summary()
	if sum.GamesPlayed == 0 {
		fmt.Println("No games played yet")
		return 0
	}

	fmt.Printf("Games played:     %d\n", sum.GamesPlayed)
	fmt.Printf("High score:       %d\n", sm.GetHighScore())
	fmt.Printf("Average score:    %.2f\n", sum.AverageScore)
	fmt.Printf("Median score:     %.1f\n", sum.MedianScore)
	fmt.Printf("Average duration: %s\n", sum.AverageDuration.Round(time.Second))
	return 0
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
