package config

import (
	"errors"
	"os"
	"strings"
)

// Default target accounts for the engagement pass, overridable with
// TARGET_ACCOUNTS (comma separated).
const defaultTargetAccounts = "howimetyourmotherthefanpage,itstedntracy,himymfeeds,himymaddiict,friendsadiction"

type Config struct {
	InstagramUsername string
	InstagramPassword string
	GoogleCredential  string
	SessionFilePath   string
	ScheduleCSVPath   string
	DriveFolderName   string
	TargetAccounts    []string
}

func LoadConfig() *Config {
	return &Config{
		InstagramUsername: getEnv("INSTAGRAM_USERNAME", ""),
		InstagramPassword: getEnv("INSTAGRAM_PASSWORD", ""),
		GoogleCredential:  getEnv("GOOGLE_CREDENTIAL", ""),
		SessionFilePath:   getEnv("SESSION_FILE_PATH", "insta_session.json"),
		ScheduleCSVPath:   getEnv("SCHEDULE_CSV_PATH", "media_schedule.csv"),
		DriveFolderName:   getEnv("DRIVE_FOLDER_NAME", "english_skills_101"),
		TargetAccounts:    splitList(getEnv("TARGET_ACCOUNTS", defaultTargetAccounts)),
	}
}

// Validate rejects configurations that would only fail mid-run.
func (c *Config) Validate() error {
	if c.InstagramUsername == "" {
		return errors.New("INSTAGRAM_USERNAME is not set")
	}
	if c.InstagramPassword == "" {
		return errors.New("INSTAGRAM_PASSWORD is not set")
	}
	if c.GoogleCredential == "" {
		return errors.New("GOOGLE_CREDENTIAL is not set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}
