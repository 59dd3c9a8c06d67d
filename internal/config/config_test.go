package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "JWT_SECRET", "JWT_EXPIRY", "RESUME_PROMPT_CHARS", "MAX_QUESTIONS", "FEEDBACK_PAIRING", "HISTORY_LIMIT", "QDRANT_URL", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 3000, cfg.Interview.ResumePromptChars)
	assert.Equal(t, 7, cfg.Interview.MaxQuestions)
	assert.Equal(t, "question_id", cfg.Interview.FeedbackPairing)
	assert.Equal(t, 50, cfg.Interview.HistoryLimit)
	assert.False(t, cfg.IndexEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("MAX_QUESTIONS", "5")
	t.Setenv("FEEDBACK_PAIRING", "positional")
	t.Setenv("QDRANT_URL", "http://localhost:6334")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg := Load()

	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.Interview.MaxQuestions)
	assert.Equal(t, "positional", cfg.Interview.FeedbackPairing)
	assert.True(t, cfg.IndexEnabled())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("MAX_QUESTIONS", "many")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 7, cfg.Interview.MaxQuestions)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "interviews",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=interviews sslmode=disable", cfg.GetDatabaseDSN())

	cfg.Database.URL = "postgres://u:p@db:5432/interviews"
	assert.Equal(t, "postgres://u:p@db:5432/interviews", cfg.GetDatabaseDSN())
}
