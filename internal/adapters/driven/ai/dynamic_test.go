package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdigest/internal/core/domain"
)

// ollamaServer answers /api/generate and records the requested models.
func ollamaServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var models []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/generate":
			var req struct {
				Model string `json:"model"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			models = append(models, req.Model)
			_, _ = w.Write([]byte(`{"response":"- first\n- second"}`))
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server, &models
}

func TestSettingsSummarizer_FollowsSettings(t *testing.T) {
	server, models := ollamaServer(t)
	settings := domain.DefaultAppSettings()
	settings.Summarizer = domain.SummarizerSettings{
		Provider: domain.ProviderOllama,
		Model:    "llama3.2",
		BaseURL:  server.URL,
	}
	s := NewSettingsSummarizer(func() (*domain.AppSettings, error) {
		copied := settings
		return &copied, nil
	}, nil)

	result, err := s.Summarize(context.Background(), "text", domain.LengthShort)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, result.Bullets)
	first := s.current

	_, err = s.Summarize(context.Background(), "text", domain.LengthShort)
	require.NoError(t, err)
	assert.Same(t, first, s.current)

	settings.Summarizer.Model = "mistral"
	_, err = s.Summarize(context.Background(), "text", domain.LengthShort)
	require.NoError(t, err)
	assert.NotSame(t, first, s.current)

	assert.Equal(t, []string{"llama3.2", "llama3.2", "mistral"}, *models)
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
	assert.Nil(t, s.current)
}

func TestSettingsSummarizer_NotConfigured(t *testing.T) {
	s := NewSettingsSummarizer(func() (*domain.AppSettings, error) {
		settings := domain.DefaultAppSettings()
		return &settings, nil
	}, nil)

	_, err := s.Summarize(context.Background(), "text", domain.LengthMedium)
	assert.ErrorIs(t, err, domain.ErrSummarizerNotConfigured)

	assert.ErrorIs(t, s.Ping(context.Background()), domain.ErrSummarizerNotConfigured)
	assert.NoError(t, s.Close())
}

func TestSettingsSummarizer_LoadError(t *testing.T) {
	loadErr := errors.New("config unreadable")
	s := NewSettingsSummarizer(func() (*domain.AppSettings, error) {
		return nil, loadErr
	}, nil)

	_, err := s.Summarize(context.Background(), "text", domain.LengthMedium)
	assert.ErrorIs(t, err, loadErr)
}
