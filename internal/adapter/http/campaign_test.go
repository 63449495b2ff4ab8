package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hitpulse/internal/adapter/memory"
	"hitpulse/internal/adapter/usecase"
	"hitpulse/internal/core/domain"
	"hitpulse/internal/core/port/mocks"
)

type apiClient struct {
	t   *testing.T
	srv *httptest.Server
}

func (c apiClient) do(method, path, user, body string) (*http.Response, []byte) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.srv.URL+path, strings.NewReader(body))
	require.NoError(c.t, err)
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, data
}

func newAPI(t *testing.T) (apiClient, *memory.CampaignRepository, *mocks.MockScheduler) {
	repo := memory.NewCampaignRepository()
	sched := mocks.NewMockScheduler(t)
	svc := usecase.NewCampaignUseCase(repo, sched)
	h := NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return apiClient{t: t, srv: srv}, repo, sched
}

func TestCampaignAPILifecycle(t *testing.T) {
	api, repo, sched := newAPI(t)

	resp, body := api.do(http.MethodPost, "/api/v1/campaigns", "u1",
		`{"website":"example.com","targetHits":3,"duration":0.5,"hitType":"click"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created domain.Campaign
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.False(t, created.IsActive)

	resp, body = api.do(http.MethodGet, "/api/v1/campaigns", "u1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []domain.Campaign
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)

	resp, _ = api.do(http.MethodGet, "/api/v1/campaigns/"+created.ID, "u2", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "other users cannot see the campaign")

	sched.EXPECT().StartCampaign(mock.Anything, created.ID).Return(nil)
	resp, body = api.do(http.MethodPost, "/api/v1/campaigns/"+created.ID+"/start", "u1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var started domain.Campaign
	require.NoError(t, json.Unmarshal(body, &started))
	assert.True(t, started.IsActive)
	assert.NotNil(t, started.StartTime)

	sched.EXPECT().StopCampaign(mock.Anything, created.ID).Return(nil)
	resp, body = api.do(http.MethodPost, "/api/v1/campaigns/"+created.ID+"/stop", "u1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = api.do(http.MethodDelete, "/api/v1/campaigns/"+created.ID, "u1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	gone, err := repo.GetCampaign(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCampaignAPIErrors(t *testing.T) {
	api, repo, _ := newAPI(t)

	resp, _ := api.do(http.MethodGet, "/api/v1/campaigns", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = api.do(http.MethodPost, "/api/v1/campaigns", "u1", `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(http.MethodPost, "/api/v1/campaigns", "u1", `{"website":"a.com","targetHits":0,"duration":1,"hitType":"click"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(http.MethodPost, "/api/v1/campaigns/nope/start", "u1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, repo.CreateCampaign(context.Background(), &domain.Campaign{
		ID: "done", UserID: "u1", Website: "a.com", TargetHits: 2, CurrentHits: 2, Duration: 1, HitType: domain.HitTypePageView,
	}))
	resp, _ = api.do(http.MethodPost, "/api/v1/campaigns/done/start", "u1", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	api, _, _ := newAPI(t)
	resp, _ := api.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
