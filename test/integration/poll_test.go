package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePoll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := signTestToken(t, uuid.New(), "admin")
	now := time.Now()

	t.Run("admin creates a poll", func(t *testing.T) {
		poll := createPoll(t, app, adminToken, createPollPayload("Campus gym hours", now, now.Add(48*time.Hour)))
		assert.Equal(t, "Campus gym hours", poll.Title)
		assert.Equal(t, int64(0), poll.TotalVotes)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		resp, env := doJSON(t, "POST", app.Server.URL+"/voting/polls", signTestToken(t, uuid.New(), ""),
			createPollPayload("Not allowed", now, now.Add(time.Hour)))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.False(t, env.Success)
	})

	t.Run("single option is rejected", func(t *testing.T) {
		payload := createPollPayload("Broken", now, now.Add(time.Hour))
		payload["options"] = []map[string]string{{"text": "only one"}}

		resp, env := doJSON(t, "POST", app.Server.URL+"/voting/polls", adminToken, payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, env.Message, "options")
	})

	t.Run("inverted window is rejected", func(t *testing.T) {
		payload := createPollPayload("Broken", now.Add(time.Hour), now)
		resp, env := doJSON(t, "POST", app.Server.URL+"/voting/polls", adminToken, payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, env.Message, "endTime")
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		payload := createPollPayload("Broken", now, now.Add(time.Hour))
		payload["category"] = "sports"
		resp, _ := doJSON(t, "POST", app.Server.URL+"/voting/polls", adminToken, payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListActivePolls(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := signTestToken(t, uuid.New(), "admin")
	userToken := signTestToken(t, uuid.New(), "")
	now := time.Now()

	active := createPoll(t, app, adminToken, createPollPayload("Running now", now.Add(-time.Hour), now.Add(time.Hour)))
	createPoll(t, app, adminToken, createPollPayload("Starts tomorrow", now.Add(24*time.Hour), now.Add(48*time.Hour)))
	createPoll(t, app, adminToken, createPollPayload("Finished yesterday", now.Add(-48*time.Hour), now.Add(-24*time.Hour)))

	paused := createPoll(t, app, adminToken, createPollPayload("Paused", now.Add(-time.Hour), now.Add(time.Hour)))
	_, err := app.DB.Exec("UPDATE polls SET is_active = FALSE WHERE id = $1", paused.ID)
	require.NoError(t, err)

	resp, env := doJSON(t, "GET", app.Server.URL+"/voting/polls/active", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var polls []pollResponse
	require.NoError(t, json.Unmarshal(env.Data, &polls))
	require.Len(t, polls, 1)
	assert.Equal(t, active.ID, polls[0].ID)
	assert.Equal(t, "active", polls[0].Status)
	assert.True(t, polls[0].CanVote)
	assert.False(t, polls[0].UserHasVoted)
	assert.Greater(t, polls[0].TimeRemaining, int64(0))
}

func TestGetPollAnnotations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := signTestToken(t, uuid.New(), "admin")
	userID := uuid.New()
	userToken := signTestToken(t, userID, "")
	now := time.Now()

	poll := createPoll(t, app, adminToken, createPollPayload("Annotated", now.Add(-time.Hour), now.Add(time.Hour)))

	resp, env := castVote(t, app, userToken, poll.ID, poll.Options[0].ID)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	resp, env = doJSON(t, "GET", app.Server.URL+"/voting/polls/"+poll.ID.String(), userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got pollResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.UserHasVoted)
	assert.False(t, got.CanVote)
	assert.Equal(t, int64(1), got.TotalVotes)
}

func TestGetPollNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	userToken := signTestToken(t, uuid.New(), "")

	resp, env := doJSON(t, "GET", app.Server.URL+"/voting/polls/"+uuid.NewString(), userToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
}
