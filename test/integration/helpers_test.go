package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type pollResponse struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Options []struct {
		ID        uuid.UUID `json:"id"`
		Text      string    `json:"text"`
		VoteCount int64     `json:"voteCount"`
	} `json:"options"`
	TotalVotes    int64  `json:"totalVotes"`
	Status        string `json:"status"`
	UserHasVoted  bool   `json:"userHasVoted"`
	CanVote       bool   `json:"canVote"`
	TimeRemaining int64  `json:"timeRemaining"`
}

type resultResponse struct {
	PollID  uuid.UUID `json:"pollId"`
	Options []struct {
		ID         uuid.UUID `json:"id"`
		Text       string    `json:"text"`
		VoteCount  int64     `json:"voteCount"`
		Percentage int       `json:"percentage"`
	} `json:"options"`
	TotalVotes    int64      `json:"totalVotes"`
	IsAnonymous   bool       `json:"isAnonymous"`
	UserSelection *uuid.UUID `json:"userSelection"`
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func createPollPayload(title string, start, end time.Time) map[string]interface{} {
	return map[string]interface{}{
		"title":    title,
		"category": "campus-decision",
		"options": []map[string]string{
			{"text": "Option A"},
			{"text": "Option B"},
		},
		"startTime": start.Format(time.RFC3339),
		"endTime":   end.Format(time.RFC3339),
	}
}

func createPoll(t *testing.T, app *testApp, adminToken string, payload map[string]interface{}) pollResponse {
	t.Helper()

	resp, env := doJSON(t, "POST", app.Server.URL+"/voting/polls", adminToken, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create poll failed: %s", env.Message)
	require.True(t, env.Success)

	var poll pollResponse
	require.NoError(t, json.Unmarshal(env.Data, &poll))
	require.Len(t, poll.Options, 2)
	return poll
}

func castVote(t *testing.T, app *testApp, token string, pollID, optionID uuid.UUID) (*http.Response, envelope) {
	t.Helper()
	return doJSON(t, "POST", app.Server.URL+"/voting/vote", token, map[string]string{
		"pollId":   pollID.String(),
		"optionId": optionID.String(),
	})
}

// castVoteRaw is safe to call from concurrent test goroutines; it reports
// failures through the error return instead of the testing API.
func castVoteRaw(app *testApp, token string, pollID, optionID uuid.UUID) (int, error) {
	body, err := json.Marshal(map[string]string{
		"pollId":   pollID.String(),
		"optionId": optionID.String(),
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest("POST", app.Server.URL+"/voting/vote", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
