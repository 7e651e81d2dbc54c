package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/application/login/employee", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "me@example.com", req.Email)
		assert.Equal(t, "hunter2", req.Password)

		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "tok-123",
			Profile:     Profile{UserID: "u1", FirstName: "Ada", LastName: "Lovelace"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.Login(context.Background(), "me@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.AccessToken)
	assert.Equal(t, "Ada Lovelace", resp.Profile.FullName())
}

func TestClient_Login_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(LoginResponse{})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accessToken")
}

func TestClient_Login_FailureCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid credentials", apiErr.Error())
}

func TestClient_Surveys_SendsAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "/application/surveys", r.URL.Path)

		json.NewEncoder(w).Encode([]SurveyListEntry{
			{
				UserID:     "u1",
				SurveyID:   "s1",
				Status:     "IN_PROGRESS",
				SurveyMeta: SurveyMeta{Title: "Weekly Check-in"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("tok-123"))
	items, err := c.Surveys(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Weekly Check-in", items[0].Title())
}

func TestClient_Survey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/survey/s1", r.URL.Path)
		w.Write([]byte(`{
			"sections": [{
				"title": "Energy",
				"scale": "1-3",
				"content": {
					"options": ["Never", "Sometimes", "Always"],
					"questions": [{"id": "q1", "text": "I feel rested."}]
				}
			}]
		}`))
	}))
	defer srv.Close()

	def, err := NewClient(srv.URL, WithToken("tok")).Survey(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, def.Sections, 1)
	assert.Equal(t, 1, def.QuestionCount())
	assert.Equal(t, []string{"Never", "Sometimes", "Always"}, def.Sections[0].Content.Options)
}

func TestClient_Respond(t *testing.T) {
	var got Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/application/surveys/respond", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	value := 2
	sub := Submission{
		UserID:    "u1",
		SurveyID:  "s1",
		StartedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Responses: []QuestionResponse{
			{QuestionID: "q1", Response: Answer{Value: &value, Label: "Sometimes"}},
		},
	}
	require.NoError(t, NewClient(srv.URL, WithToken("tok")).Respond(context.Background(), sub))

	assert.Equal(t, "u1", got.UserID)
	require.Len(t, got.Responses, 1)
	require.NotNil(t, got.Responses[0].Response.Value)
	assert.Equal(t, 2, *got.Responses[0].Response.Value)
	// Zero CompletedAt serializes to the "not yet complete" sentinel.
	assert.True(t, got.CompletedAt.IsZero())
}

func TestClient_Respond_OmitsValueWhenNil(t *testing.T) {
	var raw map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
	}))
	defer srv.Close()

	sub := Submission{
		Responses: []QuestionResponse{{QuestionID: "q1", Response: Answer{Label: "Custom"}}},
	}
	require.NoError(t, NewClient(srv.URL).Respond(context.Background(), sub))

	responses := raw["responses"].([]interface{})
	answer := responses[0].(map[string]interface{})["response"].(map[string]interface{})
	_, hasValue := answer["value"]
	assert.False(t, hasValue)
	assert.Equal(t, "Custom", answer["label"])
}

func TestClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/application/surveys/complete/s1/u1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, WithToken("tok")).Complete(context.Background(), "s1", "u1")
	assert.NoError(t, err)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8080/api/v1/")
	assert.Equal(t, "http://localhost:8080/api/v1", c.baseURL)
}
