package replicate_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kiyim/pkg/replicate"

	"github.com/stretchr/testify/assert"
)

func TestClient_CreatePrediction(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predictions", r.URL.Path)
		assert.Equal(t, "Bearer r8_secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": "pred-1", "status": "starting"}`)
	}))
	defer server.Close()

	client := replicate.NewClient("r8_secret", replicate.WithBaseURL(server.URL))
	prediction, err := client.CreatePrediction(context.Background(), "some-version", replicate.PredictionInput{
		"seed": 42,
	})
	assert.NoError(t, err)
	assert.Equal(t, "pred-1", prediction.ID)
	assert.Equal(t, "starting", prediction.Status)
	assert.Equal(t, "some-version", received["version"])
	input, ok := received["input"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(42), input["seed"])
}

func TestClient_CreatePrediction_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "Invalid token."}`)
	}))
	defer server.Close()

	client := replicate.NewClient("bad", replicate.WithBaseURL(server.URL))
	_, err := client.CreatePrediction(context.Background(), "v", replicate.PredictionInput{})
	assert.Error(t, err)

	var apiErr *replicate.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid token.", apiErr.Detail)
	assert.True(t, replicate.IsAuthError(err))
}

func TestClient_GetPrediction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/predictions/pred-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "pred-1", "status": "processing", "logs": "step 1 of 30"}`)
	}))
	defer server.Close()

	client := replicate.NewClient("r8_secret", replicate.WithBaseURL(server.URL))
	prediction, err := client.GetPrediction(context.Background(), "pred-1")
	assert.NoError(t, err)
	assert.Equal(t, "processing", prediction.Status)
	assert.Equal(t, "step 1 of 30", prediction.Logs)
}

func TestPrediction_OutputURL(t *testing.T) {
	cases := []struct {
		name   string
		output string
		want   string
	}{
		{"no output yet", ``, ""},
		{"null output", `null`, ""},
		{"bare string", `"https://example.com/a.png"`, "https://example.com/a.png"},
		{"list of strings", `["https://example.com/b.png", "https://example.com/c.png"]`, "https://example.com/b.png"},
		{"list of file objects", `[{"url": "https://example.com/d.png"}]`, "https://example.com/d.png"},
		{"file object", `{"url": "https://example.com/e.png"}`, "https://example.com/e.png"},
		{"empty list", `[]`, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := &replicate.Prediction{Output: json.RawMessage(c.output)}
			assert.Equal(t, c.want, p.OutputURL())
		})
	}
}

func TestIsAuthError(t *testing.T) {
	assert.False(t, replicate.IsAuthError(nil))
	assert.True(t, replicate.IsAuthError(errors.New("replicate: 401 Unauthenticated")))
	assert.True(t, replicate.IsAuthError(errors.New("Invalid token.")))
	assert.False(t, replicate.IsAuthError(errors.New("replicate: 500 internal error")))
}

func TestDataURI(t *testing.T) {
	data := []byte("hello")
	uri := replicate.DataURI("image/png", data)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(data), uri)

	// Empty content type falls back to octet-stream.
	uri = replicate.DataURI("", data)
	assert.Equal(t, "data:application/octet-stream;base64,"+base64.StdEncoding.EncodeToString(data), uri)
}
