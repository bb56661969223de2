package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julianstephens/flourish/internal/models"
)

// newTestServer returns a server that answers every generateContent call with
// the given JSON text wrapped in the API's candidate envelope.
func newTestServer(t *testing.T, status int, generatedJSON string, capture *generateRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") == "" {
			t.Errorf("request missing x-goog-api-key header")
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			resp := map[string]any{
				"candidates": []any{
					map[string]any{
						"content": map[string]any{
							"parts": []any{map[string]any{"text": generatedJSON}},
						},
					},
				},
			}
			if err := json.NewEncoder(w).Encode(resp); err != nil {
				t.Errorf("failed to encode response: %v", err)
			}
		}
	}))
}

func testClient(server *httptest.Server) *GeminiClient {
	return NewGeminiClient(Config{
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		BaseURL: server.URL,
	})
}

func TestGenerateDaily_DecodesProposals(t *testing.T) {
	generated := `[
		{"strengthId": 10, "title": "Surprise coffee", "description": "Bring a coffee to a coworker."},
		{"strengthId": 4, "title": "New route", "description": "Walk a street you have never taken."}
	]`
	var captured generateRequest
	server := newTestServer(t, http.StatusOK, generated, &captured)
	defer server.Close()

	proposals, err := testClient(server).GenerateDaily(context.Background(), models.Profile{
		Name:         "Ada",
		TopStrengths: []int{10, 4},
	}, []string{"yesterday's walk"})
	if err != nil {
		t.Fatalf("GenerateDaily failed: %v", err)
	}

	if len(proposals) != 2 {
		t.Fatalf("expected 2 proposals, got %d", len(proposals))
	}
	if proposals[0].StrengthID != 10 || proposals[0].Title != "Surprise coffee" {
		t.Errorf("proposals[0] = %+v", proposals[0])
	}

	if captured.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Errorf("request must ask for JSON output, got %q", captured.GenerationConfig.ResponseMIMEType)
	}
	if captured.GenerationConfig.ResponseSchema == nil || captured.GenerationConfig.ResponseSchema.Type != "ARRAY" {
		t.Errorf("daily generation must send the array schema")
	}
}

func TestGenerateDaily_DropsInvalidProposals(t *testing.T) {
	generated := `[
		{"strengthId": 10, "title": "Good one", "description": "d"},
		{"strengthId": 99, "title": "Bad id", "description": "d"},
		{"strengthId": 4, "title": "", "description": "missing title"}
	]`
	server := newTestServer(t, http.StatusOK, generated, nil)
	defer server.Close()

	proposals, err := testClient(server).GenerateDaily(context.Background(), models.Profile{}, nil)
	if err != nil {
		t.Fatalf("GenerateDaily failed: %v", err)
	}

	if len(proposals) != 1 || proposals[0].StrengthID != 10 {
		t.Errorf("invalid proposals must be dropped, got %+v", proposals)
	}
}

func TestGenerate_ServerErrorIsUnavailable(t *testing.T) {
	server := newTestServer(t, http.StatusServiceUnavailable, "", nil)
	defer server.Close()

	_, err := testClient(server).GenerateDaily(context.Background(), models.Profile{}, nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestGenerate_MalformedPayloadIsUnavailable(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"not": "a proposal list"`, nil)
	defer server.Close()

	_, err := testClient(server).GenerateDaily(context.Background(), models.Profile{}, nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	client := NewGeminiClient(Config{BaseURL: "http://localhost:0"})

	_, err := client.GenerateDaily(context.Background(), models.Profile{}, nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable without an API key", err)
	}
}

func TestGenerateForStrength_PinsTargetStrength(t *testing.T) {
	// The model answered for strength 3; the client must pin the requested id.
	generated := `{"strengthId": 3, "title": "Reflect", "description": "d"}`
	server := newTestServer(t, http.StatusOK, generated, nil)
	defer server.Close()

	proposal, err := testClient(server).GenerateForStrength(context.Background(), 13, models.Profile{})
	if err != nil {
		t.Fatalf("GenerateForStrength failed: %v", err)
	}
	if proposal.StrengthID != 13 {
		t.Errorf("StrengthID = %d, want pinned 13", proposal.StrengthID)
	}
}

func TestGenerateForStrength_UnknownID(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{}`, nil)
	defer server.Close()

	if _, err := testClient(server).GenerateForStrength(context.Background(), 0, models.Profile{}); err == nil {
		t.Errorf("expected error for unknown strength id")
	}
}

func TestClassifyAction_RejectsUnknownStrength(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"strengthId": 77, "reasoning": "r"}`, nil)
	defer server.Close()

	_, err := testClient(server).ClassifyAction(context.Background(), "helped a neighbor")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable for out-of-range classification", err)
	}
}

func TestClassifyAction_Decodes(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"strengthId": 10, "reasoning": "an act of kindness"}`, nil)
	defer server.Close()

	result, err := testClient(server).ClassifyAction(context.Background(), "helped a neighbor")
	if err != nil {
		t.Fatalf("ClassifyAction failed: %v", err)
	}
	if result.StrengthID != 10 || result.Reasoning == "" {
		t.Errorf("result = %+v", result)
	}
}
