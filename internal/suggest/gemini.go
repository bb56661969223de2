package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/flourish/internal/constants"
	"github.com/julianstephens/flourish/internal/models"
)

// Config configures the Gemini client. Values come from the environment by
// default; HTTPClient may be overridden in tests.
type Config struct {
	APIKey  string        `env:"GEMINI_API_KEY"`
	Model   string        `env:"FLOURISH_MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL string        `env:"FLOURISH_API_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout time.Duration `env:"FLOURISH_API_TIMEOUT" envDefault:"30s"`

	HTTPClient *http.Client `env:"-"`
}

// ConfigFromEnv reads the client configuration from the environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse suggestion provider config: %w", err)
	}
	return cfg, nil
}

// GeminiClient implements Provider against the generative-language API using
// response-schema constrained JSON generation.
type GeminiClient struct {
	cfg Config
}

// NewGeminiClient builds a client from the given configuration.
func NewGeminiClient(cfg Config) *GeminiClient {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &GeminiClient{cfg: cfg}
}

// schema is the subset of the API's response-schema language we need.
type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

var proposalSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"strengthId":  {Type: "INTEGER", Description: "The ID of the VIA strength (1-24) this activity relates to."},
		"title":       {Type: "STRING", Description: "A short, catchy title for the activity."},
		"description": {Type: "STRING", Description: "One simple paragraph (Grade 6-8 reading level) describing what to do."},
	},
	Required: []string{"strengthId", "title", "description"},
}

var proposalListSchema = &schema{
	Type:  "ARRAY",
	Items: proposalSchema,
}

var classificationSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"strengthId": {Type: "INTEGER"},
		"reasoning":  {Type: "STRING"},
	},
	Required: []string{"strengthId", "reasoning"},
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string   `json:"responseMimeType"`
	ResponseSchema   *schema  `json:"responseSchema"`
	Temperature      *float64 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate performs one constrained-JSON generation call and decodes the
// model's JSON text into out.
func (c *GeminiClient) generate(ctx context.Context, prompt string, respSchema *schema, temperature *float64, out any) error {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return fmt.Errorf("%w: API key is not configured", ErrUnavailable)
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   respSchema,
			Temperature:      temperature,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to encode generation request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return fmt.Errorf("%w: malformed response envelope: %v", ErrUnavailable, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: malformed generated JSON: %v", ErrUnavailable, err)
	}
	return nil
}

// familyContext formats the profile details the prompts personalize against.
func familyContext(p models.Profile) string {
	member := func(m models.FamilyMember) string {
		return fmt.Sprintf("%s (%s)", m.Name, m.Pronouns)
	}
	members := func(ms []models.FamilyMember) string {
		if len(ms) == 0 {
			return "None"
		}
		parts := make([]string, len(ms))
		for i, m := range ms {
			parts[i] = member(m)
		}
		return strings.Join(parts, ", ")
	}

	partner := "None"
	if p.Partner != nil {
		partner = member(*p.Partner)
	}

	return fmt.Sprintf(
		"User Name: %s (%s)\nOccupation: %s\nPartner: %s\nPets: %s\nChildren: %s",
		p.Name, p.Pronouns, p.Occupation, partner, members(p.Pets), members(p.Children),
	)
}

// targetStrengthNames lists the profile's selected strengths as "Name (ID: n)".
func targetStrengthNames(p models.Profile) string {
	var parts []string
	for _, id := range p.TopStrengths {
		if s, ok := models.StrengthByID(id); ok {
			parts = append(parts, fmt.Sprintf("%s (ID: %d)", s.Name, s.ID))
		}
	}
	return strings.Join(parts, ", ")
}

func (c *GeminiClient) GenerateDaily(ctx context.Context, profile models.Profile, recentTitles []string) ([]Proposal, error) {
	if len(recentTitles) > constants.RecentTitleLimit {
		recentTitles = recentTitles[len(recentTitles)-constants.RecentTitleLimit:]
	}

	prompt := fmt.Sprintf(`Generate %d distinct micro-activities for a user to practice their character strengths today.

Target Strengths (Choose %d different ones from this list): %s

User Context:
%s

Requirements:
1. Readability: Grade 6-8 level. Simple and direct.
2. Length: Max one paragraph per activity.
3. Personalization: Dynamically use the names of pets, partner, or children if relevant to the activity context.
4. Tone: Encouraging, warm, and positive.
5. Avoid repeating these previously done activities: %s`,
		constants.DailyActivityCount, constants.DailyActivityCount,
		targetStrengthNames(profile), familyContext(profile), strings.Join(recentTitles, ", "))

	temperature := 0.7
	var proposals []Proposal
	if err := c.generate(ctx, prompt, proposalListSchema, &temperature, &proposals); err != nil {
		return nil, err
	}
	return validProposals(proposals), nil
}

func (c *GeminiClient) GenerateForStrength(ctx context.Context, strengthID int, profile models.Profile) (Proposal, error) {
	strength, ok := models.StrengthByID(strengthID)
	if !ok {
		return Proposal{}, fmt.Errorf("unknown strength id: %d", strengthID)
	}

	prompt := fmt.Sprintf(`Suggest ONE simple, specific micro-activity to practice the character strength of "%s" right now.
User Context:
%s
Keep it short, simple, and inspiring.`, strength.Name, familyContext(profile))

	var proposal Proposal
	if err := c.generate(ctx, prompt, proposalSchema, nil, &proposal); err != nil {
		return Proposal{}, err
	}
	// The model occasionally answers for a related strength; pin the target.
	proposal.StrengthID = strengthID
	return proposal, nil
}

func (c *GeminiClient) SuggestForMood(ctx context.Context, mood string, profile models.Profile) ([]Proposal, error) {
	prompt := fmt.Sprintf(`The user is feeling: "%s".
User Context:
%s

Suggest 2 actionable, simple activities based on VIA Character Strengths to help them cope, improve their mood, or solve their problem.
Select the most appropriate Strength ID (1-24) for the advice.`, mood, familyContext(profile))

	var proposals []Proposal
	if err := c.generate(ctx, prompt, proposalListSchema, nil, &proposals); err != nil {
		return nil, err
	}
	return validProposals(proposals), nil
}

func (c *GeminiClient) ClassifyAction(ctx context.Context, text string) (Classification, error) {
	prompt := fmt.Sprintf(`Analyze this user action and identify which ONE VIA Character Strength (ID 1-24) it best demonstrates: "%s". Return the ID and a brief reasoning.`, text)

	var result Classification
	if err := c.generate(ctx, prompt, classificationSchema, nil, &result); err != nil {
		return Classification{}, err
	}
	if !models.ValidStrengthID(result.StrengthID) {
		return Classification{}, fmt.Errorf("%w: classified to unknown strength id %d", ErrUnavailable, result.StrengthID)
	}
	return result, nil
}

// validProposals drops proposals referencing unknown strength ids rather than
// failing the whole batch.
func validProposals(in []Proposal) []Proposal {
	out := in[:0]
	for _, p := range in {
		if models.ValidStrengthID(p.StrengthID) && p.Title != "" {
			out = append(out, p)
		}
	}
	return out
}
