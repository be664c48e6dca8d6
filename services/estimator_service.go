package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"diettracker/models"
)

// systemPrompt pins the estimator to a strict JSON shape. Totals are summed
// by the model itself and stored verbatim.
const systemPrompt = "You are a nutrition parser. Given a meal, return a single, valid JSON object and nothing else. " +
	"The JSON must contain: 'meal' (string), 'items' (list of objects), and 'totals' (an object). " +
	"Each item in the 'items' list must have: 'name' (string), 'quantity_text' (string), 'calories_kcal' (float), " +
	"'protein_g' (float), 'carbs_g' (float), 'fat_g' (float), and 'fiber_g' (float). " +
	"The 'totals' object must sum all numeric values from the items. " +
	"Round all numbers to one decimal place. Use Indian cuisine defaults for estimates. " +
	"Example output format: " +
	`{"meal": "Breakfast", "items": [` +
	`{"name": "Dosa", "quantity_text": "2", "calories_kcal": 210.0, "protein_g": 5.2, "carbs_g": 38.0, "fat_g": 4.0, "fiber_g": 2.2}, ` +
	`{"name": "Sambar", "quantity_text": "1 cup", "calories_kcal": 150.5, "protein_g": 8.0, "carbs_g": 20.0, "fat_g": 4.5, "fiber_g": 5.0}], ` +
	`"totals": {"calories_kcal": 360.5, "protein_g": 13.2, "carbs_g": 58.0, "fat_g": 8.5, "fiber_g": 7.2}}`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// EstimatorService calls the language-model API's chat-completions endpoint
// to turn free-text meal items into a nutrition breakdown.
type EstimatorService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewEstimatorService(apiKey, baseURL, model string) *EstimatorService {
	return &EstimatorService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Estimate runs exactly one request; there are no retries. Temperature is
// pinned to 0 for stable answers, though the model is not bit-reproducible.
func (s *EstimatorService) Estimate(ctx context.Context, mealName string, items []string) (*models.NutritionBreakdown, string, error) {
	prompt := "Meal: " + mealName + "\nItems:\n"
	for _, it := range items {
		prompt += "- " + it + "\n"
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.0,
		MaxTokens:   700,
	}
	reqBody.ResponseFormat.Type = "json_object"

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("%w: marshal request: %v", models.ErrEstimation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrEstimation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrEstimation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read response: %v", models.ErrEstimation, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: API error %d: %s", models.ErrEstimation, resp.StatusCode, string(body))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, "", fmt.Errorf("%w: parse response: %v", models.ErrEstimation, err)
	}
	if len(cr.Choices) == 0 {
		return nil, "", fmt.Errorf("%w: no choices returned", models.ErrEstimation)
	}

	raw := cr.Choices[0].Message.Content
	var breakdown models.NutritionBreakdown
	if err := json.Unmarshal([]byte(raw), &breakdown); err != nil {
		return nil, "", fmt.Errorf("%w: malformed breakdown JSON: %v", models.ErrEstimation, err)
	}
	return &breakdown, raw, nil
}
