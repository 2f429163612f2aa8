package utils

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// AIClient calls the external scoring/analysis service. Pass-through only:
// it maps transport and non-200 responses to errors, no local scoring logic.
type AIClient struct {
	client    *resty.Client
	baseURL   string
	maxTokens int
}

func NewAIClient(baseURL string, maxTokens int) *AIClient {
	return &AIClient{
		client:    resty.New().SetTimeout(15 * time.Second),
		baseURL:   baseURL,
		maxTokens: maxTokens,
	}
}

// Assess posts the clinical sub-scores and returns the composite plato
// score and severity class.
func (a *AIClient) Assess(phqScore, bdiScore int) (float64, int, error) {
	payload := map[string]interface{}{
		"scores": []map[string]interface{}{
			{"scale": "PHQ-9", "score": phqScore},
			{"scale": "BDI-II", "score": bdiScore},
		},
	}

	resp, err := a.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(a.baseURL + "/assess/")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to call assess: %w", err)
	}
	if resp.StatusCode() != 200 {
		return 0, 0, fmt.Errorf("assess API error: %s", resp.String())
	}

	var out struct {
		PlatoScore    float64 `json:"plato_score"`
		SeverityValue int     `json:"severity_value"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return 0, 0, fmt.Errorf("failed to parse assess response: %w", err)
	}
	return out.PlatoScore, out.SeverityValue, nil
}

// AnalyzeDepression posts the free-text analytic answer and returns the
// classification label and narrative.
func (a *AIClient) AnalyzeDepression(query string) (string, string, error) {
	payload := map[string]interface{}{
		"query":      query,
		"max_tokens": a.maxTokens,
	}

	resp, err := a.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(a.baseURL + "/analyze-depression/")
	if err != nil {
		return "", "", fmt.Errorf("failed to call analyze-depression: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", "", fmt.Errorf("analyze-depression API error: %s", resp.String())
	}

	var out struct {
		DepressionType string `json:"depression_type"`
		Analysis       string `json:"analysis"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", "", fmt.Errorf("failed to parse analyze-depression response: %w", err)
	}
	return out.DepressionType, out.Analysis, nil
}
