// Package planner generates daily production plans for a factory.  The
// plan is a structured recommendation list derived from the past seven
// days of demand.  When a generative-AI key is configured the planner
// asks the Gemini API for the plan; without one it falls back to a
// deterministic local heuristic so the endpoint keeps working offline.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"
)

// DemandEntry summarises how many units of one product were ordered over
// the trailing seven days.
type DemandEntry struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// Recommendation is one line of the generated plan.
type Recommendation struct {
	ProductName       string  `json:"productName"`
	SuggestedQuantity float64 `json:"suggestedQuantity"`
	Reasoning         string  `json:"reasoning"`
}

// Plan is the full production recommendation for tomorrow.
type Plan struct {
	Recommendations []Recommendation `json:"recommendations"`
	Summary         string           `json:"summary"`
}

// Planner calls the generative-AI service, or plans locally when no API
// key is configured.
type Planner struct {
	APIKey string
	Model  string
	Client *http.Client
}

// New returns a planner.  An empty apiKey selects the local heuristic.
func New(apiKey, model string) *Planner {
	return &Planner{
		APIKey: apiKey,
		Model:  model,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// GeneratePlan produces tomorrow's production plan for a factory from its
// recent demand.  Remote failures propagate to the caller; there is no
// silent fallback once the remote path is configured.
func (p *Planner) GeneratePlan(ctx context.Context, factoryName string, demand []DemandEntry) (*Plan, error) {
	if p.APIKey == "" {
		return localPlan(factoryName, demand), nil
	}
	return p.remotePlan(ctx, factoryName, demand)
}

// geminiRequest and geminiResponse mirror the small slice of the Gemini
// REST surface this service uses.
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig geminiGenConfig  `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// planSchema constrains the model's output to the Plan shape.
var planSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"recommendations": {
			"type": "ARRAY",
			"items": {
				"type": "OBJECT",
				"properties": {
					"productName": {"type": "STRING"},
					"suggestedQuantity": {"type": "NUMBER"},
					"reasoning": {"type": "STRING"}
				},
				"required": ["productName", "suggestedQuantity", "reasoning"]
			}
		},
		"summary": {"type": "STRING"}
	}
}`)

func (p *Planner) remotePlan(ctx context.Context, factoryName string, demand []DemandEntry) (*Plan, error) {
	hist, err := json.Marshal(demand)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf("Generate a daily production plan for %s.\n"+
		"Historical Demand (Past 7 Days): %s.\n"+
		"Provide a recommended production batch list for tomorrow to optimize inventory and minimize out-of-stock.",
		factoryName, hist)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   planSchema,
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", p.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("planner: gemini returned status %d", resp.StatusCode)
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("planner: empty response from model")
	}

	var plan Plan
	if err := json.Unmarshal([]byte(gr.Candidates[0].Content.Parts[0].Text), &plan); err != nil {
		return nil, fmt.Errorf("planner: model returned invalid plan JSON: %w", err)
	}
	return &plan, nil
}

// localPlan recommends producing the average daily demand plus a 20%
// buffer, rounded up to the nearest ten units.
func localPlan(factoryName string, demand []DemandEntry) *Plan {
	plan := &Plan{
		Summary: fmt.Sprintf("Heuristic plan for %s: average daily demand plus a 20%% safety buffer.", factoryName),
	}
	for _, d := range demand {
		daily := float64(d.Quantity) / 7.0
		suggested := math.Ceil(daily*1.2/10.0) * 10
		plan.Recommendations = append(plan.Recommendations, Recommendation{
			ProductName:       d.ProductName,
			SuggestedQuantity: suggested,
			Reasoning: fmt.Sprintf("%d units ordered in the past 7 days (%.1f/day); buffered 20%% against stock-outs.",
				d.Quantity, daily),
		})
	}
	if len(plan.Recommendations) == 0 {
		plan.Summary = fmt.Sprintf("No recent demand recorded for %s; no production recommended.", factoryName)
	}
	return plan
}
