//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/evalforge/evalharness/internal/tables"
)

// promptCatalog builds a small catalog across two categories.
func promptCatalog(n int) []tables.Prompt {
	prompts := make([]tables.Prompt, 0, n)
	for i := 1; i <= n; i++ {
		category := "factual"
		if i%2 == 0 {
			category = "reasoning"
		}
		prompts = append(prompts, tables.Prompt{
			PromptID:       fmt.Sprintf("%d", i),
			Category:       category,
			Difficulty:     "easy",
			ShouldRefuse:   "0",
			ExpectedFormat: "text",
			PromptText:     fmt.Sprintf("question number %d", i),
		})
	}
	return prompts
}

// modelStub serves an Ollama-shaped generate endpoint with a small artificial
// latency so client-side latency measurements are non-zero and uniform.
func modelStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		time.Sleep(5 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{
			"response": "A clear and complete answer to: " + req.Prompt,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// rateAll simulates reviewers filling in the template for every sampled run.
func rateAll(sampled []tables.Run) []tables.HumanRating {
	ratings := make([]tables.HumanRating, 0, len(sampled))
	for i, run := range sampled {
		ratings = append(ratings, tables.HumanRating{
			RunID:             run.RunID,
			Helpfulness:       fmt.Sprintf("%d", 3+i%3),
			Correctness:       "5",
			Clarity:           "4",
			Compliance:        "5",
			HallucinationFlag: "0",
		})
	}
	return ratings
}
