package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jurimetrics/domain/legacy"
	"jurimetrics/internal/logging"
	"jurimetrics/ports"
)

const maxDocumentChars = 2000

// AnalysisAdapter implements ports.AnalysisProvider over a chat client. It
// asks the model for an independent percentage-based read of the supplied
// case documents and parses the strict-JSON reply.
type AnalysisAdapter struct {
	name      string
	client    LLMClient
	model     string
	maxTokens int
	log       *logging.Logger
}

// NewAnalysisAdapter creates a named provider over a chat client.
func NewAnalysisAdapter(name string, client LLMClient, model string, maxTokens int, log *logging.Logger) *AnalysisAdapter {
	return &AnalysisAdapter{
		name:      name,
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		log:       log,
	}
}

func (a *AnalysisAdapter) Name() string {
	return a.name
}

// AnalyzeDocuments sends the documents for analysis. A sentinel reply is
// surfaced as Fallback, not an error; the caller decides what to do with an
// unusable result.
func (a *AnalysisAdapter) AnalyzeDocuments(ctx context.Context, docs []ports.DocumentSample) (*ports.ProviderAnalysis, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents to analyze")
	}

	prompt := buildPrompt(docs)
	content, err := a.client.ChatCompletion(ctx, a.model, prompt, a.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", a.name, err)
	}

	if strings.Contains(content, ports.FallbackSentinel) {
		a.log.Warn("provider %s returned the fallback sentinel for %d documents", a.name, len(docs))
		return &ports.ProviderAnalysis{
			DocumentCount: len(docs),
			Provider:      a.name,
			Fallback:      true,
		}, nil
	}

	var analytics legacy.Analytics
	if err := json.Unmarshal([]byte(cleanJSONContent(content)), &analytics); err != nil {
		return nil, fmt.Errorf("provider %s returned unparseable analysis: %w", a.name, err)
	}

	return &ports.ProviderAnalysis{
		Analytics:     analytics.Normalize(),
		DocumentCount: len(docs),
		Provider:      a.name,
	}, nil
}

func buildPrompt(docs []ports.DocumentSample) string {
	var b strings.Builder
	b.WriteString("Analyze the following court case documents for one judge and estimate outcome tendencies.\n")
	b.WriteString("Respond with ONLY a JSON object in exactly this shape, percentages in [0,100]:\n")
	b.WriteString(`{"settlement_pct":{"value":0,"confidence":0,"sample_size":0},` +
		`"motion_grant_pct":{"value":0,"confidence":0,"sample_size":0},` +
		`"plaintiff_favor_pct":{"value":0,"confidence":0,"sample_size":0},` +
		`"pro_se_success_pct":{"value":0,"confidence":0,"sample_size":0},` +
		`"pattern_notes":[],"limitation_notes":[]}`)
	b.WriteString("\nSet sample_size to the number of documents actually informing each figure.\n")
	b.WriteString("If the documents are insufficient for any independent estimate, respond with exactly: " + ports.FallbackSentinel + "\n\n")

	for i, doc := range docs {
		text := doc.Text
		if len(text) > maxDocumentChars {
			text = text[:maxDocumentChars]
		}
		b.WriteString(fmt.Sprintf("--- Document %d (case %s, type %s, outcome %s) ---\n%s\n",
			i+1, doc.CaseID, doc.CaseType, doc.Outcome, text))
	}
	return b.String()
}

// cleanJSONContent strips markdown code fences models wrap JSON in.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	for _, prefix := range []string{"```json", "```JSON", "```"} {
		if strings.HasPrefix(content, prefix) {
			content = strings.TrimPrefix(content, prefix)
			break
		}
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
