package ports

import (
	"context"

	"jurimetrics/domain/legacy"
)

// FallbackSentinel is the recognizable content marker a provider emits when
// it cannot produce an independent read of the documents.
const FallbackSentinel = "FALLBACK"

// DocumentSample is one analyzable case document handed to a provider.
type DocumentSample struct {
	CaseID   string `json:"case_id"`
	CaseType string `json:"case_type"`
	Outcome  string `json:"outcome"`
	Text     string `json:"text"`
}

// ProviderAnalysis is a provider's independent percentage-based read of the
// supplied documents, in the legacy analytics shape.
type ProviderAnalysis struct {
	Analytics     legacy.Analytics `json:"analytics"`
	DocumentCount int              `json:"document_count"`
	Provider      string           `json:"provider"`
	Fallback      bool             `json:"fallback"` // Sentinel detected; result unusable
}

// AnalysisProvider invokes an external generative model over case documents.
type AnalysisProvider interface {
	Name() string
	AnalyzeDocuments(ctx context.Context, docs []DocumentSample) (*ProviderAnalysis, error)
}
