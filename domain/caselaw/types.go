package caselaw

import (
	"fmt"
	"strings"
	"time"

	"jurimetrics/domain/core"
)

// ============================================================================
// CASE RECORDS (Immutable, externally sourced)
// ============================================================================

// CaseRecord represents one adjudicated or pending matter for a judge.
// Records come from the source-of-record as-is; missing or malformed fields
// are tolerated here and handled by the analytics edge-case policy.
type CaseRecord struct {
	ID             core.CaseID    `json:"id" db:"id"`
	JudgeID        core.JudgeID   `json:"judge_id" db:"judge_id"`
	CaseType       string         `json:"case_type" db:"case_type"`
	Outcome        string         `json:"outcome" db:"outcome"`
	Status         string         `json:"status" db:"status"`
	CaseValue      float64        `json:"case_value" db:"case_value"`
	FilingDate     string         `json:"filing_date" db:"filing_date"`
	DecisionDate   string         `json:"decision_date" db:"decision_date"`
	Summary        string         `json:"summary" db:"summary"`
	MotionType     string         `json:"motion_type,omitempty" db:"motion_type"`
	JudgmentAmount *float64       `json:"judgment_amount,omitempty" db:"judgment_amount"`
	ClaimedAmount  *float64       `json:"claimed_amount,omitempty" db:"claimed_amount"`
	OpinionText    string         `json:"opinion_text,omitempty" db:"opinion_text"`
	CreatedAt      core.Timestamp `json:"created_at" db:"created_at"`
}

// dateLayouts are attempted in order when parsing record dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseDate parses a record date string, trying the known source formats.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EffectiveDate returns the decision date when parsable, else the filing
// date. The second return is false when neither date resolves.
func (c CaseRecord) EffectiveDate() (time.Time, bool) {
	if t, ok := ParseDate(c.DecisionDate); ok {
		return t, true
	}
	if t, ok := ParseDate(c.FilingDate); ok {
		return t, true
	}
	return time.Time{}, false
}

// DurationDays returns filing-to-decision span in days. The second return is
// false when either date is unparsable or the span is implausible (negative
// or beyond ten years), per the shared edge-case policy.
func (c CaseRecord) DurationDays() (float64, bool) {
	filed, ok := ParseDate(c.FilingDate)
	if !ok {
		return 0, false
	}
	decided, ok := ParseDate(c.DecisionDate)
	if !ok {
		return 0, false
	}
	days := decided.Sub(filed).Hours() / 24
	if days < 0 || days > 3650 {
		return 0, false
	}
	return days, true
}

// ============================================================================
// WEIGHTED CASES (Recomputed per run, never persisted)
// ============================================================================

// WeightedCase pairs a record with its recency-decay weight relative to a
// reference date.
type WeightedCase struct {
	Record      CaseRecord `json:"record"`
	Weight      float64    `json:"weight"`       // In [MinWeight, 1]
	YearsOld    float64    `json:"years_old"`    // Age at reference date
	DecayFactor float64    `json:"decay_factor"` // Raw decay before flooring
	DateMissing bool       `json:"date_missing"` // No resolvable date; floor weight applied
}

// ============================================================================
// OUTCOME / PARTY / MOTION TAXONOMY
// ============================================================================

// OutcomeClass is the coarse disposition bucket derived from outcome text.
type OutcomeClass string

const (
	OutcomeSettled   OutcomeClass = "settled"
	OutcomeDismissed OutcomeClass = "dismissed"
	OutcomeJudgment  OutcomeClass = "judgment"
	OutcomeOther     OutcomeClass = "other"
)

// PartyType classifies a litigant from free-text party descriptions.
type PartyType string

const (
	PartyIndividual       PartyType = "individual"
	PartyCorporation      PartyType = "corporation"
	PartySmallBusiness    PartyType = "small_business"
	PartyGovernment       PartyType = "government"
	PartyNonProfit        PartyType = "non_profit"
	PartyInsuranceCompany PartyType = "insurance_company"
	PartyUnknown          PartyType = "unknown"
)

// RepresentationType classifies how a party was represented.
type RepresentationType string

const (
	RepProSe          RepresentationType = "pro_se"
	RepPrivateCounsel RepresentationType = "private_counsel"
	RepPublicDefender RepresentationType = "public_defender"
	RepUnknown        RepresentationType = "unknown"
)

// ComplexityTier buckets cases by stakes and structural complexity.
type ComplexityTier string

const (
	ComplexitySimple        ComplexityTier = "simple"
	ComplexityModerate      ComplexityTier = "moderate"
	ComplexityComplex       ComplexityTier = "complex"
	ComplexityHighlyComplex ComplexityTier = "highly_complex"
)

// ComplexityTiers lists all tiers in ascending order; extractors emit a row
// per tier even when empty, to distinguish "no data" from "zero rate".
var ComplexityTiers = []ComplexityTier{
	ComplexitySimple,
	ComplexityModerate,
	ComplexityComplex,
	ComplexityHighlyComplex,
}

// ============================================================================
// CONSTRUCTORS
// ============================================================================

// NewCaseRecord creates a record with minimal validation. Analytics-facing
// fields stay permissive; only identity is required.
func NewCaseRecord(id core.CaseID, judgeID core.JudgeID, caseType string) (*CaseRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("case ID must be set")
	}
	if judgeID == "" {
		return nil, fmt.Errorf("judge ID must be set")
	}
	return &CaseRecord{
		ID:        id,
		JudgeID:   judgeID,
		CaseType:  caseType,
		CreatedAt: core.Now(),
	}, nil
}
