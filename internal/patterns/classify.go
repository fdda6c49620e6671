package patterns

import (
	"strings"

	"jurimetrics/domain/caselaw"
)

// Keyword tables are data, not control flow: each classifier walks its table
// in declaration order and returns the first category whose keywords match.
// Order matters where categories overlap (insurance before corporation,
// small business before corporation).

// ============================================================================
// OUTCOME CLASSIFICATION
// ============================================================================

var outcomeKeywords = []struct {
	class    caselaw.OutcomeClass
	keywords []string
}{
	{caselaw.OutcomeSettled, []string{"settle", "stipulat", "consent decree", "mediat"}},
	{caselaw.OutcomeDismissed, []string{"dismiss", "withdrawn", "voluntary withdrawal"}},
	{caselaw.OutcomeJudgment, []string{"judgment", "judgement", "verdict", "award", "ruled"}},
}

// ClassifyOutcome buckets free outcome text into the coarse disposition
// taxonomy; unrecognized text maps to other.
func ClassifyOutcome(outcome string) caselaw.OutcomeClass {
	text := strings.ToLower(outcome)
	for _, entry := range outcomeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.class
			}
		}
	}
	return caselaw.OutcomeOther
}

// ============================================================================
// MOTION CLASSIFICATION
// ============================================================================

// OtherMotion is the fallback canonical motion type.
const OtherMotion = "Other Motion"

var motionKeywords = []struct {
	motionType string
	keywords   []string
}{
	{"Motion to Dismiss", []string{"motion to dismiss", "12(b)(6)", "failure to state a claim"}},
	{"Motion for Summary Judgment", []string{"summary judgment", "rule 56"}},
	{"Motion to Compel", []string{"motion to compel", "compel discovery", "compel production"}},
	{"Motion in Limine", []string{"in limine", "exclude evidence"}},
	{"Motion for Sanctions", []string{"sanction", "rule 11"}},
	{"Motion to Suppress", []string{"suppress", "exclusionary"}},
	{"Motion for Continuance", []string{"continuance", "postpone", "adjourn"}},
	{"Motion for Protective Order", []string{"protective order"}},
	{"Motion for Default Judgment", []string{"default judgment", "entry of default"}},
	{"Motion to Strike", []string{"motion to strike"}},
	{"Motion for Class Certification", []string{"class certification", "rule 23"}},
	{"Motion for Preliminary Injunction", []string{"preliminary injunction", "temporary restraining", "tro"}},
}

// ClassifyMotionType infers the canonical motion type from the explicit
// field when present, else from a keyword scan of the case summary.
func ClassifyMotionType(rec caselaw.CaseRecord) string {
	if explicit := classifyMotionText(rec.MotionType); explicit != OtherMotion {
		return explicit
	}
	if rec.MotionType != "" {
		// An explicit but unrecognized motion field still identifies a motion.
		return OtherMotion
	}
	return classifyMotionText(rec.Summary)
}

func classifyMotionText(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range motionKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.motionType
			}
		}
	}
	return OtherMotion
}

// HasMotion reports whether the record involves a motion at all.
func HasMotion(rec caselaw.CaseRecord) bool {
	if strings.TrimSpace(rec.MotionType) != "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Summary), "motion")
}

// MotionRuling captures the granted/denied read of a motion record.
type MotionRuling int

const (
	RulingUnknown MotionRuling = iota
	RulingGranted
	RulingDenied
)

var grantedKeywords = []string{"granted", "grants", "approving", "sustained", "allowed"}
var deniedKeywords = []string{"denied", "denies", "denying", "overruled", "rejected"}

// ClassifyRuling infers granted/denied from directional keywords in outcome
// and summary text. Denial keywords win ties because outcome text usually
// states the final disposition last.
func ClassifyRuling(rec caselaw.CaseRecord) MotionRuling {
	text := strings.ToLower(rec.Outcome + " " + rec.Summary)
	if containsAny(text, deniedKeywords) {
		return RulingDenied
	}
	if containsAny(text, grantedKeywords) {
		return RulingGranted
	}
	return RulingUnknown
}

// ============================================================================
// PARTY CLASSIFICATION
// ============================================================================

var partyKeywords = []struct {
	partyType caselaw.PartyType
	keywords  []string
}{
	{caselaw.PartyInsuranceCompany, []string{"insurance", "insurer", "mutual", "assurance"}},
	{caselaw.PartyGovernment, []string{"state of", "county of", "city of", "united states", "commonwealth", "department of", "agency", "municipal"}},
	{caselaw.PartyNonProfit, []string{"foundation", "charity", "nonprofit", "non-profit", "association"}},
	{caselaw.PartySmallBusiness, []string{"small business", "sole proprietor", "family-owned", "d/b/a", "dba "}},
	{caselaw.PartyCorporation, []string{"corp", "inc.", "incorporated", "llc", "l.l.c", "ltd", "company", "holdings", "enterprises"}},
	{caselaw.PartyIndividual, []string{"individual", "mr.", "mrs.", "ms.", "estate of"}},
}

// ClassifyParty derives the party taxonomy entry from free-text description.
func ClassifyParty(text string) caselaw.PartyType {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return caselaw.PartyUnknown
	}
	for _, entry := range partyKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.partyType
			}
		}
	}
	return caselaw.PartyUnknown
}

var representationKeywords = []struct {
	rep      caselaw.RepresentationType
	keywords []string
}{
	{caselaw.RepProSe, []string{"pro se", "self-represented", "self represented", "in propria persona"}},
	{caselaw.RepPublicDefender, []string{"public defender", "appointed counsel", "court-appointed"}},
	{caselaw.RepPrivateCounsel, []string{"represented by", "counsel", "attorney", "law firm", "esq"}},
}

// ClassifyRepresentation derives representation from free-text description.
func ClassifyRepresentation(text string) caselaw.RepresentationType {
	lower := strings.ToLower(text)
	for _, entry := range representationKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.rep
			}
		}
	}
	return caselaw.RepUnknown
}

// ============================================================================
// DIRECTIONAL FAVORABILITY
// ============================================================================

var plaintiffFavorableKeywords = []string{
	"judgment for plaintiff", "plaintiff prevail", "in favor of plaintiff",
	"awarded damages", "found liable",
}
var defendantFavorableKeywords = []string{
	"judgment for defendant", "defendant prevail", "in favor of defendant",
	"dismissed with prejudice", "not liable", "acquitt",
}

// PlaintiffFavorable reads the directional keywords for the plaintiff side.
// Settlements count as plaintiff-favorable: the claim produced a recovery.
func PlaintiffFavorable(rec caselaw.CaseRecord) (favorable bool, known bool) {
	text := strings.ToLower(rec.Outcome + " " + rec.Summary)
	if containsAny(text, defendantFavorableKeywords) {
		return false, true
	}
	if containsAny(text, plaintiffFavorableKeywords) {
		return true, true
	}
	switch ClassifyOutcome(rec.Outcome) {
	case caselaw.OutcomeSettled:
		return true, true
	case caselaw.OutcomeDismissed:
		return false, true
	}
	return false, false
}

// ============================================================================
// COMPLEXITY CLASSIFICATION
// ============================================================================

var complexCaseTypes = []string{
	"antitrust", "securities", "patent", "class action", "rico",
	"mass tort", "multidistrict",
}
var escalationSignals = []string{
	"expert witness", "multiple parties", "multi-party", "co-defendant",
	"consolidated", "class members",
}

// Complexity thresholds on case value.
const (
	moderateValueThreshold   = 50_000.0
	complexValueThreshold    = 250_000.0
	escalationValueThreshold = 1_000_000.0
)

// ClassifyComplexity tiers a case by value thresholds, escalated to
// highly_complex for multi-party/expert-witness signals above $1M or for
// inherently complex case types.
func ClassifyComplexity(rec caselaw.CaseRecord) caselaw.ComplexityTier {
	text := strings.ToLower(rec.CaseType + " " + rec.Summary)
	if containsAny(text, complexCaseTypes) {
		return caselaw.ComplexityHighlyComplex
	}
	if rec.CaseValue > escalationValueThreshold && containsAny(text, escalationSignals) {
		return caselaw.ComplexityHighlyComplex
	}
	switch {
	case rec.CaseValue >= complexValueThreshold:
		return caselaw.ComplexityComplex
	case rec.CaseValue >= moderateValueThreshold:
		return caselaw.ComplexityModerate
	default:
		return caselaw.ComplexitySimple
	}
}

func containsAny(s string, substrings []string) bool {
	for _, substr := range substrings {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
