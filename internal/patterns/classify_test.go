package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jurimetrics/domain/caselaw"
)

func TestClassifyOutcome(t *testing.T) {
	tests := []struct {
		outcome string
		want    caselaw.OutcomeClass
	}{
		{"Case settled out of court", caselaw.OutcomeSettled},
		{"Stipulated dismissal entered", caselaw.OutcomeSettled},
		{"Dismissed for lack of standing", caselaw.OutcomeDismissed},
		{"Judgment entered for plaintiff", caselaw.OutcomeJudgment},
		{"Jury verdict returned", caselaw.OutcomeJudgment},
		{"Pending trial", caselaw.OutcomeOther},
		{"", caselaw.OutcomeOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyOutcome(tt.outcome), "outcome %q", tt.outcome)
	}
}

func TestClassifyMotionTypeExplicitFieldWins(t *testing.T) {
	rec := caselaw.CaseRecord{
		MotionType: "Motion for Summary Judgment",
		Summary:    "motion to dismiss arguments raised earlier",
	}
	assert.Equal(t, "Motion for Summary Judgment", ClassifyMotionType(rec))
}

func TestClassifyMotionTypeFallsBackToSummary(t *testing.T) {
	rec := caselaw.CaseRecord{Summary: "Defendant filed a motion to compel discovery responses"}
	assert.Equal(t, "Motion to Compel", ClassifyMotionType(rec))
}

func TestClassifyMotionTypeUnrecognizedExplicitField(t *testing.T) {
	rec := caselaw.CaseRecord{MotionType: "Motion for Reconsideration"}
	assert.Equal(t, OtherMotion, ClassifyMotionType(rec))
}

func TestClassifyRulingDeniedWinsTies(t *testing.T) {
	rec := caselaw.CaseRecord{
		Outcome: "Motion granted in part, denied in part",
	}
	assert.Equal(t, RulingDenied, ClassifyRuling(rec))
}

func TestClassifyRuling(t *testing.T) {
	granted := caselaw.CaseRecord{Outcome: "Motion granted"}
	assert.Equal(t, RulingGranted, ClassifyRuling(granted))

	unknown := caselaw.CaseRecord{Outcome: "Taken under advisement"}
	assert.Equal(t, RulingUnknown, ClassifyRuling(unknown))
}

func TestClassifyParty(t *testing.T) {
	tests := []struct {
		text string
		want caselaw.PartyType
	}{
		{"Acme Insurance Company", caselaw.PartyInsuranceCompany},
		{"State of Ohio", caselaw.PartyGovernment},
		{"Greenfield Foundation", caselaw.PartyNonProfit},
		{"Smith Family-Owned Bakery", caselaw.PartySmallBusiness},
		{"Globex Corp", caselaw.PartyCorporation},
		{"Mr. John Doe", caselaw.PartyIndividual},
		{"", caselaw.PartyUnknown},
		{"unclassifiable text", caselaw.PartyUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyParty(tt.text), "party text %q", tt.text)
	}
}

func TestClassifyPartyInsuranceBeforeCorporation(t *testing.T) {
	// "Company" alone matches corporation; the insurer keyword must win.
	assert.Equal(t, caselaw.PartyInsuranceCompany, ClassifyParty("Mutual Insurance Company Inc."))
}

func TestClassifyRepresentation(t *testing.T) {
	assert.Equal(t, caselaw.RepProSe, ClassifyRepresentation("plaintiff appearing pro se"))
	assert.Equal(t, caselaw.RepPublicDefender, ClassifyRepresentation("represented by court-appointed public defender"))
	assert.Equal(t, caselaw.RepPrivateCounsel, ClassifyRepresentation("represented by the Smith law firm"))
	assert.Equal(t, caselaw.RepUnknown, ClassifyRepresentation("no counsel information"))
}

func TestPlaintiffFavorable(t *testing.T) {
	settled := caselaw.CaseRecord{Outcome: "case settled"}
	favorable, known := PlaintiffFavorable(settled)
	assert.True(t, favorable)
	assert.True(t, known)

	dismissed := caselaw.CaseRecord{Outcome: "dismissed"}
	favorable, known = PlaintiffFavorable(dismissed)
	assert.False(t, favorable)
	assert.True(t, known)

	defendantWin := caselaw.CaseRecord{Outcome: "judgment for defendant"}
	favorable, known = PlaintiffFavorable(defendantWin)
	assert.False(t, favorable)
	assert.True(t, known)

	unknown := caselaw.CaseRecord{Outcome: "pending"}
	_, known = PlaintiffFavorable(unknown)
	assert.False(t, known)
}

func TestClassifyComplexity(t *testing.T) {
	tests := []struct {
		name string
		rec  caselaw.CaseRecord
		want caselaw.ComplexityTier
	}{
		{"small claim", caselaw.CaseRecord{CaseType: "contract", CaseValue: 10_000}, caselaw.ComplexitySimple},
		{"moderate value", caselaw.CaseRecord{CaseType: "contract", CaseValue: 50_000}, caselaw.ComplexityModerate},
		{"complex value", caselaw.CaseRecord{CaseType: "contract", CaseValue: 250_000}, caselaw.ComplexityComplex},
		{"big but plain", caselaw.CaseRecord{CaseType: "contract", CaseValue: 2_000_000}, caselaw.ComplexityComplex},
		{"big with escalation", caselaw.CaseRecord{CaseType: "contract", CaseValue: 2_000_000, Summary: "multiple parties and expert witness testimony"}, caselaw.ComplexityHighlyComplex},
		{"inherently complex type", caselaw.CaseRecord{CaseType: "securities fraud", CaseValue: 5_000}, caselaw.ComplexityHighlyComplex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyComplexity(tt.rec))
		})
	}
}
