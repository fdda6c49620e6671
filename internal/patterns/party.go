package patterns

import (
	"math"
	"sort"

	"jurimetrics/domain/caselaw"
	"jurimetrics/domain/report"
)

// partyTypeOrder fixes emission order so reports are reproducible.
var partyTypeOrder = []caselaw.PartyType{
	caselaw.PartyIndividual,
	caselaw.PartyCorporation,
	caselaw.PartySmallBusiness,
	caselaw.PartyGovernment,
	caselaw.PartyNonProfit,
	caselaw.PartyInsuranceCompany,
	caselaw.PartyUnknown,
}

// ExtractParties classifies the litigant and representation from case text
// and derives favorability per party type plus the headline comparative
// ratios. Favorability reads the claimant's side: a settlement or plaintiff
// judgment is favorable, a dismissal or defense judgment is not.
func ExtractParties(cases []caselaw.CaseRecord) report.PartyAnalysis {
	type partyGroup struct {
		total     int
		favorable int
		known     int
		values    []float64
		durations []float64
	}
	groups := make(map[caselaw.PartyType]*partyGroup)
	for _, pt := range partyTypeOrder {
		groups[pt] = &partyGroup{}
	}

	var (
		plaintiffFav, plaintiffKnown int
		proSeFav, proSeKnown         int
		counselFav, counselKnown     int
	)

	for _, c := range cases {
		partyType := ClassifyParty(c.Summary)
		g := groups[partyType]
		g.total++

		favorable, known := PlaintiffFavorable(c)
		if known {
			g.known++
			plaintiffKnown++
			if favorable {
				g.favorable++
				plaintiffFav++
			}
		}

		if c.CaseValue > 0 && !math.IsNaN(c.CaseValue) && !math.IsInf(c.CaseValue, 0) {
			g.values = append(g.values, c.CaseValue)
		}
		if days, ok := c.DurationDays(); ok {
			g.durations = append(g.durations, days)
		}

		switch ClassifyRepresentation(c.Summary) {
		case caselaw.RepProSe:
			if known {
				proSeKnown++
				if favorable {
					proSeFav++
				}
			}
		case caselaw.RepPrivateCounsel:
			if known {
				counselKnown++
				if favorable {
					counselFav++
				}
			}
		}
	}

	patterns := make([]report.PartyPattern, 0, len(partyTypeOrder))
	for _, pt := range partyTypeOrder {
		g := groups[pt]
		patterns = append(patterns, report.PartyPattern{
			PartyType:     pt,
			CaseCount:     g.total,
			FavorableRate: ratio(float64(g.favorable), float64(g.known)),
			AvgCaseValue:  finiteMean(g.values),
			AvgDuration:   finiteMean(g.durations),
			Confidence:    SampleConfidence(g.total),
		})
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].CaseCount > patterns[j].CaseCount
	})

	individual := groups[caselaw.PartyIndividual]
	corporation := groups[caselaw.PartyCorporation]
	individualRate := ratio(float64(individual.favorable), float64(individual.known))
	corporationRate := ratio(float64(corporation.favorable), float64(corporation.known))

	plaintiffRate := ratio(float64(plaintiffFav), float64(plaintiffKnown))
	return report.PartyAnalysis{
		Patterns:                 patterns,
		IndividualFavorableRate:  individualRate,
		CorporationFavorableRate: corporationRate,
		IndividualVsCorporation:  ratio(individualRate, individualRate+corporationRate),
		PlaintiffFavorableRate:   plaintiffRate,
		DefendantFavorableRate:   1 - plaintiffRate,
		ProSeSuccessRate:         ratio(float64(proSeFav), float64(proSeKnown)),
		RepresentedSuccessRate:   ratio(float64(counselFav), float64(counselKnown)),
		SampleSize:               len(cases),
		Confidence:               SampleConfidence(len(cases)),
	}
}
