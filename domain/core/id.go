package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	JudgeID        ID
	CaseID         ID
	ReportID       ID
	JurisdictionID ID
	CourtID        ID
)

// String conversions for domain IDs
func (id JudgeID) String() string        { return ID(id).String() }
func (id CaseID) String() string         { return ID(id).String() }
func (id ReportID) String() string       { return ID(id).String() }
func (id JurisdictionID) String() string { return ID(id).String() }
func (id CourtID) String() string        { return ID(id).String() }

// ParseJudgeID parses a string into JudgeID
func ParseJudgeID(s string) (JudgeID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("judge ID cannot be empty")
	}
	return JudgeID(s), nil
}

// ParseJurisdictionID parses a string into JurisdictionID
func ParseJurisdictionID(s string) (JurisdictionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("jurisdiction ID cannot be empty")
	}
	return JurisdictionID(s), nil
}

// ParseCourtID parses a string into CourtID
func ParseCourtID(s string) (CourtID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("court ID cannot be empty")
	}
	return CourtID(s), nil
}
