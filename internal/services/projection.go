package services

import (
	"github.com/PitchPoint/nda_service/internal/domain"
	"github.com/PitchPoint/nda_service/internal/dto"
)

// ConfidentialField names one gated pitch field.
type ConfidentialField string

const (
	FieldShortSynopsis   ConfidentialField = "short_synopsis"
	FieldSynopsis        ConfidentialField = "synopsis"
	FieldBudgetBreakdown ConfidentialField = "budget_breakdown"
	FieldCharacterDetail ConfidentialField = "character_detail"
	FieldFinancials      ConfidentialField = "financials"
)

// ProjectionPolicy is the configuration table mapping access levels onto the
// confidential fields they expose. Levels absent from the table expose nothing.
type ProjectionPolicy map[domain.AccessLevel][]ConfidentialField

func DefaultProjectionPolicy() ProjectionPolicy {
	return ProjectionPolicy{
		domain.AccessLevelBasic: {
			FieldShortSynopsis,
		},
		domain.AccessLevelEnhanced: {
			FieldShortSynopsis,
			FieldSynopsis,
			FieldBudgetBreakdown,
			FieldCharacterDetail,
			FieldFinancials,
		},
	}
}

// Project shapes the pitch for the viewer. Deterministic: no state, no I/O.
// Public fields are always present; confidential fields stay nil unless the
// policy grants them for the decision's access level.
func Project(pitch *domain.Pitch, decision *domain.AccessDecision, policy ProjectionPolicy) dto.PitchViewResponse {
	view := dto.PitchViewResponse{
		ID:           pitch.ID,
		CreatorID:    pitch.CreatorID,
		Title:        pitch.Title,
		Logline:      pitch.Logline,
		Genre:        pitch.Genre,
		RequireNDA:   pitch.RequireNDA,
		AccessStatus: string(decision.Status),
		AccessLevel:  string(decision.AccessLevel),
	}

	for _, field := range policy[decision.AccessLevel] {
		switch field {
		case FieldShortSynopsis:
			view.ShortSynopsis = strPtr(pitch.ShortSynopsis)
		case FieldSynopsis:
			view.Synopsis = strPtr(pitch.Synopsis)
		case FieldBudgetBreakdown:
			view.BudgetBreakdown = strPtr(pitch.BudgetBreakdown)
		case FieldCharacterDetail:
			view.CharacterDetail = strPtr(pitch.CharacterDetail)
		case FieldFinancials:
			view.Financials = strPtr(pitch.Financials)
		}
	}

	return view
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
