package dto

// PitchViewResponse is the viewer-appropriate projection of a pitch.
// Confidential fields are nil when the viewer's access level does not cover
// them; access_status tells the UI which call-to-action to render.
type PitchViewResponse struct {
	ID         uint   `json:"id"`
	CreatorID  uint   `json:"creator_id"`
	Title      string `json:"title"`
	Logline    string `json:"logline"`
	Genre      string `json:"genre"`
	RequireNDA bool   `json:"require_nda"`

	AccessStatus string `json:"access_status"`
	AccessLevel  string `json:"access_level"`

	ShortSynopsis   *string `json:"short_synopsis,omitempty"`
	Synopsis        *string `json:"synopsis,omitempty"`
	BudgetBreakdown *string `json:"budget_breakdown,omitempty"`
	CharacterDetail *string `json:"character_detail,omitempty"`
	Financials      *string `json:"financials,omitempty"`
}
