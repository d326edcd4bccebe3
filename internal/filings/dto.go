package filings

import "time"

// FilingResponse is the outward-facing representation of a filing.
type FilingResponse struct {
	FilingID     string    `json:"filingId"`
	UserID       string    `json:"userId"`
	Status       string    `json:"status"`
	FilingDate   string    `json:"filingDate"`
	CompanyName  string    `json:"companyName"`
	DocumentName string    `json:"documentName,omitempty"`
	Transcript   string    `json:"transcript,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toResponse(f Filing) FilingResponse {
	return FilingResponse{
		FilingID:     f.ID,
		UserID:       f.UserID,
		Status:       string(f.Status),
		FilingDate:   f.FilingDate.Format("2006-01-02"),
		CompanyName:  f.CompanyName,
		DocumentName: f.DocumentName,
		Transcript:   f.TranscriptKey,
		CreatedAt:    f.CreatedAt,
	}
}

func toResponses(list []Filing) []FilingResponse {
	out := make([]FilingResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toResponse(f))
	}
	return out
}
