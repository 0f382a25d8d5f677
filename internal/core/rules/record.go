package rules

import "github.com/joseph-ayodele/letters-tracker/constants"

// Input is the text handed over by an OCR collaborator.
type Input struct {
	Text      string
	PageCount int
	Model     string
}

// StructuredRecord is the set of fields inferred from one letter.
// Every field is always present; unknown values are empty strings or defaults.
type StructuredRecord struct {
	ReceivedByOffice            string                 `json:"receivedByOffice"`
	RecipientNameAndDesignation string                 `json:"recipientNameAndDesignation"`
	LetterType                  string                 `json:"letterType"`
	LetterDate                  string                 `json:"letterDate"`
	MobileNumber                string                 `json:"mobileNumber"`
	Remarks                     string                 `json:"remarks"`
	ActionType                  string                 `json:"actionType"`
	LetterStatus                constants.LetterStatus `json:"letterStatus"`
	LetterMedium                string                 `json:"letterMedium"`
	LetterSubject               string                 `json:"letterSubject"`
	OfficeType                  constants.OfficeType   `json:"officeType"`
	OfficeName                  constants.OfficeName   `json:"officeName"`
}

// Fields returns the record as an ordered key/value list, in JSON key order.
// Used by the export register and the gRPC struct encoder.
func (r StructuredRecord) Fields() []Field {
	return []Field{
		{"receivedByOffice", r.ReceivedByOffice},
		{"recipientNameAndDesignation", r.RecipientNameAndDesignation},
		{"letterType", r.LetterType},
		{"letterDate", r.LetterDate},
		{"mobileNumber", r.MobileNumber},
		{"remarks", r.Remarks},
		{"actionType", r.ActionType},
		{"letterStatus", string(r.LetterStatus)},
		{"letterMedium", r.LetterMedium},
		{"letterSubject", r.LetterSubject},
		{"officeType", string(r.OfficeType)},
		{"officeName", string(r.OfficeName)},
	}
}

// Field is one named value of a StructuredRecord.
type Field struct {
	Key   string
	Value string
}

// Map is the record keyed by JSON name.
func (r StructuredRecord) Map() map[string]any {
	fs := r.Fields()
	out := make(map[string]any, len(fs))
	for _, f := range fs {
		out[f.Key] = f.Value
	}
	return out
}
