package rules

import (
	"strings"

	"github.com/joseph-ayodele/letters-tracker/constants"
)

// cleanField collapses whitespace runs to a single space and trims.
func cleanField(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Clean normalizes every field of the record. It is idempotent.
func Clean(r StructuredRecord) StructuredRecord {
	return StructuredRecord{
		ReceivedByOffice:            cleanField(r.ReceivedByOffice),
		RecipientNameAndDesignation: cleanField(r.RecipientNameAndDesignation),
		LetterType:                  cleanField(r.LetterType),
		LetterDate:                  cleanField(r.LetterDate),
		MobileNumber:                cleanField(r.MobileNumber),
		Remarks:                     cleanField(r.Remarks),
		ActionType:                  cleanField(r.ActionType),
		LetterStatus:                constants.LetterStatus(cleanField(string(r.LetterStatus))),
		LetterMedium:                cleanField(r.LetterMedium),
		LetterSubject:               cleanField(r.LetterSubject),
		OfficeType:                  constants.OfficeType(cleanField(string(r.OfficeType))),
		OfficeName:                  constants.OfficeName(cleanField(string(r.OfficeName))),
	}
}
