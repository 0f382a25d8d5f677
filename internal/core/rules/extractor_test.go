package rules

import (
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/letters-tracker/constants"
)

func fixedClock() time.Time { return time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC) }

func newTestExtractor() *Extractor {
	return NewExtractor(slog.New(slog.DiscardHandler), WithClock(fixedClock))
}

func TestExtract_EndToEnd(t *testing.T) {
	text := "जिल्हाधिकारी कार्यालय, पुणे\nविषय:- रस्ता दुरुस्ती बाबत तक्रार\nमो. 9876543210\nदिनांक: 15/03/2024"

	rec := newTestExtractor().Extract(Input{Text: text})

	assert.Contains(t, rec.ReceivedByOffice, "जिल्हाधिकारी कार्यालय")
	assert.Equal(t, "रस्ता दुरुस्ती बाबत तक्रार", rec.LetterSubject)
	assert.Equal(t, "9876543210", rec.MobileNumber)
	assert.Contains(t, rec.LetterDate, "15/03/2024")
	assert.Contains(t, rec.LetterType, "तक्रार")
	assert.Equal(t, constants.LetterStatusPending, rec.LetterStatus)
	assert.Equal(t, DefaultActionType, rec.ActionType)
	assert.Equal(t, DefaultMedium, rec.LetterMedium)
	assert.Equal(t, constants.OfficeNone, rec.OfficeName)
	assert.Equal(t, constants.OfficeTypeNone, rec.OfficeType)
}

const markdownLetter = `![logo](img-0.jpeg)
# **पोलीस अधीक्षक कार्यालय, अहिल्यानगर**


जा.क्र. पोअ/कक्ष/4512/2025
दिनांक: ०५/०८/२०२५

प्रति,
प्रभारी अधिकारी,
तोफखाना पोलीस स्टेशन

**विषय:** ऑनलाईन फसवणूक बाबत तक्रारी अर्ज

उपरोक्त विषयान्वये अर्जदार यांनी दिलेल्या तक्रारी अर्जाची चौकशी करून अहवाल तात्काळ सादर करावा.
सदर पत्र ईमेलद्वारे पाठविण्यात येत आहे.
मो. ९८२२० १२३४५
आपला विश्वासू
(अ. ब. जाधव)
पोलीस अधीक्षक, अहिल्यानगर`

func TestExtract_MarkdownLetter(t *testing.T) {
	rec := newTestExtractor().Extract(Input{Text: markdownLetter, PageCount: 1, Model: "mistral-ocr-latest"})

	assert.Equal(t, "पोलीस अधीक्षक कार्यालय, अहिल्यानगर", rec.ReceivedByOffice)
	assert.Equal(t, "सायबर गुन्हा - ऑनलाईन आर्थिक फसवणूक", rec.LetterType)
	assert.Equal(t, "०५/०८/२०२५", rec.LetterDate)
	assert.Equal(t, "9822012345", rec.MobileNumber)
	assert.Equal(t, "ऑनलाईन फसवणूक बाबत तक्रारी अर्ज", rec.LetterSubject)
	assert.Equal(t, rec.LetterSubject, rec.Remarks)
	assert.Equal(t, "तात्काळ", rec.ActionType)
	assert.Equal(t, MediumSoftCopy, rec.LetterMedium)
	assert.Equal(t, constants.OfficeTypeSP, rec.OfficeType)
	assert.Equal(t, constants.OfficeAhilyanagar, rec.OfficeName)
	assert.Contains(t, strings.Split(rec.RecipientNameAndDesignation, "|"), "प्रभारी अधिकारी, तोफखाना पोलीस स्टेशन")
}

func TestExtract_TotalOverOddInput(t *testing.T) {
	e := newTestExtractor()
	for _, text := range []string{"", "   \n\t ", "hello world", "१२३", "**", "![](x)"} {
		rec := e.Extract(Input{Text: text})
		assert.Equal(t, DefaultLetterType, rec.LetterType, "text %q", text)
		assert.Equal(t, DefaultActionType, rec.ActionType)
		assert.Equal(t, DefaultMedium, rec.LetterMedium)
		assert.Equal(t, RemarksFallback, rec.Remarks)
		assert.Equal(t, constants.LetterStatusPending, rec.LetterStatus)
		assert.Equal(t, rec, Clean(rec))

		b, err := MarshalValidated(rec)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))
		assert.Len(t, m, 12)
		for k, v := range m {
			_, isString := v.(string)
			assert.True(t, isString, "field %s is not a string", k)
		}
	}
}

func TestExtract_CustomDefaults(t *testing.T) {
	e := NewExtractor(nil, WithDefaults(Defaults{LetterType: "इतर"}), WithYearWindow(0), WithClock(fixedClock))
	rec := e.Extract(Input{Text: "दिनांक: 15/03/2025\nok"})
	assert.Equal(t, "इतर", rec.LetterType)
	assert.Equal(t, DefaultActionType, rec.ActionType)
	assert.Equal(t, "", rec.LetterDate)
}

func TestExtractStructuredData(t *testing.T) {
	rec := ExtractStructuredData("मोबाइल: ९८७६५४३२१०")
	assert.Equal(t, "9876543210", rec.MobileNumber)
	assert.Equal(t, constants.LetterStatusPending, rec.LetterStatus)
}
