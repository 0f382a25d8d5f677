package rules

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addressedLetter = `प्रति,
मा. पोलीस अधीक्षक साहेब,
अहिल्यानगर.
विषय: सायबर फसवणूक बाबत
श्री. रमेश पाटील, पोलीस निरीक्षक
श्री. रमेश पाटील, पोलीस निरीक्षक
sp.ahilyanagar@mahapolice.gov.in
9876543210
आपला विश्वासू
(अ. ब. जाधव)
उप विभागीय पोलीस अधिकारी, शिर्डी`

func TestExtractRecipients_DedupAndNoise(t *testing.T) {
	got := ExtractRecipients(CleanText(addressedLetter))
	entries := strings.Split(got, "|")

	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(entries), maxRecipients)
	assert.Equal(t, "मा. पोलीस अधीक्षक साहेब, अहिल्यानगर", entries[0], "the addressee block extends the bare title")

	count := 0
	for _, e := range entries {
		if e == "रमेश पाटील, पोलीस निरीक्षक" {
			count++
		}
		assert.NotContains(t, e, "@")
		assert.NotEqual(t, "9876543210", e)
		assert.Greater(t, len([]rune(e)), 5)
	}
	assert.Equal(t, 1, count, "duplicate mention should collapse: %v", entries)
	assert.Contains(t, entries, "अ. ब. जाधव, उप विभागीय पोलीस अधिकारी, शिर्डी")
}

func TestExtractRecipients_OnlyNoise(t *testing.T) {
	assert.Equal(t, "", ExtractRecipients("प्रति,\nsp@example.com\n9876543210\n"))
	assert.Equal(t, "", ExtractRecipients(""))
	assert.Equal(t, "", ExtractRecipients("ok"))
}

func TestExtractRecipients_English(t *testing.T) {
	text := `To,
The Superintendent of Police,
Jalgaon.
Sub: Request for bandobast
Yours faithfully
(R. K. Deshmukh)
Police Inspector`
	entries := strings.Split(ExtractRecipients(text), "|")
	assert.Equal(t, "R. K. Deshmukh, Police Inspector", entries[0])
	assert.Contains(t, entries, "The Superintendent of Police, Jalgaon")
}

func TestExtractRecipients_FragmentsCollapse(t *testing.T) {
	text := "प्रति\n1. पोलीस निरीक्षक, शिर्डी पोलीस स्टेशन\n2. पोलीस निरीक्षक, राहाता पोलीस स्टेशन\n3. पोलीस निरीक्षक, कोपरगाव पोलीस स्टेशन\nविषय: बंदोबस्त"
	entries := strings.Split(ExtractRecipients(text), "|")
	assert.Equal(t, []string{
		"पोलीस निरीक्षक, शिर्डी पोलीस स्टेशन",
		"पोलीस निरीक्षक, राहाता पोलीस स्टेशन",
		"पोलीस निरीक्षक, कोपरगाव पोलीस स्टेशन",
	}, entries)
}

func TestExtractRecipients_Capped(t *testing.T) {
	stations := []string{"शिर्डी", "राहाता", "कोपरगाव", "संगमनेर", "अकोले", "राहुरी", "श्रीरामपूर", "नेवासा", "शेवगाव"}
	var b strings.Builder
	b.WriteString("प्रति\n")
	for i, st := range stations {
		fmt.Fprintf(&b, "%d. पोलीस निरीक्षक, %s पोलीस स्टेशन\n", i+1, st)
	}
	b.WriteString("विषय: बंदोबस्त")

	entries := strings.Split(ExtractRecipients(b.String()), "|")
	require.Len(t, entries, maxRecipients)
	assert.Equal(t, "पोलीस निरीक्षक, शिर्डी पोलीस स्टेशन", entries[0])
	assert.True(t, strings.HasPrefix(entries[7], "पोलीस निरीक्षक, नेवासा"), entries[7])
}

func TestMergeRecipient(t *testing.T) {
	out := mergeRecipient(nil, "पोलीस निरीक्षक, शिर्डी")
	out = mergeRecipient(out, "रमेश पाटील, पोलीस निरीक्षक")
	out = mergeRecipient(out, "पोलीस निरीक्षक, शिर्डी पोलीस स्टेशन")
	out = mergeRecipient(out, "शिर्डी पोलीस")
	assert.Equal(t, []string{"पोलीस निरीक्षक, शिर्डी पोलीस स्टेशन", "रमेश पाटील, पोलीस निरीक्षक"}, out)

	out = mergeRecipient([]string{"The Superintendent of Police"}, "the superintendent of police, Jalgaon")
	assert.Equal(t, []string{"the superintendent of police, Jalgaon"}, out)
}

func TestExtractRecipients_SubDivisionalInToBlock(t *testing.T) {
	text := "To,\nSub-Divisional Police Officer,\nShirdi.\nSir,\nThe enclosed application is forwarded for enquiry."
	assert.Contains(t, strings.Split(ExtractRecipients(text), "|"), "Sub-Divisional Police Officer, Shirdi")
}

func TestAcceptRecipient(t *testing.T) {
	assert.False(t, acceptRecipient("श्री"))
	assert.False(t, acceptRecipient("9876543210"))
	assert.False(t, acceptRecipient("sp.jalgaon@mahapolice.gov.in"))
	assert.False(t, acceptRecipient("https://mahapolice.gov.in"))
	assert.False(t, acceptRecipient("मो. 9876543210"))
	assert.False(t, acceptRecipient("दिनांक 15/03/2024"))
	assert.True(t, acceptRecipient("रमेश पाटील, पोलीस निरीक्षक"))
}
