package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMedium(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"ईमेलद्वारे पाठविले", MediumSoftCopy},
		{"फॅक्सद्वारे", MediumFax},
		{"स्पीड पोस्टाने", MediumSpeedPost},
		{"कुरिअरने पाठविले", MediumCourier},
		{"WhatsApp वर प्राप्त", MediumWhatsApp},
		{"समक्ष सादर", MediumHardCopy},
		{"by hand", MediumHardCopy},
		// context fallback
		{"scan copy attached", MediumSoftCopy},
		{"पोस्टाने", MediumHardCopy},
		// default
		{"hello", DefaultMedium},
		{"", DefaultMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyMedium(tt.text), "text %q", tt.text)
	}
}

func TestMatchMedium_DefaultIsUnmatched(t *testing.T) {
	m := MatchMedium("hello")
	assert.False(t, m.Matched)
	assert.Equal(t, "x", m.Or("x"))
}

func TestClassifyAction(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"अति तात्काळ", "अतितात्काळ"},
		{"तात्काळ", "तात्काळ"},
		{"अहवाल सादर करावा", "अहवाल सादर करणे"},
		{"सविस्तर चौकशी करून", "चौकशी"},
		{"जागेची तपासणी", "तपासणी"},
		{"अर्जदाराची पडताळणी", "पडताळणी"},
		{"आपल्याकडे अग्रेषित", "अग्रेषित"},
		{"खुलासा सादर करावा", "उत्तर/खुलासा"},
		{"माहिती सादर करावी", "माहिती सादर करणे"},
		{"बैठकीस उपस्थित राहावे", "उपस्थिती"},
		{"प्रस्तावास मान्यता", "मान्यता"},
		{"अभिप्राय द्यावा", "अभिप्राय"},
		{"आवश्यक ती कार्यवाही करावी", "कार्यवाही"},
		{"माहितीसाठी", "माहितीस्तव"},
		{"Please attend the meeting", "उपस्थिती"},
		{"Forwarded for necessary action", "अग्रेषित"},
		// English keywords only match whole words
		{"attendance register enclosed", DefaultActionType},
		{"unverified entries", DefaultActionType},
		{"hello", DefaultActionType},
		{"", DefaultActionType},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyAction(tt.text), "text %q", tt.text)
	}
}

func TestTable_FirstMatchWins(t *testing.T) {
	tbl := Table{
		rule(`अर्ज`, "first"),
		rule(`तक्रारी[ \t]*अर्ज`, "second"),
	}
	assert.Equal(t, Match{Matched: true, Label: "first"}, tbl.Match("तक्रारी अर्ज"))
	assert.Equal(t, Match{}, tbl.Match("नाही"))
	assert.Equal(t, []string{"first", "second"}, tbl.Labels())
}

func TestCaptured(t *testing.T) {
	assert.Equal(t, "12/03/2024", captured([]string{"दिनांक 12/03/2024", "12/03/2024"}))
	assert.Equal(t, "9876543210", captured([]string{"9876543210", ""}))
	assert.Equal(t, "9876543210", captured([]string{"9876543210"}))
	assert.Equal(t, "", captured(nil))
}
