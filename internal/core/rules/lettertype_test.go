package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterTypeTable_EachRule(t *testing.T) {
	cases := []struct {
		text  string
		label string
	}{
		{"पोलीस महासंचालक, महाराष्ट्र राज्य यांचे पत्र", "वरिष्ठ टपाल - पोलीस महासंचालक कार्यालय"},
		{"अपर मुख्य सचिव (गृह) यांचे निर्देश", "वरिष्ठ टपाल - मंत्रालय"},
		{"मा. मुख्यमंत्री यांच्याकडे प्राप्त निवेदन", "वरिष्ठ टपाल - मा. मंत्री महोदय"},
		{"मा. आमदार यांचे पत्र", "वरिष्ठ टपाल - लोकप्रतिनिधी"},
		{"विशेष पोलीस महानिरीक्षक, नाशिक परिक्षेत्र", "वरिष्ठ टपाल - परिक्षेत्रीय कार्यालय"},
		{"मा. उच्च न्यायालय, मुंबई", "वरिष्ठ टपाल - मा. न्यायालय"},
		{"राज्य मानवी हक्क आयोग", "वरिष्ठ टपाल - मानवी हक्क आयोग"},
		{"राज्य महिला आयोग यांचेकडील पत्र", "वरिष्ठ टपाल - महिला आयोग"},
		{"अनुसूचित जाती व जमाती आयोग", "वरिष्ठ टपाल - अनुसूचित जाती/जमाती आयोग"},
		{"उप लोकायुक्त यांचे पत्र", "वरिष्ठ टपाल - लोकायुक्त"},
		{"अ वर्ग अर्ज", "अ वर्ग"},
		{"क-वर्ग", "क वर्ग"},
		{"व वर्ग", "व वर्ग"},
		{"आपले सरकार पोर्टलवरील", "आपले सरकार पोर्टल अर्ज"},
		{"PG Portal grievance", "पी.जी. पोर्टल अर्ज"},
		{"महिला लोकशाही दिन", "महिला लोकशाही दिन अर्ज"},
		{"लोकशाही दिन", "लोकशाही दिन अर्ज"},
		{"मुख्यमंत्री सचिवालय", "मुख्यमंत्री सचिवालय अर्ज"},
		{"citizen portal", "नागरिक पोर्टल अर्ज"},
		{"डायल ११२ वरील कॉल", "डायल ११२ तक्रार"},
		{"शस्त्र परवाना नूतनीकरण", "शस्त्र परवाना"},
		{"ध्वनिक्षेपक वापराची", "ध्वनिक्षेपक परवानगी"},
		{"गणेशोत्सव मिरवणूक", "मिरवणूक परवानगी"},
		{"फटाके विक्री", "फटाका विक्री परवाना"},
		{"परमिट रूम", "हॉटेल/बार परवाना"},
		{"सुरक्षा रक्षक एजन्सी", "सुरक्षा एजन्सी परवाना"},
		{"सभा परवानगी", "कार्यक्रम परवानगी"},
		{"पासपोर्ट अर्जदार", "पासपोर्ट पडताळणी"},
		{"चारित्र्य पडताळणी", "चारित्र्य पडताळणी"},
		{"ना हरकत प्रमाणपत्र", "ना हरकत प्रमाणपत्र"},
		{"प्रथम अपील", "माहिती अधिकार अपील"},
		{"माहितीचा अधिकार अधिनियम 2005", "माहिती अधिकार अर्ज"},
		{"स्मरणपत्र", "स्मरणपत्र"},
		{"अर्धशासकीय", "अर्धशासकीय पत्र"},
		{"शासन निर्णय", "शासन निर्णय"},
		{"परिपत्रक", "परिपत्रक"},
		{"अधिसूचना", "अधिसूचना"},
		{"कार्यालयीन आदेश", "कार्यालयीन आदेश"},
		{"संदर्भीय पत्र", "संदर्भ पत्र"},
		{"तारांकित प्रश्न", "विधिमंडळ प्रश्न"},
		{"लक्षवेधी", "लक्षवेधी सूचना"},
		{"समन्स", "समन्स/वॉरंट"},
		{"रिट याचिका", "न्यायालयीन प्रकरण"},
		{"विभागीय चौकशी", "विभागीय चौकशी"},
		{"बदली", "बदली"},
		{"पदोन्नती", "पदोन्नती"},
		{"अर्जित रजा", "रजा अर्ज"},
		{"सेवानिवृत्ती", "सेवानिवृत्ती/निवृत्तीवेतन"},
		{"वेतन", "वेतन व भत्ते"},
		{"अंदाजपत्रक", "अंदाजपत्रक/निधी"},
		{"निविदा", "खरेदी/निविदा"},
		{"बंदोबस्त", "बंदोबस्त"},
		{"दौरा", "व्हीआयपी दौरा"},
		{"निवडणूक", "निवडणूक"},
		{"प्रशिक्षण", "प्रशिक्षण"},
		{"गोपनीय", "गोपनीय"},
		{"वाहन दुरुस्ती", "वाहन व्यवस्था"},
		{"बैठक", "बैठक"},
		{"मासिक अहवाल", "मासिक अहवाल"},
		{"प्रथम खबर", "गुन्हा नोंद"},
		{"अपघात", "अपघात"},
		{"बेपत्ता", "बेपत्ता व्यक्ती"},
		{"मटका", "अवैध धंदे"},
		{"अंमली पदार्थ", "अंमली पदार्थ"},
		{"कौटुंबिक हिंसाचार", "महिला व बाल अत्याचार"},
		{"ज्येष्ठ नागरिक", "ज्येष्ठ नागरिक"},
		{"ओटीपी सांगून फसवणूक", "सायबर गुन्हा - ओटीपी फसवणूक"},
		{"ऑनलाईन फसवणूक", "सायबर गुन्हा - ऑनलाईन आर्थिक फसवणूक"},
		{"फेसबुक वर बनावट खाते", "सायबर गुन्हा - सोशल मीडिया"},
		{"मेल हॅक", "सायबर गुन्हा - हॅकिंग"},
		{"ब्लॅकमेल", "सायबर गुन्हा - ऑनलाईन छळ"},
		{"सायबर", "सायबर गुन्हा"},
		{"तक्रारी अर्ज", "तक्रारी अर्ज"},
		{"निनावी तक्रार", "निनावी तक्रार"},
		{"तक्रार", "तक्रार"},
		{"निवेदन", "निवेदन"},
		{"विनंती अर्ज", "विनंती अर्ज"},
		{"अर्ज", "अर्ज"},
		{"विनंती", "विनंती पत्र"},
		{"अहवाल", "अहवाल"},
		{"माहिती सादर", "माहिती मागणी"},
		{"आदेश", "आदेश"},
		{"प्रस्ताव", "प्रस्ताव"},
		{"निमंत्रण", "निमंत्रण"},
		{"अभिनंदन", "प्रशंसा पत्र"},
		{"कारणे दाखवा नोटीस", "खुलासा/कारणे दाखवा"},
	}

	covered := make(map[string]bool)
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			m := MatchLetterType(tc.text)
			require.True(t, m.Matched, "no rule matched %q", tc.text)
			assert.Equal(t, tc.label, m.Label)
		})
		covered[tc.label] = true
	}
	for _, label := range letterTypeTable.Labels() {
		assert.True(t, covered[label], "no case for rule %q", label)
	}
}

func TestClassifyLetterType_SpecificBeforeGeneric(t *testing.T) {
	text := "सदर अर्ज हा तक्रारी अर्ज असून अर्ज क्र. 12 सोबत जोडला आहे"
	assert.Equal(t, "तक्रारी अर्ज", ClassifyLetterType(text))
	assert.Equal(t, "अर्ज", ClassifyLetterType("सदर अर्ज सोबत जोडला आहे"))
}

func TestClassifyLetterType_Default(t *testing.T) {
	for _, text := range []string{"", "   ", "ok", "hello world"} {
		assert.Equal(t, DefaultLetterType, ClassifyLetterType(text), "text %q", text)
		assert.False(t, MatchLetterType(text).Matched)
	}
}

func TestLetterTypeTable_ClassMarkersNeedWordStart(t *testing.T) {
	// "एक वर्ग" ends with क but is not a क-वर्ग marker.
	assert.NotEqual(t, "क वर्ग", ClassifyLetterType("एक वर्ग खोली"))
}

func TestClassifyLetterType_EnglishWholeWords(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Complaint regarding suspension of constable", "तक्रार"},
		{"Complaint about selection list", "तक्रार"},
		{"warranty of vehicle parts", "वाहन व्यवस्था"},
		{"immigrant certificate", DefaultLetterType},
		{"note from the reporter", DefaultLetterType},
		{"border checkpost duty", DefaultLetterType},
		{"pension case of retired constable", "सेवानिवृत्ती/निवृत्तीवेतन"},
		{"Election duty list", "निवडणूक"},
		{"warrant against the accused", "समन्स/वॉरंट"},
		{"grant for the new building", "अंदाजपत्रक/निधी"},
		{"report on the crowd", "अहवाल"},
		{"request for a copy", "विनंती पत्र"},
		{"order regarding postings", "आदेश"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLetterType(tt.text), "text %q", tt.text)
	}
}
