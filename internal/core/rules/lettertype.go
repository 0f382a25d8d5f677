package rules

// DefaultLetterType is used when no letter type rule matches.
const DefaultLetterType = "सामान्य पत्र"

// letterTypeTable is ordered from specific to generic. Reordering changes
// outcomes: e.g. "तक्रारी अर्ज" must stay ahead of the bare "अर्ज" rule.
var letterTypeTable = Table{
	// वरिष्ठ टपाल
	rule(`पोलीस[ \t]*महासंचालक|(?i:\bdirector[ \t]+general[ \t]+of[ \t]+police\b|\bD\.?G\.?P\.?\b)`, "वरिष्ठ टपाल - पोलीस महासंचालक कार्यालय"),
	rule(`अपर[ \t]*मुख्य[ \t]*सचिव|प्रधान[ \t]*सचिव|(?i:\badditional[ \t]+chief[ \t]+secretary\b|\bprincipal[ \t]+secretary\b)`, "वरिष्ठ टपाल - मंत्रालय"),
	rule(`मा\.?[ \t]*(?:मुख्यमंत्री|उपमुख्यमंत्री|गृहमंत्री|मंत्री[ \t]*महोदय)`, "वरिष्ठ टपाल - मा. मंत्री महोदय"),
	rule(`मा\.?[ \t]*(?:खासदार|आमदार|विधानसभा[ \t]*सदस्य|विधान[ \t]*परिषद[ \t]*सदस्य)|(?i:\bM\.?L\.?A\.?\b|\bM\.?P\.?[ \t]+lok[ \t]*sabha\b)`, "वरिष्ठ टपाल - लोकप्रतिनिधी"),
	rule(`विशेष[ \t]*पोलीस[ \t]*महानिरीक्षक[^\n]{0,40}परिक्षेत्र`, "वरिष्ठ टपाल - परिक्षेत्रीय कार्यालय"),
	rule(`मा\.?[ \t]*(?:उच्च|सर्वोच्च)[ \t]*न्यायालय|(?i:\b(?:high|supreme)[ \t]+court\b)`, "वरिष्ठ टपाल - मा. न्यायालय"),
	rule(`मानवी[ \t]*हक्क[ \t]*आयोग|(?i:\bhuman[ \t]+rights[ \t]+commission\b)`, "वरिष्ठ टपाल - मानवी हक्क आयोग"),
	rule(`राज्य[ \t]*महिला[ \t]*आयोग|राष्ट्रीय[ \t]*महिला[ \t]*आयोग|(?i:\bwomen[ \t]+commission\b)`, "वरिष्ठ टपाल - महिला आयोग"),
	rule(`अनुसूचित[ \t]*जाती[^\n]{0,20}आयोग|(?i:\bSC[ \t/]*ST[ \t]+commission\b)`, "वरिष्ठ टपाल - अनुसूचित जाती/जमाती आयोग"),
	rule(`लोकायुक्त|उप[ \t]*लोकायुक्त|(?i:\blokayukta\b)`, "वरिष्ठ टपाल - लोकायुक्त"),

	// अ/क/व वर्ग
	rule(`(?:^|[ \t\n(,:])अ[ \t]*[-–]?[ \t]*वर्ग`, "अ वर्ग"),
	rule(`(?:^|[ \t\n(,:])क[ \t]*[-–]?[ \t]*वर्ग`, "क वर्ग"),
	rule(`(?:^|[ \t\n(,:])व[ \t]*[-–]?[ \t]*वर्ग`, "व वर्ग"),

	// portal applications
	rule(`आपले[ \t]*सरकार|(?i:\baaple[ \t]*sarkar\b)`, "आपले सरकार पोर्टल अर्ज"),
	rule(`(?i:\bP\.?G\.?[ \t]*portal\b|\bpgportal\b|\bCPGRAMS\b)|पी\.?[ \t]*जी\.?[ \t]*पोर्टल`, "पी.जी. पोर्टल अर्ज"),
	rule(`महिला[ \t]*लोकशाही[ \t]*दिन`, "महिला लोकशाही दिन अर्ज"),
	rule(`लोकशाही[ \t]*दिन`, "लोकशाही दिन अर्ज"),
	rule(`मुख्यमंत्री[ \t]*सचिवालय|(?i:\bCM[ \t]*secretariat\b)`, "मुख्यमंत्री सचिवालय अर्ज"),
	rule(`(?i:\bcitizen[ \t]*portal\b|\bCCTNS\b)|सिटीझन[ \t]*पोर्टल`, "नागरिक पोर्टल अर्ज"),
	rule(`(?i:\bERSS\b|\bdial[ \t]*112\b)|डायल[ \t]*११२|डायल[ \t]*112`, "डायल ११२ तक्रार"),

	// licenses and verification
	rule(`शस्त्र[ \t]*परवाना|(?i:\barms?[ \t]+licen[cs]es?\b)`, "शस्त्र परवाना"),
	rule(`ध्वनिक्षेपक|लाऊड[ \t]*स्पीकर|(?i:\bloud[ \t]*speakers?\b)`, "ध्वनिक्षेपक परवानगी"),
	rule(`मिरवणूक|(?i:\bprocessions?\b)`, "मिरवणूक परवानगी"),
	rule(`फटाके|(?i:\bfire[ \t]*crackers?\b)`, "फटाका विक्री परवाना"),
	rule(`हॉटेल[ \t]*(?:परवाना|लॉजिंग)|परमिट[ \t]*रूम|बार[ \t]*परवाना|(?i:\bbar[ \t]+licen[cs]es?\b)`, "हॉटेल/बार परवाना"),
	rule(`सुरक्षा[ \t]*रक्षक[ \t]*(?:एजन्सी|संस्था)|(?i:\bPSARA\b|\bsecurity[ \t]+agency\b)`, "सुरक्षा एजन्सी परवाना"),
	rule(`कार्यक्रम[ \t]*परवानगी|सभा[ \t]*परवानगी|(?i:\bevent[ \t]+permission\b)`, "कार्यक्रम परवानगी"),
	rule(`पासपोर्ट|पारपत्र|(?i:\bpassports?\b)`, "पासपोर्ट पडताळणी"),
	rule(`चारित्र्य[ \t]*पडताळणी|(?i:\bcharacter[ \t]+verification\b)`, "चारित्र्य पडताळणी"),
	rule(`ना[ \t]*हरकत[ \t]*प्रमाणपत्र|(?i:\bN\.?O\.?C\.?\b|\bno[ \t]+objection\b)`, "ना हरकत प्रमाणपत्र"),

	// references
	rule(`माहितीचा[ \t]*अधिकार[^\n]{0,40}अपील|प्रथम[ \t]*अपील|(?i:\bfirst[ \t]+appeal\b)`, "माहिती अधिकार अपील"),
	rule(`माहितीचा[ \t]*अधिकार|माहिती[ \t]*अधिकार|(?i:\bright[ \t]+to[ \t]+information\b|\bRTI\b)`, "माहिती अधिकार अर्ज"),
	rule(`स्मरणपत्र|(?i:\breminders?\b)`, "स्मरणपत्र"),
	rule(`अर्धशासकीय|(?i:\bD\.?O\.?[ \t]+letter\b|\bdemi[ \t\-]*official\b)`, "अर्धशासकीय पत्र"),
	rule(`शासन[ \t]*निर्णय|(?i:\bgovernment[ \t]+resolution\b|\bG\.?R\.?[ \t]+no\b)`, "शासन निर्णय"),
	rule(`परिपत्रक|(?i:\bcirculars?\b)`, "परिपत्रक"),
	rule(`अधिसूचना|(?i:\bnotifications?\b)`, "अधिसूचना"),
	rule(`कार्यालयीन[ \t]*आदेश|(?i:\boffice[ \t]+orders?\b)`, "कार्यालयीन आदेश"),
	rule(`संदर्भीय[ \t]*पत्र|संदर्भ[ \t]*क्र`, "संदर्भ पत्र"),

	// special / administrative
	rule(`तारांकित[ \t]*प्रश्न|अतारांकित[ \t]*प्रश्न|विधानसभा[ \t]*प्रश्न|विधान[ \t]*परिषद[ \t]*प्रश्न`, "विधिमंडळ प्रश्न"),
	rule(`लक्षवेधी`, "लक्षवेधी सूचना"),
	rule(`समन्स|वॉरंट|(?i:\bsummons\b|\bwarrants?\b)`, "समन्स/वॉरंट"),
	rule(`न्यायालयीन[ \t]*प्रकरण|रिट[ \t]*याचिका|(?i:\bwrit[ \t]+petitions?\b|\bcourt[ \t]+cases?\b)`, "न्यायालयीन प्रकरण"),
	rule(`विभागीय[ \t]*चौकशी|(?i:\bdepartmental[ \t]+enquiry\b)`, "विभागीय चौकशी"),
	rule(`बदली|(?i:\btransfer[ \t]+orders?\b)`, "बदली"),
	rule(`पदोन्नती|(?i:\bpromotions?\b)`, "पदोन्नती"),
	rule(`रजा[ \t]*(?:अर्ज|मंजूर)|अर्जित[ \t]*रजा|वैद्यकीय[ \t]*रजा|(?i:\bleave[ \t]+applications?\b)`, "रजा अर्ज"),
	rule(`सेवानिवृत्ती|निवृत्तीवेतन|(?i:\bretirement\b|\bpension(?:s|ers?)?\b)`, "सेवानिवृत्ती/निवृत्तीवेतन"),
	rule(`वेतन|भत्ता|भत्ते|(?i:\bsalar(?:y|ies)\b|\ballowances?\b)`, "वेतन व भत्ते"),
	rule(`अंदाजपत्रक|निधी[ \t]*वितरण|अनुदान|(?i:\bbudgets?\b|\bgrants?\b)`, "अंदाजपत्रक/निधी"),
	rule(`निविदा|खरेदी|(?i:\btenders?\b|\bprocurement\b)`, "खरेदी/निविदा"),
	rule(`बंदोबस्त`, "बंदोबस्त"),
	rule(`दौरा|(?i:\bV\.?V\.?I\.?P\.?\b|\bV\.?I\.?P\.?\b|\bvisit[ \t]+program(?:me)?\b)`, "व्हीआयपी दौरा"),
	rule(`निवडणूक|(?i:\belections?\b)`, "निवडणूक"),
	rule(`प्रशिक्षण|(?i:\btraining\b)`, "प्रशिक्षण"),
	rule(`गोपनीय|(?i:\bconfidential\b)`, "गोपनीय"),
	rule(`वाहन[ \t]*(?:दुरुस्ती|खरेदी|वाटप)|(?i:\bvehicles?\b)`, "वाहन व्यवस्था"),
	rule(`आढावा[ \t]*बैठक|बैठक|(?i:\bmeetings?\b)`, "बैठक"),
	rule(`मासिक[ \t]*अहवाल|(?i:\bmonthly[ \t]+reports?\b)`, "मासिक अहवाल"),
	rule(`गुन्हे[ \t]*आढावा|गुन्हा[ \t]*नोंद|(?i:\bF\.?I\.?R\.?\b)|प्रथम[ \t]*खबर`, "गुन्हा नोंद"),
	rule(`अपघात|(?i:\baccidents?\b)`, "अपघात"),
	rule(`हरवले|हरवलेली|बेपत्ता|(?i:\bmissing[ \t]+persons?\b)`, "बेपत्ता व्यक्ती"),
	rule(`अवैध[ \t]*(?:दारू|धंदे|वाळू)|जुगार|मटका|(?i:\billegal[ \t]+liquor\b|\bgambling\b)`, "अवैध धंदे"),
	rule(`अंमली[ \t]*पदार्थ|(?i:\bNDPS\b|\bnarcotics?\b)`, "अंमली पदार्थ"),
	rule(`महिला[ \t]*अत्याचार|कौटुंबिक[ \t]*हिंसाचार|(?i:\bdomestic[ \t]+violence\b|\bPOCSO\b)|पोक्सो`, "महिला व बाल अत्याचार"),
	rule(`ज्येष्ठ[ \t]*नागरिक|(?i:\bsenior[ \t]+citizens?\b)`, "ज्येष्ठ नागरिक"),

	// cyber crime
	rule(`(?:ओटीपी|(?i:\bOTP\b))[^\n]{0,40}(?:फसवणूक|(?i:\bfraud))`, "सायबर गुन्हा - ओटीपी फसवणूक"),
	rule(`(?:ऑनलाइन|ऑनलाईन|(?i:\bonline\b))[ \t]*(?:आर्थिक[ \t]*)?(?:फसवणूक|(?i:\bfraud))|(?i:\bUPI[ \t]+fraud)`, "सायबर गुन्हा - ऑनलाईन आर्थिक फसवणूक"),
	rule(`(?:फेसबुक|इन्स्टाग्राम|व्हॉट्सअ?ॅप|सोशल[ \t]*मीडिया|(?i:\bfacebook\b|\binstagram\b|\bsocial[ \t]+media\b))[^\n]{0,40}(?:बदनामी|अश्लील|बनावट|खाते|(?i:\bfake\b|\bprofiles?\b|\bdefam\w*))`, "सायबर गुन्हा - सोशल मीडिया"),
	rule(`हॅक|(?i:\bhack(?:ed|ing)?\b)`, "सायबर गुन्हा - हॅकिंग"),
	rule(`सेक्स्टॉर्शन|(?i:\bsextortion\b)|ब्लॅकमेल|(?i:\bblackmail\w*)`, "सायबर गुन्हा - ऑनलाईन छळ"),
	rule(`सायबर|(?i:\bcyber\w*)`, "सायबर गुन्हा"),

	// generic
	rule(`तक्रारी[ \t]*अर्ज`, "तक्रारी अर्ज"),
	rule(`निनावी[ \t]*(?:तक्रार|अर्ज)|(?i:\banonymous[ \t]+complaints?\b)`, "निनावी तक्रार"),
	rule(`तक्रार|(?i:\bcomplaints?\b)`, "तक्रार"),
	rule(`निवेदन|(?i:\bmemorand(?:um|a)\b)`, "निवेदन"),
	rule(`विनंती[ \t]*अर्ज`, "विनंती अर्ज"),
	rule(`अर्ज|(?i:\bapplications?\b)`, "अर्ज"),
	rule(`विनंती|(?i:\brequest(?:s|ed)?\b)`, "विनंती पत्र"),
	rule(`अहवाल|(?i:\breports?\b)`, "अहवाल"),
	rule(`माहिती[ \t]*(?:सादर|मागविणे|पाठविणे)|(?i:\binformation[ \t]+sought\b)`, "माहिती मागणी"),
	rule(`आदेश|(?i:\borders?\b)`, "आदेश"),
	rule(`प्रस्ताव|(?i:\bproposals?\b)`, "प्रस्ताव"),
	rule(`निमंत्रण|आमंत्रण|(?i:\binvitations?\b)`, "निमंत्रण"),
	rule(`अभिनंदन|प्रशंसा|(?i:\bappreciation\b|\bcongratulat\w*)`, "प्रशंसा पत्र"),
	rule(`खुलासा|कारणे[ \t]*दाखवा|(?i:\bshow[ \t\-]+cause\b|\bexplanations?\b)`, "खुलासा/कारणे दाखवा"),
}

// MatchLetterType evaluates the letter type table.
func MatchLetterType(text string) Match {
	return letterTypeTable.Match(text)
}

// ClassifyLetterType returns the first matching label, or DefaultLetterType.
func ClassifyLetterType(text string) string {
	return MatchLetterType(text).Or(DefaultLetterType)
}
