package rules

// DefaultActionType is used when no action rule matches.
const DefaultActionType = "सामान्य"

var actionTable = Table{
	rule(`अति[ \t]*तात्काळ|अतितातडी|(?i:\bmost[ \t]+(?:urgent|immediate)\b)`, "अतितात्काळ"),
	rule(`तात्काळ|तातडीने|(?i:\burgent\b|\bimmediate(?:ly)?\b)`, "तात्काळ"),
	rule(`अहवाल[ \t]*(?:सादर|पाठव|द्याव)|(?i:\bsubmit[ \t]+(?:the[ \t]+)?reports?\b)`, "अहवाल सादर करणे"),
	rule(`चौकशी[ \t]*(?:करून|करावी|करणे)|(?i:\benquiry\b|\binquiry\b)`, "चौकशी"),
	rule(`तपासणी|निरीक्षण|(?i:\binspections?\b)`, "तपासणी"),
	rule(`पडताळणी|(?i:\bverification\b|\bverify\b)`, "पडताळणी"),
	rule(`अग्रेषित|(?i:\bforward(?:ed|ing)\b)`, "अग्रेषित"),
	rule(`खुलासा|उत्तर[ \t]*(?:सादर|पाठव|द्याव)|(?i:\breply\b|\bexplanations?\b)`, "उत्तर/खुलासा"),
	rule(`माहिती[ \t]*(?:सादर|पाठव|द्याव|उपलब्ध[ \t]*करून)|(?i:\bfurnish[ \t]+(?:the[ \t]+)?information\b)`, "माहिती सादर करणे"),
	rule(`उपस्थित[ \t]*(?:राहा|रहावे|राहावे)|हजर[ \t]*(?:राहा|रहावे|राहावे)|(?i:\bremain[ \t]+present\b|\battend\b)`, "उपस्थिती"),
	rule(`मान्यता|मंजुरी|मंजूरी|(?i:\bapproval\b|\bsanction(?:ed)?\b)`, "मान्यता"),
	rule(`अभिप्राय|(?i:\bcomments\b|\bopinion\b)`, "अभिप्राय"),
	rule(`आवश्यक[ \t]*(?:ती[ \t]*)?कार्यवाही|कार्यवाही[ \t]*(?:करावी|करणे|करण्यात)|कारवाई[ \t]*(?:करावी|करणे)|(?i:\b(?:necessary|take)[ \t]+action\b)`, "कार्यवाही"),
	rule(`माहितीसाठी|अवगत|नोंद[ \t]*(?:घ्यावी|घेणे|घ्या)|(?i:\bfor[ \t]+(?:your[ \t]+)?information\b)`, "माहितीस्तव"),
}

// MatchActionType evaluates the action table. There is no secondary fallback.
func MatchActionType(text string) Match {
	return actionTable.Match(text)
}

// ClassifyAction returns the action label, or DefaultActionType.
func ClassifyAction(text string) string {
	return MatchActionType(text).Or(DefaultActionType)
}
