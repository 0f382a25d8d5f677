package constants

import "strings"

// OfficeName is one of the district police offices the system serves.
// The set is closed: values outside it are never constructed by ParseOfficeName.
type OfficeName string

const (
	OfficeNone        OfficeName = ""
	OfficeAhilyanagar OfficeName = "अहिल्यानगर"
	OfficePuneRural   OfficeName = "पुणे ग्रामीण"
	OfficeJalgaon     OfficeName = "जळगाव"
	OfficeNandurbar   OfficeName = "नंदुरबार"
	OfficeNashikRural OfficeName = "नाशिक ग्रामीण"
)

var allOfficeNames = []OfficeName{
	OfficeAhilyanagar,
	OfficePuneRural,
	OfficeJalgaon,
	OfficeNandurbar,
	OfficeNashikRural,
}

// OfficeNames returns the served offices in declaration order.
func OfficeNames() []OfficeName {
	out := make([]OfficeName, len(allOfficeNames))
	copy(out, allOfficeNames)
	return out
}

// ParseOfficeName accepts only an exact member of the closed set.
func ParseOfficeName(s string) (OfficeName, bool) {
	s = strings.Join(strings.Fields(s), " ")
	for _, n := range allOfficeNames {
		if string(n) == s {
			return n, true
		}
	}
	return OfficeNone, false
}

func (n OfficeName) Valid() bool {
	if n == OfficeNone {
		return true
	}
	_, ok := ParseOfficeName(string(n))
	return ok
}

func (n OfficeName) String() string { return string(n) }

// OfficeType classifies the issuing office in the police hierarchy.
type OfficeType string

const (
	OfficeTypeNone          OfficeType = ""
	OfficeTypeIGP           OfficeType = "IGP"
	OfficeTypeSP            OfficeType = "SP"
	OfficeTypeSDPO          OfficeType = "SDPO"
	OfficeTypePoliceStation OfficeType = "Police Station"
)

var allOfficeTypes = []OfficeType{
	OfficeTypeIGP,
	OfficeTypeSP,
	OfficeTypeSDPO,
	OfficeTypePoliceStation,
}

func OfficeTypes() []OfficeType {
	out := make([]OfficeType, len(allOfficeTypes))
	copy(out, allOfficeTypes)
	return out
}

func ParseOfficeType(s string) (OfficeType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range allOfficeTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return OfficeTypeNone, false
}

func (t OfficeType) String() string { return string(t) }
