package domain

// GST state codes (ISO 3166-2:IN / GST Council numbering).
// These codes are ENGINE-CONSTANTS.
// Do NOT rename or repurpose once used in invoices.
const (
	// StateCodeExport is the reserved pseudo-state for foreign recipients.
	StateCodeExport = "96"

	// StateCodeOtherTerritory covers supplies to territories outside any state.
	StateCodeOtherTerritory = "97"
)

var stateNames = map[string]string{
	"01": "Jammu & Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"25": "Daman & Diu",
	"26": "Dadra & Nagar Haveli",
	"27": "Maharashtra",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman & Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
	StateCodeExport:         "Foreign Country",
	StateCodeOtherTerritory: "Other Territory",
}

// IsKnownStateCode reports whether code appears in the GST state table.
func IsKnownStateCode(code string) bool {
	_, ok := stateNames[code]
	return ok
}

// StateName returns the display name for a state code, or "Unknown".
func StateName(code string) string {
	if name, ok := stateNames[code]; ok {
		return name
	}
	return "Unknown"
}
