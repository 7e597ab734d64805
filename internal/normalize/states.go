package normalize

import "strings"

// stateNameByAbbr expands USPS state abbreviations to the full names the
// locality file labels rows with. The crosswalk carries abbreviations, the
// locality file carries names; State maps both onto the name.
var stateNameByAbbr = map[string]string{
	"AL": "ALABAMA",
	"AK": "ALASKA",
	"AZ": "ARIZONA",
	"AR": "ARKANSAS",
	"CA": "CALIFORNIA",
	"CO": "COLORADO",
	"CT": "CONNECTICUT",
	"DC": "DISTRICT OF COLUMBIA",
	"DE": "DELAWARE",
	"FL": "FLORIDA",
	"GA": "GEORGIA",
	"GU": "GUAM",
	"HI": "HAWAII",
	"IA": "IOWA",
	"ID": "IDAHO",
	"IL": "ILLINOIS",
	"IN": "INDIANA",
	"KS": "KANSAS",
	"KY": "KENTUCKY",
	"LA": "LOUISIANA",
	"MA": "MASSACHUSETTS",
	"MD": "MARYLAND",
	"ME": "MAINE",
	"MI": "MICHIGAN",
	"MN": "MINNESOTA",
	"MO": "MISSOURI",
	"MP": "NORTHERN MARIANA ISLANDS",
	"MS": "MISSISSIPPI",
	"MT": "MONTANA",
	"NC": "NORTH CAROLINA",
	"ND": "NORTH DAKOTA",
	"NE": "NEBRASKA",
	"NH": "NEW HAMPSHIRE",
	"NJ": "NEW JERSEY",
	"NM": "NEW MEXICO",
	"NV": "NEVADA",
	"NY": "NEW YORK",
	"OH": "OHIO",
	"OK": "OKLAHOMA",
	"OR": "OREGON",
	"PA": "PENNSYLVANIA",
	"PR": "PUERTO RICO",
	"RI": "RHODE ISLAND",
	"SC": "SOUTH CAROLINA",
	"SD": "SOUTH DAKOTA",
	"TN": "TENNESSEE",
	"TX": "TEXAS",
	"UT": "UTAH",
	"VA": "VIRGINIA",
	"VI": "VIRGIN ISLANDS",
	"VT": "VERMONT",
	"WA": "WASHINGTON",
	"WI": "WISCONSIN",
	"WV": "WEST VIRGINIA",
	"WY": "WYOMING",
}

// State canonicalizes a state label to its full uppercase name. Accepts
// either a USPS abbreviation ("MO") or a full name in any case
// ("Missouri", "MISSOURI"). Unrecognized values pass through uppercased.
func State(v string) string {
	s := strings.ToUpper(strings.TrimSpace(v))
	s = multiSpace.ReplaceAllString(s, " ")
	if name, ok := stateNameByAbbr[s]; ok {
		return name
	}
	return s
}
