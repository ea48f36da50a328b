// Package restructure derives the V2 Record from a Standard Record:
// identity and classification fields from part-number patterns, loss tables
// regrouped by operating condition, scalar parameters mined from comment
// text, and derived thermal totals.
package restructure

import (
	"regexp"
	"strconv"
	"strings"
)

// Extraction rules are independent and optional: a rule that does not match
// yields its zero result and never blocks another rule's evaluation.

var (
	familyPattern  = regexp.MustCompile(`^([A-Z]\d[A-Z])`)
	voltagePattern = regexp.MustCompile(`(\d{3})[A-Z]$`)
	packagePattern = regexp.MustCompile(`([A-Z]\d?)$`)

	revisionPattern = regexp.MustCompile(`Rev\.?(\d+),?\s*(\d{4}-\d{2}-\d{2})?`)
	ronPattern      = regexp.MustCompile(`Ron\s*=\s*([\d.]+)\s*`)
	vfPattern       = regexp.MustCompile(`Vf\s*=\s*([\d.]+)\s*V`)
)

// DeviceID builds the deterministic slug for a device: lower-cased
// manufacturer and part number with separators normalized to underscore.
func DeviceID(manufacturer, partNumber string) string {
	mfr := strings.ReplaceAll(strings.ToLower(manufacturer), " ", "_")
	pn := strings.ReplaceAll(strings.ToLower(partNumber), "-", "_")
	return mfr + "_" + pn
}

// ExtractFamily matches the letter-digit-letter prefix of a part number
// (e.g. C2M, E3M). Empty string when the pattern does not match.
func ExtractFamily(partNumber string) string {
	if m := familyPattern.FindStringSubmatch(partNumber); m != nil {
		return m[1]
	}
	return ""
}

// voltageCodes maps the trailing 3-digit code of a part number to the
// device's voltage rating. Codes outside the table yield no rating rather
// than a guessed value.
var voltageCodes = map[int]int{
	120: 1200,
	65:  650,
	60:  600,
	170: 1700,
	75:  750,
}

// ExtractVoltageRating reads the 3-digit code immediately before the
// trailing package letter and resolves it through the known-code table.
func ExtractVoltageRating(partNumber string) (int, bool) {
	m := voltagePattern.FindStringSubmatch(partNumber)
	if m == nil {
		return 0, false
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	rating, ok := voltageCodes[code]
	return rating, ok
}

// ExtractPackageCode returns the trailing one-or-two-character suffix of
// the part number, empty when absent.
func ExtractPackageCode(partNumber string) string {
	if m := packagePattern.FindStringSubmatch(partNumber); m != nil {
		return m[1]
	}
	return ""
}

// packageSuffixes maps the leading letter of a part-number suffix to the
// physical package name.
var packageSuffixes = []struct {
	prefix string
	name   string
}{
	{"D", "TO-247-3"},
	{"J", "TO-247-4"},
	{"K", "TO-247-4"},
	{"L", "TO-263-7"},
	{"E", "TO-247-3"},
	{"A", "TO-220"},
	{"F", "TO-220F"},
	{"G", "D2PAK-7"},
	{"H", "TO-247-3"},
	{"P", "TO-247-PLUS"},
}

// MapPackageType maps the source package type and part-number suffix to the
// V2 classification. Power modules classify as "module" outright; an
// unmatched suffix falls back to the generic "discrete".
func MapPackageType(packageType, partNumber string) string {
	if packageType == "power module" {
		return "module"
	}
	suffix := ExtractPackageCode(partNumber)
	for _, p := range packageSuffixes {
		if strings.HasPrefix(suffix, p.prefix) {
			return p.name
		}
	}
	return "discrete"
}

// DatasheetInfo is the result of mining the free-text comment lines.
// Unmatched fields stay at their zero values.
type DatasheetInfo struct {
	Revision string
	Date     string
	Ron      *float64
	Vf       *float64
}

// MineComments scans comment lines for the datasheet revision marker, a
// literal "Ron = <number>" and a literal "Vf = <number> V". The three
// patterns are evaluated independently per line; for each field the last
// matching line wins.
func MineComments(lines []string) DatasheetInfo {
	var info DatasheetInfo
	for _, line := range lines {
		if strings.Contains(line, "Datasheet Rev") {
			if m := revisionPattern.FindStringSubmatch(line); m != nil {
				info.Revision = "Rev." + m[1]
				if m[2] != "" {
					info.Date = m[2]
				}
			}
		}
		if strings.Contains(line, "Ron = ") {
			if m := ronPattern.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					info.Ron = &v
				}
			}
		}
		if strings.Contains(line, "Vf = ") {
			if m := vfPattern.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					info.Vf = &v
				}
			}
		}
	}
	return info
}
