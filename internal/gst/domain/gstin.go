package domain

import "regexp"

// GSTN-published format: 2-digit state code, 10-char PAN, entity number,
// fixed "Z", check digit.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ValidateGSTIN reports whether gstin matches the registration number format.
func ValidateGSTIN(gstin string) bool {
	return gstinPattern.MatchString(gstin)
}

// StateFromGSTIN extracts the two-digit state code prefix from a GSTIN.
// The GSTIN is format-validated first.
func StateFromGSTIN(gstin string) (string, error) {
	if !ValidateGSTIN(gstin) {
		return "", newValidationError("gstin", gstin, "invalid GSTIN format, expected e.g. 27ABCDE1234F1Z5")
	}
	return gstin[:2], nil
}
