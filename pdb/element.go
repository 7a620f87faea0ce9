package pdb

import (
	"strings"
	"unicode"
)

var atomicNumbers = map[string]int{
	"H": 1, "D": 1, "HE": 2, "LI": 3, "BE": 4, "B": 5, "C": 6, "N": 7,
	"O": 8, "F": 9, "NE": 10, "NA": 11, "MG": 12, "AL": 13, "SI": 14,
	"P": 15, "S": 16, "CL": 17, "AR": 18, "K": 19, "CA": 20, "MN": 25,
	"FE": 26, "CO": 27, "NI": 28, "CU": 29, "ZN": 30, "SE": 34, "BR": 35,
	"RB": 37, "SR": 38, "AG": 47, "CD": 48, "I": 53, "CS": 55, "BA": 56,
	"PT": 78, "AU": 79, "HG": 80, "PB": 82,
}

// AtomicNumber returns the atomic number of the element symbol given, or 0
// if the element is unknown. The symbol is case insensitive.
func AtomicNumber(element string) int {
	return atomicNumbers[strings.ToUpper(strings.TrimSpace(element))]
}

// inferElement guesses the element of an atom from its name, for files that
// leave the element columns blank. When the name starts in column 13 of the
// record (leftAligned), a two letter element is tried first. That's how the
// PDB format distinguishes calcium "CA" from an alpha-carbon " CA ".
func inferElement(name string, leftAligned bool) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	letters := strings.TrimLeftFunc(name, unicode.IsDigit)
	if len(letters) == 0 {
		return ""
	}
	if leftAligned && len(letters) >= 2 {
		if _, ok := atomicNumbers[letters[0:2]]; ok && len(name) < 4 {
			return letters[0:2]
		}
	}
	return letters[0:1]
}
