package pnr

import "strconv"

// corporateTypes are the leading digits of an organisationsnummer.
// 4 is unassigned.
var corporateTypes = []string{"1", "2", "3", "5", "6", "7", "8", "9"}

// corporateTypeRule is the validator rule for an explicit corporate type.
const corporateTypeRule = "omitempty,oneof=1 2 3 5 6 7 8 9"

// organisationsnummerParts builds a corporate number. The third digit is at
// least 2 so the number can never be read as a birth month.
func organisationsnummerParts(src Source, corporateType string) (Parts, string) {
	if corporateType == "" {
		corporateType = choice(src, corporateTypes)
	}

	group := randRange(src, 2, 10)
	return Parts{
		Prefix: Numerify(src, corporateType+"#"+strconv.Itoa(group)+"###"),
		Suffix: Numerify(src, "###"),
	}, corporateType
}
