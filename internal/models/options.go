package models

// Drop-down choices offered for the enumerated string fields. The store does
// not enforce them; they feed the schema description and report labels.
var (
	Towns = []string{"Ashby", "Fitchburg", "Gardner", "Lunenburg", "Westminster"}

	PipeDiameters        = []float64{1, 2, 3, 4, 6, 8, 10, 12, 14, 16, 18}
	ServicePipeDiameters = []float64{0.5, 0.75, 1, 1.25, 1.5, 1.75, 2, 3, 4, 6, 8, 10, 12}

	PipeMaterials = []string{
		"Cast Iron",
		"Bare Steel",
		"Unprotected Coated Steel",
		"Protected Coated Steel",
		"Legacy Plastic HDPE",
		"Legacy Plastic MDPE",
		"Aldyl a pipe",
	}

	ReplacementPipeDiameters = []float64{2, 4, 6, 8, 10, 12}
	ReplacementPipeMaterials = []string{"HDPE", "Coated Steel"}
	ReplacementPipeMethods   = []string{"Open-Cut", "Insertion", "Pipe Bursting", "HDD"}

	MaopOptions = []string{"14 Inches W.C.", "30 psig", "99 psig"}

	PurposeOptions = []string{
		"Risk Score",
		"Municipal Improvement Project",
		"No supply due to upstream replacement",
		"Opportunistic",
		PurposeOther,
	}

	ServiceWorkTypes = []string{
		WorkTypeFullReplacement,
		WorkTypePartialReplacement,
		WorkTypeAbandonmentOnly,
		"Tie Over to New Main Segment",
	}

	StructureTypes = []string{
		"Residential",
		"Residential Duplex",
		"Residential Triplex",
		"Residential Quadplex",
		"Small Multi Residential Apartment Building",
		"Large Multi Residential Apartment Building",
		"Small Commercial Building",
		"Large Commercial Building",
		"Small Restaurant",
		"Large Restaurant",
		"Small Industrial Building",
		"Large Industrial Building",
		StructureTypeOther,
	}

	DiameterReductions = []string{"8_to_6", "8_to_4", "8_to_2", "6_to_4", "6_to_2", "4_to_2", ""}
)

const (
	PurposeOther       = "Other (please specify)"
	StructureTypeOther = "Other user defined"

	WorkTypeFullReplacement    = "Full Replacement"
	WorkTypePartialReplacement = "Partial Replacement"
	WorkTypeAbandonmentOnly    = "Abandonment Only"
)

var diameterReductionLabels = map[string]string{
	"8_to_6": `8" to 6"`,
	"8_to_4": `8" to 4"`,
	"8_to_2": `8" to 2"`,
	"6_to_4": `6" to 4"`,
	"6_to_2": `6" to 2"`,
	"4_to_2": `4" to 2"`,
}

// DiameterReductionLabel returns the display label of a diameter reduction
// code. Unknown codes are returned as-is with ok=false.
func DiameterReductionLabel(code string) (label string, ok bool) {
	if l, found := diameterReductionLabels[code]; found {
		return l, true
	}
	return code, false
}
