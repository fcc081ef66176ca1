package planfile

import (
	"strconv"
	"strings"

	"gsep-planner/internal/models"
)

// Field describes one column of the relational view of a plan.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Options     []any  `json:"options,omitempty" yaml:"options,omitempty"`
	Example     string `json:"example,omitempty" yaml:"example,omitempty"`
	IsKey       bool   `json:"isKey,omitempty" yaml:"isKey,omitempty"`
}

// Schema is one table of the relational view.
type Schema struct {
	Name        string  `json:"name" yaml:"name"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

const (
	typeNumber  = "number"
	typeString  = "string"
	typeBoolean = "boolean"
	typeObject  = "object"
	typeLinked  = "array of objects"

	appGenerated = "A unique ID for this record, generated automatically by the app (Primary Key)."
)

// Schemas describes how the plan tree maps onto five relational tables,
// children linking to their owner through a foreign key column.
func Schemas() []Schema {
	return []Schema{
		{
			Name: "projects", Title: "Table 1: Projects",
			Description: "Top-level table. One row per project.",
			Fields: []Field{
				{Name: "id", Type: typeNumber, Description: appGenerated, IsKey: true},
				{Name: "projectNumber", Type: typeNumber, Description: "Official project number."},
				{Name: "projectName", Type: typeString, Description: "Project name/identifier."},
				{Name: "projectType", Type: typeString, Description: "Type of the project.", Example: models.DefaultProjectType},
				{Name: "revisionNumber", Type: typeString, Description: "Project revision number."},
				{Name: "revisionDate", Type: typeString, Description: "Date of the revision (YYYY-MM-DD)."},
				{Name: "projectDescription", Type: typeString, Description: "General scope description."},
				{Name: "projectStartDate", Type: typeString, Description: "Estimated start date.", Example: "2025-04-01"},
				{Name: "projectEndDate", Type: typeString, Description: "Estimated end date.", Example: "2025-10-31"},
				{Name: "projectCost", Type: typeNumber, Description: "Fully-loaded estimated cost ($)."},
				{Name: "townCity", Type: typeString, Description: "Town/City.", Options: strs(models.Towns)},
				{Name: "isEJCommunity", Type: typeBoolean, Description: "True if in an EJ community."},
				{Name: "ejInformation", Type: typeString, Description: "Raw EJ text pasted from source."},
				{Name: "eliminatesRegulatorStation", Type: typeBoolean, Description: "True if project eliminates a District Regulator Station (DRS)."},
				{Name: "contributesToRegulatorStationElimination", Type: typeBoolean, Description: "True if project contributes to a future District Regulator Station (DRS) elimination."},
				{Name: "regulatorStationComments", Type: typeString, Description: "Comments regarding the District Regulator Station."},
				{Name: "numberOfStreets", Type: typeNumber, Description: "Count of streets in this project."},
				{Name: "streets", Type: typeLinked, Description: "Linked rows are in 'Streets'."},
			},
		},
		{
			Name: "streets", Title: "Table 2: Streets",
			Description: "One row per street within a project.",
			Fields: []Field{
				{Name: "id", Type: typeNumber, Description: appGenerated, IsKey: true},
				{Name: "project_id", Type: typeNumber, Description: "Foreign Key -> Projects.id", IsKey: true},
				{Name: "name", Type: typeString, Description: "Street name."},
				{Name: "numberOfMainSegments", Type: typeNumber, Description: "Number of main segments."},
				{Name: "advancedLeakDetectionEvaluation", Type: typeObject, Description: "Contains arrays of reasons why advanced leak detection/repair methods were not used for this street."},
				{Name: "mainSegments", Type: typeLinked, Description: "Linked rows are in 'Main Segments'."},
			},
		},
		{
			Name: "mainSegments", Title: "Table 3: Main Segments",
			Description: "One row per main pipe segment.",
			Fields: []Field{
				{Name: "id", Type: typeNumber, Description: appGenerated, IsKey: true},
				{Name: "street_id", Type: typeNumber, Description: "Foreign Key -> Streets.id", IsKey: true},
				{Name: "diameter", Type: typeNumber, Description: "Existing main diameter (in).", Options: floats(models.PipeDiameters)},
				{Name: "material", Type: typeString, Description: "Existing main material.", Options: strs(models.PipeMaterials)},
				{Name: "length", Type: typeNumber, Description: "Existing main length (ft)."},
				{Name: "mainId", Type: typeString, Description: "Existing main ID."},
				{Name: "dimpRiskScore", Type: typeNumber, Description: "DIMP risk score."},
				{Name: "maop", Type: typeString, Description: "MAOP of existing main.", Options: strs(models.MaopOptions)},
				{Name: "essentialStatus", Type: typeString, Description: "Essential or non-essential.", Options: []any{string(models.EssentialStatusEssential), string(models.EssentialStatusNonEssential)}},
				{Name: "lengthToBeReplaced", Type: typeNumber, Description: "Length to be replaced (ft)."},
				{Name: "replacementPipeDiameter", Type: typeNumber, Description: "New pipe diameter (in).", Options: floats(models.ReplacementPipeDiameters)},
				{Name: "replacementPipeMaterial", Type: typeString, Description: "New pipe material.", Options: strs(models.ReplacementPipeMaterials)},
				{Name: "replacementPipeMethod", Type: typeString, Description: "Replacement method.", Options: strs(models.ReplacementPipeMethods)},
				{Name: "replacementPipeMaop", Type: typeString, Description: "New pipe MAOP.", Options: strs(models.MaopOptions)},
				{Name: "numberOfServices", Type: typeNumber, Description: "Number of services on this segment."},
				{Name: "primaryPurpose", Type: typeString, Description: "Primary reason.", Options: strs(models.PurposeOptions)},
				{Name: "primaryPurposeExplanation", Type: typeString, Description: "Explanation of primary purpose."},
				{Name: "secondaryPurpose", Type: typeString, Description: "Secondary reason.", Options: strs(models.PurposeOptions)},
				{Name: "secondaryPurposeExplanation", Type: typeString, Description: "Explanation of secondary purpose."},
				{Name: "diameterReduction", Type: typeString, Description: "Reduction in main diameter to reduce standard costs.", Options: strs(models.DiameterReductions)},
				{Name: "services", Type: typeLinked, Description: "Linked rows are in 'Services'."},
			},
		},
		{
			Name: "services", Title: "Table 4: Services",
			Description: "One row per service line.",
			Fields: []Field{
				{Name: "id", Type: typeNumber, Description: appGenerated, IsKey: true},
				{Name: "main_segment_id", Type: typeNumber, Description: "Foreign Key -> MainSegments.id", IsKey: true},
				{Name: "parentServiceId", Type: typeNumber, Description: "Foreign Key -> Services.id. If populated, this service is a branch of the parent service."},
				{Name: "streetName", Type: typeString, Description: "Street name for service location."},
				{Name: "streetNumber", Type: typeString, Description: "Street number for service location."},
				{Name: "serviceId", Type: typeString, Description: "Service line ID."},
				{Name: "diameter", Type: typeNumber, Description: "Existing service diameter (in).", Options: floats(models.ServicePipeDiameters)},
				{Name: "material", Type: typeString, Description: "Existing service material.", Options: strs(models.PipeMaterials)},
				{Name: "length", Type: typeNumber, Description: "Existing service length (ft)."},
				{Name: "replacementDiameter", Type: typeNumber, Description: "Replacement service diameter (in).", Options: floats(models.ServicePipeDiameters)},
				{Name: "replacementMaterial", Type: typeString, Description: "Replacement service material.", Options: strs(models.ReplacementPipeMaterials)},
				{Name: "replacementLength", Type: typeNumber, Description: "Replacement service length (ft)."},
				{Name: "replacementMethod", Type: typeString, Description: "Method of replacement or abandonment.", Options: strs(models.ReplacementPipeMethods)},
				{Name: "isBranchService", Type: typeBoolean, Description: "True if this service has one or more branch services coming off of it."},
				{Name: "workType", Type: typeString, Description: "Work type.", Options: strs(models.ServiceWorkTypes)},
				{Name: "structureType", Type: typeString, Description: "Structure type.", Options: strs(models.StructureTypes)},
				{Name: "structureTypeOther", Type: typeString, Description: "If Other, specify."},
				{Name: "numberOfMeters", Type: typeNumber, Description: "Number of meters on this service."},
				{Name: "meters", Type: typeLinked, Description: "Linked rows are in 'Meters'."},
			},
		},
		{
			Name: "meters", Title: "Table 5: Meters",
			Description: "One row per meter.",
			Fields: []Field{
				{Name: "id", Type: typeNumber, Description: appGenerated, IsKey: true},
				{Name: "service_id", Type: typeNumber, Description: "Foreign Key -> Services.id", IsKey: true},
				{Name: "meterNumber", Type: typeString, Description: "Meter number."},
				{Name: "customerAccountNumber", Type: typeString, Description: "Customer account number."},
				{Name: "unitIdentifier", Type: typeString, Description: "Unit (e.g., Apt 2)."},
				{Name: "uddUsage", Type: typeNumber, Description: "Annual usage (therms/yr)."},
				{Name: "baseUsage", Type: typeNumber, Description: "Base usage (therms/mo)."},
			},
		},
	}
}

// CSVTemplate returns the quoted header line for importing rows into the
// table with the given name or title. Linked-list columns are left out.
func CSVTemplate(table string) (string, bool) {
	for _, s := range Schemas() {
		if s.Name != table && s.Title != table {
			continue
		}
		cols := make([]string, 0, len(s.Fields))
		for _, f := range s.Fields {
			if f.Type == typeLinked {
				continue
			}
			cols = append(cols, strconv.Quote(f.Name))
		}
		return strings.Join(cols, ","), true
	}
	return "", false
}

func strs(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func floats(in []float64) []any {
	out := make([]any, len(in))
	for i, f := range in {
		out[i] = f
	}
	return out
}
