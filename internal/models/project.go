package models

// Project is the root of a replacement plan. The Total* fields are caches
// written by the totals calculator and are only trustworthy right after a
// recalculation.
type Project struct {
	ID                 int64    `json:"id"`
	ProjectNumber      *float64 `json:"projectNumber"`
	ProjectName        string   `json:"projectName"`
	RevisionNumber     string   `json:"revisionNumber"`
	RevisionDate       *string  `json:"revisionDate"`
	ProjectDescription string   `json:"projectDescription"`
	ProjectStartDate   *string  `json:"projectStartDate"`
	ProjectEndDate     *string  `json:"projectEndDate"`
	ProjectCost        *float64 `json:"projectCost"`

	OverviewMapFileName    *string  `json:"overviewMapFileName"`
	OverviewMapFileContent *string  `json:"overviewMapFileContent"`
	OverviewMapWidth       *float64 `json:"overviewMapWidth"`
	OverviewMapHeight      *float64 `json:"overviewMapHeight"`

	ProjectType                              string `json:"projectType"`
	TownCity                                 string `json:"townCity"`
	IsEJCommunity                            *bool  `json:"isEJCommunity"`
	EJInformation                            string `json:"ejInformation"`
	EJSummary                                string `json:"ejSummary"`
	EliminatesRegulatorStation               *bool  `json:"eliminatesRegulatorStation"`
	ContributesToRegulatorStationElimination *bool  `json:"contributesToRegulatorStationElimination"`
	RegulatorStationComments                 string `json:"regulatorStationComments"`

	NumberOfStreets int       `json:"numberOfStreets"`
	Streets         []*Street `json:"streets"`

	AnnualHDD      float64 `json:"annualHDD"`
	AnnualHDDBasis string  `json:"annualHDDBasis"`

	TotalAbandonedLength *float64 `json:"totalAbandonedLength"`
	TotalReplacedLength  *float64 `json:"totalReplacedLength"`
	TotalAnnualUsage     *float64 `json:"totalAnnualUsage"`
}

// ProjectPatch carries the editable project fields. Data variables
// (AnnualHDD, AnnualHDDBasis) are edited through DataVarsPatch.
type ProjectPatch struct {
	ProjectNumber      Nullable[float64] `json:"projectNumber"`
	ProjectName        *string           `json:"projectName,omitempty"`
	RevisionNumber     *string           `json:"revisionNumber,omitempty"`
	RevisionDate       Nullable[string]  `json:"revisionDate"`
	ProjectDescription *string           `json:"projectDescription,omitempty"`
	ProjectStartDate   Nullable[string]  `json:"projectStartDate"`
	ProjectEndDate     Nullable[string]  `json:"projectEndDate"`
	ProjectCost        Nullable[float64] `json:"projectCost"`

	OverviewMapFileName    Nullable[string]  `json:"overviewMapFileName"`
	OverviewMapFileContent Nullable[string]  `json:"overviewMapFileContent"`
	OverviewMapWidth       Nullable[float64] `json:"overviewMapWidth"`
	OverviewMapHeight      Nullable[float64] `json:"overviewMapHeight"`

	ProjectType                              *string        `json:"projectType,omitempty"`
	TownCity                                 *string        `json:"townCity,omitempty"`
	IsEJCommunity                            Nullable[bool] `json:"isEJCommunity"`
	EJInformation                            *string        `json:"ejInformation,omitempty"`
	EJSummary                                *string        `json:"ejSummary,omitempty"`
	EliminatesRegulatorStation               Nullable[bool] `json:"eliminatesRegulatorStation"`
	ContributesToRegulatorStationElimination Nullable[bool] `json:"contributesToRegulatorStationElimination"`
	RegulatorStationComments                 *string        `json:"regulatorStationComments,omitempty"`
}

// Apply copies every present member of the patch onto p.
func (pp ProjectPatch) Apply(p *Project) {
	pp.ProjectNumber.applyTo(&p.ProjectNumber)
	setIf(pp.ProjectName, &p.ProjectName)
	setIf(pp.RevisionNumber, &p.RevisionNumber)
	pp.RevisionDate.applyTo(&p.RevisionDate)
	setIf(pp.ProjectDescription, &p.ProjectDescription)
	pp.ProjectStartDate.applyTo(&p.ProjectStartDate)
	pp.ProjectEndDate.applyTo(&p.ProjectEndDate)
	pp.ProjectCost.applyTo(&p.ProjectCost)
	pp.OverviewMapFileName.applyTo(&p.OverviewMapFileName)
	pp.OverviewMapFileContent.applyTo(&p.OverviewMapFileContent)
	pp.OverviewMapWidth.applyTo(&p.OverviewMapWidth)
	pp.OverviewMapHeight.applyTo(&p.OverviewMapHeight)
	setIf(pp.ProjectType, &p.ProjectType)
	setIf(pp.TownCity, &p.TownCity)
	pp.IsEJCommunity.applyTo(&p.IsEJCommunity)
	setIf(pp.EJInformation, &p.EJInformation)
	setIf(pp.EJSummary, &p.EJSummary)
	pp.EliminatesRegulatorStation.applyTo(&p.EliminatesRegulatorStation)
	pp.ContributesToRegulatorStationElimination.applyTo(&p.ContributesToRegulatorStationElimination)
	setIf(pp.RegulatorStationComments, &p.RegulatorStationComments)
}

// DataVarsPatch edits the heating-degree-day assumptions of a project.
type DataVarsPatch struct {
	AnnualHDD      *float64 `json:"annualHDD,omitempty"`
	AnnualHDDBasis *string  `json:"annualHDDBasis,omitempty"`
}

func (dp DataVarsPatch) Apply(p *Project) {
	setIf(dp.AnnualHDD, &p.AnnualHDD)
	setIf(dp.AnnualHDDBasis, &p.AnnualHDDBasis)
}

// Clone returns a deep copy of the project tree.
func (p *Project) Clone() *Project {
	c := *p
	c.ProjectNumber = cloneFloat(p.ProjectNumber)
	c.RevisionDate = cloneString(p.RevisionDate)
	c.ProjectStartDate = cloneString(p.ProjectStartDate)
	c.ProjectEndDate = cloneString(p.ProjectEndDate)
	c.ProjectCost = cloneFloat(p.ProjectCost)
	c.OverviewMapFileName = cloneString(p.OverviewMapFileName)
	c.OverviewMapFileContent = cloneString(p.OverviewMapFileContent)
	c.OverviewMapWidth = cloneFloat(p.OverviewMapWidth)
	c.OverviewMapHeight = cloneFloat(p.OverviewMapHeight)
	c.IsEJCommunity = cloneBool(p.IsEJCommunity)
	c.EliminatesRegulatorStation = cloneBool(p.EliminatesRegulatorStation)
	c.ContributesToRegulatorStationElimination = cloneBool(p.ContributesToRegulatorStationElimination)
	c.TotalAbandonedLength = cloneFloat(p.TotalAbandonedLength)
	c.TotalReplacedLength = cloneFloat(p.TotalReplacedLength)
	c.TotalAnnualUsage = cloneFloat(p.TotalAnnualUsage)
	c.Streets = make([]*Street, len(p.Streets))
	for i, st := range p.Streets {
		c.Streets[i] = st.Clone()
	}
	return &c
}

// CloneProjects deep-copies a project list.
func CloneProjects(in []*Project) []*Project {
	out := make([]*Project, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
