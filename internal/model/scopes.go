package model

import "github.com/rotisserie/eris"

// Scope names one research dimension of the ESG checklist.
type Scope string

// Research scopes in checklist order.
const (
	ScopeRegulation           Scope = "regulation"
	ScopeSocietalExpectations Scope = "societal_expectations"
	ScopeStakeholderPressure  Scope = "stakeholder_pressure"
	ScopeIndustryForces       Scope = "industry_forces"
)

// Scopes lists every research scope in checklist order.
var Scopes = []Scope{
	ScopeRegulation,
	ScopeSocietalExpectations,
	ScopeStakeholderPressure,
	ScopeIndustryForces,
}

var scopeDescriptions = map[Scope]string{
	ScopeRegulation:           "Regulatory landscape impacting ESG performance.",
	ScopeSocietalExpectations: "Societal trends and public opinion on sustainability issues.",
	ScopeStakeholderPressure:  "ESG-related expectations & influence across stakeholder groups.",
	ScopeIndustryForces:       "Strategic industry environment viewed through an ESG lens.",
}

// ParseScope validates a scope name.
func ParseScope(s string) (Scope, error) {
	scope := Scope(s)
	if _, ok := scopeDescriptions[scope]; !ok {
		return "", eris.Errorf("model: unknown research scope %q", s)
	}
	return scope, nil
}

// Description returns the record-level description of the scope.
func (s Scope) Description() string {
	return scopeDescriptions[s]
}

// ---------------------------------------------------------------------------
// Regulation
// ---------------------------------------------------------------------------

// RegulationResearch records the regulatory landscape impacting ESG
// performance. The zero value has every attribute absent.
type RegulationResearch struct {
	Frameworks           *string `json:"frameworks" yaml:"frameworks"`
	RegionalPolicies     *string `json:"regional_policies" yaml:"regional_policies"`
	SectoralRegulations  *string `json:"sectoral_regulations" yaml:"sectoral_regulations"`
	ComplianceBenchmarks *string `json:"compliance_benchmarks" yaml:"compliance_benchmarks"`
}

var regulationSchema = newRecordSchema("RegulationResearch", ScopeRegulation,
	attr("frameworks", func(r *RegulationResearch) **string { return &r.Frameworks },
		"Relevant sustainability disclosure frameworks (e.g. SDG, GRI)."),
	attr("regional_policies", func(r *RegulationResearch) **string { return &r.RegionalPolicies },
		"ESG-related laws and policies by country or region."),
	attr("sectoral_regulations", func(r *RegulationResearch) **string { return &r.SectoralRegulations },
		"Industry-specific regulations (emissions caps, green-finance rules, etc.)."),
	attr("compliance_benchmarks", func(r *RegulationResearch) **string { return &r.ComplianceBenchmarks },
		"How prepared the company is vs. peers or legal standards. Give at least 1"),
)

// NewRegulationResearch builds a record from a partial document.
func NewRegulationResearch(doc Document) (RegulationResearch, error) {
	return regulationSchema.construct(doc)
}

func (r *RegulationResearch) Scope() Scope {
	return ScopeRegulation
}

func (r *RegulationResearch) Fields() []FieldSpec {
	return regulationSchema.specs()
}

func (r *RegulationResearch) Describe(key string) (string, error) {
	return regulationSchema.describe(key)
}

func (r *RegulationResearch) Get(key string) (*string, error) {
	return regulationSchema.get(r, key)
}

func (r *RegulationResearch) Set(key string, v *string) error {
	return regulationSchema.set(r, key, v)
}

func (r *RegulationResearch) Apply(doc Document) error {
	return regulationSchema.apply(r, doc)
}

func (r *RegulationResearch) Document() Document {
	return regulationSchema.document(r)
}

func (r *RegulationResearch) UnmarshalJSON(b []byte) error {
	return regulationSchema.unmarshalJSON(r, b)
}

// ---------------------------------------------------------------------------
// Societal expectations
// ---------------------------------------------------------------------------

// SocietalExpectationsResearch records societal trends and public opinion on
// sustainability issues.
type SocietalExpectationsResearch struct {
	NGOCampaigns       *string `json:"ngo_campaigns" yaml:"ngo_campaigns"`
	CivilSocietyIssues *string `json:"civil_society_issues" yaml:"civil_society_issues"`
	CulturalNormsShift *string `json:"cultural_norms_shift" yaml:"cultural_norms_shift"`
}

var societalSchema = newRecordSchema("SocietalExpectationsResearch", ScopeSocietalExpectations,
	attr("ngo_campaigns", func(r *SocietalExpectationsResearch) **string { return &r.NGOCampaigns },
		"NGO-led movements or pressure campaigns relevant to the company or industry. Give credit to what the company done"),
	attr("civil_society_issues", func(r *SocietalExpectationsResearch) **string { return &r.CivilSocietyIssues },
		"Rising civil-society concerns (human rights, plastic pollution, climate migration, etc.)."),
	attr("cultural_norms_shift", func(r *SocietalExpectationsResearch) **string { return &r.CulturalNormsShift },
		"Emerging or accelerating value shifts (zero-waste, decolonisation in business, etc.)."),
)

// NewSocietalExpectationsResearch builds a record from a partial document.
func NewSocietalExpectationsResearch(doc Document) (SocietalExpectationsResearch, error) {
	return societalSchema.construct(doc)
}

func (r *SocietalExpectationsResearch) Scope() Scope {
	return ScopeSocietalExpectations
}

func (r *SocietalExpectationsResearch) Fields() []FieldSpec {
	return societalSchema.specs()
}

func (r *SocietalExpectationsResearch) Describe(key string) (string, error) {
	return societalSchema.describe(key)
}

func (r *SocietalExpectationsResearch) Get(key string) (*string, error) {
	return societalSchema.get(r, key)
}

func (r *SocietalExpectationsResearch) Set(key string, v *string) error {
	return societalSchema.set(r, key, v)
}

func (r *SocietalExpectationsResearch) Apply(doc Document) error {
	return societalSchema.apply(r, doc)
}

func (r *SocietalExpectationsResearch) Document() Document {
	return societalSchema.document(r)
}

func (r *SocietalExpectationsResearch) UnmarshalJSON(b []byte) error {
	return societalSchema.unmarshalJSON(r, b)
}

// ---------------------------------------------------------------------------
// Stakeholder pressure
// ---------------------------------------------------------------------------

// StakeholderPressureAnalysis records ESG-related expectations and influence
// across stakeholder groups.
type StakeholderPressureAnalysis struct {
	ClientDemands        *string `json:"client_demands" yaml:"client_demands"`
	CompetitorSignals    *string `json:"competitor_signals" yaml:"competitor_signals"`
	GovernmentInfluence  *string `json:"government_influence" yaml:"government_influence"`
	InvestorExpectations *string `json:"investor_expectations" yaml:"investor_expectations"`
	IndustryGroupAgendas *string `json:"industry_group_agendas" yaml:"industry_group_agendas"`
}

var stakeholderSchema = newRecordSchema("StakeholderPressureAnalysis", ScopeStakeholderPressure,
	attr("client_demands", func(r *StakeholderPressureAnalysis) **string { return &r.ClientDemands },
		"ESG requirements embedded in customer contracts, procurement, or product standards."),
	attr("competitor_signals", func(r *StakeholderPressureAnalysis) **string { return &r.CompetitorSignals },
		"ESG disclosures, ratings, or practices from peers."),
	attr("government_influence", func(r *StakeholderPressureAnalysis) **string { return &r.GovernmentInfluence },
		"Pressure via regulation, lobbying, or public-private initiatives."),
	attr("investor_expectations", func(r *StakeholderPressureAnalysis) **string { return &r.InvestorExpectations },
		"ESG criteria used by investors or shareholder resolutions."),
	attr("industry_group_agendas", func(r *StakeholderPressureAnalysis) **string { return &r.IndustryGroupAgendas },
		"Sector-wide pledges, lobbying, or collaboration on ESG. okay if none"),
)

// NewStakeholderPressureAnalysis builds a record from a partial document.
func NewStakeholderPressureAnalysis(doc Document) (StakeholderPressureAnalysis, error) {
	return stakeholderSchema.construct(doc)
}

func (r *StakeholderPressureAnalysis) Scope() Scope {
	return ScopeStakeholderPressure
}

func (r *StakeholderPressureAnalysis) Fields() []FieldSpec {
	return stakeholderSchema.specs()
}

func (r *StakeholderPressureAnalysis) Describe(key string) (string, error) {
	return stakeholderSchema.describe(key)
}

func (r *StakeholderPressureAnalysis) Get(key string) (*string, error) {
	return stakeholderSchema.get(r, key)
}

func (r *StakeholderPressureAnalysis) Set(key string, v *string) error {
	return stakeholderSchema.set(r, key, v)
}

func (r *StakeholderPressureAnalysis) Apply(doc Document) error {
	return stakeholderSchema.apply(r, doc)
}

func (r *StakeholderPressureAnalysis) Document() Document {
	return stakeholderSchema.document(r)
}

func (r *StakeholderPressureAnalysis) UnmarshalJSON(b []byte) error {
	return stakeholderSchema.unmarshalJSON(r, b)
}

// ---------------------------------------------------------------------------
// Industry forces
// ---------------------------------------------------------------------------

// IndustryForcesAnalysis records the strategic industry environment viewed
// through an ESG lens.
type IndustryForcesAnalysis struct {
	CompetitiveDifferentiation *string `json:"competitive_differentiation" yaml:"competitive_differentiation"`
	SupplyChainRisk            *string `json:"supply_chain_risk" yaml:"supply_chain_risk"`
	RegulatoryBarriers         *string `json:"regulatory_barriers" yaml:"regulatory_barriers"`
	SubstitutionRisk           *string `json:"substitution_risk" yaml:"substitution_risk"`
	Opportunity                *string `json:"opportunity" yaml:"opportunity"`
}

var industrySchema = newRecordSchema("IndustryForcesAnalysis", ScopeIndustryForces,
	attr("competitive_differentiation", func(r *IndustryForcesAnalysis) **string { return &r.CompetitiveDifferentiation },
		"How ESG can be used as a product or brand advantage."),
	attr("supply_chain_risk", func(r *IndustryForcesAnalysis) **string { return &r.SupplyChainRisk },
		"ESG-related disruption risk in the supply chain."),
	attr("regulatory_barriers", func(r *IndustryForcesAnalysis) **string { return &r.RegulatoryBarriers },
		"ESG rules acting as market-entry barriers or moats."),
	attr("substitution_risk", func(r *IndustryForcesAnalysis) **string { return &r.SubstitutionRisk },
		"Risk of customers switching to more sustainable alternatives."),
	attr("opportunity", func(r *IndustryForcesAnalysis) **string { return &r.Opportunity },
		"Potential for new revenue streams or business expansion due to adopting ESG practises."),
)

// NewIndustryForcesAnalysis builds a record from a partial document.
func NewIndustryForcesAnalysis(doc Document) (IndustryForcesAnalysis, error) {
	return industrySchema.construct(doc)
}

func (r *IndustryForcesAnalysis) Scope() Scope {
	return ScopeIndustryForces
}

func (r *IndustryForcesAnalysis) Fields() []FieldSpec {
	return industrySchema.specs()
}

func (r *IndustryForcesAnalysis) Describe(key string) (string, error) {
	return industrySchema.describe(key)
}

func (r *IndustryForcesAnalysis) Get(key string) (*string, error) {
	return industrySchema.get(r, key)
}

func (r *IndustryForcesAnalysis) Set(key string, v *string) error {
	return industrySchema.set(r, key, v)
}

func (r *IndustryForcesAnalysis) Apply(doc Document) error {
	return industrySchema.apply(r, doc)
}

func (r *IndustryForcesAnalysis) Document() Document {
	return industrySchema.document(r)
}

func (r *IndustryForcesAnalysis) UnmarshalJSON(b []byte) error {
	return industrySchema.unmarshalJSON(r, b)
}
