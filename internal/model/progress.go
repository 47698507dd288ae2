package model

// ScopeProgress counts filled attributes of one research scope.
type ScopeProgress struct {
	Scope  Scope `json:"scope"`
	Filled int   `json:"filled"`
	Total  int   `json:"total"`
}

// Complete reports whether every attribute of the scope is present.
func (p ScopeProgress) Complete() bool {
	return p.Filled == p.Total
}

// Missing returns the specs of every absent attribute, scope by scope.
func (s *ResearchScopes) Missing() []FieldSpec {
	var out []FieldSpec
	out = append(out, regulationSchema.missing(&s.Regulation)...)
	out = append(out, societalSchema.missing(&s.SocietalExpectations)...)
	out = append(out, stakeholderSchema.missing(&s.StakeholderPressure)...)
	out = append(out, industrySchema.missing(&s.IndustryForces)...)
	return out
}

// Progress returns per-scope fill counts in checklist order.
func (s *ResearchScopes) Progress() []ScopeProgress {
	missing := make(map[Scope]int, len(Scopes))
	for _, f := range s.Missing() {
		missing[f.Scope]++
	}
	out := make([]ScopeProgress, 0, len(Scopes))
	for _, scope := range Scopes {
		total := len(fieldRegistry.ByScope(scope))
		out = append(out, ScopeProgress{
			Scope:  scope,
			Filled: total - missing[scope],
			Total:  total,
		})
	}
	return out
}

// Complete reports whether every attribute of every scope is present.
func (s *ResearchScopes) Complete() bool {
	return len(s.Missing()) == 0
}
