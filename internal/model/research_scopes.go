package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// ResearchScopesDescription is the record-level description of the checklist.
const ResearchScopesDescription = "Detailed research scopes filled by the agent. " +
	"Each sub-model can be populated via RAG, web-search, or direct user input."

const aggregateName = "ResearchScopes"

// ResearchScopes is the ESG research checklist: one record per research
// scope. The sub-records are values, so they are always present; the zero
// value is the empty checklist.
type ResearchScopes struct {
	Regulation           RegulationResearch           `json:"regulation" yaml:"regulation"`
	SocietalExpectations SocietalExpectationsResearch `json:"societal_expectations" yaml:"societal_expectations"`
	StakeholderPressure  StakeholderPressureAnalysis  `json:"stakeholder_pressure" yaml:"stakeholder_pressure"`
	IndustryForces       IndustryForcesAnalysis       `json:"industry_forces" yaml:"industry_forces"`
}

// NewResearchScopes returns an empty checklist with all four scopes present
// and every attribute absent.
func NewResearchScopes() ResearchScopes {
	return ResearchScopes{
		Regulation:           RegulationResearch{},
		SocietalExpectations: SocietalExpectationsResearch{},
		StakeholderPressure:  StakeholderPressureAnalysis{},
		IndustryForces:       IndustryForcesAnalysis{},
	}
}

// ResearchScopesFromDocument builds a checklist from a nested partial
// document. Missing or null scopes default to empty records.
func ResearchScopesFromDocument(doc Document) (ResearchScopes, error) {
	s := NewResearchScopes()
	for _, key := range slices.Sorted(maps.Keys(doc)) {
		if _, ok := scopeDescriptions[Scope(key)]; !ok {
			return ResearchScopes{}, &ValidationError{Record: aggregateName, Key: key, Err: ErrUnknownField}
		}
		raw := doc[key]
		if raw == nil {
			continue
		}
		sub, ok := asDocument(raw)
		if !ok {
			return ResearchScopes{}, &ValidationError{
				Record: aggregateName,
				Key:    key,
				Err:    ErrInvalidType,
				Detail: fmt.Sprintf("expected an object or null, got %T", raw),
			}
		}
		rec, _ := s.Record(Scope(key))
		if err := rec.Apply(sub); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return ResearchScopes{}, ve.withPrefix(aggregateName, key)
			}
			return ResearchScopes{}, err
		}
	}
	return s, nil
}

func asDocument(v any) (Document, bool) {
	switch t := v.(type) {
	case Document:
		return t, true
	case map[string]any:
		return Document(t), true
	default:
		return nil, false
	}
}

// Record returns the sub-record for scope. The returned Record points into s.
func (s *ResearchScopes) Record(scope Scope) (Record, error) {
	switch scope {
	case ScopeRegulation:
		return &s.Regulation, nil
	case ScopeSocietalExpectations:
		return &s.SocietalExpectations, nil
	case ScopeStakeholderPressure:
		return &s.StakeholderPressure, nil
	case ScopeIndustryForces:
		return &s.IndustryForces, nil
	}
	return nil, &ValidationError{Record: aggregateName, Key: string(scope), Err: ErrUnknownField}
}

// Put replaces the sub-record of rec's scope with a copy of rec.
func (s *ResearchScopes) Put(rec Record) error {
	switch r := rec.(type) {
	case *RegulationResearch:
		s.Regulation = regulationSchema.clone(r)
	case *SocietalExpectationsResearch:
		s.SocietalExpectations = societalSchema.clone(r)
	case *StakeholderPressureAnalysis:
		s.StakeholderPressure = stakeholderSchema.clone(r)
	case *IndustryForcesAnalysis:
		s.IndustryForces = industrySchema.clone(r)
	default:
		return eris.Errorf("model: cannot put record of type %T", rec)
	}
	return nil
}

// Records returns every sub-record in checklist order.
func (s *ResearchScopes) Records() []Record {
	return []Record{&s.Regulation, &s.SocietalExpectations, &s.StakeholderPressure, &s.IndustryForces}
}

func splitPath(path string) (Scope, string, error) {
	scope, key, ok := strings.Cut(path, ".")
	if !ok || scope == "" || key == "" {
		return "", "", eris.Errorf("model: field path %q must look like scope.key", path)
	}
	return Scope(scope), key, nil
}

func (s *ResearchScopes) resolve(path string) (Record, string, error) {
	scope, key, err := splitPath(path)
	if err != nil {
		return nil, "", err
	}
	rec, err := s.Record(scope)
	if err != nil {
		return nil, "", err
	}
	return rec, key, nil
}

// Get reads an attribute by dotted path, e.g. "regulation.frameworks".
func (s *ResearchScopes) Get(path string) (*string, error) {
	rec, key, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	v, err := rec.Get(key)
	return v, prefixed(err, rec.Scope())
}

// Set writes an attribute by dotted path. A nil value marks it absent.
func (s *ResearchScopes) Set(path string, value *string) error {
	rec, key, err := s.resolve(path)
	if err != nil {
		return err
	}
	return prefixed(rec.Set(key, value), rec.Scope())
}

func prefixed(err error, scope Scope) error {
	var ve *ValidationError
	if err != nil && errors.As(err, &ve) {
		return ve.withPrefix(aggregateName, string(scope))
	}
	return err
}

// Document renders the checklist as a nested document with explicit nils
// for absent attributes.
func (s *ResearchScopes) Document() Document {
	doc := make(Document, len(Scopes))
	for _, rec := range s.Records() {
		doc[string(rec.Scope())] = rec.Document()
	}
	return doc
}

// Clone returns a deep copy sharing no text values with s.
func (s *ResearchScopes) Clone() ResearchScopes {
	return ResearchScopes{
		Regulation:           regulationSchema.clone(&s.Regulation),
		SocietalExpectations: societalSchema.clone(&s.SocietalExpectations),
		StakeholderPressure:  stakeholderSchema.clone(&s.StakeholderPressure),
		IndustryForces:       industrySchema.clone(&s.IndustryForces),
	}
}

// Merge copies every present attribute of other onto s. Absent attributes
// in other never clear values in s.
func (s *ResearchScopes) Merge(other ResearchScopes) {
	regulationSchema.merge(&s.Regulation, &other.Regulation)
	societalSchema.merge(&s.SocietalExpectations, &other.SocietalExpectations)
	stakeholderSchema.merge(&s.StakeholderPressure, &other.StakeholderPressure)
	industrySchema.merge(&s.IndustryForces, &other.IndustryForces)
}

// UnmarshalJSON decodes a nested document, rejecting unknown keys and
// non-text values. Keys missing from the input read as absent.
func (s *ResearchScopes) UnmarshalJSON(b []byte) error {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return eris.Wrap(err, "model: decode research scopes")
	}
	parsed, err := ResearchScopesFromDocument(doc)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
