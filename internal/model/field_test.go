package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResearchField(t *testing.T) {
	t.Parallel()

	t.Run("keeps description verbatim", func(t *testing.T) {
		t.Parallel()
		f := researchField("frameworks", "  Relevant frameworks (e.g. SDG, GRI). ")
		assert.Equal(t, "frameworks", f.Key)
		assert.Equal(t, "  Relevant frameworks (e.g. SDG, GRI). ", f.Description)
	})

	t.Run("panics without description", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { researchField("frameworks", "") })
		assert.Panics(t, func() { researchField("frameworks", "   ") })
	})

	t.Run("panics without key", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { researchField("", "desc") })
	})
}

func TestNewRecordSchemaRejectsDuplicates(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		newRecordSchema("RegulationResearch", ScopeRegulation,
			attr("frameworks", func(r *RegulationResearch) **string { return &r.Frameworks }, "a"),
			attr("frameworks", func(r *RegulationResearch) **string { return &r.RegionalPolicies }, "b"),
		)
	})
}

func TestFieldRegistry(t *testing.T) {
	t.Parallel()

	reg := Fields()

	t.Run("holds all seventeen fields", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 17, reg.Len())
		assert.Len(t, reg.Fields, 17)
	})

	t.Run("ByScope counts", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, reg.ByScope(ScopeRegulation), 4)
		assert.Len(t, reg.ByScope(ScopeSocietalExpectations), 3)
		assert.Len(t, reg.ByScope(ScopeStakeholderPressure), 5)
		assert.Len(t, reg.ByScope(ScopeIndustryForces), 5)
		assert.Empty(t, reg.ByScope("governance"))
	})

	t.Run("ByScope keeps declaration order", func(t *testing.T) {
		t.Parallel()
		var keys []string
		for _, f := range reg.ByScope(ScopeStakeholderPressure) {
			keys = append(keys, f.Key)
		}
		assert.Equal(t, []string{
			"client_demands",
			"competitor_signals",
			"government_influence",
			"investor_expectations",
			"industry_group_agendas",
		}, keys)
	})

	t.Run("ByKey returns spec with scope", func(t *testing.T) {
		t.Parallel()
		f := reg.ByKey("regulation.frameworks")
		require.NotNil(t, f)
		assert.Equal(t, ScopeRegulation, f.Scope)
		assert.Equal(t, "Relevant sustainability disclosure frameworks (e.g. SDG, GRI).", f.Description)
		assert.Equal(t, "regulation.frameworks", f.Path())
	})

	t.Run("ByKey returns nil for unknown path", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, reg.ByKey("regulation.nonexistent"))
		assert.Nil(t, reg.ByKey("frameworks"))
	})

	t.Run("every field has a description", func(t *testing.T) {
		t.Parallel()
		for _, f := range reg.Fields {
			assert.NotEmpty(t, f.Description, f.Path())
			assert.NotEmpty(t, f.Scope, f.Path())
		}
	})
}

func TestNewFieldRegistryEmpty(t *testing.T) {
	t.Parallel()
	reg := NewFieldRegistry(nil)
	assert.NotNil(t, reg)
	assert.Zero(t, reg.Len())
	assert.Nil(t, reg.ByKey("anything.else"))
	assert.Empty(t, reg.ByScope(ScopeRegulation))
}

func TestScopeMetadata(t *testing.T) {
	t.Parallel()

	for _, scope := range Scopes {
		assert.NotEmpty(t, scope.Description(), scope)
		parsed, err := ParseScope(string(scope))
		require.NoError(t, err)
		assert.Equal(t, scope, parsed)
	}

	_, err := ParseScope("governance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown research scope")
}
