package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/esg-research/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRouter() http.Handler {
	return NewRouter(New("Acme Apparel"), []string{"*"})
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	rr := do(t, newTestRouter(), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "ok", decodeBody(t, rr)["status"])
}

func TestRouter_Fields(t *testing.T) {
	t.Parallel()
	h := newTestRouter()

	rr := do(t, h, http.MethodGet, "/v1/fields", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all struct {
		Fields []model.FieldSpec `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Len(t, all.Fields, model.Fields().Len())

	rr = do(t, h, http.MethodGet, "/v1/fields?scope=industry_forces", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var one struct {
		Fields []model.FieldSpec `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &one))
	assert.Equal(t, model.Fields().ByScope(model.ScopeIndustryForces), one.Fields)

	rr = do(t, h, http.MethodGet, "/v1/fields?scope=governance", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "governance", decodeBody(t, rr)["key"])
}

func TestRouter_Schema(t *testing.T) {
	t.Parallel()

	rr := do(t, newTestRouter(), http.MethodGet, "/v1/schema", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/schema+json", rr.Header().Get("Content-Type"))

	body := decodeBody(t, rr)
	assert.Equal(t, model.ResearchScopesDescription, body["description"])
	props := body["properties"].(map[string]any)
	assert.Len(t, props, 4)
}

func TestRouter_Template(t *testing.T) {
	t.Parallel()
	h := newTestRouter()

	rr := do(t, h, http.MethodGet, "/v1/checklist", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	require.Len(t, body, 4)
	reg := body["regulation"].(map[string]any)
	assert.Contains(t, reg, "frameworks")
	assert.Nil(t, reg["frameworks"])

	rr = do(t, h, http.MethodGet, "/v1/checklist?format=yaml", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/yaml", rr.Header().Get("Content-Type"))
	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Contains(t, doc["industry_forces"], "opportunity")
	assert.Nil(t, doc["industry_forces"]["opportunity"])

	rr = do(t, h, http.MethodGet, "/v1/checklist?format=xml", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_Validate(t *testing.T) {
	t.Parallel()
	h := newTestRouter()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantKey     string
		wantError   string
	}{
		{
			name:        "partial json checklist",
			contentType: "application/json",
			body:        `{"regulation":{"frameworks":"GRI, SDG","regional_policies":null}}`,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "partial yaml checklist",
			contentType: "application/yaml",
			body:        "stakeholder_pressure:\n  investor_expectations: ESG-linked shareholder resolutions filed in 2023\n",
			wantStatus:  http.StatusOK,
		},
		{
			name:       "empty body",
			wantStatus: http.StatusOK,
		},
		{
			name:        "unknown attribute",
			contentType: "application/json",
			body:        `{"regulation":{"bogus":"x"}}`,
			wantStatus:  http.StatusUnprocessableEntity,
			wantKey:     "regulation.bogus",
			wantError:   "unknown field",
		},
		{
			name:        "unknown scope",
			contentType: "application/json",
			body:        `{"governance":{}}`,
			wantStatus:  http.StatusUnprocessableEntity,
			wantKey:     "governance",
			wantError:   "unknown field",
		},
		{
			name:        "non-text value",
			contentType: "application/json",
			body:        `{"industry_forces":{"opportunity":42}}`,
			wantStatus:  http.StatusUnprocessableEntity,
			wantKey:     "industry_forces.opportunity",
			wantError:   "invalid type",
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{"regulation":`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "invalid request body",
		},
		{
			name:        "second json value",
			contentType: "application/json",
			body:        `{"regulation":{}} {"bogus":1}`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "invalid request body",
		},
		{
			name:        "second yaml document",
			contentType: "application/yaml",
			body:        "regulation: {}\n---\nbogus: 1\n",
			wantStatus:  http.StatusBadRequest,
			wantError:   "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rr := do(t, h, http.MethodPost, "/v1/checklist/validate", tt.contentType, tt.body)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			body := decodeBody(t, rr)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, tt.wantError, body["error"])
				if tt.wantKey != "" {
					assert.Equal(t, tt.wantKey, body["key"])
				}
				return
			}
			checklist := body["checklist"].(map[string]any)
			assert.Len(t, checklist, 4)
			assert.Len(t, body["progress"], 4)
			assert.Equal(t, false, body["complete"])
		})
	}
}

func TestRouter_ValidateNormalizes(t *testing.T) {
	t.Parallel()

	rr := do(t, newTestRouter(), http.MethodPost, "/v1/checklist/validate", "application/json",
		`{"regulation":{"frameworks":"GRI, SDG"}}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Checklist model.ResearchScopes `json:"checklist"`
		Progress  []model.ScopeProgress `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Checklist.Regulation.Frameworks)
	assert.Equal(t, "GRI, SDG", *resp.Checklist.Regulation.Frameworks)
	assert.Nil(t, resp.Checklist.Regulation.RegionalPolicies)
	assert.Equal(t, model.ScopeProgress{Scope: model.ScopeRegulation, Filled: 1, Total: 4}, resp.Progress[0])
}

func TestRouter_Merge(t *testing.T) {
	t.Parallel()
	h := newTestRouter()

	payload := map[string]any{
		"base": map[string]any{
			"regulation":      map[string]any{"frameworks": "GRI", "regional_policies": "EU CSRD"},
			"industry_forces": map[string]any{"opportunity": "Refurbished line"},
		},
		"patch": map[string]any{
			"regulation": map[string]any{"frameworks": "GRI, SASB", "regional_policies": nil},
		},
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)

	rr := do(t, h, http.MethodPost, "/v1/checklist/merge", "application/json", string(b))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Checklist model.ResearchScopes `json:"checklist"`
	}
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&resp))
	assert.Equal(t, "GRI, SASB", *resp.Checklist.Regulation.Frameworks)
	assert.Equal(t, "EU CSRD", *resp.Checklist.Regulation.RegionalPolicies, "null in patch keeps base")
	assert.Equal(t, "Refurbished line", *resp.Checklist.IndustryForces.Opportunity)

	rr = do(t, h, http.MethodPost, "/v1/checklist/merge", "application/json",
		`{"base":{},"patch":{"regulation":{"frameworks":1}}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "regulation.frameworks", decodeBody(t, rr)["key"])

	rr = do(t, h, http.MethodPost, "/v1/checklist/merge", "application/json", `[]`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/v1/checklist/merge", "application/json",
		`{"base":{},"patch":{}} {"patch":{"bogus":{}}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_Prompt(t *testing.T) {
	t.Parallel()
	h := newTestRouter()

	rr := do(t, h, http.MethodPost, "/v1/prompt/regulation", "application/json",
		`{"checklist":{"regulation":{"frameworks":"GRI"}}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	assert.Equal(t, "regulation", body["scope"])
	assert.NotEmpty(t, body["system"])
	prompt := body["prompt"].(string)
	assert.Contains(t, prompt, "Company: Acme Apparel", "falls back to the configured company")
	assert.Contains(t, prompt, "frameworks: GRI")

	rr = do(t, h, http.MethodPost, "/v1/prompt/industry_forces", "application/json", `{"company":"Globex"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["prompt"], "Company: Globex")

	rr = do(t, h, http.MethodPost, "/v1/prompt/societal_expectations", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodPost, "/v1/prompt/governance", "application/json", `{}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodPost, "/v1/prompt/regulation", "application/json", `{"checklist":{"regulation":"GRI"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(t, h, http.MethodPost, "/v1/prompt/regulation", "application/json", `{"company":"Globex"} trailing`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()

	h := NewRouter(New(""), []string{"https://reports.example.com"})
	req := httptest.NewRequest(http.MethodOptions, "/v1/checklist/validate", nil)
	req.Header.Set("Origin", "https://reports.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "https://reports.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rr := do(t, newTestRouter(), http.MethodGet, "/v1/checklist/validate", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
