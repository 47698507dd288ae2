package research

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/esg-research/internal/model"
)

// SystemText is the system prompt for scope research generations.
const SystemText = "You are an ESG research analyst filling in a structured research checklist about a company. " +
	"Return valid JSON with exactly the requested keys. Use null for anything you cannot support with evidence; never use an empty string for unknown."

// BuildPrompt renders the user prompt asking a generation process to fill
// one research scope. Fields already present in current are listed as
// context and the model is asked to keep them unless it has better evidence.
// current may be nil.
func BuildPrompt(company string, scope model.Scope, current model.Record) (string, error) {
	fields := model.Fields().ByScope(scope)
	if len(fields) == 0 {
		return "", eris.Errorf("research: unknown scope %q", scope)
	}

	var b strings.Builder
	if company != "" {
		fmt.Fprintf(&b, "Company: %s\n", company)
	}
	fmt.Fprintf(&b, "Research scope: %s\n", scope)
	b.WriteString(scope.Description() + "\n\n")

	b.WriteString("--- Fields ---\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "- %s: %s\n", f.Key, f.Description)
	}

	if filled := FormatFilled(current); filled != "" {
		b.WriteString("\n--- Already recorded (keep unless you find better evidence) ---\n")
		b.WriteString(filled)
	}

	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = fmt.Sprintf("%q", f.Key)
	}
	fmt.Fprintf(&b, "\nRespond with a single JSON object with keys %s. Each value is a string or null.", strings.Join(keys, ", "))
	return b.String(), nil
}

// FormatFilled lists the present attributes of rec, one per line. Returns ""
// when rec is nil or has nothing recorded.
func FormatFilled(rec model.Record) string {
	if rec == nil {
		return ""
	}
	var b strings.Builder
	for _, f := range rec.Fields() {
		v, err := rec.Get(f.Key)
		if err != nil || v == nil {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", f.Key, *v)
	}
	return b.String()
}
