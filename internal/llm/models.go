package llm

import "strings"

// ModelRef labels one model identifier for the comparison mode.
type ModelRef struct {
	Name  string
	Model string
}

// ParseModelSet parses a comma-separated list of name=model pairs, e.g.
// "flash=gemini-2.0-flash-001,pro=gemini-2.0-pro-exp-02-05". Entries
// without a name use the model identifier as the label. Order is kept.
func ParseModelSet(raw string) []ModelRef {
	var refs []ModelRef
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, model, found := strings.Cut(part, "=")
		if !found {
			refs = append(refs, ModelRef{Name: part, Model: part})
			continue
		}
		name = strings.TrimSpace(name)
		model = strings.TrimSpace(model)
		if model == "" {
			continue
		}
		if name == "" {
			name = model
		}
		refs = append(refs, ModelRef{Name: name, Model: model})
	}
	return refs
}
