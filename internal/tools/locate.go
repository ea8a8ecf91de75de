package tools

import (
	"github.com/deskautomate/engine/internal/locator"
	"github.com/deskautomate/engine/internal/selector"
	"github.com/deskautomate/engine/internal/workflow"
)

// buildLocator parses a step's selector/alternatives arguments (already
// substituted by the executor) into a locator.Locator bound to resolver.
// Named selectors registered on the run context (the workflow's top-level
// `selectors` map) are expanded before parsing.
func (d *Dispatcher) buildLocator(args map[string]any, rc *workflow.RunContext) (*locator.Locator, []string, error) {
	raw, err := requireString(args, "selector")
	if err != nil {
		return nil, nil, err
	}

	tried := []string{raw}

	primary := selector.Parse(resolveNamed(raw, rc))

	var fallbacks []*selector.Selector

	for _, alt := range argStringSlice(args, "alternatives") {
		tried = append(tried, alt)
		fallbacks = append(fallbacks, selector.Parse(resolveNamed(alt, rc)))
	}

	return locator.New(d.resolver, primary, fallbacks, nil), tried, nil
}

func resolveNamed(raw string, rc *workflow.RunContext) string {
	if rc == nil || rc.Selectors == nil {
		return raw
	}

	if expanded, ok := rc.Selectors[raw]; ok {
		return expanded
	}

	return raw
}
