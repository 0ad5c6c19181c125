package validate

import "fmt"

// Apply runs every registry rule matching the scope against body and
// returns the transformed body. Rules see the output of earlier rules.
// A path that does not resolve skips its rule; a transform error or a
// rule path pointing into a non-container aborts the run and the error
// propagates to the caller with no partial result.
func Apply(reg *Registry, scope Scope, body any) (any, error) {
	for _, rule := range reg.RulesFor(scope) {
		value, ok := Resolve(body, rule.Path)
		if !ok {
			continue
		}
		transformed, err := rule.Transform(value)
		if err != nil {
			return nil, fmt.Errorf("validator at %s for %s: %w", rule.Path, scope, err)
		}
		if len(rule.Path) == 0 {
			body = transformed
			continue
		}
		if err := setAt(body, rule.Path, transformed); err != nil {
			return nil, err
		}
	}
	return body, nil
}
