package tool

import "fmt"

// Arguments are the decoded arguments of one tool call.
type Arguments map[string]any

// String returns the named string argument. Absent and null arguments
// report ok == false.
func (a Arguments) String(name string) (value string, ok bool, err error) {
	raw, present := a[name]
	if !present || raw == nil {
		return "", false, nil
	}
	s, isString := raw.(string)
	if !isString {
		return "", false, &ArgumentError{Name: name, Reason: fmt.Sprintf("expected a string, got %T", raw)}
	}
	return s, true, nil
}

// RequireString is String for arguments that must be present and non-empty.
func (a Arguments) RequireString(name string) (string, error) {
	s, ok, err := a.String(name)
	if err != nil {
		return "", err
	}
	if !ok || s == "" {
		return "", &ArgumentError{Name: name, Reason: "is required"}
	}
	return s, nil
}

// Bool returns the named boolean argument, or nil when it is absent or null.
func (a Arguments) Bool(name string) (*bool, error) {
	raw, present := a[name]
	if !present || raw == nil {
		return nil, nil
	}
	b, isBool := raw.(bool)
	if !isBool {
		return nil, &ArgumentError{Name: name, Reason: fmt.Sprintf("expected a boolean, got %T", raw)}
	}
	return &b, nil
}
