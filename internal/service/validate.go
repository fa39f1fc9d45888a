package service

import "strings"

// field is a named value checked for presence.
type field struct {
	name  string
	value string
}

// requirePresent fails with ErrValidation naming every blank field.
func requirePresent(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return newError(ErrValidation, "Missing required fields: "+strings.Join(missing, ", "))
}
