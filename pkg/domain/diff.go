package domain

import "slices"

// Diff returns the fields whose values differ between oldData and newData,
// in declaration order. It returns nil when nothing changed.
func Diff(oldData, newData AnswerData) []Field {
	var changed []Field
	for _, f := range Fields {
		if f.IsList() {
			a, _ := oldData.List(f)
			b, _ := newData.List(f)
			if !slices.Equal(a, b) {
				changed = append(changed, f)
			}
			continue
		}
		a, _ := oldData.Text(f)
		b, _ := newData.Text(f)
		if a != b {
			changed = append(changed, f)
		}
	}
	return changed
}

// Touches reports whether any of the changed fields is in targets.
func Touches(changed []Field, targets []Field) bool {
	for _, f := range changed {
		if slices.Contains(targets, f) {
			return true
		}
	}
	return false
}
