package domain

// FilterByCategories оставляет места, чьи категории пересекаются с заданным множеством.
// Порядок сохраняется, исходный срез не изменяется.
func FilterByCategories(places []Place, categories CategorySet) []Place {
	result := make([]Place, 0, len(places))
	for _, p := range places {
		if p.Summary().Categories.Intersects(categories) {
			result = append(result, p)
		}
	}
	return result
}
