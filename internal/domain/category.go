package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Category - категория заведения
type Category string

const (
	CategoryCafe           Category = "cafe"
	CategoryLibrary        Category = "library"
	CategoryCoworkingSpace Category = "coworking_space"
	CategoryOther          Category = "other"
)

// ValidCategories returns list of valid categories
func ValidCategories() []Category {
	return []Category{
		CategoryCafe,
		CategoryLibrary,
		CategoryCoworkingSpace,
		CategoryOther,
	}
}

// FetchableCategories - категории, которые можно запросить у провайдера.
// other не имеет собственного тега и появляется только при нормализации.
func FetchableCategories() CategorySet {
	return NewCategorySet(CategoryCafe, CategoryLibrary, CategoryCoworkingSpace)
}

func (c Category) Valid() bool {
	for _, v := range ValidCategories() {
		if v == c {
			return true
		}
	}
	return false
}

// Label возвращает человекочитаемое название категории
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// ParseCategories разбирает список категорий, включая форму "cafe,library"
func ParseCategories(values ...string) (CategorySet, error) {
	var cats []Category
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(strings.ToLower(part))
			if part == "" {
				continue
			}
			c := Category(part)
			if !c.Valid() {
				return nil, fmt.Errorf("unknown category %q", part)
			}
			cats = append(cats, c)
		}
	}
	return NewCategorySet(cats...), nil
}

// CategorySet - отсортированное множество категорий без повторов.
// Два множества с одинаковыми элементами всегда равны поэлементно.
type CategorySet []Category

func NewCategorySet(cats ...Category) CategorySet {
	seen := make(map[Category]struct{}, len(cats))
	set := make(CategorySet, 0, len(cats))
	for _, c := range cats {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		set = append(set, c)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}

func (s CategorySet) Contains(c Category) bool {
	for _, v := range s {
		if v == c {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share at least one category.
func (s CategorySet) Intersects(other CategorySet) bool {
	for _, c := range other {
		if s.Contains(c) {
			return true
		}
	}
	return false
}

func (s CategorySet) Union(other CategorySet) CategorySet {
	all := make([]Category, 0, len(s)+len(other))
	all = append(all, s...)
	all = append(all, other...)
	return NewCategorySet(all...)
}

// Without возвращает множество без указанной категории
func (s CategorySet) Without(c Category) CategorySet {
	out := make(CategorySet, 0, len(s))
	for _, v := range s {
		if v != c {
			out = append(out, v)
		}
	}
	return out
}

func (s CategorySet) Equal(other CategorySet) bool {
	a, b := NewCategorySet(s...), NewCategorySet(other...)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s CategorySet) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = string(c)
	}
	return out
}

func (s CategorySet) String() string {
	return strings.Join(NewCategorySet(s...).Strings(), ",")
}
