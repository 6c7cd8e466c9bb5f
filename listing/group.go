package listing

const UnknownName = "Unknown"

type Group struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

// Groups preserves first-appearance order of names.
type Groups []Group

// GroupByOwnerKey groups records (already sorted oldest first) by name.
// Empty image URLs stay in their group; Render drops them.
func GroupByOwnerKey(records []Record) Groups {
	index := make(map[string]int)
	groups := make(Groups, 0)

	for _, rec := range records {
		name := rec.Name
		if name == "" {
			name = UnknownName
		}

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name, Images: []string{}})
		}
		groups[i].Images = append(groups[i].Images, rec.ImageURL)
	}

	return groups
}

func (g Groups) Names() []string {
	names := make([]string, len(g))
	for i, grp := range g {
		names[i] = grp.Name
	}
	return names
}

func (g Groups) Lookup(name string) ([]string, bool) {
	for _, grp := range g {
		if grp.Name == name {
			return grp.Images, true
		}
	}
	return nil, false
}

// Render returns the displayable form: every group keeps its place, image
// references that are empty are left out.
func (g Groups) Render() []Group {
	out := make([]Group, len(g))
	for i, grp := range g {
		images := make([]string, 0, len(grp.Images))
		for _, url := range grp.Images {
			if url != "" {
				images = append(images, url)
			}
		}
		out[i] = Group{Name: grp.Name, Images: images}
	}
	return out
}
