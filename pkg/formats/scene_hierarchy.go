package formats

import "fmt"

// resolveParents links every pending reference by first-match name lookup.
// It runs once, after all objects exist. The first unknown name aborts.
func resolveParents(objects []SceneObject, pending []pendingParent) error {
	index := make(map[string]int, len(objects))
	for i := range objects {
		if _, dup := index[objects[i].Name]; !dup {
			index[objects[i].Name] = i
		}
	}

	for _, ref := range pending {
		parent, ok := index[ref.name]
		if !ok {
			return &ParseError{
				Kind: ErrUnresolvedParent,
				Line: ref.line,
				Text: "parent " + ref.name,
				Err:  fmt.Errorf("object %q: no object named %q", objects[ref.child].Name, ref.name),
			}
		}
		objects[ref.child].Parent = parent
		objects[parent].Children = append(objects[parent].Children, ref.child)
	}
	return nil
}
