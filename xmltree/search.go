package xmltree

// SearchFunc traverses the Element tree in depth-first order,
// starting with root's children, and returns a slice of Elements
// for which the function fn returns true. Results appear in
// document order. The root element itself is never part of the
// results.
func (root *Element) SearchFunc(fn func(*Element) bool) []*Element {
	var results []*Element
	var search func(el *Element)

	search = func(el *Element) {
		for i := range el.Children {
			child := &el.Children[i]
			if fn(child) {
				results = append(results, child)
			}
			search(child)
		}
	}
	search(root)
	return results
}

// Search searches the Element tree for Elements with an xml tag
// matching the name and xml namespace. If space is the empty
// string, any namespace is matched.
func (root *Element) Search(space, local string) []*Element {
	return root.SearchFunc(func(el *Element) bool {
		if local != el.Name.Local {
			return false
		}
		return space == "" || space == el.Name.Space
	})
}

// FindChildFunc returns the first direct child of el for which fn
// returns true, or nil if there is none. Unlike SearchFunc, it
// never descends into grandchildren.
func (el *Element) FindChildFunc(fn func(*Element) bool) *Element {
	for i := range el.Children {
		if fn(&el.Children[i]) {
			return &el.Children[i]
		}
	}
	return nil
}

// FindChild returns the first direct child of el with an xml tag
// matching the name and xml namespace, or nil if there is none. If
// space is the empty string, any namespace is matched.
func (el *Element) FindChild(space, local string) *Element {
	return el.FindChildFunc(func(child *Element) bool {
		if local != child.Name.Local {
			return false
		}
		return space == "" || space == child.Name.Space
	})
}

// Flatten returns all of root's descendants in document order.
func (root *Element) Flatten() []*Element {
	return root.SearchFunc(func(*Element) bool { return true })
}
