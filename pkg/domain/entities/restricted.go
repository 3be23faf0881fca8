package entities

// RestrictedComponent is one row of the restricted-component map: a
// restricted top-level material and one of the shared components it consumes.
type RestrictedComponent struct {
	Product   MaterialID
	Component MaterialID
}

// RestrictedComponentMap maps a restricted top-level material (the SECUROC
// category) to the component materials it consumes. Static reference data.
type RestrictedComponentMap struct {
	components map[MaterialID][]MaterialID
	products   []MaterialID
	allComps   []MaterialID
}

// NewRestrictedComponentMap builds the map from its rows, preserving input
// row order for products and components.
func NewRestrictedComponentMap(rows []RestrictedComponent) *RestrictedComponentMap {
	m := &RestrictedComponentMap{components: make(map[MaterialID][]MaterialID)}
	seenProduct := make(map[MaterialID]bool)
	seenComp := make(map[MaterialID]bool)
	for _, row := range rows {
		if !seenProduct[row.Product] {
			seenProduct[row.Product] = true
			m.products = append(m.products, row.Product)
		}
		dup := false
		for _, c := range m.components[row.Product] {
			if c == row.Component {
				dup = true
				break
			}
		}
		if !dup {
			m.components[row.Product] = append(m.components[row.Product], row.Component)
		}
		if !seenComp[row.Component] {
			seenComp[row.Component] = true
			m.allComps = append(m.allComps, row.Component)
		}
	}
	return m
}

// IsRestricted reports whether a material is a restricted top-level product.
func (m *RestrictedComponentMap) IsRestricted(material MaterialID) bool {
	_, ok := m.components[material]
	return ok
}

// Components returns the components consumed by a restricted product.
func (m *RestrictedComponentMap) Components(product MaterialID) []MaterialID {
	return m.components[product]
}

// AllComponents returns every distinct component across all restricted
// products, in first-appearance order.
func (m *RestrictedComponentMap) AllComponents() []MaterialID {
	return m.allComps
}
