package entities

// KitComponent is one row of the kit bill of materials: a kit material and
// one of the components it requires.
type KitComponent struct {
	Kit       MaterialID
	Component MaterialID
}

// KitBOM maps a kit material to its required components. Static reference
// data; component order is the input row order.
type KitBOM struct {
	components map[MaterialID][]MaterialID
}

// NewKitBOM builds a KitBOM from its rows.
func NewKitBOM(rows []KitComponent) *KitBOM {
	bom := &KitBOM{components: make(map[MaterialID][]MaterialID)}
	for _, row := range rows {
		bom.components[row.Kit] = append(bom.components[row.Kit], row.Component)
	}
	return bom
}

// Components returns the required components of a kit material. A material
// with no declared components returns nil.
func (b *KitBOM) Components(kit MaterialID) []MaterialID {
	return b.components[kit]
}
