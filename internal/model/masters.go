package model

// Masters holds the three suggestion lists. Each list is ordered (the user
// controls display order) and duplicate-free. The lists impose no
// referential constraint on Order fields.
type Masters struct {
	Clients   []string `json:"clients"`
	Products  []string `json:"products"`
	Materials []string `json:"materials"`
}

const (
	ListClients   = "clients"
	ListProducts  = "products"
	ListMaterials = "materials"
)

// List returns a pointer to the named list, or false for an unknown name.
func (m *Masters) List(name string) (*[]string, bool) {
	switch name {
	case ListClients:
		return &m.Clients, true
	case ListProducts:
		return &m.Products, true
	case ListMaterials:
		return &m.Materials, true
	}
	return nil, false
}

// EnsureLists replaces nil slices with empty ones so the JSON encoding is
// always {"clients":[],...} rather than nulls.
func (m *Masters) EnsureLists() {
	if m.Clients == nil {
		m.Clients = []string{}
	}
	if m.Products == nil {
		m.Products = []string{}
	}
	if m.Materials == nil {
		m.Materials = []string{}
	}
}
