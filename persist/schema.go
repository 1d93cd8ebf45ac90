package persist

// FormatVersion is written into every document; newer versions are rejected.
const FormatVersion = 1

type projectDoc struct {
	Version int       `yaml:"version" msgpack:"version"`
	Cells   []cellDoc `yaml:"cells" msgpack:"cells"`
}

type cellDoc struct {
	Version       int          `yaml:"version,omitempty" msgpack:"version,omitempty"`
	ID            string       `yaml:"id" msgpack:"id"`
	Name          string       `yaml:"name" msgpack:"name"`
	Basis         []basisDoc   `yaml:"basis" msgpack:"basis"`
	Sites         []siteDoc    `yaml:"sites,omitempty" msgpack:"sites,omitempty"`
	Hoppings      []hoppingDoc `yaml:"hoppings,omitempty" msgpack:"hoppings,omitempty"`
	SpecialPoints [][]float64  `yaml:"special_points,omitempty" msgpack:"special_points,omitempty"`
	Grid          *gridDoc     `yaml:"grid,omitempty" msgpack:"grid,omitempty"`
}

type basisDoc struct {
	Vector   [3]float64 `yaml:"vector,flow" msgpack:"vector"`
	Periodic bool       `yaml:"periodic" msgpack:"periodic"`
}

type siteDoc struct {
	ID     string     `yaml:"id" msgpack:"id"`
	Name   string     `yaml:"name" msgpack:"name"`
	Coords [3]float64 `yaml:"coords,flow" msgpack:"coords"`
	Color  [4]uint8   `yaml:"color,flow" msgpack:"color"`
	Radius float64    `yaml:"radius" msgpack:"radius"`
	States []stateDoc `yaml:"states,omitempty" msgpack:"states,omitempty"`
}

type stateDoc struct {
	ID   string `yaml:"id" msgpack:"id"`
	Name string `yaml:"name" msgpack:"name"`
}

type hoppingDoc struct {
	Dst     string      `yaml:"dst" msgpack:"dst"`
	Src     string      `yaml:"src" msgpack:"src"`
	Records []recordDoc `yaml:"records" msgpack:"records"`
}

type recordDoc struct {
	D  [3]int  `yaml:"d,flow" msgpack:"d"`
	Re float64 `yaml:"re" msgpack:"re"`
	Im float64 `yaml:"im" msgpack:"im"`
}

type gridDoc struct {
	Divisions     [3]int `yaml:"divisions,flow" msgpack:"divisions"`
	GammaCentered bool   `yaml:"gamma_centered" msgpack:"gamma_centered"`
}
