package types

// Tenant is one logically isolated company whose data is kept apart from
// every other tenant.
type Tenant struct {
	ID   string `json:"id" yaml:"id" mapstructure:"id"`
	Name string `json:"name" yaml:"name" mapstructure:"name"`
}

// DefaultTenants is the directory used when configuration declares none.
var DefaultTenants = []Tenant{
	{ID: "comp-1", Name: "Empresa Principal S.A."},
	{ID: "comp-2", Name: "Sucursal Secundaria Ltda."},
}
