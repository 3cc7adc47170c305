package types

import "fmt"

// EntityType names one of the record collections held per tenant.
type EntityType string

// Standard entity types.
const (
	Clientes     EntityType = "clientes"
	Productos    EntityType = "productos"
	Cotizaciones EntityType = "cotizaciones"
	Ventas       EntityType = "ventas"
	Proveedores  EntityType = "proveedores"
	Compras      EntityType = "compras"
	Pedidos      EntityType = "pedidos"
	Usuarios     EntityType = "usuarios"
	Documentos   EntityType = "documentos"
)

// EntityTypes lists all entity types in their canonical order.
var EntityTypes = []EntityType{
	Clientes,
	Productos,
	Cotizaciones,
	Ventas,
	Proveedores,
	Compras,
	Pedidos,
	Usuarios,
	Documentos,
}

// Valid reports whether t is one of the standard entity types.
func (t EntityType) Valid() bool {
	for _, known := range EntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseEntityType converts a collection name into an EntityType.
// Returns ErrUnknownEntityType if the name is not a standard type.
func ParseEntityType(name string) (EntityType, error) {
	t := EntityType(name)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, name)
	}
	return t, nil
}
