package records

import (
	"encoding/json"

	"github.com/mesh-intelligence/storefront/pkg/types"
)

// DemoDataset returns the sample document loaded on first start when the
// seed mode is demo: one record of every type for each default tenant.
// Numeric fields use json.Number, matching what a reload produces.
func DemoDataset() types.RootDocument {
	return types.RootDocument{
		"comp-1": demoTenant(demoComp1),
		"comp-2": demoTenant(demoComp2),
	}
}

func demoTenant(collections map[types.EntityType][]types.Record) *types.Dataset {
	ds := types.NewDataset()
	for t, records := range collections {
		ds.Collections[t] = types.CloneRecords(records)
	}
	return ds
}

var demoComp1 = map[types.EntityType][]types.Record{
	types.Clientes: {{
		"id": "CLI-001", "nombre": "Empresa ABC S.A.", "contacto": "Juan Pérez",
		"email": "juan.perez@empresaabc.com", "telefono": "+1 234-567-8900",
		"direccion": "Av. Principal 123, Ciudad", "tipo": "Corporativo", "estado": "Activo",
		"ultimaCompra": "2024-01-15", "totalCompras": "$45,230.00",
	}},
	types.Productos: {{
		"id": "PROD-001", "nombre": "Laptop Dell Inspiron 15", "categoria": "Electrónicos",
		"marca": "Dell", "presentacion": "Unidad", "ubicacion": "A-01-15",
		"stock": json.Number("25"), "precio": "850.00", "costo": "650.00", "estado": "Activo",
	}},
	types.Cotizaciones: {{
		"id": "COT-001", "cliente": "Empresa ABC S.A.", "fecha": "2025-09-15",
		"validez": "2025-09-30", "total": "15420.00", "estado": "Pendiente",
		"productos": json.Number("5"),
	}},
	types.Ventas: {{
		"id": "V-001", "cliente": "Empresa ABC S.A.", "fecha": "2025-09-15",
		"productos": json.Number("5"), "subtotal": "13500.00", "impuestos": "1920.00",
		"total": "15420.00", "estado": "Completada", "metodoPago": "Transferencia",
	}},
	types.Proveedores: {{
		"id": "PROV-001", "nombre": "Distribuidora Tech Global", "contacto": "Luis Fernández",
		"email": "luis.fernandez@techglobal.com", "telefono": "+1 555-123-4567",
		"categoria": "Electrónicos", "estado": "Activo", "tiempoEntrega": "3-5 días",
	}},
	types.Compras: {{
		"id": "C-001", "proveedor": "Distribuidora Tech Global", "fecha": "2025-09-15",
		"fechaEntrega": "2025-09-18", "productos": json.Number("12"), "total": "21090.00",
		"estado": "Entregada",
	}},
	types.Pedidos: {{
		"id": "PED-001", "cliente": "Empresa ABC S.A.", "fecha": "2025-09-15",
		"fechaEntrega": "2025-09-20", "total": "15420.00", "estado": "En Preparación",
		"origen": "Catálogo Online",
	}},
	types.Usuarios: {{
		"id": "USR-001", "nombre": "Admin", "email": "admin@miempresa.com",
		"rol": "Administrador", "estado": "Activo", "ultimoAcceso": "2025-09-18 10:30 AM",
	}},
	types.Documentos: {{
		"id": "DOC-001", "nombre": "Factura V-001.pdf", "tipo": "Factura de Venta",
		"fecha": "2025-09-15", "tamaño": "128 KB", "asociado": "V-001", "creadoPor": "Admin",
	}},
}

var demoComp2 = map[types.EntityType][]types.Record{
	types.Clientes: {{
		"id": "CLI-002", "nombre": "Corporación XYZ", "contacto": "María González",
		"email": "maria.gonzalez@corpxyz.com", "telefono": "+1 234-567-8901",
		"direccion": "Calle Comercial 456, Ciudad", "tipo": "Corporativo", "estado": "Activo",
		"ultimaCompra": "2024-01-14", "totalCompras": "$78,450.00",
	}},
	types.Productos: {{
		"id": "PROD-002", "nombre": "Mouse Logitech MX Master", "categoria": "Accesorios",
		"marca": "Logitech", "presentacion": "Unidad", "ubicacion": "B-02-08",
		"stock": json.Number("150"), "precio": "89.99", "costo": "65.00", "estado": "Activo",
	}},
	types.Cotizaciones: {{
		"id": "COT-002", "cliente": "Corporación XYZ", "fecha": "2025-09-14",
		"validez": "2025-09-29", "total": "28750.00", "estado": "Aprobada",
		"productos": json.Number("8"),
	}},
	types.Ventas: {{
		"id": "V-002", "cliente": "Corporación XYZ", "fecha": "2025-09-14",
		"productos": json.Number("8"), "subtotal": "25200.00", "impuestos": "3550.00",
		"total": "28750.00", "estado": "Pendiente", "metodoPago": "Crédito",
	}},
	types.Proveedores: {{
		"id": "PROV-002", "nombre": "Suministros Oficina Plus", "contacto": "Carmen López",
		"email": "carmen.lopez@oficinaplus.com", "telefono": "+1 555-234-5678",
		"categoria": "Oficina", "estado": "Activo", "tiempoEntrega": "1-2 días",
	}},
	types.Compras: {{
		"id": "C-002", "proveedor": "Suministros Oficina Plus", "fecha": "2025-09-14",
		"fechaEntrega": "2025-09-16", "productos": json.Number("8"), "total": "5928.00",
		"estado": "En Tránsito",
	}},
	types.Pedidos: {{
		"id": "PED-002", "cliente": "Corporación XYZ", "fecha": "2025-09-14",
		"fechaEntrega": "2025-09-19", "total": "28750.00", "estado": "Enviado",
		"origen": "Venta Directa",
	}},
	types.Usuarios: {{
		"id": "USR-002", "nombre": "Vendedor 1", "email": "vendedor1@miempresa.com",
		"rol": "Ventas", "estado": "Activo", "ultimoAcceso": "2025-09-18 09:45 AM",
	}},
	types.Documentos: {{
		"id": "DOC-002", "nombre": "Contrato Cliente ABC.docx", "tipo": "Contrato",
		"fecha": "2025-09-14", "tamaño": "2.3 MB", "asociado": "CLI-001", "creadoPor": "Admin",
	}},
}
