package model

// Product is an entry of the order form catalog.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	UnitPrice float64 `json:"unitPrice"`
}

// Catalog lists the products offered on the order form.
var Catalog = []Product{
	{ID: "uv6-30", Name: "Rampe LED UV 6%", Size: "30cm", UnitPrice: 50.00},
	{ID: "uv6-60", Name: "Rampe LED UV 6%", Size: "60cm", UnitPrice: 80.00},
	{ID: "uv6-90", Name: "Rampe LED UV 6%", Size: "90cm", UnitPrice: 110.00},
	{ID: "uv12-30", Name: "Rampe LED UV 12%", Size: "30cm", UnitPrice: 50.00},
	{ID: "uv12-60", Name: "Rampe LED UV 12%", Size: "60cm", UnitPrice: 80.00},
	{ID: "uv12-90", Name: "Rampe LED UV 12%", Size: "90cm", UnitPrice: 110.00},
	{ID: "uv14-30", Name: "Rampe LED UV 14%", Size: "30cm", UnitPrice: 55.00},
	{ID: "uv14-60", Name: "Rampe LED UV 14%", Size: "60cm", UnitPrice: 87.50},
	{ID: "uv14-90", Name: "Rampe LED UV 14%", Size: "90cm", UnitPrice: 120.00},
	{ID: "nv-30", Name: "Rampe LED Natural Vision", Size: "30cm", UnitPrice: 19.50},
	{ID: "nv-60", Name: "Rampe LED Natural Vision", Size: "60cm", UnitPrice: 29.50},
	{ID: "nv-90", Name: "Rampe LED Natural Vision", Size: "90cm", UnitPrice: 37.50},
	{ID: "nv-120", Name: "Rampe LED Natural Vision", Size: "120cm", UnitPrice: 44.50},
	{ID: "cable-30", Name: "Câble de Connexion", Size: "30cm", UnitPrice: 2.00},
	{ID: "cable-120", Name: "Câble de Connexion", Size: "120cm", UnitPrice: 3.50},
}
