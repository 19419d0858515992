package model

// Tenant discriminators for the three business-unit portals.
const (
	TenantPrintersUAE = "printers-uae"
	TenantG3Facility  = "g3-facility"
	TenantITService   = "it-service"
)

// KnownTenant reports whether v names one of the three portals.
func KnownTenant(v string) bool {
	switch v {
	case TenantPrintersUAE, TenantG3Facility, TenantITService:
		return true
	}
	return false
}

// RGB is an 8-bit color triple for document accents.
type RGB struct {
	R, G, B int
}

// Branding carries everything tenant-specific the renderer and normalizer
// need: accent colors, the contact block for the footer band, the header
// monogram and the per-tenant submission defaults. Selected through a static
// lookup, never through type switches in the renderer.
type Branding struct {
	Name          string
	Monogram      string
	DocumentTitle string
	Accent        RGB
	AccentLight   RGB
	Phone         string
	Mobile        string
	Email         string
	Locations     [2]string

	// DefaultCustomerType fills customerType when a portal omits it.
	DefaultCustomerType string
}

var brandings = map[string]Branding{
	TenantPrintersUAE: {
		Name:                "Printers UAE",
		Monogram:            "P",
		DocumentTitle:       "Work Order Receipt",
		Accent:              RGB{R: 30, G: 64, B: 124},
		AccentLight:         RGB{R: 222, G: 230, B: 243},
		Phone:               "+971 4 334 5511",
		Mobile:              "+971 50 112 3344",
		Email:               "service@printersuae.ae",
		Locations:           [2]string{"Al Quoz Industrial Area 3, Dubai", "Mussafah M-9, Abu Dhabi"},
		DefaultCustomerType: "Service and Repair",
	},
	TenantG3Facility: {
		Name:                "G3 Facility Management",
		Monogram:            "G",
		DocumentTitle:       "Work Order Receipt",
		Accent:              RGB{R: 22, G: 120, B: 80},
		AccentLight:         RGB{R: 220, G: 240, B: 231},
		Phone:               "+971 4 887 2210",
		Mobile:              "+971 55 640 7788",
		Email:               "operations@g3facility.ae",
		Locations:           [2]string{"Jebel Ali Free Zone, Dubai", "ICAD 1, Abu Dhabi"},
		DefaultCustomerType: "General Maintenance",
	},
	TenantITService: {
		Name:                "IT Service Centre",
		Monogram:            "I",
		DocumentTitle:       "Work Order Receipt",
		Accent:              RGB{R: 84, G: 54, B: 140},
		AccentLight:         RGB{R: 233, G: 227, B: 245},
		Phone:               "+971 4 269 9030",
		Mobile:              "+971 52 301 5566",
		Email:               "helpdesk@itservicecentre.ae",
		Locations:           [2]string{"Al Barsha 1, Dubai", "Khalidiya, Abu Dhabi"},
		DefaultCustomerType: "Hardware Repair",
	},
}

// BrandingFor returns the branding for a tenant. Unknown tenants fall back
// to the printers-uae branding, matching the normalizer's default portal.
func BrandingFor(tenant string) Branding {
	if b, ok := brandings[tenant]; ok {
		return b
	}
	return brandings[TenantPrintersUAE]
}
