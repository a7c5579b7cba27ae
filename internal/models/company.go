package models

// Partner is an outbound link shown in the footer
type Partner struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type OfficeHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// Company holds the contact and branding details rendered across the site
type Company struct {
	Name            string        `json:"name"`
	LegalName       string        `json:"legal_name"`
	Tagline         string        `json:"tagline"`
	Description     string        `json:"description"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Mobile          string        `json:"mobile"`
	Address         string        `json:"address"`
	ClientPortalURL string        `json:"client_portal_url"`
	Partners        []Partner     `json:"partners"`
	OfficeHours     []OfficeHours `json:"office_hours"`
}

// Stat is one headline figure on the home page, e.g. "18+" years
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// NavLink is an entry in the site navigation
type NavLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}
