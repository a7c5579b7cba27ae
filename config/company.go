package config

import (
	"strings"

	"sipkagroup/server/internal/models"
)

// Company is the static company profile rendered in the header, footer and contact page
var Company = models.Company{
	Name:      "Sipka Group",
	LegalName: "Sipka Holdings Ltd",
	Tagline:   "Archaeologists of Property",
	Description: "Sipka Group is a family-oriented property investment group focusing on commercial " +
		"and residential real estate across New Zealand, with almost two decades of experience " +
		"discovering and restoring undervalued properties.",
	Email:           "info@sipkagroup.nz",
	Phone:           "+64 9 123 4567",
	Mobile:          "+64 21 123 4567",
	Address:         "110 Symonds Street, Grafton, Auckland 1010",
	ClientPortalURL: "https://portal.sipkagroup.nz",
	Partners: []models.Partner{
		{Name: "Sipka Property Management", URL: "https://management.sipkagroup.nz"},
		{Name: "Sipka Maintenance", URL: "https://maintenance.sipkagroup.nz"},
	},
	OfficeHours: []models.OfficeHours{
		{Day: "Monday - Friday", Hours: "9:00 AM - 5:00 PM"},
		{Day: "Saturday", Hours: "By Appointment"},
		{Day: "Sunday", Hours: "Closed"},
	},
}

// Stats are the headline figures shown on the home page
var Stats = []models.Stat{
	{Value: "18+", Label: "Years Experience"},
	{Value: "10", Label: "Properties"},
	{Value: "4", Label: "Cities"},
	{Value: "100%", Label: "Family Owned"},
}

// NavLinks is the main navigation in display order
var NavLinks = []models.NavLink{
	{Href: "/", Label: "Home"},
	{Href: "/about", Label: "About"},
	{Href: "/portfolio", Label: "Portfolio"},
	{Href: "/contact", Label: "Contact"},
}

// OutboundLinks returns every external URL the site links to
func OutboundLinks() []string {
	links := []string{Company.ClientPortalURL}
	for _, p := range Company.Partners {
		links = append(links, p.URL)
	}
	return links
}

// TelHref turns a display phone number into a tel: link
func TelHref(phone string) string {
	return "tel:" + strings.ReplaceAll(phone, " ", "")
}
