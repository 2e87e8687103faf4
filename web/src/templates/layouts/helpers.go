package layouts

// SiteTitle is the application name shown in titles and copy.
const SiteTitle = "Profiledash"

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - " + SiteTitle
	}
	return SiteTitle
}
