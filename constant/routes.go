package constant

// SiteOrigin is the public origin prefixed to every sitemap location entry.
const SiteOrigin = "https://aniko.app"

// StaticRoutes lists the fixed site paths that are always present in the generated
// sitemap regardless of the upstream catalog contents.
var StaticRoutes = []string{
	"/",
	"/home",
	"/search",
	"/schedule",
	"/history",
	"/list",
	"/settings",
	"/about",
}
