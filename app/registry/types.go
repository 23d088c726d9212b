package registry

// Company describes the tracked sources for one portfolio company.
// Slug is derived from the configuration filename and is the stable key
// every artifact references.
type Company struct {
	Slug           string `yaml:"-"`
	Name           string `yaml:"name"`
	Query          string `yaml:"query"`
	BlogRSS        string `yaml:"blog_rss"`
	XHandle        string `yaml:"x_handle"`
	Website        string `yaml:"website"`
	ExtractContent bool   `yaml:"extract_content"`
}
