package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry holds the tracked-company configurations, one YAML file per
// company under the companies directory. Read-only after Run.
type Registry struct {
	companiesDir string
	companies    map[string]*Company
	slugs        []string
}

func NewRegistry(companiesDir string) *Registry {
	return &Registry{
		companiesDir: companiesDir,
		companies:    make(map[string]*Company),
	}
}

func (r *Registry) Run() error {
	files, err := filepath.Glob(filepath.Join(r.companiesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}
	yamlFiles, err := filepath.Glob(filepath.Join(r.companiesDir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to find YAML files: %w", err)
	}
	files = append(files, yamlFiles...)

	if len(files) == 0 {
		return fmt.Errorf("no company configurations found in %s", r.companiesDir)
	}

	for _, file := range files {
		company, err := r.loadFile(file)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := r.validate(company); err != nil {
			return fmt.Errorf("invalid config %s: %w", file, err)
		}

		r.companies[company.Slug] = company
		slog.Debug("Company configuration loaded",
			"slug", company.Slug,
			"blog", company.BlogRSS != "",
			"social", company.XHandle != "")
	}

	// Deterministic processing order across runs
	r.slugs = make([]string, 0, len(r.companies))
	for slug := range r.companies {
		r.slugs = append(r.slugs, slug)
	}
	sort.Strings(r.slugs)

	return nil
}

func (r *Registry) loadFile(path string) (*Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var company Company
	if err := yaml.Unmarshal(data, &company); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Slug derived from filename (without extension)
	base := filepath.Base(path)
	company.Slug = strings.TrimSuffix(base, filepath.Ext(base))

	return &company, nil
}

func (r *Registry) validate(company *Company) error {
	if company.Slug == "" {
		return fmt.Errorf("company slug is required")
	}
	if company.Name == "" {
		return fmt.Errorf("company name is required")
	}
	if company.Query == "" {
		return fmt.Errorf("company search query is required")
	}
	return nil
}

func (r *Registry) GetCompany(slug string) (*Company, bool) {
	company, ok := r.companies[slug]
	return company, ok
}

// GetCompanies returns all companies in sorted-slug order.
func (r *Registry) GetCompanies() []*Company {
	companies := make([]*Company, 0, len(r.slugs))
	for _, slug := range r.slugs {
		companies = append(companies, r.companies[slug])
	}
	return companies
}

func (r *Registry) GetSlugs() []string {
	slugs := make([]string, len(r.slugs))
	copy(slugs, r.slugs)
	return slugs
}

func (r *Registry) GetCompanyCount() int {
	return len(r.companies)
}
