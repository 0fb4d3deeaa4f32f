// Package brand detects impersonation of protected brands by comparing the
// decoded display host (and path segments) against a curated catalog.
package brand

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Brand is one protected brand: its display name and canonical registrable
// domain.
type Brand struct {
	Name   string `yaml:"name" json:"name"`
	Domain string `yaml:"domain" json:"domain"`
}

// Catalog is the immutable set of protected brands. Declaration order breaks
// ties during nearest-match search, so it is part of the contract.
type Catalog struct {
	Brands []Brand `yaml:"brands" json:"brands"`
}

// Validate rejects catalogs the matcher cannot work with. A broken catalog is
// fatal at engine construction.
func (c *Catalog) Validate() error {
	if len(c.Brands) == 0 {
		return fmt.Errorf("brand catalog is empty")
	}
	for i, b := range c.Brands {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("brand %d has an empty name", i)
		}
		if !strings.Contains(b.Domain, ".") {
			return fmt.Errorf("brand %q has invalid domain %q", b.Name, b.Domain)
		}
	}
	return nil
}

// DefaultCatalog returns the shipped brand catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{Brands: []Brand{
		{Name: "paypal", Domain: "paypal.com"},
		{Name: "apple", Domain: "apple.com"},
		{Name: "google", Domain: "google.com"},
		{Name: "microsoft", Domain: "microsoft.com"},
		{Name: "amazon", Domain: "amazon.com"},
		{Name: "facebook", Domain: "facebook.com"},
		{Name: "instagram", Domain: "instagram.com"},
		{Name: "netflix", Domain: "netflix.com"},
		{Name: "whatsapp", Domain: "whatsapp.com"},
		{Name: "linkedin", Domain: "linkedin.com"},
		{Name: "dropbox", Domain: "dropbox.com"},
		{Name: "ebay", Domain: "ebay.com"},
		{Name: "chase", Domain: "chase.com"},
		{Name: "wellsfargo", Domain: "wellsfargo.com"},
		{Name: "commbank", Domain: "commbank.com.au"},
		{Name: "westpac", Domain: "westpac.com.au"},
		{Name: "anz", Domain: "anz.com.au"},
		{Name: "nab", Domain: "nab.com.au"},
		{Name: "auspost", Domain: "auspost.com.au"},
		{Name: "dhl", Domain: "dhl.com"},
		{Name: "fedex", Domain: "fedex.com"},
		{Name: "ups", Domain: "ups.com"},
		{Name: "spotify", Domain: "spotify.com"},
		{Name: "steam", Domain: "steampowered.com"},
	}}
}

// LoadCatalog reads a brand catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brand catalog %s: %w", path, err)
	}
	catalog := &Catalog{}
	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("failed to parse brand catalog %s: %w", path, err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}
