// Package catalog provides the read-only product catalog. It ships with the
// storefront's default fragrances and can be replaced by a YAML file.
package catalog
