// Package catalog provides ProductRepository implementations: a local
// YAML/JSON file and a remote HTTP catalog service.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tubebenders/backend/internal/domain"
)

// catalogDocument is the wrapped file form: `products: [...]`
type catalogDocument struct {
	Products []domain.Product `json:"products" yaml:"products"`
}

// FileRepository reads the catalog from a file on every List call.
// Callers are expected to cache the result.
type FileRepository struct {
	path string
}

// NewFileRepository returns a repository for a .yaml, .yml or .json file
func NewFileRepository(path string) (*FileRepository, error) {
	if _, err := formatOf(path); err != nil {
		return nil, err
	}
	return &FileRepository{path: path}, nil
}

// Path returns the file backing the repository
func (r *FileRepository) Path() string {
	return r.path
}

// List returns every product in the file
func (r *FileRepository) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	products, err := Decode(r.path, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCatalogUnavailable, r.path, err)
	}
	return products, nil
}

// Get returns the product with the given id
func (r *FileRepository) Get(ctx context.Context, id int) (*domain.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// Decode parses catalog bytes according to the file extension of name.
// Both a bare list and a `products:` document are accepted.
func Decode(name string, data []byte) ([]domain.Product, error) {
	format, err := formatOf(name)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	switch format {
	case "json":
		products, err = decodeJSON(data)
	default:
		products, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}

	if err := validateProducts(products); err != nil {
		return nil, err
	}
	return products, nil
}

func decodeJSON(data []byte) ([]domain.Product, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var products []domain.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return products, nil
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return doc.Products, nil
}

func decodeYAML(data []byte) ([]domain.Product, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		var products []domain.Product
		if err := node.Decode(&products); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return products, nil
	}

	var doc catalogDocument
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return doc.Products, nil
}

func validateProducts(products []domain.Product) error {
	seen := make(map[int]bool, len(products))
	for i, p := range products {
		if p.ID <= 0 {
			return fmt.Errorf("product %d (%q): id must be positive", i, p.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate product id %d", p.ID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("product %d: name is required", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported catalog file %q: want .yaml, .yml or .json", path)
	}
}
