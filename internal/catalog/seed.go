package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultSeed []byte

// Seed — формат файла каталога.
type Seed struct {
	Categories []string      `yaml:"categories"`
	Products   []SeedProduct `yaml:"products"`
}

// SeedProduct — запись товара в файле каталога. Цена задаётся строкой, чтобы не терять точность.
type SeedProduct struct {
	ID           int64  `yaml:"id"`
	Name         string `yaml:"name"`
	Category     string `yaml:"category"`
	Price        string `yaml:"price"`
	Image        string `yaml:"image"`
	Description  string `yaml:"description"`
	Prescription bool   `yaml:"prescription"`
	Stock        int    `yaml:"stock"`
	Manufacturer string `yaml:"manufacturer"`
}

// LoadDefault строит индекс из встроенного каталога.
func LoadDefault() (*Index, error) {
	return Parse(defaultSeed)
}

// Load строит индекс из файла; пустой путь означает встроенный каталог.
func Load(path string) (*Index, error) {
	if path == "" {
		return LoadDefault()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return Parse(data)
}

// Parse разбирает YAML-сид и строит индекс.
func Parse(data []byte) (*Index, error) {
	const op = "catalog.Parse"

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %v", e.ErrInvalidCatalog, err))
	}

	products := make([]domain.Product, 0, len(seed.Products))
	for _, sp := range seed.Products {
		p, err := sp.toDomain()
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		products = append(products, p)
	}

	return NewIndex(products, seed.Categories)
}

func (sp SeedProduct) toDomain() (domain.Product, error) {
	price, err := domain.ParseMoney(sp.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: product %d: %w", e.ErrInvalidCatalog, sp.ID, err)
	}

	return domain.Product{
		ID:                   sp.ID,
		Name:                 sp.Name,
		Category:             sp.Category,
		Price:                price,
		Image:                sp.Image,
		Description:          sp.Description,
		PrescriptionRequired: sp.Prescription,
		Stock:                sp.Stock,
		Manufacturer:         sp.Manufacturer,
	}, nil
}
