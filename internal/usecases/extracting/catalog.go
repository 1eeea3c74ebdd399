package extracting

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

//go:embed data/*.yaml
var embeddedData embed.FS

type offerEntry struct {
	Financing       []string `yaml:"financing"`
	Promotions      []string `yaml:"promotions"`
	Trust           []string `yaml:"trust"`
	Differentiators []string `yaml:"differentiators"`
}

type cityEntry struct {
	Name    string   `yaml:"name"`
	Region  string   `yaml:"region"`
	Aliases []string `yaml:"aliases"`
}

type gazetteerFile struct {
	Cities []cityEntry `yaml:"cities"`
}

// Catalog guarda o catálogo de ofertas e o gazetteer embutidos no binário
type Catalog struct {
	offers map[string]offerEntry
	cities map[string]cityEntry
}

// LoadCatalog lê os arquivos YAML embutidos
func LoadCatalog() (*Catalog, error) {
	offersRaw, err := embeddedData.ReadFile("data/offers.yaml")
	if err != nil {
		return nil, fmt.Errorf("extracting: erro ao ler catálogo de ofertas: %w", err)
	}

	offers := make(map[string]offerEntry)
	if err := yaml.Unmarshal(offersRaw, &offers); err != nil {
		return nil, fmt.Errorf("extracting: erro ao decodificar catálogo de ofertas: %w", err)
	}

	gazetteerRaw, err := embeddedData.ReadFile("data/gazetteer.yaml")
	if err != nil {
		return nil, fmt.Errorf("extracting: erro ao ler gazetteer: %w", err)
	}

	var gazetteer gazetteerFile
	if err := yaml.Unmarshal(gazetteerRaw, &gazetteer); err != nil {
		return nil, fmt.Errorf("extracting: erro ao decodificar gazetteer: %w", err)
	}

	cities := make(map[string]cityEntry, len(gazetteer.Cities))
	for _, c := range gazetteer.Cities {
		cities[utils.NormalizeText(c.Name)] = c
		for _, alias := range c.Aliases {
			cities[utils.NormalizeText(alias)] = c
		}
	}

	return &Catalog{offers: offers, cities: cities}, nil
}

// MustLoadCatalog é usado na inicialização, onde um catálogo inválido é erro de build
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Offers retorna uma cópia das ofertas da vertical; vertical desconhecida retorna listas vazias
func (c *Catalog) Offers(vertical string) domain.Offers {
	entry := c.offers[vertical]
	return domain.Offers{
		Financing:       copyStrings(entry.Financing),
		Promotions:      copyStrings(entry.Promotions),
		Trust:           copyStrings(entry.Trust),
		Differentiators: copyStrings(entry.Differentiators),
	}
}

// City busca uma cidade canônica pelo nome ou apelido
func (c *Catalog) City(name string) (string, string, bool) {
	entry, ok := c.cities[utils.NormalizeText(strings.TrimSpace(name))]
	if !ok {
		return "", "", false
	}
	return entry.Name, entry.Region, true
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
