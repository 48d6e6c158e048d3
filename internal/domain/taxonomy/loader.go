package taxonomy

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadFile reads a YAML catalog with a top-level "careers" list.
//
//	careers:
//	  - name: AI Engineer
//	    interest: AI/ML
//	    base_salary: 80000
//	    required_skills: [python, sql]
func LoadFile(path string) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	var doc struct {
		Careers []CareerProfile `koanf:"careers"`
	}
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	if len(doc.Careers) == 0 {
		return nil, fmt.Errorf("%w: no careers in %s", ErrLoadCatalog, path)
	}
	return New(doc.Careers)
}
