package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed products.json
var embeddedSeed []byte

// LoadSeed builds a Store from the JSON seed file at path. An empty path
// loads the embedded catalog shipped with the binary.
func LoadSeed(path string) (*Store, error) {
	data := embeddedSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog seed %s: %w", path, err)
		}
		data = b
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog seed: %w", err)
	}
	return NewStore(products)
}
