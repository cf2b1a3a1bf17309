package pricing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/ghodss/yaml"

	"github.com/BerlinP/chutes-helper/internal/util"
)

// DefaultPriceFile is read from the working directory when no path is given.
const DefaultPriceFile = "gpu-price.json"

// FileProvider loads prices from a local JSON or YAML file.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	if path == "" {
		path = DefaultPriceFile
	}
	return &FileProvider{path: path}
}

func (p *FileProvider) Path() string {
	return p.path
}

func (p *FileProvider) GetProviderName() string {
	return "file"
}

// LoadTable reads and decodes the price file. There is no fallback table.
func (p *FileProvider) LoadTable(ctx context.Context) (Table, error) {
	util.LogDebug("Loading gpu price table", util.F("path", p.path))

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrPriceTable, p.path, err)
	}

	prices, err := decodePrices(p.path, data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrPriceTable, p.path, err)
	}

	table := NewTable(prices)
	for _, key := range table.UnreachableKeys() {
		util.LogWarn("Price key is not lower case and will never match a gpu model",
			util.F("path", p.path), util.F("key", key))
	}
	util.LogDebug("Loaded gpu price table", util.F("path", p.path), util.F("models", len(table)))
	return table, nil
}

func decodePrices(path string, data []byte) (map[string]float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	var prices map[string]float64
	if err := sonic.Unmarshal(data, &prices); err != nil {
		return nil, err
	}
	if prices == nil {
		return nil, fmt.Errorf("expected an object mapping gpu model to hourly price")
	}
	return prices, nil
}
