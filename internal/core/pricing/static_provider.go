package pricing

import "context"

// StaticProvider serves a fixed, in-memory price table.
type StaticProvider struct {
	table Table
}

func NewStaticProvider(prices map[string]float64) *StaticProvider {
	return &StaticProvider{table: NewTable(prices)}
}

func (p *StaticProvider) LoadTable(ctx context.Context) (Table, error) {
	out := make(Table, len(p.table))
	for k, v := range p.table {
		out[k] = v
	}
	return out, nil
}

func (p *StaticProvider) GetProviderName() string {
	return "static"
}
