package chart

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed bands.yaml
var bandsYAML []byte

type bandTables struct {
	ReferenceBands []ImpedanceBand `yaml:"reference_bands"`
	AmateurBands   []FrequencyBand `yaml:"amateur_bands"`
}

var loadBands = sync.OnceValue(func() bandTables {
	var t bandTables
	if err := yaml.Unmarshal(bandsYAML, &t); err != nil {
		panic(fmt.Sprintf("chart: embedded bands.yaml: %v", err))
	}
	return t
})

// referenceBands returns the choke reference impedance guide bands,
// ascending.
func referenceBands() []ImpedanceBand {
	return append([]ImpedanceBand(nil), loadBands().ReferenceBands...)
}

// amateurBands returns the labeled amateur-radio frequency bands,
// ascending.
func amateurBands() []FrequencyBand {
	return append([]FrequencyBand(nil), loadBands().AmateurBands...)
}
