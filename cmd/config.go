package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ising-sim/ising-sim/ising"
)

// runConfig is the raw YAML structure of a run input file.
type runConfig struct {
	Lattice struct {
		Shape []int `yaml:"shape"`
	} `yaml:"lattice"`
	RNG struct {
		Seed int64 `yaml:"seed"`
	} `yaml:"rng"`
	Parameters struct {
		J floatSeq `yaml:"J"`
		H floatSeq `yaml:"h"`
	} `yaml:"parameters"`
	MC struct {
		NThermInit int    `yaml:"ntherm_init"`
		NTherm     intSeq `yaml:"ntherm"`
		NProd      intSeq `yaml:"nprod"`
		Start      string `yaml:"start"`
	} `yaml:"mc"`
	WriteCfg   bool `yaml:"write_cfg"`
	Correlator struct {
		Enabled     bool    `yaml:"enabled"`
		MaxDistance float64 `yaml:"max_distance"`
		Metric      string  `yaml:"metric"`
	} `yaml:"correlator"`
}

// RunSpec is the validated, broadcast form of a run input file, ready to be
// handed to the ising package.
type RunSpec struct {
	Shape      []int
	Seed       int64
	NThermInit int
	Points     []ising.PointConfig
	Start      ising.StartMode
	WriteCfg   bool
	Correlator *ising.CorrelatorConfig
}

// floatSeq accepts either a YAML scalar or a sequence of floats; a scalar is
// read as a one-element sequence so it can be broadcast later.
type floatSeq []float64

func (s *floatSeq) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		*s = floatSeq{v}
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := value.Decode(&vs); err != nil {
			return err
		}
		*s = floatSeq(vs)
		return nil
	}
	return fmt.Errorf("line %d: expected scalar or sequence", value.Line)
}

// intSeq accepts either a YAML scalar or a sequence of ints.
type intSeq []int

func (s *intSeq) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v int
		if err := value.Decode(&v); err != nil {
			return err
		}
		*s = intSeq{v}
		return nil
	case yaml.SequenceNode:
		var vs []int
		if err := value.Decode(&vs); err != nil {
			return err
		}
		*s = intSeq(vs)
		return nil
	}
	return fmt.Errorf("line %d: expected scalar or sequence", value.Line)
}

// broadcastParams pairs up the J and h sequences. If both have more than one
// entry their lengths must match; a single-entry sequence is broadcast to the
// other's length.
func broadcastParams(j, h []float64) ([]ising.Parameters, error) {
	if len(j) == 0 || len(h) == 0 {
		return nil, fmt.Errorf("parameters J and h must both be given: %w", ising.ErrInvalidArgument)
	}
	if len(j) > 1 && len(h) > 1 && len(j) != len(h) {
		return nil, fmt.Errorf("J and h are sequences of different lengths %d and %d: %w",
			len(j), len(h), ising.ErrInvalidArgument)
	}

	n := max(len(j), len(h))
	params := make([]ising.Parameters, n)
	for i := range params {
		params[i] = ising.Parameters{JT: j[min(i, len(j)-1)], HT: h[min(i, len(h)-1)]}
	}
	return params, nil
}

// broadcastSweeps checks a sweep-count sequence against the number of
// parameter points, broadcasting a single entry to all points.
func broadcastSweeps(name string, counts []int, nPoints int) ([]int, error) {
	switch {
	case len(counts) == 0:
		return nil, fmt.Errorf("%s must be given: %w", name, ising.ErrInvalidArgument)
	case len(counts) == 1:
		out := make([]int, nPoints)
		for i := range out {
			out[i] = counts[0]
		}
		return out, nil
	case len(counts) != nPoints:
		return nil, fmt.Errorf("%s has %d entries for %d parameter points: %w",
			name, len(counts), nPoints, ising.ErrInvalidArgument)
	}
	return counts, nil
}

func parseMetric(s string) (ising.DistanceMetric, error) {
	switch s {
	case "", "euclidean":
		return ising.Euclidean, nil
	case "manhattan":
		return ising.Manhattan, nil
	}
	return 0, fmt.Errorf("distance metric %q, must be \"euclidean\" or \"manhattan\": %w", s, ising.ErrInvalidArgument)
}

// LoadRunSpec reads and validates a YAML run input file. Parsing is strict:
// unknown fields are an error.
func LoadRunSpec(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	return parseRunSpec(data)
}

func parseRunSpec(data []byte) (*RunSpec, error) {
	var raw runConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}

	params, err := broadcastParams(raw.Parameters.J, raw.Parameters.H)
	if err != nil {
		return nil, err
	}
	ntherm, err := broadcastSweeps("mc.ntherm", raw.MC.NTherm, len(params))
	if err != nil {
		return nil, err
	}
	nprod, err := broadcastSweeps("mc.nprod", raw.MC.NProd, len(params))
	if err != nil {
		return nil, err
	}
	start, err := ising.ParseStartMode(raw.MC.Start)
	if err != nil {
		return nil, err
	}

	spec := &RunSpec{
		Shape:      raw.Lattice.Shape,
		Seed:       raw.RNG.Seed,
		NThermInit: raw.MC.NThermInit,
		Start:      start,
		WriteCfg:   raw.WriteCfg,
	}
	for i, p := range params {
		spec.Points = append(spec.Points, ising.PointConfig{Params: p, NTherm: ntherm[i], NProd: nprod[i]})
	}
	if raw.Correlator.Enabled {
		metric, err := parseMetric(raw.Correlator.Metric)
		if err != nil {
			return nil, err
		}
		spec.Correlator = &ising.CorrelatorConfig{MaxDistance: raw.Correlator.MaxDistance, Metric: metric}
	}
	return spec, nil
}
