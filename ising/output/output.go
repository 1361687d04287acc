// Package output writes run results to disk. It is a consumer of the core's
// data structures: the engine feeds it through Measurement callbacks and the
// returned Observables, and nothing in ising/ depends on it.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ising-sim/ising-sim/ising"
)

// PrepareDir creates the output directory, deleting it and all its contents
// first if it already exists.
func PrepareDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		logrus.Warnf("Output directory %s exists, deleting", dir)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("deleting existing output directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// fileName returns the zero-padded per-ensemble file name, e.g. "0003.dat".
func fileName(ensemble int, extension string) string {
	return fmt.Sprintf("%04d%s", ensemble, extension)
}

// metadataHeader renders the comment line identifying an ensemble.
func metadataHeader(params ising.Parameters, lat *ising.Lattice) string {
	shape := lat.Shape()
	parts := make([]string, len(shape))
	for i, extent := range shape {
		parts[i] = strconv.Itoa(extent)
	}
	return fmt.Sprintf("# J=%g h=%g shape=[%s]\n", params.JT, params.HT, strings.Join(parts, ", "))
}

func formatRow(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// WriteObservables writes the observable histories of one ensemble to
// <dir>/<ensemble>.dat: a metadata header, the energy history, the
// magnetisation history, and one "corr <sqDistance>, ..." line per squared
// distance in the correlator.
func WriteObservables(dir string, ensemble int, obs *ising.Observables, params ising.Parameters, lat *ising.Lattice) error {
	var sb strings.Builder
	sb.WriteString(metadataHeader(params, lat))
	sb.WriteString(formatRow(obs.Energy))
	sb.WriteByte('\n')
	sb.WriteString(formatRow(obs.Magnetisation))
	sb.WriteByte('\n')
	for di, sqd := range obs.Corr.SqDistances {
		sb.WriteString(fmt.Sprintf("corr %d, ", sqd))
		sb.WriteString(formatRow(obs.Corr.History[di]))
		sb.WriteByte('\n')
	}

	path := filepath.Join(dir, fileName(ensemble, ".dat"))
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing observables: %w", err)
	}
	return nil
}

// AppendConfiguration appends one configuration snapshot as a row of spins to
// <dir>/<ensemble>.cfg, writing the metadata header first when the file does
// not exist yet.
func AppendConfiguration(dir string, ensemble int, cfg *ising.Configuration, params ising.Parameters, lat *ising.Lattice) error {
	path := filepath.Join(dir, fileName(ensemble, ".cfg"))

	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening configuration file: %w", err)
	}
	defer f.Close()

	if os.IsNotExist(statErr) {
		if _, err := f.WriteString(metadataHeader(params, lat)); err != nil {
			return fmt.Errorf("writing configuration header: %w", err)
		}
	}

	spins := cfg.Spins()
	parts := make([]string, len(spins))
	for i, s := range spins {
		parts[i] = strconv.Itoa(int(s))
	}
	if _, err := f.WriteString(strings.Join(parts, ", ") + "\n"); err != nil {
		return fmt.Errorf("writing configuration row: %w", err)
	}
	return nil
}

// SnapshotWriter returns a Measurement that appends the current configuration
// to the ensemble's .cfg file after every sweep. Write failures are logged
// and do not interrupt the run.
func SnapshotWriter(dir string, ensemble int, params ising.Parameters, lat *ising.Lattice) ising.Measurement {
	return func(cfg *ising.Configuration, energy float64) {
		if err := AppendConfiguration(dir, ensemble, cfg, params, lat); err != nil {
			logrus.Errorf("Snapshot write for ensemble %d failed: %v", ensemble, err)
		}
	}
}
