package engine

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// SaveQLearnState persists the Q-table and current epsilon to two
// sibling files: qtablePath (numStates*numActions little-endian doubles,
// shape implied by g's core count) and epsPath
// (a single little-endian float64).
func SaveQLearnState(g *QLearnGrouper, qtablePath, epsPath string) error {
	f, err := os.Create(qtablePath)
	if err != nil {
		return fmt.Errorf("creating qtable file: %w", err)
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, g.qtable); err != nil {
		return fmt.Errorf("writing qtable body: %w", err)
	}

	ef, err := os.Create(epsPath)
	if err != nil {
		return fmt.Errorf("creating epsilon file: %w", err)
	}
	defer ef.Close()
	if err := binary.Write(ef, binary.LittleEndian, g.cfg.Epsilon); err != nil {
		return fmt.Errorf("writing epsilon: %w", err)
	}

	logrus.Infof("q-learning: saved q-table (%d states x %d actions) and epsilon=%.4f",
		g.numStates, g.numActions, g.cfg.Epsilon)
	return nil
}

// LoadQLearnState attempts to populate g's Q-table and epsilon from
// qtablePath/epsPath. The file carries no shape header (spec.md §6): the
// expected size is g.numStates*g.numActions doubles, derived from g's own
// core count. A missing file, a size that doesn't match that
// expectation, or a truncated read logs a notice and leaves g's
// freshly-initialized zero table untouched rather than failing the run
// (spec.md §7).
func LoadQLearnState(g *QLearnGrouper, qtablePath, epsPath string) {
	f, err := os.Open(qtablePath)
	if err != nil {
		logrus.Infof("q-learning: no persisted q-table at %s, starting fresh", qtablePath)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logrus.Warnf("q-learning: cannot stat %s, discarding and reinitializing", qtablePath)
		return
	}
	wantLen := g.numStates * g.numActions
	wantBytes := int64(wantLen) * 8
	if info.Size() != wantBytes {
		logrus.Warnf("q-learning: size mismatch in %s (found %d bytes, expected %d for %dx%d), discarding and reinitializing",
			qtablePath, info.Size(), wantBytes, g.numStates, g.numActions)
		return
	}

	table := make([]float64, wantLen)
	if err := binary.Read(f, binary.LittleEndian, table); err != nil {
		logrus.Warnf("q-learning: truncated body in %s, discarding and reinitializing", qtablePath)
		return
	}
	g.qtable = table

	ef, err := os.Open(epsPath)
	if err != nil {
		logrus.Infof("q-learning: no persisted epsilon at %s, keeping configured epsilon=%.4f", epsPath, g.cfg.Epsilon)
		return
	}
	defer ef.Close()
	var eps float64
	if err := binary.Read(ef, binary.LittleEndian, &eps); err != nil {
		logrus.Warnf("q-learning: truncated epsilon file %s, keeping configured epsilon=%.4f", epsPath, g.cfg.Epsilon)
		return
	}
	g.cfg.Epsilon = eps

	logrus.Infof("q-learning: loaded q-table (%d states x %d actions) and epsilon=%.4f from %s",
		g.numStates, g.numActions, g.cfg.Epsilon, qtablePath)
}
