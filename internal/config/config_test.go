package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/relaylink/skyplan/planerrors"
	"github.com/stretchr/testify/require"
)

const validTOML = `
altChange = 5.0
constraintTypeGS = "elevation"
constraintAngleGS = 0.2
constraintTypeSense = "nadir"
constraintAngleSense = 0.1
t2propagate = 3600
tStep = 1
distanceThreshold = 2000
slewThreshold = 0.05
islTimeThreshold = 150
downlinkTimeThreshold = 60
lightingRestraint = true
simTime = 3600
recon = true
isl = true
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesValidConfig(t *testing.T) {
	path := writeTempConfig(t, validTOML)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "elevation", cfg.ConstraintTypeGS)
	require.Equal(t, "nadir", cfg.ConstraintTypeSense)
	require.True(t, cfg.LightingRestraint)
	require.Equal(t, 3600.0, cfg.SimTimeSeconds)
}

func TestLoadRejectsNonPositiveTStep(t *testing.T) {
	path := writeTempConfig(t, `
constraintTypeGS = "elevation"
constraintTypeSense = "elevation"
t2propagate = 3600
tStep = 0
distanceThreshold = 2000
slewThreshold = 0.05
simTime = 3600
`)

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, planerrors.ErrConfiguration))
}

func TestLoadRejectsInvalidConstraintType(t *testing.T) {
	path := writeTempConfig(t, `
constraintTypeGS = "bogus"
constraintTypeSense = "elevation"
t2propagate = 3600
tStep = 1
distanceThreshold = 2000
slewThreshold = 0.05
simTime = 3600
`)

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, planerrors.ErrConfiguration))
}

func TestLoadRejectsInvertedDopplerBound(t *testing.T) {
	path := writeTempConfig(t, `
constraintTypeGS = "elevation"
constraintTypeSense = "elevation"
t2propagate = 3600
tStep = 1
distanceThreshold = 2000
slewThreshold = 0.05
simTime = 3600
dopplerBound = true
dopplerMin = 0.5
dopplerMax = 0.1
`)

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, planerrors.ErrConfiguration))
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	require.True(t, errors.Is(err, planerrors.ErrConfiguration))
}
