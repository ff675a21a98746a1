package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubebenders/backend/internal/domain"
)

const testCatalog = `
- id: 1
  name: JD2 Model 32
  brand: JD2
  country: USA
  power_type: Manual
  price_range: "$780"
  max_diameter: 2"
  mandrel: Available
- id: 2
  name: Baileigh RDB-250
  brand: Baileigh
  country: United States
  power_type: Hydraulic
  price_range: "$3,200"
  max_diameter: 2.5"
- id: 3
  name: Acme Economy
  brand: Acme
  country: China
  price_range: "$450"
  max_diameter: 1-1/2"
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	path := writeCatalog(t)

	t.Run("table lists every product", func(t *testing.T) {
		out, err := run(t, "score", path)
		require.NoError(t, err)
		for _, name := range []string{"JD2 Model 32", "Baileigh RDB-250", "Acme Economy"} {
			assert.Contains(t, out, name)
		}
		assert.Contains(t, out, "/100")
	})

	t.Run("json keeps catalog order", func(t *testing.T) {
		out, err := run(t, "score", path, "--format", "json")
		require.NoError(t, err)

		var items []domain.ScoredProduct
		require.NoError(t, json.Unmarshal([]byte(out), &items))
		require.Len(t, items, 3)
		assert.Equal(t, 1, items[0].Product.ID)
		assert.Equal(t, 2, items[1].Product.ID)
		assert.Equal(t, 3, items[2].Product.ID)
		for _, item := range items {
			assert.Len(t, item.Score.Criteria, 11)
			assert.NotZero(t, item.Rank)
		}
	})

	t.Run("breakdown for one product", func(t *testing.T) {
		out, err := run(t, "score", path, "--id", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "JD2 Model 32")
		assert.Contains(t, out, "Value for Money")
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := run(t, "score", path, "--id", "9")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("missing catalog argument", func(t *testing.T) {
		_, err := run(t, "score")
		assert.Error(t, err)
	})
}

func TestRankCommand(t *testing.T) {
	path := writeCatalog(t)

	t.Run("filters and sorts", func(t *testing.T) {
		out, err := run(t, "rank", path, "--usa-only", "--sort", "price-asc", "-f", "json")
		require.NoError(t, err)

		var items []domain.ScoredProduct
		require.NoError(t, json.Unmarshal([]byte(out), &items))
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[0].Product.ID)
		assert.Equal(t, 2, items[1].Product.ID)
	})

	t.Run("limit", func(t *testing.T) {
		out, err := run(t, "rank", path, "--limit", "1", "-f", "json")
		require.NoError(t, err)

		var items []domain.ScoredProduct
		require.NoError(t, json.Unmarshal([]byte(out), &items))
		assert.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Rank)
	})

	t.Run("rejects bad price category", func(t *testing.T) {
		_, err := run(t, "rank", path, "--price-category", "cheap")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid filters")
	})
}

func TestMatchCommand(t *testing.T) {
	path := writeCatalog(t)

	t.Run("basic finder", func(t *testing.T) {
		out, err := run(t, "match", path, "--budget", "1000", "--usa-only", "-f", "json")
		require.NoError(t, err)

		var results []domain.MatchResult
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 2)
		assert.Equal(t, 1, results[0].Product.ID)
		assert.Equal(t, 50, results[0].Score)
		assert.Equal(t, 3, results[1].Product.ID)
	})

	t.Run("no matches message", func(t *testing.T) {
		out, err := run(t, "match", path, "--budget", "100")
		require.NoError(t, err)
		assert.Contains(t, out, "No tube benders match")
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := run(t, "match", path, "--strategy", "psychic")
		assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
	})

	t.Run("invalid experience", func(t *testing.T) {
		_, err := run(t, "match", path, "-s", "enhanced", "--experience", "wizard")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid criteria")
	})
}

func TestUnknownFormat(t *testing.T) {
	_, err := run(t, "score", writeCatalog(t), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestFormatFromEnvironment(t *testing.T) {
	t.Setenv("BENDERCTL_FORMAT", "json")

	out, err := run(t, "rank", writeCatalog(t))
	require.NoError(t, err)

	var items []domain.ScoredProduct
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Len(t, items, 3)
}
