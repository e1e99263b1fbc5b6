package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsign/docsign/internal/config"
	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/storage/sqlite"
)

func TestRenderProgress(t *testing.T) {
	tests := map[string]struct {
		values      []int
		expContains []string
		expNewline  bool
	}{
		"A mid-run value should draw a partial bar without ending the line.": {
			values:      []int{50},
			expContains: []string{"Uploading", " 50%"},
		},
		"The final value should end the line.": {
			values:      []int{100},
			expContains: []string{"100%"},
			expNewline:  true,
		},
		"Redraws should stay on one line until completion.": {
			values:      []int{0, 33, 66},
			expContains: []string{"\r"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			var buf bytes.Buffer
			render := renderProgress(&buf, "Uploading")
			for _, v := range test.values {
				render(v)
			}

			out := buf.String()
			for _, s := range test.expContains {
				assert.Contains(out, s)
			}
			assert.Equal(test.expNewline, strings.HasSuffix(out, "\n"))
		})
	}
}

func TestNewRepositorySelection(t *testing.T) {
	tests := map[string]struct {
		dbPath    func(t *testing.T) string
		expSQLite bool
	}{
		"A database path should select the SQLite repository.": {
			dbPath:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "docsign.db") },
			expSQLite: true,
		},
		"An empty database path should select the in-memory repository.": {
			dbPath:    func(t *testing.T) string { return "" },
			expSQLite: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			root := &RootCommand{Logger: log.Noop}
			cfg := config.Default()
			cfg.DBPath = test.dbPath(t)

			repo, err := root.NewRepository(context.Background(), &cfg)
			require.NoError(err)

			sqliteRepo, isSQLite := repo.(*sqlite.Repository)
			assert.Equal(test.expSQLite, isSQLite)
			if isSQLite {
				sqliteRepo.Close()
			}
		})
	}
}
