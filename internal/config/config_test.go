package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsign/docsign/internal/config"
)

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		file   string
		expCfg config.Config
		expErr bool
	}{
		"A full config file should override every default.": {
			file: `
upload_duration: 500ms
send_duration: 1s
sign_duration: 3s
max_upload_files: 5
db_path: /tmp/docsign.db
`,
			expCfg: config.Config{
				UploadDuration: config.Duration(500 * time.Millisecond),
				SendDuration:   config.Duration(time.Second),
				SignDuration:   config.Duration(3 * time.Second),
				MaxUploadFiles: 5,
				DBPath:         "/tmp/docsign.db",
			},
		},

		"A partial config file should keep the defaults for the rest.": {
			file: `
send_duration: 250ms
`,
			expCfg: config.Config{
				UploadDuration: config.Duration(2 * time.Second),
				SendDuration:   config.Duration(250 * time.Millisecond),
				SignDuration:   config.Duration(2 * time.Second),
				MaxUploadFiles: 10,
				DBPath:         config.Default().DBPath,
			},
		},

		"Emptying the db path should select the in-memory store.": {
			file: `
db_path: ""
`,
			expCfg: config.Config{
				UploadDuration: config.Duration(2 * time.Second),
				SendDuration:   config.Duration(2 * time.Second),
				SignDuration:   config.Duration(2 * time.Second),
				MaxUploadFiles: 10,
				DBPath:         "",
			},
		},

		"An invalid duration should fail.": {
			file:   `upload_duration: fast`,
			expErr: true,
		},

		"A non-positive file cap should fail.": {
			file:   `max_upload_files: 0`,
			expErr: true,
		},

		"Broken YAML should fail.": {
			file:   `upload_duration: [`,
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(os.WriteFile(path, []byte(test.file), 0o600))

			cfg, err := config.Load(path)

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Equal(test.expCfg, *cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(err)
	assert.Equal(config.Default(), *cfg)
}

func TestDefaultDBPath(t *testing.T) {
	cfg := config.Default()

	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "docsign.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, ".docsign", filepath.Base(filepath.Dir(cfg.DBPath)))
}
