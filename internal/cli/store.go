package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/girassol/internal/config"
	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/keyring"
	"github.com/julianstephens/girassol/internal/logger"
	"github.com/julianstephens/girassol/internal/storage"
	"github.com/julianstephens/girassol/internal/storage/postgres"
	"github.com/julianstephens/girassol/internal/storage/sqlite"
)

const (
	defaultConfigDir = constants.DefaultConfigDir
	aiTimeout        = constants.DefaultAITimeout

	// KeyringTarget selects the connection string stored in the OS keyring
	KeyringTarget = "keyring"
)

// IsPostgres reports whether target is a PostgreSQL connection string
func IsPostgres(target string) bool {
	return postgres.IsConnString(target) || strings.Contains(target, "host=")
}

// OpenStore picks a provider for target: a PostgreSQL connection string,
// "keyring" for the one saved in the OS keyring, a .json file, or otherwise
// a SQLite database path.
func OpenStore(target string) (storage.Provider, error) {
	if target == KeyringTarget {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string found in keyring. Use 'girassol secret set-connection' to store one")
			}
			return nil, err
		}
		logger.Debug("Using connection string from keyring")
		// Stored strings may carry a password; the keyring is the supported place for it
		return postgres.New(connStr), nil
	}

	if IsPostgres(target) {
		if valid, err := postgres.ValidateConnString(target); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed. Store it with 'girassol secret set-connection' and use --store=keyring, or use .pgpass")
			}
			return nil, err
		}
		return postgres.New(target), nil
	}

	path, err := config.ExpandPath(target)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// SchemaMigrator is implemented by the SQL-backed providers
type SchemaMigrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (current, latest int, err error)
}
