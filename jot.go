package jot

import (
	"log/slog"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/transfer"
)

// Version of the library and the jot command.
const Version = "0.3.0"

// --- Types ---

// Note is a public alias for the note entity.
type Note = core.Note

// Service is a public alias for the note repository.
type Service = core.Service

// Codec is a public alias for the import/export codec.
type Codec = transfer.Codec

// Config is the file/environment configuration.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring jot.
type Option = platform.Option

// WithLogger sets the logger for the service and its storage.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage backend.
func WithStorage(storage core.Storage) Option {
	return platform.WithStorage(storage)
}

// WithAdapter selects the storage backend by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithKey sets the storage key holding the collection.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the fs storage in read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithEventBuffer sets the size of the watch channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithRedisAuth sets the redis password and database.
func WithRedisAuth(password string, db int) Option {
	return platform.WithRedisAuth(password, db)
}

// WithRedisPrefix namespaces redis keys.
func WithRedisPrefix(prefix string) Option {
	return platform.WithRedisPrefix(prefix)
}

// WithServiceOptions forwards options to the service (clock, id generator).
func WithServiceOptions(opts ...core.ServiceOption) Option {
	return platform.WithServiceOptions(opts...)
}

// --- Factory ---

// New creates a new jot Service.
func New(uri string, opts ...Option) (*core.Service, error) {
	return platform.New(uri, opts...)
}

// Init opens a storage backend explicitly.
func Init(uri string, opts ...Option) (core.Storage, error) {
	return platform.Init(uri, opts...)
}

// NewCodec creates an import/export codec over svc.
func NewCodec(svc *core.Service, logger *slog.Logger) *transfer.Codec {
	return transfer.NewCodec(svc, logger)
}

// --- Utils ---

// LoadConfig reads jot.yaml (or file) and JOT_* environment variables.
func LoadConfig(file string, searchDirs ...string) (Config, error) {
	return platform.LoadConfig(file, searchDirs...)
}

// FindRoot recursively looks upwards for a .jot directory or jot.yaml.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// ResolveDataDir returns the data directory for startDir.
func ResolveDataDir(startDir string) (string, error) {
	return platform.ResolveDataDir(startDir)
}
