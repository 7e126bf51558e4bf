package config

// Config is the root configuration structure
type Config struct {
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
	Audit   AuditConfig   `yaml:"audit"`
	Log     LogConfig     `yaml:"log"`
	Network NetworkConfig `yaml:"network"`
}

// StorageConfig selects where Save and Load go
type StorageConfig struct {
	Backend       Backend `yaml:"backend"`
	Dir           string  `yaml:"dir"`                      // text backend: directory of <name>.txt files
	SQLitePath    string  `yaml:"sqlite_path"`              // sqlite backend: database file
	KeepSnapshots int     `yaml:"keep_snapshots,omitempty"` // sqlite backend: 0 keeps all
}

// AuditConfig configures the operator audit log
type AuditConfig struct {
	Path   string `yaml:"path"` // empty disables the file recorder
	Format string `yaml:"format,omitempty"`
}

// LogConfig configures diagnostic logging on stderr
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NetworkConfig holds domain defaults for the interactive shell
type NetworkConfig struct {
	Diameters         []int `yaml:"diameters"`           // offered in the connect prompt
	DefaultPipeLength int   `yaml:"default_pipe_length"` // length of pipes provisioned by connect
}
