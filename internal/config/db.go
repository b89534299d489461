package config

// Gorm engines.
const (
	GormEngineMySQL    = "mysql"
	GormEnginePostgres = "postgres"
	GormEngineSQLite   = "sqlite"
)

// Storage drivers.
const (
	StorageDriverGorm     = "gorm"
	StorageDriverMySQL    = "mysql"
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
	StorageDriverNone     = "none"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string // extra DSN parameters, e.g. "parseTime=true" or "sslmode=disable"
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, or the file path for sqlite
	GormEngine string // mysql, postgres or sqlite
}

// Storage selects the key/value backend of the briefboard.
type Storage struct {
	// Driver is gorm (settings table of DB), mysql or postgres (gofiber storage),
	// memory (process memory) or none (nothing is persisted).
	Driver string
	// Table used by the mysql and postgres drivers.
	Table string
}
