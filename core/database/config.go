package database

// Config holds configuration for the relational sink connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"5432"`
	// User is the database user.
	User string `mapstructure:"user" default:"postgres"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// DBName is the database name.
	DBName string `mapstructure:"dbname" default:"postgres"`
	// Options carries extra server options, e.g. "-c search_path=provisioning".
	Options string `mapstructure:"options" default:""`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
