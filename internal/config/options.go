package config

const (
	defaultLogFile            = "jebman.log"
	defaultLogLevel           = "info"
	defaultLogFileMaxSize     = 20
	defaultLogFileMaxBackups  = 3
	defaultLogFileMaxAge      = 28
	defaultLogCompress        = false
	defaultPort               = 8585
	defaultHost               = "127.0.0.1"
	defaultLibrary            = "/var/opt/jebman"
	defaultDatabaseFile       = "metadata.db"
)

var defaultSupportedTypes = []string{"epub", "pdf"}

// Why use mapstructure instead of json: viper unmarshals through
// mapstructure, so json field tags are not recognized.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// Library is the managed library root, holding the catalog database
	// and the organized book files
	Library string `mapstructure:"library"`
	// DSN is the path of the catalog database, derived from Library
	DSN string `mapstructure:"dsn"`
	// Host and Port are used by the serve command
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// SupportedTypes is the supported book file extensions
	SupportedTypes []string `mapstructure:"supported_types"`
}

func DefaultOptions() *Options {
	return &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Port:              defaultPort,
		Host:              defaultHost,
		Library:           defaultLibrary,
		SupportedTypes:    defaultSupportedTypes,
	}
}

// CheckSupportedTypes checks if the file extension is supported.
func (o *Options) CheckSupportedTypes(fileType string) bool {
	for _, t := range o.SupportedTypes {
		if t == fileType {
			return true
		}
	}
	return false
}
