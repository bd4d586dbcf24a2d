package config

const (
	defaultStoreDir       = "~/.local/share/tagreview/stores"
	defaultExportDir      = "~/.local/share/tagreview/exports"
	defaultLogDir         = "~/.local/share/tagreview/logs"
	defaultBusyTimeoutMS  = 5000
	defaultArrayDelimiter = ","
	defaultTagDelimiter   = ", "
	defaultExportFormat   = "xlsx"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StoreDir:  defaultStoreDir,
			ExportDir: defaultExportDir,
			LogDir:    defaultLogDir,
		},
		Store: Store{
			BusyTimeoutMS: defaultBusyTimeoutMS,
		},
		Import: Import{
			ArrayDelimiter: defaultArrayDelimiter,
		},
		Export: Export{
			TagDelimiter: defaultTagDelimiter,
			Format:       defaultExportFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
