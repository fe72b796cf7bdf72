package config

const (
	defaultCatalogPath       = "MASTER-LIBRARY-LIST.md"
	defaultProgressPath      = "progress.json"
	defaultOutputDir         = "content"
	defaultLogDir            = "~/.local/share/galley/logs"
	defaultResearchDir       = "source-material"
	defaultGenerationBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultGenerationModel   = "anthropic/claude-sonnet-4.5"
	defaultGenerationProduct = "IronBarcode"
	defaultGenerationTimeout = 120
	defaultGenerationRetries = 3
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogPath:  defaultCatalogPath,
			ProgressPath: defaultProgressPath,
			OutputDir:    defaultOutputDir,
			LogDir:       defaultLogDir,
			ResearchDir:  defaultResearchDir,
		},
		Generation: Generation{
			BaseURL:        defaultGenerationBaseURL,
			Model:          defaultGenerationModel,
			Product:        defaultGenerationProduct,
			TimeoutSeconds: defaultGenerationTimeout,
			RetryAttempts:  defaultGenerationRetries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
