package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	configurationType = "yaml"

	warningConfigurationMessage = "error reading config file, using defaults"
	infoConfigurationMessage    = "using config file"
)

// LoadOptions controls how the configuration is discovered.
type LoadOptions struct {
	// RootDirectory is the folded directory; its ignore file is read.
	RootDirectory string
	// WorkingDirectory resolves a relative ConfigFilePath. Defaults to the process working directory.
	WorkingDirectory string
	// ConfigFilePath names the YAML configuration file. Defaults to utils.ConfigFileName.
	ConfigFilePath string
	Logger         *zap.Logger
}

// fileConfiguration mirrors Configuration with pointer fields so that keys absent
// from the file can be told apart from zero values.
type fileConfiguration struct {
	Exclude            *[]string `mapstructure:"exclude"`
	MaxFileSizeMB      *float64  `mapstructure:"max_file_size_mb"`
	IncludeBinaryFiles *bool     `mapstructure:"include_binary_files"`
	ShowProcessedFiles *bool     `mapstructure:"show_processed_files"`
	EstimateTokens     *bool     `mapstructure:"estimate_tokens"`
	TokenModel         *string   `mapstructure:"token_model"`
	TokenizerFile      *string   `mapstructure:"tokenizer_file"`
	UseGitignore       *bool     `mapstructure:"use_gitignore"`
}

// Load builds the configuration for one run. The ignore file's patterns are
// unioned into the defaults; a readable config file is then overlaid with its
// keys winning. A user exclude list replaces the default list and is itself
// extended with the ignore file's patterns. Unreadable or malformed files are
// logged as warnings and never fail the run.
func Load(options LoadOptions) Configuration {
	logger := utils.LoggerOrNop(options.Logger)

	ignorePatterns := loadProjectIgnorePatterns(options.RootDirectory, logger)
	configuration := Default()
	configuration.Exclude = unionPatterns(configuration.Exclude, ignorePatterns)

	configurationPath := resolveConfigurationPath(options.WorkingDirectory, options.ConfigFilePath)
	overlay, found, readError := readConfigurationFile(configurationPath)
	if readError != nil {
		logger.Warn(warningConfigurationMessage, zap.String("path", configurationPath), zap.Error(readError))
		return configuration
	}
	if !found {
		return configuration
	}
	logger.Debug(infoConfigurationMessage, zap.String("path", configurationPath))
	return overlay.applyTo(configuration, ignorePatterns)
}

func resolveConfigurationPath(workingDirectory string, configFilePath string) string {
	if configFilePath == "" {
		configFilePath = utils.ConfigFileName
	}
	if filepath.IsAbs(configFilePath) {
		return configFilePath
	}
	if workingDirectory == "" {
		absolutePath, absoluteError := filepath.Abs(configFilePath)
		if absoluteError != nil {
			return configFilePath
		}
		return absolutePath
	}
	return filepath.Join(workingDirectory, configFilePath)
}

// readConfigurationFile decodes path. found is false when the file does not exist.
func readConfigurationFile(path string) (fileConfiguration, bool, error) {
	info, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return fileConfiguration{}, false, nil
		}
		return fileConfiguration{}, false, statError
	}
	if info.IsDir() {
		return fileConfiguration{}, false, &os.PathError{Op: "read", Path: path, Err: errIsDirectory}
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType(configurationType)
	if readError := reader.ReadInConfig(); readError != nil {
		return fileConfiguration{}, false, readError
	}
	var overlay fileConfiguration
	if decodeError := reader.Unmarshal(&overlay); decodeError != nil {
		return fileConfiguration{}, false, decodeError
	}
	return overlay, true, nil
}

// applyTo returns base with every key present in the overlay replaced.
func (overlay fileConfiguration) applyTo(base Configuration, ignorePatterns []string) Configuration {
	result := base
	if overlay.Exclude != nil {
		result.Exclude = unionPatterns(*overlay.Exclude, ignorePatterns)
	}
	if overlay.MaxFileSizeMB != nil {
		result.MaxFileSizeMB = *overlay.MaxFileSizeMB
	}
	if overlay.IncludeBinaryFiles != nil {
		result.IncludeBinaryFiles = *overlay.IncludeBinaryFiles
	}
	if overlay.ShowProcessedFiles != nil {
		result.ShowProcessedFiles = *overlay.ShowProcessedFiles
	}
	if overlay.EstimateTokens != nil {
		result.EstimateTokens = *overlay.EstimateTokens
	}
	if overlay.TokenModel != nil && *overlay.TokenModel != "" {
		result.TokenModel = *overlay.TokenModel
	}
	if overlay.TokenizerFile != nil {
		result.TokenizerFile = *overlay.TokenizerFile
	}
	if overlay.UseGitignore != nil {
		result.UseGitignore = *overlay.UseGitignore
	}
	return result
}
