package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	configurationFileHeader = "# foldup configuration\n# exclude patterns are matched as substrings of each path relative to the folded directory.\n"
	yamlIndentation         = 2
)

// ErrConfigurationExists is returned when InitializeConfiguration would overwrite a file without Force.
var ErrConfigurationExists = errors.New("configuration file already exists")

var errIsDirectory = errors.New("is a directory")

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Directory string
	FileName  string
	Force     bool
}

// InitializeConfiguration writes the default configuration as YAML and returns the written path.
func InitializeConfiguration(options InitOptions) (string, error) {
	directory := options.Directory
	if directory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory for configuration: %w", err)
		}
		directory = currentDirectory
	}
	fileName := options.FileName
	if fileName == "" {
		fileName = utils.ConfigFileName
	}
	destinationPath := filepath.Join(directory, fileName)

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return "", fmt.Errorf("%w at %s", ErrConfigurationExists, destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, err)
	}

	rendered, renderError := RenderConfiguration(Default())
	if renderError != nil {
		return "", renderError
	}
	if err := os.WriteFile(destinationPath, rendered, 0o644); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}
	return destinationPath, nil
}

// RenderConfiguration encodes configuration as a commented YAML document.
func RenderConfiguration(configuration Configuration) ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteString(configurationFileHeader)
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(yamlIndentation)
	if err := encoder.Encode(configuration); err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	return buffer.Bytes(), nil
}
