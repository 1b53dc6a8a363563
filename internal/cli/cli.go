// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nathanclairmonte/foldup/internal/commands"
	"github.com/nathanclairmonte/foldup/internal/config"
	"github.com/nathanclairmonte/foldup/internal/output"
	"github.com/nathanclairmonte/foldup/internal/services/clipboard"
	"github.com/nathanclairmonte/foldup/internal/services/remote"
	"github.com/nathanclairmonte/foldup/internal/tokenizer"
	"github.com/nathanclairmonte/foldup/internal/utils"
)

const (
	outputFlagName         = "output"
	outputFlagShorthand    = "o"
	configFlagName         = "config"
	configFlagShorthand    = "c"
	maxSizeFlagName        = "max-size"
	showFilesFlagName      = "show-files"
	showFilesFlagShorthand = "s"
	tokensFlagName         = "estimate-tokens"
	tokensFlagShorthand    = "t"
	modelFlagName          = "model"
	useGitignoreFlagName   = "use-gitignore"
	clipboardFlagName      = "clipboard"
	versionFlagName        = "version"

	outputFlagDescription       = "output file path"
	configFlagDescription       = "config file path"
	maxSizeFlagDescription      = "maximum file size in MB to process"
	showFilesFlagDescription    = "list processed and skipped files in the summary"
	tokensFlagDescription       = "estimate the token count of the generated document"
	modelFlagDescription        = "tokenizer model used for token estimation"
	useGitignoreFlagDescription = "also exclude paths matched by the target's .gitignore"
	clipboardFlagDescription    = "copy the generated document to the clipboard"
	versionFlagDescription      = "display application version"

	defaultPath          = "."
	versionTemplate      = "foldup version: %s\n"
	rootUse              = "foldup [path]"
	rootShortDescription = "Fold a codebase into a single markdown file"
	rootLongDescription  = `foldup walks a directory and writes one markdown document containing an
ASCII tree of the project followed by the contents of every included file in a
fenced code block. Exclusions come from the config file, a .foldignore file in
the target directory, and the file size limit. The target may also be a git
repository URL, which is shallow-cloned into a temporary directory.`
	rootUsageExample = `  # Fold the current directory into codebase.md
  foldup

  # Fold a project with a larger size limit and list every file
  foldup ./service --max-size 2.5 --show-files

  # Fold a remote repository and estimate tokens
  foldup https://github.com/example/project.git -t`

	// errorPathMissingFormat reports a missing target path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// workingDirectoryErrorFormat reports failure to determine the working directory.
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorGitIgnoreFormat reports failure to read the target's .gitignore.
	errorGitIgnoreFormat = "loading .gitignore: %w"
	// errorWriteOutputFormat reports failure to write the generated document.
	errorWriteOutputFormat = "writing %s: %w"

	warningCleanupMessage = "could not remove temporary checkout"
)

// runDependencies holds the collaborators a run talks to outside the filesystem.
type runDependencies struct {
	logger         *zap.Logger
	copier         clipboard.Copier
	estimateTokens func(configuration tokenizer.Config, text string, logger *zap.Logger) int
}

// runOptions captures the command line flags of a run.
type runOptions struct {
	outputPath     string
	configPath     string
	maxFileSizeMB  float64
	showFiles      bool
	estimateTokens bool
	tokenModel     string
	useGitignore   bool
	copyClipboard  bool
	showVersion    bool
}

// Execute runs the foldup application.
func Execute(logger *zap.Logger) error {
	dependencies := runDependencies{
		logger:         utils.LoggerOrNop(logger),
		copier:         clipboard.NewService(),
		estimateTokens: tokenizer.Estimate,
	}
	return createRootCommand(dependencies).Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies runDependencies) *cobra.Command {
	var options runOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			target := defaultPath
			if len(arguments) > 0 {
				target = arguments[0]
			}
			return runFold(command, target, options, dependencies)
		},
	}

	flags := rootCommand.Flags()
	flags.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, utils.DefaultOutputFileName, outputFlagDescription)
	flags.StringVarP(&options.configPath, configFlagName, configFlagShorthand, utils.ConfigFileName, configFlagDescription)
	flags.Float64Var(&options.maxFileSizeMB, maxSizeFlagName, config.DefaultMaxFileSizeMB, maxSizeFlagDescription)
	flags.BoolVarP(&options.showFiles, showFilesFlagName, showFilesFlagShorthand, false, showFilesFlagDescription)
	flags.BoolVarP(&options.estimateTokens, tokensFlagName, tokensFlagShorthand, false, tokensFlagDescription)
	flags.StringVar(&options.tokenModel, modelFlagName, config.DefaultTokenModel, modelFlagDescription)
	flags.BoolVar(&options.useGitignore, useGitignoreFlagName, false, useGitignoreFlagDescription)
	flags.BoolVar(&options.copyClipboard, clipboardFlagName, false, clipboardFlagDescription)
	flags.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	return rootCommand
}

// runFold generates, writes, and reports one document.
func runFold(command *cobra.Command, target string, options runOptions, dependencies runDependencies) error {
	logger := utils.LoggerOrNop(dependencies.logger)

	rootPath, cleanup, resolveError := resolveTarget(command.Context(), target, logger)
	if resolveError != nil {
		return resolveError
	}
	defer cleanup()

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	configuration := config.Load(config.LoadOptions{
		RootDirectory:    rootPath,
		WorkingDirectory: workingDirectory,
		ConfigFilePath:   options.configPath,
		Logger:           logger,
	})
	configuration = applyFlagOverrides(command, configuration, options)

	documentOptions := commands.Options{
		ExcludePatterns: configuration.Exclude,
		MaxFileSizeMB:   configuration.MaxFileSizeMB,
	}
	if configuration.UseGitignore {
		matcher, matcherError := utils.LoadGitIgnoreMatcher(rootPath)
		if matcherError != nil {
			return fmt.Errorf(errorGitIgnoreFormat, matcherError)
		}
		documentOptions.GitIgnore = matcher
	}

	standardOutput := command.OutOrStdout()
	output.PrintProcessing(standardOutput, rootPath)
	document, generateError := commands.GenerateDocument(rootPath, documentOptions)
	if generateError != nil {
		return generateError
	}
	if writeError := output.WriteDocument(options.outputPath, document.Content); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, options.outputPath, writeError)
	}

	if options.copyClipboard && dependencies.copier != nil {
		clipboard.CopyDocument(dependencies.copier, document.Content, logger)
	}

	summary := output.Summary{
		RootPath:       rootPath,
		OutputPath:     options.outputPath,
		OutputSize:     int64(len(document.Content)),
		Statistics:     document.Statistics,
		ShowFileLists:  configuration.ShowProcessedFiles,
		EstimateTokens: configuration.EstimateTokens,
	}
	if configuration.EstimateTokens && dependencies.estimateTokens != nil {
		tokenizerConfig := tokenizer.Config{Model: configuration.TokenModel, TokenizerFile: configuration.TokenizerFile}
		summary.TokenCount = dependencies.estimateTokens(tokenizerConfig, document.Content, logger)
	}
	output.PrintSummary(standardOutput, summary)
	return nil
}

// resolveTarget returns the absolute directory to fold and a cleanup function.
// Git URLs are cloned into a temporary directory removed by cleanup.
func resolveTarget(ctx context.Context, target string, logger *zap.Logger) (string, func(), error) {
	noCleanup := func() {}
	if remote.IsGitURL(target) {
		if _, statError := os.Stat(target); statError != nil {
			if ctx == nil {
				ctx = context.Background()
			}
			checkout, cloneError := remote.Clone(ctx, target, logger)
			if cloneError != nil {
				return "", noCleanup, cloneError
			}
			cleanup := func() {
				if cleanupError := checkout.Cleanup(); cleanupError != nil {
					logger.Warn(warningCleanupMessage, zap.String("path", checkout.Path), zap.Error(cleanupError))
				}
			}
			return checkout.Path, cleanup, nil
		}
	}

	if _, statError := os.Stat(target); statError != nil {
		if os.IsNotExist(statError) {
			return "", noCleanup, fmt.Errorf(errorPathMissingFormat, target)
		}
		return "", noCleanup, fmt.Errorf(errorStatFormat, target, statError)
	}
	absolutePath, absoluteError := filepath.Abs(target)
	if absoluteError != nil {
		return "", noCleanup, fmt.Errorf(errorAbsolutePathFormat, target, absoluteError)
	}
	return absolutePath, noCleanup, nil
}

// applyFlagOverrides lets flags the user actually set win over configuration values.
func applyFlagOverrides(command *cobra.Command, configuration config.Configuration, options runOptions) config.Configuration {
	flags := command.Flags()
	if flags.Changed(maxSizeFlagName) {
		configuration.MaxFileSizeMB = options.maxFileSizeMB
	}
	if flags.Changed(showFilesFlagName) {
		configuration.ShowProcessedFiles = options.showFiles
	}
	if flags.Changed(tokensFlagName) {
		configuration.EstimateTokens = options.estimateTokens
	}
	if flags.Changed(modelFlagName) {
		configuration.TokenModel = options.tokenModel
	}
	if flags.Changed(useGitignoreFlagName) {
		configuration.UseGitignore = options.useGitignore
	}
	return configuration
}
