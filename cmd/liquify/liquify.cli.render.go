package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/itsatony/go-liquify"
	"gopkg.in/yaml.v3"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath string
	dataYAML     string
	dataFilePath string
	outputPath   string
	strict       bool
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	// Read template
	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	// Parse data
	data, err := loadData(cfg.dataYAML, cfg.dataFilePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidYAML, err)
		return ExitCodeInputError
	}

	// Create engine and render
	engine := newEngine(cfg.strict)
	result, err := engine.Render(context.Background(), string(templateSource), data)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	// Write output
	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.dataYAML, FlagData, "", "")
	fs.StringVar(&cfg.dataYAML, FlagDataShort, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFile, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFileShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.BoolVar(&cfg.strict, FlagStrict, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Validation
	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}

// newEngine builds an engine in the requested syntax mode.
func newEngine(strict bool) *liquify.Engine {
	if strict {
		return liquify.MustNew(liquify.WithSyntaxMode(liquify.SyntaxStrict))
	}
	return liquify.MustNew()
}

// loadData parses inline YAML or a YAML file into template data.
// The file takes precedence when both are given.
func loadData(yamlStr, filePath string) (map[string]any, error) {
	var yamlData []byte

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		yamlData = data
	} else if yamlStr != "" {
		yamlData = []byte(yamlStr)
	} else {
		// No data provided, return empty map
		return make(map[string]any), nil
	}

	var result map[string]any
	if err := yaml.Unmarshal(yamlData, &result); err != nil {
		return nil, err
	}

	return result, nil
}
