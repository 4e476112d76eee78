package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/connconf/internal/application"
	"github.com/eugenenazirov/connconf/internal/config"
	"github.com/eugenenazirov/connconf/internal/filestore"
	"github.com/eugenenazirov/connconf/internal/logging"
)

type options struct {
	request     application.Request
	format      string
	showSecrets bool
	logLevel    string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "connconf: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app := application.New(logger)
	cfg, err := app.Resolve(opts.request)
	if err != nil {
		logger.Error("failed to resolve configuration", zap.String("name", opts.request.Name), zap.Error(err))
		return err
	}

	out, err := application.Render(cfg, opts.format, opts.showSecrets)
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func parseArgs(args []string) (options, error) {
	kingpinApp := kingpin.New("connconf", "Resolves connection settings from system, user and explicit YAML files and environment variables")
	name := kingpinApp.Flag("name", "Logical configuration name used for {name}.yml and ~/.config/{name}/connection.yml").Default(filestore.Name).String()
	prefix := kingpinApp.Flag("prefix", "Environment variable prefix, variables are read as {PREFIX}_{FIELD}").Default(filestore.Prefix).String()
	fields := kingpinApp.Flag("field", "Required field (repeatable)").Default(filestore.Fields()...).Strings()
	types := kingpinApp.Flag("type", "Declared field type as field=string|int|float|bool (repeatable)").StringMap()
	file := kingpinApp.Flag("file", "Explicit YAML file merged last, overriding every other source").String()
	systemDir := kingpinApp.Flag("system-dir", "System configuration directory").Default("/etc").String()
	altSystemDir := kingpinApp.Flag("alt-system-dir", "Alternate system directory consulted before the system directory").Envar(config.AltSystemDirEnv).String()
	format := kingpinApp.Flag("format", "Output format").Default("yaml").Enum("yaml", "json")
	showSecrets := kingpinApp.Flag("show-secrets", "Print credential-like values instead of masking them").Bool()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").Default("info").String()

	if _, err := kingpinApp.Parse(args); err != nil {
		return options{}, err
	}

	declared, err := parseTypes(*types)
	if err != nil {
		return options{}, err
	}

	return options{
		request: application.Request{
			Name:         *name,
			Prefix:       *prefix,
			Fields:       *fields,
			Types:        declared,
			ExplicitPath: *file,
			SystemDir:    *systemDir,
			AltSystemDir: *altSystemDir,
		},
		format:      *format,
		showSecrets: *showSecrets,
		logLevel:    *logLevel,
	}, nil
}

// parseTypes overlays flag declarations on the default coercion rules.
func parseTypes(raw map[string]string) (map[string]config.Type, error) {
	types := config.DefaultTypes()
	for field, name := range raw {
		t, err := config.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("parse type for %q: %w", field, err)
		}
		types[field] = t
	}
	return types, nil
}
