package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/veldran/tabgen"
	"github.com/veldran/tabgen/schema"
)

var (
	shellName         string
	prefix            string
	preamble          string
	progOverride      string
	outputPath        string
	verbosity         int
	errorUnresolvable bool

	log = logrus.New()
)

// rootCmd generates a completion script from a schema file to stdout.
var rootCmd = &cobra.Command{
	Use:           "tabgen <schema.yaml>",
	Short:         "Generate shell tab-completion scripts from YAML schemas",
	SilenceErrors: true,
	SilenceUsage:  true,
	Long: `tabgen turns a declarative YAML description of a command-line interface
into a self-contained tab-completion script.

The emitted script carries no runtime dependency on tabgen or on the
described program; it can be checked into a repository or distributed
with release artifacts.`,
	Example: `  tabgen dvc.yaml > dvc-completion.bash
  tabgen dvc.yaml --shell bash --output /etc/bash_completion.d/dvc
  tabgen install dvc.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root, prog, ok, err := loadSchema(args[0])
	if err != nil || !ok {
		return err
	}

	script, _, err := generateScript(root, prog)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(script), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		log.WithField("path", outputPath).Info("completion script written")
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), script)
	return nil
}

// loadSchema reads the schema file under the resolvability contract: an
// unreadable or invalid schema is not an error unless the caller asked for
// one, it just means there is nothing to generate. A tool can then run
// tabgen unconditionally from its build without failing the build.
func loadSchema(path string) (*tabgen.CommandNode, string, bool, error) {
	root, prog, err := schema.LoadFile(path)
	if err != nil {
		if errorUnresolvable {
			return nil, "", false, err
		}
		log.WithError(err).WithField("schema", path).Debug("schema unresolvable, exiting quietly")
		return nil, "", false, nil
	}

	return root, prog, true, nil
}

// generateScript emits the script and reports the effective program name
// after the --prog override has been applied.
func generateScript(root *tabgen.CommandNode, prog string) (string, string, error) {
	if override := viper.GetString("prog"); override != "" {
		prog = override
	}
	if prog == "" {
		return "", "", fmt.Errorf("schema declares no program name, pass --prog")
	}

	configs := []tabgen.ConfigureGeneratorFunc{tabgen.WithLogger(log)}
	if p := viper.GetString("prefix"); p != "" {
		configs = append(configs, tabgen.WithPrefix(p))
	}
	if p := viper.GetString("preamble"); p != "" {
		configs = append(configs, tabgen.WithPreamble(p))
	}

	script, err := tabgen.Generate(root, viper.GetString("shell"), prog, configs...)
	return script, prog, err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&shellName, "shell", "s", tabgen.ShellBash, "shell dialect to emit")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "override the identifier prefix derived from the program name")
	rootCmd.PersistentFlags().StringVar(&preamble, "preamble", "", "shell text to inject before the registration line")
	rootCmd.PersistentFlags().StringVar(&progOverride, "prog", "", "override the program name declared in the schema")
	rootCmd.PersistentFlags().BoolVarP(&errorUnresolvable, "error-unresolvable", "u", false, "fail instead of exiting quietly when the schema cannot be loaded")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "verbose output (-v for diagnostics, -vv for traversal detail)")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the script to a file instead of stdout")

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		viper.BindPFlag(f.Name, f)
	})
}

// initConfig wires environment overrides and the log level.
func initConfig() {
	viper.SetEnvPrefix("TABGEN")
	viper.AutomaticEnv()

	log.SetOutput(os.Stderr)
	switch {
	case verbosity >= 2:
		log.SetLevel(logrus.DebugLevel)
	case verbosity == 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
}
