// Command vectors2corpus converts LiteVector test vector files into a fuzzing
// corpus: one <n>.bin file per hex data line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	corpus "github.com/go-i2p/ltvcorpus"
)

// version can be overridden at build time via -ldflags.
var version = "0.1.0-dev"

type options struct {
	configPath string
	positive   string
	negative   string
	outputDir  string
	manifest   string
	jobs       int
	color      string
	quiet      bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "vectors2corpus",
		Short: "Convert LiteVector test vectors into a fuzzing corpus",
		Long: `vectors2corpus reads the positive and negative vector files, decodes every
second line as hex and writes each payload to <n>.bin in the output directory.
Numbering starts at 0 and runs through the positive file, then the negative one.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupColor(o.color, os.Stderr)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, o)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", defaultConfigFile, "TOML config file")
	pf.StringVar(&o.positive, "positive", corpus.DefaultPositivePath, "vectors expected to pass validation")
	pf.StringVar(&o.negative, "negative", corpus.DefaultNegativePath, "vectors expected to fail validation")
	pf.StringVarP(&o.outputDir, "out", "o", corpus.DefaultOutputDir, "corpus output directory")
	pf.IntVarP(&o.jobs, "jobs", "j", 0, "sources decoded in parallel (0 = GOMAXPROCS)")
	pf.StringVar(&o.color, "color", "auto", "colorize output (auto|on|off)")
	pf.BoolVarP(&o.quiet, "quiet", "q", false, "suppress non-essential output")
	pf.StringVar(&o.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	root.Flags().StringVar(&o.manifest, "manifest", "", "write a provenance manifest to this path")

	root.AddCommand(newVerifyCmd(o))
	root.AddCommand(newManifestCmd())
	return root
}

func runGenerate(cmd *cobra.Command, o *options) error {
	cfg, err := o.resolve(cmd)
	if err != nil {
		return err
	}
	g, err := corpus.NewGenerator(cfg)
	if err != nil {
		return err
	}
	n, err := g.Generate(cmd.Context())
	if err != nil {
		return err
	}
	if !o.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entries to %s\n", n, cfg.OutputDir)
	}
	return nil
}

// setupColor applies the --color mode to the global color state.
func setupColor(mode string, f *os.File) error {
	switch mode {
	case "auto":
		color.NoColor = !term.IsTerminal(int(f.Fd()))
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color %q (want auto, on or off)", mode)
	}
	return nil
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
