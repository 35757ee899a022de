package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/esimov/iconversion"
	"github.com/esimov/iconversion/internal/config"
	"github.com/esimov/iconversion/utils"
)

// flags holds the command line values; they override the config file
// and the environment only when explicitly set.
type flags struct {
	configPath        string
	verbose           bool
	text              string
	margins           []float64
	bandHeight        float64
	blurRadius        float64
	blurSigma         float64
	ignore            string
	fontPath          string
	blurMode          iconversion.BlurMode
	workers           int
	keepIntermediates bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{blurMode: iconversion.BlurGaussian}

	cmd := &cobra.Command{
		Use:   "iconversion [appiconset]",
		Short: "Overlay a blurred band with a text label onto app icons",
		Long: `iconversion copies an icon asset catalog to <name>-Versioned.appiconset
and stamps every PNG icon of the copy with a blurred, darkened band carrying
a text label, so build variants can be told apart at a glance.

Settings are read from the config file, then ICON_VERSIONING_* environment
variables, then command line flags.`,
		Example: `  iconversion Assets.xcassets/AppIcon.appiconset --text STAGING
  iconversion --config iconversion.yaml --ignore 'Marketing'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args, f, stdout, stderr)
			if err != nil {
				fmt.Fprintf(stderr, "%s\n", utils.Decorate("Error: "+err.Error(), utils.ErrorColor, isTerminal(stderr)))
			}
			return err
		},
	}

	addFlags(cmd.Flags(), f)
	return cmd
}

func addFlags(fl *pflag.FlagSet, f *flags) {
	def := iconversion.DefaultOptions()

	fl.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	fl.StringVarP(&f.text, "text", "t", def.Text, "Label text")
	fl.Float64SliceVar(&f.margins, "margins", def.TextMarginsPercentages, "Text margins percentages (1, 2 or 4 values)")
	fl.Float64Var(&f.bandHeight, "band-height", def.BandHeightPercentage, "Band height percentage")
	fl.Float64Var(&f.blurRadius, "blur-radius", def.BandBlurRadiusPercentage, "Band blur radius percentage")
	fl.Float64Var(&f.blurSigma, "blur-sigma", def.BandBlurSigmaPercentage, "Band blur sigma percentage")
	fl.StringVar(&f.ignore, "ignore", "", "Regex of icon paths to leave untouched")
	fl.StringVar(&f.fontPath, "font", "", "TrueType/OpenType font file")
	fl.Var(&f.blurMode, "blur-mode", "Blur mode (gaussian or box)")
	fl.IntVarP(&f.workers, "workers", "w", 0, "Icons processed concurrently (0 = one per CPU)")
	fl.BoolVar(&f.keepIntermediates, "keep-intermediates", false, "Save every pipeline stage next to the icons")
}

func run(cmd *cobra.Command, args []string, f *flags, stdout, stderr io.Writer) error {
	logger, err := newLogger(f.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, f, &cfg)
	if len(args) == 1 {
		cfg.AppIconSetPath = args[0]
	}
	if cfg.AppIconSetPath == "" {
		return fmt.Errorf("missing appiconset path\nUsage: %s", cmd.UseLine())
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	colored := isTerminal(stdout)
	catalog := iconversion.NewCatalog(opts, logger)

	var spinner *utils.Spinner
	if isTerminal(stderr) && !f.verbose {
		spinner = utils.NewSpinner(stderr, true)
		spinner.Start(spinnerMessage)
	}
	catalog.OnIcon = iconPrinter(stdout, spinner, colored)

	start := time.Now()
	report, err := catalog.Run(cmd.Context())
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nGenerated in: %s\n", utils.Decorate(utils.FormatTime(time.Since(start)), utils.SuccessColor, colored))
	fmt.Fprintf(stdout, "Versioned %s icons, skipped %d, into %s\n",
		utils.Decorate(fmt.Sprint(len(report.Processed)), utils.SuccessColor, colored),
		len(report.Skipped),
		report.VersionedPath,
	)
	return nil
}

const spinnerMessage = "Versioning icons..."

// iconPrinter returns a callback printing one line per icon. The spinner,
// when running, is paused so both never share a terminal line.
func iconPrinter(w io.Writer, spinner *utils.Spinner, colored bool) func(iconversion.IconResult) {
	var mu sync.Mutex
	return func(r iconversion.IconResult) {
		mu.Lock()
		defer mu.Unlock()
		if spinner != nil {
			spinner.Stop()
			defer spinner.Start(spinnerMessage)
		}
		if r.Skipped {
			fmt.Fprintf(w, "Skipped: %s\n", filepath.Base(r.Path))
			return
		}
		fmt.Fprintf(w, "Saved as: %s %s\n", filepath.Base(r.Path), utils.Decorate("✓", utils.SuccessColor, colored))
	}
}

// applyFlags copies the explicitly set flags over cfg.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("text") {
		cfg.Text = f.text
	}
	if fl.Changed("margins") {
		cfg.TextMarginsPercentages = f.margins
	}
	if fl.Changed("band-height") {
		cfg.BandHeightPercentage = f.bandHeight
	}
	if fl.Changed("blur-radius") {
		cfg.BandBlurRadiusPercentage = f.blurRadius
	}
	if fl.Changed("blur-sigma") {
		cfg.BandBlurSigmaPercentage = f.blurSigma
	}
	if fl.Changed("ignore") {
		cfg.IgnoredIconsRegex = f.ignore
	}
	if fl.Changed("font") {
		cfg.FontPath = f.fontPath
	}
	if fl.Changed("blur-mode") {
		cfg.BlurMode = string(f.blurMode)
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("keep-intermediates") {
		cfg.KeepIntermediates = f.keepIntermediates
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && utils.IsTerminal(f)
}
