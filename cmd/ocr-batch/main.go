package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ocr-batch/internal/config"
	"github.com/ironsheep/ocr-batch/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type VersionCmd struct{}

type cli struct {
	Config    string `arg:"-c,--config" help:"YAML config file"`
	LogLevel  string `arg:"--log-level" help:"debug, info, warn or error"`
	LogFormat string `arg:"--log-format" help:"text or json"`

	Run       *RunCmd       `arg:"subcommand:run" help:"OCR every image, write a workbook and a stats report"`
	Compare   *CompareCmd   `arg:"subcommand:compare" help:"OCR each image before and after a pre-processing filter"`
	Catalog   *CatalogCmd   `arg:"subcommand:catalog" help:"inventory images with dimensions, format and text"`
	Translate *TranslateCmd `arg:"subcommand:translate" help:"translate spreadsheet columns"`
	Mine      *MineCmd      `arg:"subcommand:mine" help:"extract fields and key terms from product listings"`
	Wordcloud *WordcloudCmd `arg:"subcommand:wordcloud" help:"draw a word cloud from a text file"`
	Version   *VersionCmd   `arg:"subcommand:version" help:"print version information"`
}

func (cli) Description() string {
	return "ocr-batch - batch OCR of image directories into spreadsheets and reports"
}

func (cli) Epilogue() string {
	return "Settings may also come from " + config.EnvPrefix + "* environment variables or a .env file."
}

// env is what every command needs.
type env struct {
	cfg *config.Config
	log *logrus.Logger
}

func main() {
	os.Exit(run())
}

func run() int {
	var args cli
	p := arg.MustParse(&args)

	if args.Version != nil {
		fmt.Printf("ocr-batch %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return 0
	}
	if p.Subcommand() == nil {
		p.WriteHelp(os.Stdout)
		return 1
	}

	cfg, err := config.Load(args.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if args.LogLevel != "" {
		cfg.Log.Level = args.LogLevel
	}
	if args.LogFormat != "" {
		cfg.Log.Format = args.LogFormat
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.WithFields(logrus.Fields{"version": Version, "commit": GitCommit}).Debug("starting ocr-batch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := &env{cfg: cfg, log: log}
	switch {
	case args.Run != nil:
		err = args.Run.execute(ctx, e)
	case args.Compare != nil:
		err = args.Compare.execute(ctx, e)
	case args.Catalog != nil:
		err = args.Catalog.execute(ctx, e)
	case args.Translate != nil:
		err = args.Translate.execute(ctx, e)
	case args.Mine != nil:
		err = args.Mine.execute(ctx, e)
	case args.Wordcloud != nil:
		err = args.Wordcloud.execute(e)
	}
	if err != nil {
		if msg, ok := userMessage(err); ok {
			fmt.Println(msg)
		} else {
			log.WithError(err).Error("command failed")
		}
		return 1
	}
	return 0
}
