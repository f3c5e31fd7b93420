// cmd/hst-focus/main.go
//
// Command line interface to the HST focus model service. The first argument
// is the date in YYYY/MM/DD format, the second the time range in HH:MM-HH:MM
// 24-hour format.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mmechtley/hstfocus/internal/common/config"
	"github.com/mmechtley/hstfocus/internal/common/logger"
	"github.com/mmechtley/hstfocus/internal/fits"
	"github.com/mmechtley/hstfocus/internal/focus/annotate"
	"github.com/mmechtley/hstfocus/internal/focus/query"
)

func main() {
	camera := flag.String("camera", "", "Camera: one of UVIS1, UVIS2, WFC1, WFC2, HRC, PC (default from config)")
	format := flag.String("format", "", "Output format: TXT, PNG, or BOTH (default from config)")
	out := flag.String("out", "", "Path prefix for saved artifacts; without it the table goes to stdout")
	annotatePath := flag.String("annotate", "", "FITS file whose header receives the mean focus")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %v", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	querySvc, err := query.NewService(query.ServiceDependencies{Logger: log}, query.FromAppConfig(cfg))
	if err != nil {
		fatal("%v", err)
	}

	ctx := context.Background()

	// With no query arguments, -annotate derives its own window from the
	// image's observation date and time cards.
	if flag.NArg() == 0 && *annotatePath != "" {
		runAnnotate(ctx, log, querySvc, *annotatePath, nil)
		return
	}

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	params, err := parseArgs(flag.Arg(0), flag.Arg(1), *camera, *format)
	if err != nil {
		fatal("%v", err)
	}

	result, err := querySvc.GetModelData(ctx, params)
	if err != nil {
		fatal("%v", err)
	}

	if result.Table != nil {
		if *out != "" {
			if err := os.WriteFile(*out+".txt", result.TableText, 0o644); err != nil {
				fatal("cannot save table: %v", err)
			}
		} else {
			os.Stdout.Write(result.TableText)
		}
	}
	if result.Plot != nil {
		plotPath := *out + ".png"
		if *out == "" {
			plotPath = "focusplot.png"
		}
		if err := os.WriteFile(plotPath, result.Plot, 0o644); err != nil {
			fatal("cannot save plot: %v", err)
		}
	}

	if *annotatePath != "" {
		runAnnotate(ctx, log, querySvc, *annotatePath, result.Table)
	}
}

func parseArgs(dateArg, rangeArg, camera, format string) (query.Params, error) {
	yearStr, date, ok := strings.Cut(dateArg, "/")
	if !ok {
		return query.Params{}, fmt.Errorf("date must be YYYY/MM/DD, got %q", dateArg)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return query.Params{}, fmt.Errorf("date must be YYYY/MM/DD, got %q", dateArg)
	}
	start, stop, ok := strings.Cut(rangeArg, "-")
	if !ok {
		return query.Params{}, fmt.Errorf("time range must be HH:MM-HH:MM, got %q", rangeArg)
	}

	return query.Params{
		Year:   year,
		Date:   date,
		Start:  start,
		Stop:   stop,
		Camera: query.Camera(camera),
		Format: query.Format(strings.ToUpper(format)),
	}, nil
}

func runAnnotate(ctx context.Context, log logger.Logger, querySvc *query.Service, path string, table *query.FocusTable) {
	target, err := fits.Open(path)
	if err != nil {
		fatal("%v", err)
	}

	svc, err := annotate.NewService(annotate.ServiceDependencies{Logger: log, Fetcher: querySvc}, annotate.DefaultConfig())
	if err != nil {
		fatal("%v", err)
	}

	mean, err := svc.AddMeanFocus(ctx, target, table)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("wrote mean focus %.4f to %s\n", mean, path)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: hst-focus [flags] YYYY/MM/DD HH:MM-HH:MM
       hst-focus -annotate image.fits

Retrieves HST focus model data for the given date and time range, and can
write the mean defocus into a FITS image header.

Flags:
`)
	flag.PrintDefaults()
}

func fatal(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
