// Command mycodebase exposes a few of the library helpers on the command line.
//
// Usage:
//
//	mycodebase hex2rgb '#f00' 4682b4
//	mycodebase cond2sal -c 52 -t 25 -p 1013
//	mycodebase fco2 -xco2 400 -p-equ 1013.25 -t-equ 21 -sst 20
//	mycodebase distance -lat1 53.5 -lon1 10 -lat2 78.2 -lon2 15.6
//	mycodebase colormap -n 16 blue-orange.xml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/my-code-base/colors"
	"github.com/couchcryptid/my-code-base/geo"
	"github.com/couchcryptid/my-code-base/internal/observability"
	"github.com/couchcryptid/my-code-base/ocean"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `Usage: mycodebase <command> [flags]

Commands:
  help       show this message
  hex2rgb    convert HEX colours to RGB
  cond2sal   practical salinity from conductivity, temperature and pressure
  fco2       fugacity of CO2 at SST from an equilibrator xCO2 measurement
  distance   great-circle distance between two points in metres
  colormap   sample a ColorMoves XML colormap as HEX colours
`

type command func(args []string, stdout io.Writer, logger *slog.Logger) error

var commands = map[string]command{
	"hex2rgb":  hex2rgb,
	"cond2sal": cond2sal,
	"fco2":     fco2,
	"distance": distance,
	"colormap": colormap,
}

// errUsage marks errors caused by the invocation rather than the computation.
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(stdout, usage)
		return exitOK
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}

	logger := observability.NewLoggerTo(stderr, os.Getenv("LOG_LEVEL"), "text")
	slog.SetDefault(logger)

	err := cmd(args[1:], stdout, logger)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
		return exitError
	}
}

func newFlagSet(name string, stdout io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdout)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func hex2rgb(args []string, stdout io.Writer, _ *slog.Logger) error {
	fs := newFlagSet("hex2rgb", stdout)
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: hex2rgb needs at least one colour", errUsage)
	}
	for _, v := range fs.Args() {
		c, err := colors.HexToRGB(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, c)
	}
	return nil
}

func cond2sal(args []string, stdout io.Writer, _ *slog.Logger) error {
	fs := newFlagSet("cond2sal", stdout)
	c := fs.Float64("c", 0, "conductivity in mS/cm")
	t := fs.Float64("t", 0, "temperature in °C or K")
	p := fs.Float64("p", 1013.25, "pressure in hPa, Pa or atm")
	if err := parse(fs, args); err != nil {
		return err
	}

	s, err := ocean.CondToSal(*c, *t, *p)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%.4f\n", s)
	return nil
}

func fco2(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := newFlagSet("fco2", stdout)
	xco2 := fs.Float64("xco2", 0, "CO2 mole fraction in ppm")
	pEqu := fs.Float64("p-equ", 1013.25, "equilibrator pressure in hPa, Pa or atm")
	tEqu := fs.Float64("t-equ", 0, "equilibrator temperature")
	sst := fs.Float64("sst", 0, "sea surface temperature")
	sal := fs.Float64("sal", 35, "salinity in PSU")
	air := fs.String("air", "wet", "air type of the measurement: wet or dry")
	method := fs.String("method", string(ocean.Takahashi2009), "temperature correction: Takahashi2009 or Takahashi1993")
	if err := parse(fs, args); err != nil {
		return err
	}

	a, err := ocean.ParseAir(*air)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	pEquil, err := ocean.PPMToMicroatm(*xco2, *pEqu, a, *tEqu, *sal)
	if err != nil {
		return err
	}
	pSST, err := ocean.TemperatureCorrection(pEquil, *sst, *tEqu, ocean.CorrectionMethod(*method))
	if err != nil {
		return err
	}
	f, err := ocean.Fugacity(pSST, *pEqu, *sst, xco2)
	if err != nil {
		return err
	}

	logger.Debug("fco2 computed", "pco2_equ", pEquil, "pco2_sst", pSST)
	fmt.Fprintf(stdout, "pco2_equ %.4f\npco2_sst %.4f\nfco2_sst %.4f\n", pEquil, pSST, f)
	return nil
}

func distance(args []string, stdout io.Writer, _ *slog.Logger) error {
	fs := newFlagSet("distance", stdout)
	lat1 := fs.Float64("lat1", 0, "latitude of the first point")
	lon1 := fs.Float64("lon1", 0, "longitude of the first point")
	lat2 := fs.Float64("lat2", 0, "latitude of the second point")
	lon2 := fs.Float64("lon2", 0, "longitude of the second point")
	if err := parse(fs, args); err != nil {
		return err
	}

	a, err := geo.NewPoint(*lat1, *lon1)
	if err != nil {
		return err
	}
	b, err := geo.NewPoint(*lat2, *lon2)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%.1f\n", geo.GreatCircle{}.Distance(a, b))
	return nil
}

func colormap(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := newFlagSet("colormap", stdout)
	n := fs.Int("n", colors.DefaultTableSize, "number of colours to sample")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: colormap needs exactly one XML file", errUsage)
	}

	cm, err := colors.LoadColorMoves(fs.Arg(0))
	if err != nil {
		return err
	}
	logger.Info("loaded colormap", "name", cm.Name, "points", len(cm.Positions))
	for _, c := range cm.Table(*n) {
		fmt.Fprintln(stdout, c.RGB().Hex())
	}
	return nil
}
