// Command nme-unpacker walks a DIR archive breadth-first and, for every
// file entry, either extracts it verbatim or — when its name carries the
// configured nested-archive extension — decodes its embedded WAD sprite
// sheet into per-image PNG/BMP files.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nmeunpack/nme-unpacker/internal/archive"
	"github.com/nmeunpack/nme-unpacker/internal/config"
	"github.com/nmeunpack/nme-unpacker/internal/errs"
	"github.com/nmeunpack/nme-unpacker/internal/fsops"
	internalimage "github.com/nmeunpack/nme-unpacker/internal/image"
	"github.com/nmeunpack/nme-unpacker/internal/imagewriter"
	"github.com/nmeunpack/nme-unpacker/internal/memtrack"
	"github.com/nmeunpack/nme-unpacker/internal/pathutil"
	"github.com/nmeunpack/nme-unpacker/internal/reader"
	"github.com/nmeunpack/nme-unpacker/internal/version"
	"github.com/nmeunpack/nme-unpacker/internal/wad"
)

const usageBanner = `nme-unpacker [options] <archive-file>

  -h              print this help banner and exit
  -v              print version information and exit
  -e[path]        enable extraction, optionally to path (default ".")
  -z              enable verbose metadata printing
  -c <path>       load runtime defaults from a YAML config file
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("nme-unpacker", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usageBanner) }

	help := fs.BoolP("help", "h", false, "print help banner")
	showVersion := fs.BoolP("version", "v", false, "print version line and feature list")
	extractDir := fs.StringP("extract", "e", "", "enable extraction to the given directory")
	fs.Lookup("extract").NoOptDefVal = "."
	verbose := fs.BoolP("verbose", "z", false, "enable verbose metadata printing")
	configPath := fs.StringP("config", "c", "", "optional YAML config file")

	// pflag accepts an optional-argument shorthand only as "-e" or
	// "-e=path", so the joined "-e<path>" form is rewritten to the latter.
	normalized := make([]string, len(args))
	copy(normalized, args)
	for i, a := range normalized {
		if a == "--" {
			break
		}
		if len(a) > 2 && strings.HasPrefix(a, "-e") && a[2] != '=' {
			normalized[i] = "-e=" + a[2:]
		}
	}

	if err := fs.Parse(normalized); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *help {
		fmt.Print(usageBanner)
		return 0
	}
	if *showVersion {
		info := version.Get()
		fmt.Println(info.String())
		fmt.Println(strings.Join(version.Features, ", "))
		return 0
	}

	archivePath, warn := resolveArchivePath(fs.Args())

	opLog, rawLog, closeLog := buildLoggers(*verbose)
	defer closeLog()

	if warn != "" {
		opLog.Warn(warn)
	}
	if archivePath == "" {
		opLog.Error(errs.Usagef("no input files").Error())
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		opLog.Errorf("load config: %v", errDetail(err, *verbose))
		return 1
	}

	extract := fs.Changed("extract")
	outDir := *extractDir
	if extract && outDir == "" {
		outDir = "."
	}

	if err := extractArchive(archivePath, outDir, extract, *verbose, cfg, opLog, rawLog); err != nil {
		opLog.Errorf("%v", errDetail(err, *verbose))
		if errs.Is(err, errs.KindResource) {
			panic(err) // resource exhaustion aborts the process outright.
		}
		return 1
	}
	return 0
}

// resolveArchivePath applies the "later positional argument wins, with a
// warning" rule and reports that warning as a string (empty if none
// applies).
func resolveArchivePath(positional []string) (path string, warning string) {
	if len(positional) == 0 {
		return "", ""
	}
	if len(positional) > 1 {
		warning = fmt.Sprintf("multiple archive paths given, using %q (overriding %q)",
			positional[len(positional)-1], strings.Join(positional[:len(positional)-1], ", "))
	}
	return positional[len(positional)-1], warning
}

// buildLoggers returns two zap sugared loggers: opLog for ordinary
// operational/error messages (standard console encoding), and rawLog for
// the fixed-format verbose entry/image lines, whose encoder emits only the
// message itself so the line format is preserved byte-for-byte for scripts
// that scrape it. The returned func flushes both loggers.
func buildLoggers(verbose bool) (op *zap.SugaredLogger, raw *zap.SugaredLogger, closeFn func()) {
	level := zap.WarnLevel
	if verbose {
		level = zap.InfoLevel
	}

	opEncoderCfg := zap.NewProductionEncoderConfig()
	opEncoderCfg.TimeKey = "" // a one-shot CLI has no use for wall-clock timestamps on console
	opEncoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	opCore := zapcore.NewCore(zapcore.NewConsoleEncoder(opEncoderCfg), zapcore.AddSync(os.Stderr), level)
	op = zap.New(opCore).Sugar()

	rawEncoderCfg := zapcore.EncoderConfig{MessageKey: "msg", LineEnding: zapcore.DefaultLineEnding}
	rawCore := zapcore.NewCore(zapcore.NewConsoleEncoder(rawEncoderCfg), zapcore.AddSync(os.Stdout), zap.InfoLevel)
	raw = zap.New(rawCore).Sugar()

	return op, raw, func() { _ = op.Sync(); _ = raw.Sync() }
}

// newRotatingSink builds a lumberjack-backed write syncer for long
// extraction runs that want a rotating log file instead of stderr. Not
// wired to a flag by default: most invocations are short-lived batch runs
// where stderr is sufficient, but the collaborator is available for a
// caller that wants it.
func newRotatingSink(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    20,
		MaxBackups: 3,
	})
}

func errDetail(err error, verbose bool) string {
	if verbose {
		return fmt.Sprintf("%+v", err)
	}
	return err.Error()
}

// extractArchive drives the BFS traversal end to end: progress reporting,
// verbose logging, raw-file extraction, and nested-WAD image decode.
func extractArchive(archivePath, outDir string, extract, verbose bool, cfg config.Config, opLog, rawLog *zap.SugaredLogger) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errs.IO(err, "open archive")
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return errs.IO(err, "stat archive")
	}

	r := reader.New(f, st.Size())

	pixelCounter := &memtrack.Counter{}
	outputCounter := &memtrack.Counter{}

	bar := progressbar.Default(-1, "unpacking")
	defer func() { _ = bar.Finish() }()

	onFile := func(rd *reader.Reader, ref archive.Ref) error {
		if !extract {
			return nil
		}
		e := ref.Entry()
		ancestors := namedAncestors(ref)
		if hasArchiveExtension(e.Name, cfg.WADExtension) {
			return extractWAD(rd, e, ancestors, outDir, pixelCounter, outputCounter, verbose, rawLog)
		}
		return extractRawFile(rd, e, ancestors, outDir)
	}

	onVerbose := func(e archive.Entry) {
		_ = bar.Add(1)
		if verbose {
			rawLog.Infof("[%s %d %d]", e.Name, e.Offset, e.Size)
		}
	}

	trav := archive.New(r, cfg.QueueCapacity, onFile, onVerbose)
	if err := trav.Run(); err != nil {
		return err
	}

	if opLog != nil {
		opLog.Infof("done: high-water pixel bytes %d, image bytes %d", pixelCounter.HighWater(), outputCounter.HighWater())
	}
	if pixelCounter.Current() != 0 || outputCounter.Current() != 0 {
		// Zero bytes must remain tracked as in-use at a successful exit.
		panic(errors.Errorf("leak detected: %d pixel bytes, %d image bytes still tracked as in use",
			pixelCounter.Current(), outputCounter.Current()))
	}
	return nil
}

func namedAncestors(ref archive.Ref) []pathutil.Named {
	chain := ref.Arena.Ancestors(ref.Idx)
	named := make([]pathutil.Named, len(chain))
	for i, e := range chain {
		named[i] = e
	}
	return named
}

func extractRawFile(r *reader.Reader, e archive.Entry, ancestors []pathutil.Named, outDir string) error {
	data, err := r.ReadBytes(int(e.Size))
	if err != nil {
		return err
	}
	path, err := pathutil.Compose(outDir, ancestors, e.Name)
	if err != nil {
		return err
	}
	return fsops.WriteFile(path, data)
}

func extractWAD(r *reader.Reader, wadEntry archive.Entry, ancestors []pathutil.Named, outDir string,
	pixelCounter, outputCounter *memtrack.Counter, verbose bool, rawLog *zap.SugaredLogger) error {

	imageAncestors := make([]pathutil.Named, len(ancestors), len(ancestors)+1)
	copy(imageAncestors, ancestors)
	imageAncestors = append(imageAncestors, wadEntry)

	return wad.Parse(r, pixelCounter, func(rec wad.Record, palettes []wad.Palette) error {
		palette := palettes[rec.PaletteID]

		if rec.IsRLE {
			buf, err := internalimage.DecodeRLE(rec, palette, outputCounter)
			if err != nil {
				return err
			}
			path, err := pathutil.Compose(outDir, imageAncestors, pathutil.RewriteImageOutputName(rec.Name, true))
			if err != nil {
				return err
			}
			if err := imagewriter.WritePNG(path, buf); err != nil {
				return err
			}
		} else {
			buf, err := internalimage.DecodeBMP(rec, palette, outputCounter)
			if err != nil {
				return err
			}
			path, err := pathutil.Compose(outDir, imageAncestors, pathutil.RewriteImageOutputName(rec.Name, false))
			if err != nil {
				return err
			}
			if err := imagewriter.WriteBMP(path, buf); err != nil {
				return err
			}
		}

		if verbose {
			rawLog.Infof("{$ %s # %d w %d h %d @ %d ~ %d}",
				rec.Name, rec.PixelDataSize, rec.Width, rec.Height, rec.ColorDepth, rec.PaletteID)
		}
		return nil
	})
}

// hasArchiveExtension reports whether name carries ext (e.g. ".wad"),
// case-insensitively.
func hasArchiveExtension(name, ext string) bool {
	if len(name) < len(ext) {
		return false
	}
	return strings.EqualFold(name[len(name)-len(ext):], ext)
}
