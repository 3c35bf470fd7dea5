// Command fx applies a named effect or an upscale to an image file, or to
// every image in a directory. It is a thin harness over the engine: decode,
// dispatch, encode, write.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/glitchlab-io/go-effects/effects"
	"github.com/glitchlab-io/go-effects/images"
	"github.com/glitchlab-io/go-effects/profiler"
	"github.com/glitchlab-io/go-effects/upscale"
	"github.com/glitchlab-io/go-effects/util"
)

// paramFlags collects repeated -set k=v flags.
type paramFlags map[string]string

func (p paramFlags) String() string { return fmt.Sprint(map[string]string(p)) }

func (p paramFlags) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	p[key] = value
	return nil
}

func main() {
	var (
		list     = flag.Bool("list", false, "list registered effects and their parameters")
		effectID = flag.String("effect", "", "effect identifier to apply")
		in       = flag.String("in", "", "input image path")
		batch    = flag.String("batch", "", "input directory; process every image in it")
		out      = flag.String("out", "out.png", "output image path (single-file mode)")
		outDir   = flag.String("outdir", ".", "output directory (batch mode)")
		seed     = flag.Int64("seed", 0, "random seed for stochastic effects (0 = time-seeded)")
		parallel = flag.Bool("parallel", false, "parallelize row sweeps where the effect allows")
		resizeTo = flag.String("resize", "", "target WxH for upscaling (e.g. 3840x2160)")
		method   = flag.String("method", string(upscale.MethodHigh), "upscale method: low, medium, high, ai")
		stats    = flag.Bool("stats", false, "report per-stage timing after the run")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	params := make(paramFlags)
	flag.Var(params, "set", "effect parameter as key=value (repeatable)")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *list {
		printEffects()
		return
	}

	if *effectID == "" && *resizeTo == "" {
		logrus.Fatal("nothing to do: pass -effect or -resize")
	}

	run := runConfig{
		effectID: *effectID,
		resizeTo: *resizeTo,
		method:   upscale.Method(*method),
		options:  effects.Options{Seed: *seed, Parallel: *parallel},
		params:   make(effects.Params, len(params)),
		timer:    profiler.NewStageTimer(),
	}
	for k, v := range params {
		run.params[k] = v
	}

	switch {
	case *batch != "":
		files, err := util.LoadImageDir(*batch)
		if err != nil {
			logrus.WithError(err).Fatal("reading batch directory")
		}
		if len(files) == 0 {
			logrus.WithField("dir", *batch).Fatal("no images found")
		}
		for _, f := range files {
			img, err := run.process(f.Image)
			if err != nil {
				logrus.WithError(err).WithField("path", f.Path).Fatal("processing")
			}
			dst := outputPath(*outDir, f.Path)
			if err := writeImage(dst, img, run.timer); err != nil {
				logrus.WithError(err).Fatal("writing output")
			}
			logrus.WithField("path", dst).Info("written")
		}

	case *in != "":
		data, err := os.ReadFile(*in)
		if err != nil {
			logrus.WithError(err).Fatal("reading input")
		}
		img, err := run.process(images.Image{Data: data})
		if err != nil {
			logrus.WithError(err).Fatal("processing")
		}
		if err := writeImage(*out, img, run.timer); err != nil {
			logrus.WithError(err).Fatal("writing output")
		}
		logrus.WithField("path", *out).Info("written")

	default:
		logrus.Fatal("missing -in or -batch")
	}

	if *stats {
		run.timer.LogSummary(logrus.StandardLogger())
	}
}

// runConfig carries the per-run settings shared between single-file and
// batch mode.
type runConfig struct {
	effectID string
	resizeTo string
	method   upscale.Method
	options  effects.Options
	params   effects.Params
	timer    *profiler.StageTimer
}

// process applies the configured transformation to one image.
func (r runConfig) process(img images.Image) (images.Image, error) {
	if r.resizeTo != "" {
		w, h, err := parseDimensions(r.resizeTo)
		if err != nil {
			return images.Image{}, err
		}
		done := r.timer.Start("upscale")
		img, err = upscale.Upscale(img, w, h, r.method)
		done()
		return img, err
	}

	done := r.timer.Start("effect")
	img, err := effects.ApplyWithOptions(r.effectID, img, r.params, r.options)
	done()
	return img, err
}

// writeImage writes encoded output, timing the disk stage.
func writeImage(path string, img images.Image, timer *profiler.StageTimer) error {
	done := timer.Start("write")
	defer done()
	return os.WriteFile(path, img.Data, 0o644)
}

// outputPath maps an input file into the output directory, always as PNG
// since the engine encodes PNG.
func outputPath(dir, inPath string) string {
	base := filepath.Base(inPath)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+".png")
}

// printEffects dumps the registry surface the UI layer would render.
func printEffects() {
	for _, e := range effects.List() {
		fmt.Printf("%s  (%s)\n", e.ID, e.Label)
		for _, p := range e.Params {
			switch p.Kind {
			case effects.KindSelect:
				var opts []string
				for _, o := range p.Options {
					opts = append(opts, fmt.Sprintf("%d=%s", o.Value, o.Label))
				}
				fmt.Printf("  %-12s select  default=%v  [%s]\n", p.Name, p.Default, strings.Join(opts, ", "))
			case effects.KindColor:
				fmt.Printf("  %-12s color   default=%v\n", p.Name, p.Default)
			default:
				fmt.Printf("  %-12s number  %g..%g  default=%v\n", p.Name, p.Min, p.Max, p.Default)
			}
		}
	}
}

// parseDimensions parses a "WxH" string.
func parseDimensions(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("expected WxH, got %q", s)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, err
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}
