// Command lowpass-plot generates a uniform random signal, smooths it with a
// single-pole low-pass filter and renders both as a two-panel PNG chart.
//
// Usage:
//
//	lowpass-plot [flags]
//
// Every flag defaults to the reference run: 100 samples, beta 0.3 and a
// 1920x1080 image written to ./lowpass_filter.png.
//
// Examples:
//
//	lowpass-plot
//	lowpass-plot -out /tmp/lp.png -beta 0.1 -n 400
//	lowpass-plot -ymin 0.001 -ymax 1
//	lowpass-plot -wav /tmp/lp.wav -analyze
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/cwbudde/algo-lowpass/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "lowpass-plot: ", 0)

	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	rep, err := pipeline.Run(cfg)
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}

	fmt.Fprintf(stdout, "Result has been saved to %s\n", rep.ImagePath)
	if rep.WAVPath != "" {
		fmt.Fprintf(stdout, "Audio has been saved to %s\n", rep.WAVPath)
	}
	if cfg.Analyze {
		printSummary(stdout, cfg, rep)
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()

	fs := flag.NewFlagSet("lowpass-plot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Output, "out", cfg.Output, "output PNG path")
	fs.IntVar(&cfg.Samples, "n", cfg.Samples, "number of samples")
	fs.Float64Var(&cfg.Beta, "beta", cfg.Beta, "smoothing coefficient")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	fs.Float64Var(&cfg.Amplitude, "amplitude", cfg.Amplitude, "peak amplitude of the random input")
	fs.IntVar(&cfg.Plot.Width, "width", cfg.Plot.Width, "image width in pixels")
	fs.IntVar(&cfg.Plot.Height, "height", cfg.Plot.Height, "image height in pixels")
	fs.IntVar(&cfg.Plot.Split, "split", cfg.Plot.Split, "upper panel height in pixels")
	fs.Float64Var(&cfg.Plot.YMin, "ymin", cfg.Plot.YMin, "y axis lower bound")
	fs.Float64Var(&cfg.Plot.YMax, "ymax", cfg.Plot.YMax, "y axis upper bound")
	fs.IntVar(&cfg.Plot.Ticks, "ticks", cfg.Plot.Ticks, "tick labels per axis")
	fs.StringVar(&cfg.Plot.Title, "title", cfg.Plot.Title, "chart title")
	fs.StringVar(&cfg.WAVOutput, "wav", cfg.WAVOutput, "optional stereo WAV path (left=input, right=output)")
	fs.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "sample rate for WAV export and analysis")
	fs.BoolVar(&cfg.Analyze, "analyze", cfg.Analyze, "print signal statistics and high-band attenuation")
	footer := fs.Bool("footer", false, "annotate the image with run parameters")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lowpass-plot [flags]\n\n")
		fmt.Fprintf(stderr, "Renders a random signal and its low-pass filtered version to a PNG chart.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return cfg, fmt.Errorf("unexpected arguments")
	}

	if *footer {
		cfg.Plot.Footer = fmt.Sprintf("n=%d beta=%.3f seed=%d", cfg.Samples, cfg.Beta, cfg.Seed)
	}
	return cfg, nil
}

func printSummary(w io.Writer, cfg pipeline.Config, rep pipeline.Report) {
	fmt.Fprintf(w, "Samples: %d, Beta: %.3f, Seed: %d\n", cfg.Samples, cfg.Beta, cfg.Seed)
	if rep.CutoffHz > 0 {
		fmt.Fprintf(w, "Cutoff: %.1f Hz at %d Hz\n", rep.CutoffHz, cfg.SampleRate)
	}
	fmt.Fprintf(w, "Input:  RMS %.4f, Peak %.4f, ZeroCrossings %d, Roughness %.4f\n",
		rep.InputStats.RMS, rep.InputStats.Peak, rep.InputStats.ZeroCrossings, rep.InputStats.Roughness)
	fmt.Fprintf(w, "Output: RMS %.4f, Peak %.4f, ZeroCrossings %d, Roughness %.4f\n",
		rep.OutputStats.RMS, rep.OutputStats.Peak, rep.OutputStats.ZeroCrossings, rep.OutputStats.Roughness)
	if math.IsNaN(rep.HighBandAttenuationDB) {
		fmt.Fprintf(w, "High-band attenuation: n/a (signal too short)\n")
		return
	}
	fmt.Fprintf(w, "High-band attenuation: %.2f dB\n", rep.HighBandAttenuationDB)
}
