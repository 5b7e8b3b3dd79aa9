// Package harness wires the decoders, the benchmark runner and the display
// pipeline together for one input file.
package harness

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nvr-ai/go-pngbench/benchmark"
	"github.com/nvr-ai/go-pngbench/display"
	"github.com/nvr-ai/go-pngbench/images"
	"github.com/nvr-ai/go-pngbench/util"
	"github.com/pkg/errors"
	"github.com/raulk/clock"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options configures a Harness.
type Options struct {
	// Out receives the reports (default: os.Stdout).
	Out io.Writer
	// Logger (default: no-op).
	Logger *zap.Logger
	// Backend is required for the display and all modes.
	Backend display.Backend
	// Clock times the benchmark runs (default: the system clock).
	Clock clock.Clock
}

// Harness runs one configured session.
type Harness struct {
	cfg     *Config
	out     io.Writer
	logger  *zap.Logger
	backend display.Backend
	runner  *benchmark.Runner
}

// New creates a Harness for cfg.
func New(cfg *Config, opts Options) *Harness {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Harness{
		cfg:     cfg,
		out:     opts.Out,
		logger:  opts.Logger,
		backend: opts.Backend,
		runner:  benchmark.NewRunner(benchmark.Options{Clock: opts.Clock, Logger: opts.Logger}),
	}
}

// Run reads and decodes the configured image, then benchmarks and/or shows it
// according to the mode. Configured parity checks run in every mode, before
// any window opens; the window opens only if they and the benchmarks
// succeeded.
func (h *Harness) Run() error {
	if err := h.cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	file, err := util.LoadImageFile(h.cfg.ImagePath)
	if err != nil {
		return err
	}
	img, err := images.Decode(file.Data, images.NativeLayout)
	if err != nil {
		return errors.Wrapf(err, "decode %s", file.Path)
	}
	h.logger.Info("image decoded",
		zap.String("path", file.Path),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Stringer("layout", img.Layout),
		zap.String("checksum", images.Checksum(img)),
	)

	if h.cfg.Mode.benchmarks() {
		if err := h.benchmark(file); err != nil {
			return err
		}
	}
	if err := h.checkParity(file); err != nil {
		return err
	}

	if h.cfg.Mode.displays() {
		if h.backend == nil {
			return errors.Errorf("mode %s requires a display backend", h.cfg.Mode)
		}
		return display.Show(h.backend, h.cfg.WindowTitle, img, display.Options{Logger: h.logger})
	}
	return nil
}

func (h *Harness) benchmark(file util.ImageFile) error {
	reports := make([]*benchmark.Report, 0, len(h.cfg.Runs))
	for _, run := range h.cfg.Runs {
		op, err := decodeOperation(run, file)
		if err != nil {
			return err
		}
		report, err := h.runner.Run(run.Name, op, h.cfg.Iterations)
		if err != nil {
			return err
		}
		if _, err := report.WriteTo(h.out); err != nil {
			return errors.Wrap(err, "write report")
		}
		reports = append(reports, report)
	}

	for _, candidate := range reports[1:] {
		if _, err := benchmark.Compare(reports[0], candidate).WriteTo(h.out); err != nil {
			return errors.Wrap(err, "write comparison")
		}
	}
	return nil
}

// decodeOperation builds the timed operation for run. A from-file run reads
// the file on every call, like a decoder that takes a path.
func decodeOperation(run RunConfig, file util.ImageFile) (benchmark.Operation, error) {
	adapter, err := images.LookupDecoder(run.Decoder)
	if err != nil {
		return nil, err
	}
	hint, err := images.ParseLayout(run.Layout)
	if err != nil {
		return nil, err
	}

	if run.FromFile {
		return func() error {
			f, err := util.LoadImageFile(file.Path)
			if err != nil {
				return err
			}
			_, err = adapter.Decode(f.Data, hint)
			return err
		}, nil
	}
	return func() error {
		_, err := adapter.Decode(file.Data, hint)
		return err
	}, nil
}

// checkParity compares decoder outputs. Every mismatch is printed and the
// combined mismatches are returned.
func (h *Harness) checkParity(file util.ImageFile) error {
	parity := h.cfg.Parity
	var mismatches error

	if len(parity.Decoders) > 1 {
		for _, name := range parity.Decoders[1:] {
			label := fmt.Sprintf("%s: %s vs %s", filepath.Base(file.Path), parity.Decoders[0], name)
			err := h.compare(label, parity.Decoders[0], file.Data, name, file.Data)
			mismatches = multierr.Append(mismatches, err)
		}
	}

	if parity.Dir != "" {
		files, err := util.LoadDirectoryImageFiles(parity.Dir)
		if err != nil {
			return err
		}
		decoders := parity.Decoders
		if len(decoders) == 0 {
			decoders = []string{"std"}
		}
		for _, f := range files {
			check, err := util.LoadImageFile(filepath.Join(parity.CheckDir, filepath.Base(f.Path)))
			if err != nil {
				return err
			}
			for _, name := range decoders {
				label := fmt.Sprintf("%s: %s vs check file", filepath.Base(f.Path), name)
				mismatches = multierr.Append(mismatches, h.compare(label, decoders[0], check.Data, name, f.Data))
			}
		}
	}

	return mismatches
}

// compare decodes want and got natively and diffs them. Decode failures are
// returned as is; a mismatch is wrapped with label.
func (h *Harness) compare(label, wantDecoder string, want []byte, gotDecoder string, got []byte) error {
	wantImg, err := decodeWith(wantDecoder, want)
	if err != nil {
		return errors.Wrap(err, label)
	}
	gotImg, err := decodeWith(gotDecoder, got)
	if err != nil {
		return errors.Wrap(err, label)
	}

	if err := images.Diff(wantImg, gotImg); err != nil {
		fmt.Fprintf(h.out, "parity %s: %v\n", label, err)
		return errors.Wrap(err, label)
	}
	fmt.Fprintf(h.out, "parity %s: ok\n", label)
	return nil
}

func decodeWith(name string, data []byte) (*images.Image, error) {
	adapter, err := images.LookupDecoder(name)
	if err != nil {
		return nil, err
	}
	return adapter.Decode(data, images.NativeLayout)
}
