// Command ralinfo probes the configured backend and reports every adapter's
// limits and format support against the baseline.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/ral"
	"github.com/gogpu/ral/backend"
	"github.com/gogpu/ral/config"
	"github.com/gogpu/ral/format"
	"github.com/gogpu/ral/limits"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// exitRejected is the exit status when no adapter meets the baseline.
const exitRejected = 2

func main() {
	var (
		configPath = flag.String("config", config.FileName, "settings file")
		api        = flag.String("api", "", "backend to probe (overrides the settings file)")
		adapter    = flag.String("adapter", "", "only report the adapter with this name")
		showLimits = flag.Bool("limits", false, "print every normalized limit")
		formats    = flag.Bool("formats", false, "print per-format usage")
		verbose    = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Parse()

	if *verbose {
		ral.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *api != "" {
		settings.Common.API = config.API(*api)
		if err := settings.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	opts := reportOptions{adapter: *adapter, limits: *showLimits, formats: *formats}
	accepted, err := run(os.Stdout, settings, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if accepted == 0 {
		os.Exit(exitRejected)
	}
}

type reportOptions struct {
	adapter string
	limits  bool
	formats bool
}

// run probes the backend selected by settings and writes the report. It
// returns the number of adapters that meet the baseline.
func run(w io.Writer, settings config.Settings, opts reportOptions) (int, error) {
	b, err := backend.Resolve(settings.Common.API)
	if err != nil {
		return 0, err
	}
	if c, ok := b.(backend.Configurer); ok {
		c.Configure(settings)
	}
	if r, ok := b.(backend.Releaser); ok {
		defer r.Release()
	}

	adapters, err := b.Probe()
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", b.Name(), err)
	}
	return report(w, b, adapters, opts), nil
}

// report writes one section per adapter and returns how many were accepted.
func report(w io.Writer, b backend.Backend, adapters []backend.Adapter, opts reportOptions) int {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("ral %s: %s", ral.Version, b.API().DisplayName())))

	accepted := 0
	v := limits.NewValidator(limits.WithLogger(ral.Logger()))
	for _, a := range adapters {
		if opts.adapter != "" && a.Info.Name != opts.adapter {
			continue
		}
		fmt.Fprintln(w)
		field(w, "Adapter", a.Info.Name)
		field(w, "Type", a.Info.Type.String())
		if a.GPU.Vendor != "" {
			field(w, "Vendor", a.GPU.Vendor)
		}
		if a.GPU.Driver != "" {
			field(w, "Driver", a.GPU.Driver)
		}

		set, err := v.Validate(a.Limits)
		var rejected *limits.DeviceRejectedError
		switch {
		case errors.As(err, &rejected):
			field(w, "Status", errorStyle.Render("rejected"))
			fmt.Fprint(w, dimStyle.Render(rejected.Report()))
			fmt.Fprintln(w)
			continue
		case err != nil:
			field(w, "Status", errorStyle.Render(err.Error()))
			continue
		}
		accepted++
		field(w, "Status", okStyle.Render("meets baseline"))

		for _, d := range set.Diagnostics() {
			fmt.Fprintf(w, "  %s %s: %s\n",
				warnStyle.Render(d.Provenance.String()),
				d.Name,
				d.Reason)
		}
		if opts.limits {
			writeLimits(w, set)
		}
		if opts.formats {
			writeFormats(w, b, a)
		}
	}
	return accepted
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-8s", label+":")), value)
}

func writeLimits(w io.Writer, set *limits.LimitSet) {
	fmt.Fprintln(w, labelStyle.Render("Limits:"))
	for _, name := range set.Names() {
		bnd, _ := set.Get(name)
		fmt.Fprintf(w, "  %-44s %s\n", name, bnd.Value.Format(bnd.Entry.Kind))
	}
}

func writeFormats(w io.Writer, b backend.Backend, a backend.Adapter) {
	fmt.Fprintln(w, labelStyle.Render("Formats:"))
	for _, f := range format.All() {
		want := format.CapabilitiesOf(f).Usage
		if want == 0 {
			continue
		}
		have := a.FormatUsage(f)
		if !b.SupportsFormat(f, have) {
			have = 0
		}
		line := fmt.Sprintf("  %-20s %s", f, have)
		if missing := want &^ have; missing != 0 {
			line += " " + dimStyle.Render("(missing "+missing.String()+")")
		}
		fmt.Fprintln(w, line)
	}
}
