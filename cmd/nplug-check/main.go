package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/nplug-proxy/proxy"
	"github.com/wippyai/nplug-proxy/proxyclient"
	"github.com/wippyai/nplug-proxy/validator"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Width(10)
)

func main() {
	var (
		proxyPath     = flag.String("proxy", "", "Path to the built proxy library")
		factoryLib    = flag.String("factory-lib", "", "Library exporting a factory function to inject as override")
		factorySymbol = flag.String("factory-symbol", proxyclient.SymbolGetPluginFactory, "Exported factory function in -factory-lib")
		dotnetRoot    = flag.String("dotnet-root", "", ".NET install root searched first")
		verbose       = flag.Bool("v", false, "Log native loading and bootstrap steps to stderr")
		interactive   = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *proxyPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: nplug-check -proxy <lib> [-factory-lib <lib> [-factory-symbol name]] [-dotnet-root dir]")
		fmt.Fprintln(os.Stderr, "       nplug-check -proxy <lib> -i  (interactive mode)")
		os.Exit(validator.ExitUsage)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(validator.ExitInternal)
		}
		proxy.SetLoggers(l)
		validator.SetLogger(l.Named("validator"))
		defer l.Sync()
	}

	opts := checkOptions{
		proxyPath:     *proxyPath,
		factoryLib:    *factoryLib,
		factorySymbol: *factorySymbol,
		dotnetRoot:    *dotnetRoot,
	}

	if *interactive {
		if err := runInteractive(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(validator.ExitInternal)
		}
		return
	}

	r := check(opts)
	color := term.IsTerminal(int(os.Stdout.Fd()))
	printReport(os.Stdout, r, color)
	if !r.ok() {
		os.Exit(validator.ExitNull)
	}
}

func printReport(w io.Writer, r *report, color bool) {
	for _, s := range r.steps {
		fmt.Fprintln(w, renderStep(s, color))
	}
}

func renderStep(s step, color bool) string {
	mark, style := "ok", okStyle
	text := s.detail
	switch {
	case s.err != nil && s.warn:
		mark, style, text = "warn", warnStyle, s.err.Error()
	case s.err != nil:
		mark, style, text = "FAIL", failStyle, s.err.Error()
	case s.warn:
		mark, style = "warn", warnStyle
	}

	if !color {
		return fmt.Sprintf("%-4s %-9s %s", mark, s.name, text)
	}
	return style.Render(fmt.Sprintf("%-4s", mark)) + " " + nameStyle.Render(s.name) + text
}
