package validator

import (
	"flag"
	"fmt"
	"io"

	"github.com/wippyai/nplug-proxy/native"
	"github.com/wippyai/nplug-proxy/proxyclient"
)

// Probe loads a proxy library and checks that GetPluginFactory yields a factory.
//
//	-proxy <path>            proxy library to load (required)
//	-factory-lib <path>      library exporting a factory function to inject
//	-factory-symbol <name>   exported factory function (default GetPluginFactory)
//
// It returns ExitOK for a non-null factory, ExitNull for null or a load failure,
// and ExitUsage for invalid arguments.
type Probe struct {
	// Platform provides native access. Nil selects native.Default().
	Platform native.Platform
}

// ProbeResult is what a probe observed.
type ProbeResult struct {
	ProxyPath string
	Injected  string
	Factory   uintptr
}

// Run implements Procedure.
func (p *Probe) Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	proxyPath := fs.String("proxy", "", "proxy library to load")
	factoryLib := fs.String("factory-lib", "", "library exporting a factory function to inject")
	factorySymbol := fs.String("factory-symbol", proxyclient.SymbolGetPluginFactory, "exported factory function")

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if *proxyPath == "" || fs.NArg() > 0 {
		fmt.Fprintln(stderr, "usage: probe -proxy <path> [-factory-lib <path> [-factory-symbol <name>]]")
		return ExitUsage
	}

	res, err := p.Probe(*proxyPath, *factoryLib, *factorySymbol)
	if err != nil {
		fmt.Fprintf(stderr, "probe: %v\n", err)
		return ExitNull
	}
	if res.Injected != "" {
		fmt.Fprintf(stdout, "override: %s\n", res.Injected)
	}
	if res.Factory == 0 {
		fmt.Fprintf(stderr, "%s: GetPluginFactory returned null\n", res.ProxyPath)
		return ExitNull
	}
	fmt.Fprintf(stdout, "%s: GetPluginFactory = %#x\n", res.ProxyPath, res.Factory)
	return ExitOK
}

// Probe loads proxyPath, injects factorySymbol from factoryLib when factoryLib is
// set, and calls GetPluginFactory once.
func (p *Probe) Probe(proxyPath, factoryLib, factorySymbol string) (ProbeResult, error) {
	platform := p.Platform
	if platform == nil {
		platform = native.Default()
	}
	res := ProbeResult{ProxyPath: proxyPath}

	client, err := proxyclient.Open(platform, proxyPath)
	if err != nil {
		return res, err
	}
	defer client.Close()

	if factoryLib != "" {
		fn, err := resolveFactory(platform, factoryLib, factorySymbol)
		if err != nil {
			return res, err
		}
		client.SetFactoryPointer(fn)
		res.Injected = factoryLib + ":" + factorySymbol
	}

	res.Factory = client.GetPluginFactory()
	return res, nil
}

func resolveFactory(p native.Platform, path, symbol string) (uintptr, error) {
	lib, err := native.NewLoader(p, func(error) {}).Load(path)
	if err != nil {
		return 0, err
	}
	return lib.Export(symbol)
}
