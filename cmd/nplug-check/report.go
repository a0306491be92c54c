package main

import (
	"fmt"
	"os"

	"github.com/wippyai/nplug-proxy/errors"
	"github.com/wippyai/nplug-proxy/hostfxr"
	"github.com/wippyai/nplug-proxy/native"
	"github.com/wippyai/nplug-proxy/proxy"
	"github.com/wippyai/nplug-proxy/validator"
)

type checkOptions struct {
	platform      native.Platform
	locator       hostfxr.Locator
	proxyPath     string
	factoryLib    string
	factorySymbol string
	dotnetRoot    string
}

type step struct {
	err    error
	name   string
	detail string
	warn   bool
}

type report struct {
	steps   []step
	factory uintptr
}

func (r *report) add(s step) {
	r.steps = append(r.steps, s)
}

// ok reports whether a factory was produced.
func (r *report) ok() bool {
	return r.factory != 0
}

// check inspects the deployment of the proxy at opts.proxyPath and calls its
// GetPluginFactory once.
func check(opts checkOptions) *report {
	r := &report{}

	layout, err := proxy.DeriveLayout(opts.proxyPath)
	if err != nil {
		r.add(step{name: "layout", err: err})
		return r
	}
	for _, path := range []string{layout.ConfigPath(), layout.AssemblyPath()} {
		s := step{name: "layout", detail: path}
		if _, err := os.Stat(path); err != nil {
			s.detail += " (missing)"
			s.warn = true
		}
		r.add(s)
	}
	r.add(step{name: "type", detail: layout.TypeName() + " :: " + proxy.FactoryMethod})

	locator := opts.locator
	if locator == nil {
		var roots []string
		if opts.dotnetRoot != "" {
			roots = append(roots, opts.dotnetRoot)
		}
		locator = &hostfxr.InstallLocator{Roots: roots}
	}
	if path, err := locator.Locate(); err != nil {
		r.add(step{name: "runtime", err: err, warn: opts.factoryLib != ""})
	} else {
		r.add(step{name: "runtime", detail: path})
	}

	probe := &validator.Probe{Platform: opts.platform}
	res, err := probe.Probe(opts.proxyPath, opts.factoryLib, opts.factorySymbol)
	if err != nil {
		r.add(step{name: "proxy", err: err})
		return r
	}
	r.add(step{name: "proxy", detail: res.ProxyPath})
	if res.Injected != "" {
		r.add(step{name: "override", detail: res.Injected})
	}

	r.factory = res.Factory
	if res.Factory == 0 {
		r.add(step{name: "factory", err: errors.NilPointer(errors.PhaseInvoke, proxy.FactoryMethod)})
	} else {
		r.add(step{name: "factory", detail: fmt.Sprintf("%#x", res.Factory)})
	}
	return r
}
