package proxyclient_test

import (
	"testing"

	"github.com/wippyai/nplug-proxy/errors"
	"github.com/wippyai/nplug-proxy/native/nativetest"
	"github.com/wippyai/nplug-proxy/proxyclient"
	"github.com/wippyai/nplug-proxy/proxyclient/proxyclienttest"
)

const proxyPath = "/plugins/Delay.so"

func TestClient_GetPluginFactory(t *testing.T) {
	p := nativetest.New("/bin/nplug-check")
	fake := proxyclienttest.Install(p, proxyPath)
	fake.Fallback = 0xBEEF

	c, err := proxyclient.Open(p, proxyPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	if c.Path() != proxyPath {
		t.Errorf("Path = %q", c.Path())
	}
	if got := c.GetPluginFactory(); got != 0xBEEF {
		t.Errorf("GetPluginFactory = %#x", got)
	}
}

func TestClient_SetFactoryPointer(t *testing.T) {
	p := nativetest.New("/bin/nplug-check")
	fake := proxyclienttest.Install(p, proxyPath)
	factory := p.Func(func(args ...uintptr) uintptr { return 0x1234 })

	c, err := proxyclient.Open(p, proxyPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	c.SetFactoryPointer(factory)

	if fake.Override != factory {
		t.Errorf("override = %#x, want %#x", fake.Override, factory)
	}
	for i := 0; i < 2; i++ {
		if got := c.GetPluginFactory(); got != 0x1234 {
			t.Errorf("GetPluginFactory = %#x", got)
		}
	}
	if p.Calls(factory) != 2 {
		t.Errorf("factory calls = %d", p.Calls(factory))
	}
}

func TestOpen_Errors(t *testing.T) {
	t.Run("missing library", func(t *testing.T) {
		_, err := proxyclient.Open(nativetest.New("/bin/x"), "/nowhere/Delay.so")
		if errors.KindOf(err) != errors.KindLibLoad {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("not a proxy", func(t *testing.T) {
		p := nativetest.New("/bin/x")
		lib := p.AddLibrary("/plugins/Other.so")
		lib.Define(proxyclient.SymbolGetPluginFactory, func(args ...uintptr) uintptr { return 0 })

		_, err := proxyclient.Open(p, "/plugins/Other.so")
		var e *errors.Error
		if !errors.As(err, &e) || e.Kind != errors.KindMissingExport || e.Symbol != proxyclient.SymbolSetPluginFactory {
			t.Errorf("err = %v", err)
		}
	})
}

func TestSetFactory_Nil(t *testing.T) {
	p := nativetest.New("/bin/x")
	proxyclienttest.Install(p, proxyPath)

	c, err := proxyclient.Open(p, proxyPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetFactory(nil); errors.KindOf(err) != errors.KindInvalidInput {
		t.Errorf("err = %v", err)
	}
}
