// Package hostfxr bootstraps the .NET runtime through the hostfxr hosting API.
//
// A bootstrap attempt walks a fixed state machine:
//
//	Uninitialized -> LibraryDiscovered -> FunctionsResolved -> ContextOpen
//	              -> DelegateResolved -> ContextClosed
//
// Any failure ends the attempt in Failed. Once initialize has been called the hosting
// context is closed exactly once, on success and failure alike.
//
// Discovery goes through a Locator. DefaultLocator asks a nethost library deployed
// next to the module first, then searches the standard install locations
// (DOTNET_ROOT, install_location files or the registry, default directories) and
// picks the highest host/fxr version.
//
// Initialize results are interpreted by an InitPolicy. A process that already hosts
// the runtime gets Success_HostAlreadyInitialized (1) or
// Success_DifferentRuntimeProperties (2) on later attempts; both are successes
// under PolicyCompatible, only the former under PolicyStrict.
//
//	b := hostfxr.NewBootstrapper(loader, &hostfxr.Config{
//	    Locator: hostfxr.DefaultLocator(loader, rootDir),
//	})
//	al, err := b.Bootstrap(rootDir + "Delay.runtimeconfig.json")
//	if err != nil {
//	    return err
//	}
//	fn, err := al.FunctionPointer(rootDir+"Delay.dll", "NPlug.Interop.NPlugFactoryExport, Delay", "GetPluginFactory")
package hostfxr
