// Package validator hosts validation procedures behind the character-callback ABI
// used by external plugin validators.
//
// The caller supplies two callbacks, one per output stream, that receive one
// character per call. NewRedirect turns such a callback into an io.Writer so a
// Procedure can write ordinary text. Probe is the default procedure: it loads a proxy
// library, optionally installs a factory override, and reports whether
// GetPluginFactory produced a factory.
package validator
