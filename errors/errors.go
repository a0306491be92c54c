package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bootstrap sequence the error occurred
type Phase string

const (
	PhaseDiscover Phase = "discover" // runtime host library discovery
	PhaseLoad     Phase = "load"     // library open and export lookup
	PhaseInit     Phase = "init"     // hosting context initialization
	PhaseDelegate Phase = "delegate" // runtime delegate resolution
	PhaseAssembly Phase = "assembly" // managed method lookup
	PhaseInvoke   Phase = "invoke"   // managed entry point call
	PhaseLayout   Phase = "layout"   // module path and file naming
	PhaseValidate Phase = "validate" // validator tooling
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindLibLoad        Kind = "lib_load"
	KindMissingExport  Kind = "missing_export"
	KindInitFailed     Kind = "init_failed"
	KindDelegateFailed Kind = "delegate_failed"
	KindAssemblyFailed Kind = "assembly_failed"
	KindNilPointer     Kind = "nil_pointer"
	KindInvalidInput   Kind = "invalid_input"
	KindModulePath     Kind = "module_path"
	KindUnsupported    Kind = "unsupported"
)

// Error is the structured error type used throughout the proxy
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   string
	Symbol string
	// Code is the raw status code reported by the runtime host, 0 if none.
	Code uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Symbol != "" {
		b.WriteString(" symbol ")
		b.WriteString(e.Symbol)
	}

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Code != 0 {
		fmt.Fprintf(&b, " (status %#x)", e.Code)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the filesystem path involved
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Symbol sets the exported symbol involved
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Code sets the runtime host status code
func (b *Builder) Code(code uint32) *Builder {
	b.err.Code = code
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotFound creates a not-found error
func NotFound(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s not found", what),
	}
}

// LibLoad creates a library open failure
func LibLoad(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindLibLoad,
		Path:   path,
		Detail: "open library",
		Cause:  cause,
	}
}

// MissingExport creates a missing export error
func MissingExport(path, symbol string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindMissingExport,
		Path:   path,
		Symbol: symbol,
		Cause:  cause,
	}
}

// InitFailed creates a hosting context initialization error
func InitFailed(configPath string, code uint32, detail string) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindInitFailed,
		Path:   configPath,
		Code:   code,
		Detail: detail,
	}
}

// DelegateFailed creates a delegate resolution error
func DelegateFailed(code uint32, detail string) *Error {
	return &Error{
		Phase:  PhaseDelegate,
		Kind:   KindDelegateFailed,
		Code:   code,
		Detail: detail,
	}
}

// AssemblyFailed creates a managed method lookup error
func AssemblyFailed(assemblyPath, typeName, method string, code uint32) *Error {
	return &Error{
		Phase:  PhaseAssembly,
		Kind:   KindAssemblyFailed,
		Path:   assemblyPath,
		Symbol: typeName + "." + method,
		Code:   code,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Detail: fmt.Sprintf("%s returned null", what),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// ModulePath creates a module path resolution error
func ModulePath(cause error) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindModulePath,
		Detail: "resolve host module path",
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IsDeployment reports whether the error signals a broken installation
// (library that cannot be opened, missing export, unresolvable module path).
func IsDeployment(err error) bool {
	var e *Error
	if !As(err, &e) || e == nil {
		return false
	}
	switch e.Kind {
	case KindLibLoad, KindMissingExport, KindModulePath:
		return true
	}
	return false
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if As(err, &e) && e != nil {
		return e.Kind
	}
	return ""
}
