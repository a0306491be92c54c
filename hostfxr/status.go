package hostfxr

import (
	"fmt"
	"strings"
)

// StatusCode is a hosting API return value.
type StatusCode uint32

const (
	Success                           StatusCode = 0x00000000
	SuccessHostAlreadyInitialized     StatusCode = 0x00000001
	SuccessDifferentRuntimeProperties StatusCode = 0x00000002

	InvalidArgFailure          StatusCode = 0x80008081
	CoreHostLibLoadFailure     StatusCode = 0x80008082
	CoreHostLibMissingFailure  StatusCode = 0x80008083
	CoreHostEntryPointFailure  StatusCode = 0x80008084
	CoreHostCurHostFindFailure StatusCode = 0x80008085
	CoreClrResolveFailure      StatusCode = 0x80008087
	CoreClrBindFailure         StatusCode = 0x80008088
	CoreClrInitFailure         StatusCode = 0x80008089
	CoreClrExeFailure          StatusCode = 0x8000808a
	ResolverInitFailure        StatusCode = 0x8000808b
	ResolverResolveFailure     StatusCode = 0x8000808c
	LibHostInitFailure         StatusCode = 0x8000808e
	LibHostInvalidArgs         StatusCode = 0x80008092
	InvalidConfigFile          StatusCode = 0x80008093
	FrameworkMissingFailure    StatusCode = 0x80008096
	HostApiFailed              StatusCode = 0x80008097
	HostApiBufferTooSmall      StatusCode = 0x80008098
	FrameworkCompatFailure     StatusCode = 0x8000809c
	HostApiUnsupportedVersion  StatusCode = 0x800080a2
	HostInvalidState           StatusCode = 0x800080a3
	HostPropertyNotFound       StatusCode = 0x800080a4
	CoreHostIncompatibleConfig StatusCode = 0x800080a5
	HostApiUnsupportedScenario StatusCode = 0x800080a6
	HostFeatureDisabled        StatusCode = 0x800080a7
)

var statusNames = map[StatusCode]string{
	Success:                           "Success",
	SuccessHostAlreadyInitialized:     "Success_HostAlreadyInitialized",
	SuccessDifferentRuntimeProperties: "Success_DifferentRuntimeProperties",
	InvalidArgFailure:                 "InvalidArgFailure",
	CoreHostLibLoadFailure:            "CoreHostLibLoadFailure",
	CoreHostLibMissingFailure:         "CoreHostLibMissingFailure",
	CoreHostEntryPointFailure:         "CoreHostEntryPointFailure",
	CoreHostCurHostFindFailure:        "CoreHostCurHostFindFailure",
	CoreClrResolveFailure:             "CoreClrResolveFailure",
	CoreClrBindFailure:                "CoreClrBindFailure",
	CoreClrInitFailure:                "CoreClrInitFailure",
	CoreClrExeFailure:                 "CoreClrExeFailure",
	ResolverInitFailure:               "ResolverInitFailure",
	ResolverResolveFailure:            "ResolverResolveFailure",
	LibHostInitFailure:                "LibHostInitFailure",
	LibHostInvalidArgs:                "LibHostInvalidArgs",
	InvalidConfigFile:                 "InvalidConfigFile",
	FrameworkMissingFailure:           "FrameworkMissingFailure",
	HostApiFailed:                     "HostApiFailed",
	HostApiBufferTooSmall:             "HostApiBufferTooSmall",
	FrameworkCompatFailure:            "FrameworkCompatFailure",
	HostApiUnsupportedVersion:         "HostApiUnsupportedVersion",
	HostInvalidState:                  "HostInvalidState",
	HostPropertyNotFound:              "HostPropertyNotFound",
	CoreHostIncompatibleConfig:        "CoreHostIncompatibleConfig",
	HostApiUnsupportedScenario:        "HostApiUnsupportedScenario",
	HostFeatureDisabled:               "HostFeatureDisabled",
}

// String returns the symbolic name of the code, or its hex value if unknown.
func (c StatusCode) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return fmt.Sprintf("%#08x", uint32(c))
}

// IsFailure reports whether the code has the failure bit set.
func (c StatusCode) IsFailure() bool {
	return c&0x80000000 != 0
}

// status truncates a native int return value to a StatusCode.
func status(r uintptr) StatusCode {
	return StatusCode(uint32(r))
}

// InitPolicy selects which initialize results count as success.
type InitPolicy int

const (
	// PolicyCompatible accepts Success, Success_HostAlreadyInitialized and
	// Success_DifferentRuntimeProperties.
	PolicyCompatible InitPolicy = iota
	// PolicyStrict accepts Success and Success_HostAlreadyInitialized only.
	PolicyStrict
)

// Accepts reports whether code is a successful initialize result under the policy.
func (p InitPolicy) Accepts(code StatusCode) bool {
	switch code {
	case Success, SuccessHostAlreadyInitialized:
		return true
	case SuccessDifferentRuntimeProperties:
		return p != PolicyStrict
	}
	return false
}

func (p InitPolicy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "compatible"
}

// ParseInitPolicy parses "compatible" or "strict". Empty selects PolicyCompatible.
func ParseInitPolicy(s string) (InitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compatible":
		return PolicyCompatible, nil
	case "strict":
		return PolicyStrict, nil
	}
	return PolicyCompatible, fmt.Errorf("unknown init policy %q", s)
}
