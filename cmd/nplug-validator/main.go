// Command nplug-validator exposes the validator ABI as a C shared library:
//
//	void nplug_validator_initialize(void);
//	int  nplug_validator_validate(int argc, char** argv, void (*out)(int), void (*err)(int));
//	void nplug_validator_destroy(void);
//
// argv follows process conventions (argv[0] is the program name); the remaining
// arguments are those of the probe procedure, e.g. -proxy /plugins/Delay.so.
package main

/*
typedef void (*nplug_output_fn)(int);

static inline void nplug_call_output(nplug_output_fn fn, int c) {
	fn(c);
}
*/
import "C"

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/nplug-proxy/proxy"
	"github.com/wippyai/nplug-proxy/validator"
)

var initOnce sync.Once

//export nplug_validator_initialize
func nplug_validator_initialize() {
	initOnce.Do(func() {
		cfg, err := proxy.LoadConfig(os.Getenv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "nplug-validator: %v\n", err)
		}
		l, err := cfg.NewLogger()
		if err != nil {
			l = zap.NewNop()
		}
		proxy.SetLoggers(l)
		validator.SetLogger(l.Named("validator"))
	})
}

//export nplug_validator_validate
func nplug_validator_validate(argc C.int, argv **C.char, output, errOutput C.nplug_output_fn) C.int {
	nplug_validator_initialize()
	return C.int(validator.Run(goArgs(argc, argv), redirect(output), redirect(errOutput), nil))
}

//export nplug_validator_destroy
func nplug_validator_destroy() {
	_ = validator.Logger().Sync()
	_ = proxy.Logger().Sync()
}

func goArgs(argc C.int, argv **C.char) []string {
	if argc <= 0 || argv == nil {
		return nil
	}
	args := make([]string, 0, int(argc))
	for _, a := range unsafe.Slice(argv, int(argc)) {
		args = append(args, C.GoString(a))
	}
	return args
}

func redirect(fn C.nplug_output_fn) validator.Output {
	if fn == nil {
		return nil
	}
	return func(c int) {
		C.nplug_call_output(fn, C.int(c))
	}
}

func main() {}
