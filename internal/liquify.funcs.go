package internal

import (
	"fmt"
	"strings"
	"sync"
)

// Func represents a callable function in expressions
type Func struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for variadic
	Fn      func(args []any) (any, error)
}

// FuncRegistry manages registered functions
type FuncRegistry struct {
	funcs map[string]*Func
	mu    sync.RWMutex
}

// NewFuncRegistry creates a new function registry
func NewFuncRegistry() *FuncRegistry {
	return &FuncRegistry{
		funcs: make(map[string]*Func),
	}
}

// Register adds a function to the registry
func (r *FuncRegistry) Register(f *Func) error {
	if f == nil {
		return NewFuncError(ErrMsgFuncNilFunc, StringValueEmpty)
	}
	if f.Name == StringValueEmpty {
		return NewFuncError(ErrMsgFuncEmptyName, StringValueEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[f.Name]; exists {
		return NewFuncError(ErrMsgFuncAlreadyExists, f.Name)
	}

	r.funcs[f.Name] = f
	return nil
}

// MustRegister adds a function and panics on error
func (r *FuncRegistry) MustRegister(f *Func) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Call invokes a function by name with the given arguments
func (r *FuncRegistry) Call(name string, args []any) (any, error) {
	r.mu.RLock()
	f, ok := r.funcs[name]
	r.mu.RUnlock()

	if !ok {
		return nil, NewFuncError(ErrMsgFuncNotFound, name)
	}

	argCount := len(args)
	if argCount < f.MinArgs {
		return nil, NewFuncError(ErrMsgFuncTooFewArgs, name)
	}
	if f.MaxArgs >= 0 && argCount > f.MaxArgs {
		return nil, NewFuncError(ErrMsgFuncTooManyArgs, name)
	}

	return f.Fn(args)
}

// Has checks if a function is registered
func (r *FuncRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.funcs[name]
	return ok
}

// Function name constants
const (
	FuncNameSize    = "size"
	FuncNameFirst   = "first"
	FuncNameLast    = "last"
	FuncNameUpper   = "upper"
	FuncNameLower   = "lower"
	FuncNameJoin    = "join"
	FuncNameDefault = "default"
)

// RegisterBuiltinFuncs registers the built-in expression functions
func RegisterBuiltinFuncs(r *FuncRegistry) {
	// size(x) int
	r.MustRegister(&Func{
		Name:    FuncNameSize,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(args []any) (any, error) {
			return SequenceLength(args[0]), nil
		},
	})

	// first(collection) any
	r.MustRegister(&Func{
		Name:    FuncNameFirst,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(args []any) (any, error) {
			seq := ToSequence(args[0])
			if len(seq) == 0 {
				return nil, nil
			}
			return seq[0], nil
		},
	})

	// last(collection) any
	r.MustRegister(&Func{
		Name:    FuncNameLast,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(args []any) (any, error) {
			seq := ToSequence(args[0])
			if len(seq) == 0 {
				return nil, nil
			}
			return seq[len(seq)-1], nil
		},
	})

	// upper(s) string
	r.MustRegister(&Func{
		Name:    FuncNameUpper,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(args []any) (any, error) {
			return strings.ToUpper(Stringify(args[0])), nil
		},
	})

	// lower(s) string
	r.MustRegister(&Func{
		Name:    FuncNameLower,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(args []any) (any, error) {
			return strings.ToLower(Stringify(args[0])), nil
		},
	})

	// join(collection, separator) string
	r.MustRegister(&Func{
		Name:    FuncNameJoin,
		MinArgs: 2,
		MaxArgs: 2,
		Fn: func(args []any) (any, error) {
			seq := ToSequence(args[0])
			parts := make([]string, len(seq))
			for i, elem := range seq {
				parts[i] = Stringify(elem)
			}
			return strings.Join(parts, Stringify(args[1])), nil
		},
	})

	// default(value, fallback) any
	r.MustRegister(&Func{
		Name:    FuncNameDefault,
		MinArgs: 2,
		MaxArgs: 2,
		Fn: func(args []any) (any, error) {
			if Truthy(args[0]) {
				return args[0], nil
			}
			return args[1], nil
		},
	})
}

// FuncError represents a function registry or call error
type FuncError struct {
	Message string
	Name    string
}

// NewFuncError creates a new function error
func NewFuncError(message, name string) *FuncError {
	return &FuncError{Message: message, Name: name}
}

// Error implements the error interface
func (e *FuncError) Error() string {
	if e.Name != StringValueEmpty {
		return fmt.Sprintf("%s: %s", e.Message, e.Name)
	}
	return e.Message
}

// Function error messages
const (
	ErrMsgFuncNilFunc       = "function cannot be nil"
	ErrMsgFuncEmptyName     = "function name cannot be empty"
	ErrMsgFuncAlreadyExists = "function already registered"
	ErrMsgFuncNotFound      = "function not found"
	ErrMsgFuncTooFewArgs    = "too few arguments"
	ErrMsgFuncTooManyArgs   = "too many arguments"
)
