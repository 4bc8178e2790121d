package lil

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// Version is reported by `reflect version`.
const Version = "0.1"

// Config controls interpreter limits and I/O.
type Config struct {
	// Stdout receives print/write output when no Write callback is set.
	Stdout io.Writer
	Logger *slog.Logger
	// MaxParseDepth bounds nested parses (command substitution, function
	// calls, eval). Exceeding it aborts the whole evaluation.
	MaxParseDepth int
	// MaxCatcherDepth bounds nested catcher invocations.
	MaxCatcherDepth int
	// DollarPrefix is the command prepended to $name substitutions.
	DollarPrefix string
	Callbacks    Callbacks
}

// Stats counts command outcomes.
type Stats struct {
	Successes     int
	ArgErrors     int
	CommandErrors int
}

// Interp is a LIL interpreter. It is not safe for concurrent use.
type Interp struct {
	config    Config
	logger    *slog.Logger
	callbacks Callbacks

	root    *Env
	env     *Env
	downEnv *Env

	cmds    map[string]*Function
	sysCmds map[string]*Function

	catcher      string
	inCatcher    int
	dollarPrefix string

	parseDepth int
	rootCode   string
	frames     []*parser
	err        *ScriptError
	ctx        context.Context
	stats      Stats
}

// NewInterp constructs an interpreter with defaults filled in and the
// built-in commands registered.
func NewInterp(cfg Config) (*Interp, error) {
	if cfg.MaxParseDepth < 0 {
		return nil, errors.New("lil: MaxParseDepth must not be negative")
	}
	if cfg.MaxCatcherDepth < 0 {
		return nil, errors.New("lil: MaxCatcherDepth must not be negative")
	}
	if cfg.MaxParseDepth == 0 {
		cfg.MaxParseDepth = 1000
	}
	if cfg.MaxCatcherDepth == 0 {
		cfg.MaxCatcherDepth = 16384
	}
	if cfg.DollarPrefix == "" {
		cfg.DollarPrefix = "set "
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	root := newEnv(nil)
	interp := &Interp{
		config:       cfg,
		logger:       cfg.Logger,
		callbacks:    cfg.Callbacks,
		root:         root,
		env:          root,
		cmds:         make(map[string]*Function),
		dollarPrefix: cfg.DollarPrefix,
		ctx:          context.Background(),
	}
	registerBuiltins(interp)
	interp.sysCmds = make(map[string]*Function, len(interp.cmds))
	for name, fn := range interp.cmds {
		interp.sysCmds[name] = fn
	}
	return interp, nil
}

// MustNewInterp constructs an interpreter or panics if the config is
// invalid.
func MustNewInterp(cfg Config) *Interp {
	interp, err := NewInterp(cfg)
	if err != nil {
		panic(err)
	}
	return interp
}

// SetCallbacks replaces the host callbacks.
func (interp *Interp) SetCallbacks(cb Callbacks) {
	interp.callbacks = cb
}

func (interp *Interp) Callbacks() Callbacks {
	return interp.callbacks
}

func (interp *Interp) Stats() Stats {
	return interp.stats
}

func (interp *Interp) Logger() *slog.Logger {
	return interp.logger
}

// Eval runs code at the current scope and returns the value of the last
// command, or of an explicit top-level return.
func (interp *Interp) Eval(code string) (*Value, error) {
	return interp.EvalContext(context.Background(), code)
}

// EvalContext is Eval with cooperative cancellation: ctx is checked before
// every command.
//
// When called from the outermost level, a fatal abort is recovered here and
// returned as a *FatalError. Calls made from inside a running command let the
// abort continue to the outermost Eval.
func (interp *Interp) EvalContext(ctx context.Context, code string) (result *Value, err error) {
	outermost := interp.parseDepth == 0
	savedCtx := interp.ctx
	interp.ctx = ctx
	defer func() {
		interp.ctx = savedCtx
		if !outermost {
			return
		}
		if r := recover(); r != nil {
			sig, ok := r.(abortSignal)
			if !ok {
				panic(r)
			}
			interp.logger.Debug("evaluation aborted", "error", sig.err.Message)
			result, err = Empty(), sig.err
		}
	}()

	result = interp.parse(code, true)
	if interp.err != nil {
		return result, interp.err
	}
	return result, nil
}

// Parse evaluates code in the current scope. It is meant for native
// commands; hosts should use Eval. With funcLevel set, an explicit return in
// the current frame ends the code and provides the result.
func (interp *Interp) Parse(code string, funcLevel bool) *Value {
	return interp.parse(code, funcLevel)
}

func (interp *Interp) ParseValue(code *Value, funcLevel bool) *Value {
	return interp.parse(code.String(), funcLevel)
}

func (interp *Interp) innermost() *parser {
	if len(interp.frames) == 0 {
		return nil
	}
	return interp.frames[len(interp.frames)-1]
}

// Env returns the current frame.
func (interp *Interp) Env() *Env { return interp.env }

// RootEnv returns the global frame.
func (interp *Interp) RootEnv() *Env { return interp.root }

// PushEnv enters a new frame whose parent is the current frame.
func (interp *Interp) PushEnv() *Env {
	env := newEnv(interp.env)
	interp.env = env
	interp.logger.Debug("push frame", "depth", interp.parseDepth)
	return env
}

// PopEnv leaves the current frame and releases its variables. The root
// frame is never popped.
func (interp *Interp) PopEnv() {
	env := interp.env
	if env.parent == nil {
		return
	}
	interp.env = env.parent
	env.release()
	interp.logger.Debug("pop frame", "depth", interp.parseDepth)
}

// enterEnv makes env current and returns a function restoring the previous
// frame, releasing env.
func (interp *Interp) enterEnv(env *Env) func() {
	saved := interp.env
	interp.env = env
	interp.logger.Debug("push frame", "depth", interp.parseDepth)
	return func() {
		interp.env = saved
		env.release()
		interp.logger.Debug("pop frame", "depth", interp.parseDepth)
	}
}

// SetVar assigns a variable according to mode and returns it. The value is
// cloned. It returns nil if name is empty or a SetVar callback vetoed the
// assignment.
func (interp *Interp) SetVar(name string, val *Value, mode SetMode) *Variable {
	if name == "" {
		return nil
	}
	env := interp.env
	if mode == SetGlobal {
		env = interp.root
	}
	stored := val.Clone()
	if mode == SetLocalNew {
		return env.define(name, stored)
	}

	var v *Variable
	if mode == SetLocalOnly {
		v = env.lookupLocal(name)
	} else {
		v = env.lookup(name, interp.root)
	}

	global := (v == nil && env == interp.root) || (v != nil && v.env == interp.root)
	if global && interp.callbacks.SetVar != nil {
		replacement, ok := interp.callbacks.SetVar(interp, name, stored)
		if !ok {
			return nil
		}
		if replacement != nil {
			stored = replacement.Clone()
		}
	}

	if v == nil {
		return env.define(name, stored)
	}
	v.value = stored
	interp.runWatch(v)
	return v
}

// GetVar returns the value of the variable visible from the current frame.
// Unset variables read as the empty value. The result is owned by the
// variable; clone it before storing it elsewhere.
func (interp *Interp) GetVar(name string) *Value {
	return interp.GetVarOr(name, Empty())
}

// GetVarOr is GetVar with a caller-supplied default for unset variables.
func (interp *Interp) GetVarOr(name string, def *Value) *Value {
	v := interp.env.lookup(name, interp.root)
	if (v == nil || v.env == interp.root) && interp.callbacks.GetVar != nil {
		if val, ok := interp.callbacks.GetVar(interp, name); ok {
			return val
		}
	}
	if v == nil {
		return def
	}
	return v.value
}

// Watch attaches code that runs, in the variable's frame, whenever the
// variable is assigned. Empty code removes the watch. Unset variables are
// created empty in the current frame.
func (interp *Interp) Watch(name, code string) {
	v := interp.env.lookup(name, interp.root)
	if v == nil {
		v = interp.env.define(name, Empty())
	}
	v.watch = code
}

func (interp *Interp) runWatch(v *Variable) {
	if v.watch == "" {
		return
	}
	saved := interp.env
	interp.env = v.env
	defer func() { interp.env = saved }()
	interp.parse(v.watch, true)
}

// GlobalNames lists the variables of the root frame.
func (interp *Interp) GlobalNames() []string {
	return interp.root.Names()
}

// Catcher returns the code run for unknown commands.
func (interp *Interp) Catcher() string { return interp.catcher }

// SetCatcher installs code run for unknown commands. Empty code removes it.
func (interp *Interp) SetCatcher(code string) { interp.catcher = code }

func (interp *Interp) DollarPrefix() string { return interp.dollarPrefix }

func (interp *Interp) SetDollarPrefix(prefix string) { interp.dollarPrefix = prefix }
