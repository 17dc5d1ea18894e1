package js

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports"
)

const (
	DefaultTurnTimeout = 10 * time.Second
	snippetName        = "<repl>"
)

var errTurnTimeout = errors.New("turn time limit exceeded")

// Evaluator creates isolated JavaScript environments backed by goja.
type Evaluator struct {
	TurnTimeout time.Duration
}

var _ ports.Evaluator = (*Evaluator)(nil)

func NewEvaluator() *Evaluator {
	return &Evaluator{TurnTimeout: DefaultTurnTimeout}
}

func (e *Evaluator) NewEnvironment(bindings map[string]any) (ports.Environment, error) {
	env := &Environment{
		vm:          goja.New(),
		turnTimeout: e.TurnTimeout,
	}
	if env.turnTimeout <= 0 {
		env.turnTimeout = DefaultTurnTimeout
	}

	if err := env.installConsole(); err != nil {
		return nil, err
	}
	for name, value := range bindings {
		if err := env.vm.Set(name, value); err != nil {
			return nil, fmt.Errorf("bind %q: %w", name, err)
		}
	}

	return env, nil
}

// Environment is one session's JavaScript global scope. Values defined in
// one turn stay visible to later turns.
type Environment struct {
	mu          sync.Mutex
	vm          *goja.Runtime
	out         strings.Builder
	turnTimeout time.Duration
}

var _ ports.Environment = (*Environment)(nil)

func (e *Environment) installConsole() error {
	printFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			if _, isString := arg.Export().(string); isString {
				parts = append(parts, arg.String())
				continue
			}
			parts = append(parts, describe(arg))
		}
		e.out.WriteString(strings.Join(parts, " "))
		e.out.WriteByte('\n')
		return goja.Undefined()
	}

	console := e.vm.NewObject()
	for _, name := range []string{"log", "info", "warn", "error"} {
		if err := console.Set(name, printFn); err != nil {
			return fmt.Errorf("install console.%s: %w", name, err)
		}
	}
	if err := e.vm.Set("console", console); err != nil {
		return fmt.Errorf("install console: %w", err)
	}
	if err := e.vm.Set("print", printFn); err != nil {
		return fmt.Errorf("install print: %w", err)
	}

	return nil
}

// Classify treats a single-line snippet holding one non-assignment
// expression as something to evaluate and echo. Everything else executes.
func (e *Environment) Classify(code string) domain.TurnMode {
	if strings.Contains(code, "\n") {
		return domain.TurnModeExecute
	}

	program, err := parser.ParseFile(nil, snippetName, code, 0)
	if err != nil || len(program.Body) != 1 {
		return domain.TurnModeExecute
	}

	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return domain.TurnModeExecute
	}
	if _, assign := stmt.Expression.(*ast.AssignExpression); assign {
		return domain.TurnModeExecute
	}

	return domain.TurnModeEvaluate
}

func (e *Environment) Run(ctx context.Context, code string) (domain.Turn, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	turn := domain.Turn{Input: code, Mode: e.Classify(code)}

	program, err := goja.Compile(snippetName, code, false)
	if err != nil {
		return turn, fmt.Errorf("%w: %s", domain.ErrSyntax, err.Error())
	}

	e.out.Reset()
	turnCtx, cancel := context.WithTimeoutCause(ctx, e.turnTimeout, errTurnTimeout)
	defer cancel()
	interrupted := make(chan struct{})
	stop := context.AfterFunc(turnCtx, func() {
		e.vm.Interrupt(context.Cause(turnCtx))
		close(interrupted)
	})

	value, runErr := e.vm.RunProgram(program)
	if !stop() {
		<-interrupted
	}
	e.vm.ClearInterrupt()
	turn.Output = e.out.String()

	if runErr != nil {
		var interrupted *goja.InterruptedError
		var exception *goja.Exception
		switch {
		case errors.As(runErr, &interrupted):
			if ctx.Err() != nil {
				return turn, ctx.Err()
			}
			turn.Fault = fmt.Sprintf("Error: execution stopped after %s", e.turnTimeout)
		case errors.As(runErr, &exception):
			turn.Fault = strings.TrimRight(exception.String(), "\n")
		default:
			return turn, fmt.Errorf("%w: %w", domain.ErrRuntimeFault, runErr)
		}
		return turn, nil
	}

	if turn.Mode == domain.TurnModeEvaluate && value != nil && !goja.IsUndefined(value) {
		turn.HasValue = true
		turn.Result = value
		turn.Value = describe(value)
	}

	return turn, nil
}

func (e *Environment) Set(name string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.vm.Set(name, value); err != nil {
		return fmt.Errorf("bind %q: %w", name, err)
	}
	return nil
}

func (e *Environment) Get(name string) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	value := e.vm.Get(name)
	if value == nil {
		return nil, false
	}
	return value.Export(), true
}

func describe(value goja.Value) string {
	if goja.IsNull(value) {
		return "null"
	}
	if _, isFunc := goja.AssertFunction(value); isFunc {
		return value.String()
	}

	switch exported := value.Export().(type) {
	case string:
		return strconv.Quote(exported)
	case map[string]any, []any:
		if data, err := json.Marshal(exported); err == nil {
			return string(data)
		}
	}

	return value.String()
}
