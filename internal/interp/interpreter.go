package interp

import (
	"io"

	"github.com/loxlang/golox/internal/ast"
)

// Interpreter evaluates a validated program against a globals environment
// and writes `print` output to Output.
type Interpreter struct {
	Globals *Environment
	Output  io.Writer
}

// New creates an Interpreter with an empty global scope, writing `print`
// output to w.
func New(w io.Writer) *Interpreter {
	return &Interpreter{Globals: NewEnvironment(), Output: w}
}

// DefineGlobal installs a value (typically a *NativeFn) in the global
// scope before running a program, the mechanism the embeddable engine uses
// to expose host functions to scripts.
func (i *Interpreter) DefineGlobal(name string, value Value) {
	i.Globals.Define(name, value)
}

// Run executes every top-level statement of program against the globals
// environment, in order, stopping at the first error. A `return` that
// reaches the top level is reported as a RuntimeError.
func (i *Interpreter) Run(program *ast.Program) error {
	for _, stmt := range program.Statements {
		if _, err := i.execute(stmt, i.Globals); err != nil {
			if _, ok := asReturnSignal(err); ok {
				return newRuntimeError(stmt.Pos(), "Can't return from top-level code.")
			}
			return err
		}
	}
	return nil
}

// execute evaluates one statement for effect. The returned Value is only
// meaningful as an implementation detail of evalBlockIn / callFunction; an
// error of dynamic type *ReturnSignal represents an in-flight return, not a
// failure.
func (i *Interpreter) execute(stmt ast.Statement, env *Environment) (Value, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := i.evaluate(s.Expr, env)
		return Nil, err

	case *ast.Print:
		v, err := i.evaluate(s.Expr, env)
		if err != nil {
			return nil, err
		}
		io.WriteString(i.Output, v.String()+"\n")
		return Nil, nil

	case *ast.VarDef:
		var v Value = Nil
		if s.Initializer != nil {
			var err error
			v, err = i.evaluate(s.Initializer, env)
			if err != nil {
				return nil, err
			}
		}
		env.Define(s.Name, v)
		return Nil, nil

	case *ast.If:
		cond, err := i.evaluate(s.Cond, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(cond) {
			return i.execute(s.Then, env)
		}
		if s.Else != nil {
			return i.execute(s.Else, env)
		}
		return Nil, nil

	case *ast.While:
		for {
			cond, err := i.evaluate(s.Cond, env)
			if err != nil {
				return nil, err
			}
			if !isTruthy(cond) {
				return Nil, nil
			}
			if _, err := i.execute(s.Body, env); err != nil {
				return nil, err
			}
		}

	case *ast.Block:
		child := env.push(nil)
		return i.evalBlockIn(s, child)

	case *ast.Return:
		var v Value = Nil
		if s.Value != nil {
			var err error
			v, err = i.evaluate(s.Value, env)
			if err != nil {
				return nil, err
			}
		}
		return nil, &ReturnSignal{Value: v}

	case *ast.Function:
		fn := &Function{
			Name:          s.Name,
			Params:        paramNames(s.Params),
			Body:          s.Body,
			Env:           env,
			isInitializer: false,
		}
		env.Define(s.Name, fn)
		return Nil, nil

	case *ast.Class:
		var base *Class
		if s.Base != nil {
			bv, err := i.evaluate(s.Base, env)
			if err != nil {
				return nil, err
			}
			b, ok := bv.(*Class)
			if !ok {
				return nil, newRuntimeError(s.Base.Pos(), "Superclass of '%s' must be a class.", s.Name)
			}
			base = b
		}

		methodEnv := env
		if base != nil {
			methodEnv = env.push(map[string]Value{"super": base})
		}

		methods := make(map[string]*Function, len(s.Methods))
		for _, m := range s.Methods {
			methods[m.Name] = &Function{
				Name:          m.Name,
				Params:        paramNames(m.Params),
				Body:          m.Body,
				Env:           methodEnv,
				isInitializer: m.Name == "init",
			}
		}

		env.Define(s.Name, &Class{Name: s.Name, Methods: methods, Base: base})
		return Nil, nil
	}
	return Nil, nil
}

// evalBlockIn runs every statement of block against env, which the caller
// has already extended (or not) as appropriate — a function call extends
// with parameter bindings and passes that frame directly, while an ordinary
// nested block first pushes a fresh child frame.
func (i *Interpreter) evalBlockIn(block *ast.Block, env *Environment) (Value, error) {
	for _, stmt := range block.Stmts {
		if _, err := i.execute(stmt, env); err != nil {
			return nil, err
		}
	}
	return Nil, nil
}

func paramNames(params []ast.Param) []string {
	names := make([]string, len(params))
	for idx, p := range params {
		names[idx] = p.Name
	}
	return names
}

// evaluate computes the Value of expr.
func (i *Interpreter) evaluate(expr ast.Expression, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Var:
		v, ok := env.Lookup(e.Name)
		if !ok {
			return nil, newRuntimeError(e.Pos(), "variable %s does not exist", e.Name)
		}
		return v, nil

	case *ast.Assign:
		v, err := i.evaluate(e.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(e.Name, v); err != nil {
			return nil, newRuntimeError(e.Pos(), "variable %s does not exist", e.Name)
		}
		return v, nil

	case *ast.BinOp:
		return i.evalBinOp(e, env)

	case *ast.UnaryOp:
		operand, err := i.evaluate(e.Operand, env)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case "-":
			n, ok := operand.(NumberValue)
			if !ok {
				return nil, newRuntimeError(e.Pos(), "Operand must be a number.")
			}
			return -n, nil
		case "!":
			return BoolValue(!isTruthy(operand)), nil
		}
		return nil, newRuntimeError(e.Pos(), "Unknown unary operator '%s'.", e.Op)

	case *ast.And:
		left, err := i.evaluate(e.Left, env)
		if err != nil {
			return nil, err
		}
		if !isTruthy(left) {
			return left, nil
		}
		return i.evaluate(e.Right, env)

	case *ast.Or:
		left, err := i.evaluate(e.Left, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(left) {
			return left, nil
		}
		return i.evaluate(e.Right, env)

	case *ast.Call:
		return i.evalCall(e, env)

	case *ast.Getattr:
		obj, err := i.evaluate(e.Obj, env)
		if err != nil {
			return nil, err
		}
		switch o := obj.(type) {
		case *Instance:
			v, ok := o.Get(e.Name)
			if !ok {
				return nil, newRuntimeError(e.Pos(), "Field '%s' does not exist", e.Name)
			}
			return v, nil
		case *Class:
			m, ok := o.GetMethod(e.Name)
			if !ok {
				return nil, newRuntimeError(e.Pos(), "Field '%s' does not exist", e.Name)
			}
			return m, nil
		default:
			return nil, newRuntimeError(e.Pos(), "Only instances have properties.")
		}

	case *ast.Setattr:
		obj, err := i.evaluate(e.Obj, env)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, newRuntimeError(e.Pos(), "Only instances can have fields.")
		}
		v, err := i.evaluate(e.Value, env)
		if err != nil {
			return nil, err
		}
		inst.Set(e.Name, v)
		return v, nil

	case *ast.This:
		v, ok := env.Lookup("this")
		if !ok {
			return nil, newRuntimeError(e.Pos(), "'this' used outside of a method.")
		}
		return v, nil

	case *ast.Super:
		superVal, ok := env.Lookup("super")
		if !ok {
			return nil, newRuntimeError(e.Pos(), "'super' used outside of a subclass method.")
		}
		thisVal, _ := env.Lookup("this")
		base := superVal.(*Class)
		this := thisVal.(*Instance)
		method, ok := base.GetMethod(e.Name)
		if !ok {
			return nil, newRuntimeError(e.Pos(), "Undefined property '%s'.", e.Name)
		}
		return method.Bind(this), nil
	}
	return nil, newRuntimeError(expr.Pos(), "Cannot evaluate expression.")
}

func (i *Interpreter) evalCall(e *ast.Call, env *Environment) (Value, error) {
	callee, err := i.evaluate(e.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evaluate(a, env)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	switch c := callee.(type) {
	case *Function:
		return i.callFunction(c, args)

	case *NativeFn:
		if c.Arty >= 0 && len(args) != c.Arty {
			return nil, newRuntimeError(e.Pos(), "'%s' expected %d arguments but got %d.", c.Name, c.Arty, len(args))
		}
		return c.Fn(args)

	case *Class:
		if len(args) != c.Arity() {
			return nil, newRuntimeError(e.Pos(), "'%s' expected %d arguments but got %d.", c.Name, c.Arity(), len(args))
		}
		instance := newInstance(c)
		if init, ok := c.GetMethod("init"); ok {
			if _, err := i.callFunction(init.Bind(instance), args); err != nil {
				return nil, err
			}
		}
		return instance, nil

	default:
		return nil, newRuntimeError(e.Pos(), "'%s' is not a function", callee.String())
	}
}

func (i *Interpreter) evalBinOp(e *ast.BinOp, env *Environment) (Value, error) {
	left, err := i.evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "==":
		return BoolValue(valuesEqual(left, right)), nil
	case "!=":
		return BoolValue(!valuesEqual(left, right)), nil
	case "+":
		if ln, ok := left.(NumberValue); ok {
			if rn, ok := right.(NumberValue); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(StringValue); ok {
			if rs, ok := right.(StringValue); ok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(e.Pos(), "Operands must be two numbers or two strings.")
	case "-", "*", "/", "<", "<=", ">", ">=":
		ln, lok := left.(NumberValue)
		rn, rok := right.(NumberValue)
		if !lok || !rok {
			return nil, newRuntimeError(e.Pos(), "Operands must be numbers.")
		}
		switch e.Op {
		case "-":
			return ln - rn, nil
		case "*":
			return ln * rn, nil
		case "/":
			if rn == 0 {
				return nil, newRuntimeError(e.Pos(), "Division by zero.")
			}
			return ln / rn, nil
		case "<":
			return BoolValue(ln < rn), nil
		case "<=":
			return BoolValue(ln <= rn), nil
		case ">":
			return BoolValue(ln > rn), nil
		case ">=":
			return BoolValue(ln >= rn), nil
		}
	}
	return nil, newRuntimeError(e.Pos(), "Unknown binary operator '%s'.", e.Op)
}

// literalValue converts the interface{} payload a Literal AST node carries
// (produced by the parser from a token's literal text) into a Value.
func literalValue(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Nil
	case bool:
		return BoolValue(val)
	case float64:
		return NumberValue(val)
	case string:
		return StringValue(val)
	}
	return Nil
}
