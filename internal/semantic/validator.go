// Package semantic implements the single pre-execution tree traversal that
// diagnoses scope-sensitive misuses: this/super/return used outside their
// valid context, reserved words in declaration position, and block-local
// redeclaration.
package semantic

import "github.com/loxlang/golox/internal/ast"

// Validate walks program once, reporting the first semantic error
// encountered. A nil return means the program may be evaluated.
func Validate(program *ast.Program) error {
	cursor := ast.NewCursor()
	for _, stmt := range program.Statements {
		if err := walkStatement(stmt, cursor); err != nil {
			return err
		}
	}
	return nil
}

func checkSelf(node ast.Node, cursor *ast.Cursor) error {
	if sv, ok := node.(ast.SelfValidator); ok {
		return sv.ValidateSelf(cursor)
	}
	return nil
}

func walkExpression(expr ast.Expression, cursor *ast.Cursor) error {
	if expr == nil {
		return nil
	}
	if err := checkSelf(expr, cursor); err != nil {
		return err
	}

	switch e := expr.(type) {
	case *ast.Literal, *ast.Var, *ast.This:
		// leaves: nothing further to walk

	case *ast.Assign:
		return walkExpression(e.Value, cursor)

	case *ast.BinOp:
		if err := walkExpression(e.Left, cursor); err != nil {
			return err
		}
		return walkExpression(e.Right, cursor)

	case *ast.UnaryOp:
		return walkExpression(e.Operand, cursor)

	case *ast.And:
		if err := walkExpression(e.Left, cursor); err != nil {
			return err
		}
		return walkExpression(e.Right, cursor)

	case *ast.Or:
		if err := walkExpression(e.Left, cursor); err != nil {
			return err
		}
		return walkExpression(e.Right, cursor)

	case *ast.Call:
		if err := walkExpression(e.Callee, cursor); err != nil {
			return err
		}
		for _, arg := range e.Args {
			if err := walkExpression(arg, cursor); err != nil {
				return err
			}
		}

	case *ast.Getattr:
		return walkExpression(e.Obj, cursor)

	case *ast.Setattr:
		if err := walkExpression(e.Obj, cursor); err != nil {
			return err
		}
		return walkExpression(e.Value, cursor)

	case *ast.Super:
		// leaf beyond its own ValidateSelf check
	}
	return nil
}

func walkStatement(stmt ast.Statement, cursor *ast.Cursor) error {
	if stmt == nil {
		return nil
	}
	if err := checkSelf(stmt, cursor); err != nil {
		return err
	}

	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return walkExpression(s.Expr, cursor)

	case *ast.Print:
		return walkExpression(s.Expr, cursor)

	case *ast.VarDef:
		return walkExpression(s.Initializer, cursor)

	case *ast.If:
		if err := walkExpression(s.Cond, cursor); err != nil {
			return err
		}
		if err := walkStatement(s.Then, cursor); err != nil {
			return err
		}
		return walkStatement(s.Else, cursor)

	case *ast.While:
		if err := walkExpression(s.Cond, cursor); err != nil {
			return err
		}
		return walkStatement(s.Body, cursor)

	case *ast.Block:
		for _, child := range s.Stmts {
			if err := walkStatement(child, cursor); err != nil {
				return err
			}
		}

	case *ast.Return:
		return walkExpression(s.Value, cursor)

	case *ast.Function:
		cursor.PushFunction(s)
		err := walkStatement(s.Body, cursor)
		cursor.PopFunction()
		return err

	case *ast.Class:
		if s.Base != nil {
			if err := walkExpression(s.Base, cursor); err != nil {
				return err
			}
		}
		cursor.PushClass(s)
		for _, m := range s.Methods {
			if err := walkStatement(m, cursor); err != nil {
				cursor.PopClass()
				return err
			}
		}
		cursor.PopClass()
	}
	return nil
}
