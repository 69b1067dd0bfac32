// Package parser implements the line- and indentation-sensitive rec parser.
//
// Parsing is line-oriented: the source is split on newlines, the top level
// accepts only blank lines and def headers, and each function body is a
// tree of scopes where every nesting level adds exactly one space of
// indent. There is no error recovery; the first violation aborts the parse
// and is reported with its 1-based source line.
package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-rec/internal/ast"
	"github.com/cwbudde/go-rec/internal/errors"
	"github.com/cwbudde/go-rec/internal/lexer"
)

// Parser holds the split source lines for one parse.
type Parser struct {
	lines []string
}

// New creates a parser for the given source text.
func New(source string) *Parser {
	return &Parser{lines: lexer.SplitLines(source)}
}

// ParseProgram consumes the whole source and returns the function table.
// Only blank lines and function definitions are valid at the top level.
func (p *Parser) ParseProgram() (*ast.Program, *errors.ScriptError) {
	program := &ast.Program{}

	index := 0
	for index < len(p.lines) {
		line := p.lines[index]
		switch {
		case lexer.IsBlank(line):
			index++
		case strings.HasPrefix(line, lexer.KeywordDef):
			next, err := p.parseFunction(index, program)
			if err != nil {
				return nil, err
			}
			index = next
		default:
			return nil, errors.New(errors.SyntaxError, index+1, "expected a function definition")
		}
	}

	return program, nil
}

// parseFunction parses a def header and its body. The function record is
// appended to the table before the body is parsed so that the body can
// call it recursively.
func (p *Parser) parseFunction(index int, program *ast.Program) (int, *errors.ScriptError) {
	line := index + 1

	header := strings.Fields(p.lines[index])
	if len(header) < 2 {
		return 0, errors.New(errors.SyntaxError, line, "function definition needs a name")
	}

	name := header[1]
	params := header[2:]

	for _, param := range params {
		if !lexer.IsIdentifier(param) {
			return 0, errors.New(errors.SyntaxError, line, "invalid parameter name %q", param)
		}
	}
	if !lexer.IsIdentifier(name) {
		return 0, errors.New(errors.SyntaxError, line, "invalid function name %q", name)
	}
	if lexer.IsBuiltinOp(name) {
		return 0, errors.New(errors.SyntaxError, line, "function name %q shadows a builtin operator", name)
	}
	if program.Lookup(name) != nil {
		return 0, errors.New(errors.SyntaxError, line, "function %q is already defined", name)
	}

	fn := &ast.FunctionDecl{Name: name, Params: params, Body: &ast.Scope{}, Line: line}
	program.Functions = append(program.Functions, fn)

	body, next, err := p.parseScope(index+1, " ")
	if err != nil {
		return 0, err
	}
	fn.Body = body

	return next, nil
}

// parseScope consumes consecutive lines belonging to a scope at the given
// indent prefix and returns the index of the first line past it. A line
// terminates the scope when its leading whitespace is shorter than the
// prefix or its first non-space character is not a letter at exactly the
// prefix depth.
func (p *Parser) parseScope(index int, indent string) (*ast.Scope, int, *errors.ScriptError) {
	scope := &ast.Scope{}

	for index < len(p.lines) && inScope(p.lines[index], indent) {
		line := p.lines[index]
		if lexer.IsBlank(line) {
			index++
			continue
		}

		fields := strings.Fields(line)
		switch {
		case len(fields) < 2:
			return nil, 0, errors.New(errors.SyntaxError, index+1, "incomplete statement")

		case len(fields) == 2:
			block, next, err := p.parsePredicateBlock(index, fields, indent+" ")
			if err != nil {
				return nil, 0, err
			}
			scope.Statements = append(scope.Statements, block)
			index = next

		case fields[1] == "=":
			stmt, err := parseAssignment(index+1, fields)
			if err != nil {
				return nil, 0, err
			}
			scope.Statements = append(scope.Statements, stmt)
			index++

		default:
			return nil, 0, errors.New(errors.SyntaxError, index+1, "unrecognized statement")
		}
	}

	return scope, index, nil
}

// inScope reports whether line belongs to a scope with the given indent
// prefix: blank lines always do, other lines must open an identifier at
// exactly the prefix depth.
func inScope(line, indent string) bool {
	if lexer.IsBlank(line) {
		return true
	}
	if !strings.HasPrefix(line, indent) {
		return false
	}
	rest := line[len(indent):]
	return rest != "" && lexer.IsLetter(rest[0])
}

// parsePredicateBlock parses an if/while header and its body one indent
// level deeper.
func (p *Parser) parsePredicateBlock(index int, fields []string, indent string) (*ast.PredicateBlock, int, *errors.ScriptError) {
	line := index + 1

	var kind ast.PredicateKind
	switch fields[0] {
	case lexer.KeywordIf:
		kind = ast.PredicateIf
	case lexer.KeywordWhile:
		kind = ast.PredicateWhile
	default:
		return nil, 0, errors.New(errors.SyntaxError, line, "expected if or while, got %q", fields[0])
	}

	if !lexer.IsIdentifier(fields[1]) {
		return nil, 0, errors.New(errors.SyntaxError, line, "invalid predicate variable %q", fields[1])
	}

	body, next, err := p.parseScope(index+1, indent)
	if err != nil {
		return nil, 0, err
	}

	return &ast.PredicateBlock{Kind: kind, Predicate: fields[1], Body: body, Line: line}, next, nil
}

// parseAssignment parses `target = rhs...` from the whitespace-split
// fields of one line.
func parseAssignment(line int, fields []string) (*ast.AssignStatement, *errors.ScriptError) {
	target := fields[0]
	if !lexer.IsIdentifier(target) {
		return nil, errors.New(errors.SyntaxError, line, "invalid assignment target %q", target)
	}

	value, err := parseExpression(line, fields[2:])
	if err != nil {
		return nil, err
	}

	return &ast.AssignStatement{Target: target, Value: value, Line: line}, nil
}

// parseExpression parses the right-hand side of an assignment: a signed
// integer literal, a builtin operation in the exact three-token form, or a
// call with identifier arguments.
func parseExpression(line int, fields []string) (ast.Expression, *errors.ScriptError) {
	switch {
	case len(fields) == 1 && lexer.IsIntLiteral(fields[0]):
		value, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, errors.New(errors.SyntaxError, line, "integer literal %q out of range", fields[0])
		}
		return &ast.IntegerLiteral{Value: value, Line: line}, nil

	case len(fields) == 3 && lexer.IsBuiltinOp(fields[0]):
		if !lexer.IsIdentifier(fields[1]) || !lexer.IsIdentifier(fields[2]) {
			return nil, errors.New(errors.SyntaxError, line, "operands of %q must be variables", fields[0])
		}
		return &ast.BuiltinOp{Op: fields[0], Left: fields[1], Right: fields[2], Line: line}, nil

	default:
		if lexer.IsBuiltinOp(fields[0]) {
			return nil, errors.New(errors.SyntaxError, line, "operator %q takes exactly two operands", fields[0])
		}
		if !lexer.IsIdentifier(fields[0]) {
			return nil, errors.New(errors.SyntaxError, line, "invalid expression %q", strings.Join(fields, " "))
		}
		// A three-token form with an operator name anywhere but first is
		// a misplaced operation, not a call.
		if len(fields) == 3 {
			for _, field := range fields[1:] {
				if lexer.IsBuiltinOp(field) {
					return nil, errors.New(errors.SyntaxError, line, "operator %q must be the first token of an operation", field)
				}
			}
		}
		for _, arg := range fields[1:] {
			if !lexer.IsIdentifier(arg) {
				return nil, errors.New(errors.SyntaxError, line, "call argument %q is not a variable", arg)
			}
		}
		return &ast.CallExpression{Callee: fields[0], Args: fields[1:], Line: line}, nil
	}
}
