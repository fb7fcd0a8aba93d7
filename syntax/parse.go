package syntax

import (
	"fmt"
	"strings"

	"tycho/database"
)

var binaryPrecedence = map[string]int{
	"EqualOperator":              2,
	"NotEqualOperator":           2,
	"LessThanOperator":           2,
	"GreaterThanOperator":        2,
	"LessThanOrEqualOperator":    2,
	"GreaterThanOrEqualOperator": 2,
	"AddOperator":                3,
	"SubtractOperator":           3,
	"MultiplyOperator":           4,
	"DivideOperator":             4,
}

var operatorSymbols = map[string]string{
	"EqualOperator":              "==",
	"NotEqualOperator":           "/=",
	"LessThanOperator":           "<",
	"GreaterThanOperator":        ">",
	"LessThanOrEqualOperator":    "<=",
	"GreaterThanOrEqualOperator": ">=",
	"AddOperator":                "+",
	"SubtractOperator":           "-",
	"MultiplyOperator":           "*",
	"DivideOperator":             "/",
}

const ascriptionPrecedence = 1

type parser struct {
	db     *database.Db
	path   string
	source string
	tokens []*Token
	pos    int
}

// Parse tokenizes and parses one source file, registering every node with
// db.
func Parse(db *database.Db, path string, source string) (*File, *Error) {
	tokens, err := Tokenize(path, source)
	if err != nil {
		return nil, err
	}

	// Comments have no effect on parsing.
	kept := tokens[:0]
	for _, token := range tokens {
		if token.kind != "Comment" {
			kept = append(kept, token)
		}
	}

	p := &parser{db: db, path: path, source: source, tokens: kept}
	return p.parseFile()
}

func (p *parser) parseFile() (*File, *Error) {
	file := &File{
		Facts: database.NewFacts(database.Span{Path: p.path, Start: database.NullLocation(), End: database.NullLocation(), Source: ""}),
		Path:  p.path,
	}
	p.db.Register(file)

	for {
		p.skipLineBreaks()
		if p.current() == nil {
			break
		}

		statement, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		file.Statements = append(file.Statements, statement)

		if token := p.current(); token != nil && token.kind != "LineBreak" {
			return nil, p.unexpected(token, "a line break")
		}
	}

	return file, nil
}

func (p *parser) parseStatement() (Statement, *Error) {
	if name := p.current(); name != nil && name.kind == "LowercaseName" {
		if next := p.peek(1); next != nil && next.kind == "AssignOperator" {
			p.advance()
			p.advance()

			value, err := p.parseExpr(ascriptionPrecedence)
			if err != nil {
				return nil, err
			}

			statement := &AssignStatement{
				Facts: database.NewFacts(p.joinSpans(name.span, value)),
				Name:  name.value,
				Value: value,
			}
			p.db.Register(statement)
			return statement, nil
		}
	}

	expr, err := p.parseExpr(ascriptionPrecedence)
	if err != nil {
		return nil, err
	}

	statement := &ExprStatement{
		Facts: database.CloneFacts(expr.GetFacts()),
		Expr:  expr,
	}
	p.db.Register(statement)
	return statement, nil
}

func (p *parser) parseExpr(minPrecedence int) (Expr, *Error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	for {
		token := p.current()
		if token == nil {
			break
		}

		if (token.kind == "AnnotateOperator" || token.kind == "AsKeyword") && minPrecedence <= ascriptionPrecedence {
			p.advance()

			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}

			span := p.joinSpans(database.GetSpanFact(left), ty)
			if token.kind == "AnnotateOperator" {
				left = &AscribeExpr{Facts: database.NewFacts(span), Value: left, Type: ty}
			} else {
				left = &ConvertExpr{Facts: database.NewFacts(span), Value: left, Type: ty}
			}

			p.db.Register(left)
			continue
		}

		precedence, ok := binaryPrecedence[token.kind]
		if !ok || precedence < minPrecedence {
			break
		}

		p.advance()

		right, err := p.parseExpr(precedence + 1)
		if err != nil {
			return nil, err
		}

		operator := &NameExpr{
			Facts: database.NewFacts(token.span),
			Name:  operatorSymbols[token.kind],
		}
		p.db.Register(operator)

		call := &CallExpr{
			Facts:  database.NewFacts(p.joinSpans(database.GetSpanFact(left), right)),
			Callee: operator,
			Args:   []Expr{left, right},
		}
		p.db.Register(call)
		left = call
	}

	return left, nil
}

func (p *parser) parsePostfix() (Expr, *Error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		token := p.current()
		if token == nil {
			break
		}

		switch token.kind {
		case "LeftParenthesis":
			p.advance()

			var args []Expr
			for {
				if closing := p.current(); closing != nil && closing.kind == "RightParenthesis" {
					break
				}

				arg, err := p.parseExpr(ascriptionPrecedence)
				if err != nil {
					return nil, err
				}

				args = append(args, arg)

				if comma := p.current(); comma != nil && comma.kind == "CommaOperator" {
					p.advance()
					continue
				}

				break
			}

			closing, err := p.expect("RightParenthesis")
			if err != nil {
				return nil, err
			}

			call := &CallExpr{
				Facts:  database.NewFacts(database.JoinSpans(database.GetSpanFact(expr), closing.span, p.source)),
				Callee: expr,
				Args:   args,
			}
			p.db.Register(call)
			expr = call
		case "MemberOperator":
			p.advance()

			// Member names may be capitalized, for nested type references.
			name := p.current()
			if name == nil || (name.kind != "LowercaseName" && name.kind != "CapitalName") {
				return nil, p.unexpected(name, "a member name")
			}
			p.advance()

			member := &MemberExpr{
				Facts: database.NewFacts(database.JoinSpans(database.GetSpanFact(expr), name.span, p.source)),
				Base:  expr,
				Name:  name.value,
			}
			p.db.Register(member)
			expr = member
		default:
			return expr, nil
		}
	}

	return expr, nil
}

func (p *parser) parsePrimary() (Expr, *Error) {
	token := p.current()
	if token == nil {
		return nil, p.unexpected(nil, "an expression")
	}

	switch token.kind {
	case "Number":
		p.advance()
		expr := &NumberExpr{
			Facts:   database.NewFacts(token.span),
			Value:   token.value,
			IsFloat: strings.Contains(token.value, "."),
		}
		p.db.Register(expr)
		return expr, nil
	case "String":
		p.advance()
		expr := &StringExpr{Facts: database.NewFacts(token.span), Value: token.value}
		p.db.Register(expr)
		return expr, nil
	case "TrueKeyword", "FalseKeyword":
		p.advance()
		expr := &BoolExpr{Facts: database.NewFacts(token.span), Value: token.kind == "TrueKeyword"}
		p.db.Register(expr)
		return expr, nil
	case "LowercaseName":
		if next := p.peek(1); next != nil && next.kind == "FunctionOperator" {
			return p.parseLambda()
		}

		p.advance()
		expr := &NameExpr{Facts: database.NewFacts(token.span), Name: token.value}
		p.db.Register(expr)
		return expr, nil
	case "CapitalName":
		p.advance()
		expr := &NameExpr{Facts: database.NewFacts(token.span), Name: token.value}
		p.db.Register(expr)
		return expr, nil
	case "LeftParenthesis":
		p.advance()

		expr, err := p.parseExpr(ascriptionPrecedence)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect("RightParenthesis"); err != nil {
			return nil, err
		}

		return expr, nil
	default:
		return nil, p.unexpected(token, "an expression")
	}
}

func (p *parser) parseLambda() (Expr, *Error) {
	name, err := p.expect("LowercaseName")
	if err != nil {
		return nil, err
	}

	param := &NameExpr{Facts: database.NewFacts(name.span), Name: name.value}
	p.db.Register(param)

	if _, err := p.expect("FunctionOperator"); err != nil {
		return nil, err
	}

	body, err := p.parseExpr(ascriptionPrecedence)
	if err != nil {
		return nil, err
	}

	lambda := &LambdaExpr{
		Facts: database.NewFacts(p.joinSpans(name.span, body)),
		Param: param,
		Body:  body,
	}
	p.db.Register(lambda)
	return lambda, nil
}

func (p *parser) parseType() (TypeExpr, *Error) {
	token := p.current()
	if token == nil {
		return nil, p.unexpected(nil, "a type")
	}

	switch token.kind {
	case "CapitalName":
		p.advance()
		ty := &TypeNameExpr{Facts: database.NewFacts(token.span), Name: token.value}
		p.db.Register(ty)
		return ty, nil
	case "LeftParenthesis":
		p.advance()

		var params []TypeExpr
		for {
			if closing := p.current(); closing != nil && closing.kind == "RightParenthesis" {
				break
			}

			param, err := p.parseType()
			if err != nil {
				return nil, err
			}

			params = append(params, param)

			if comma := p.current(); comma != nil && comma.kind == "CommaOperator" {
				p.advance()
				continue
			}

			break
		}

		if _, err := p.expect("RightParenthesis"); err != nil {
			return nil, err
		}

		if _, err := p.expect("FunctionOperator"); err != nil {
			return nil, err
		}

		result, err := p.parseType()
		if err != nil {
			return nil, err
		}

		ty := &FunctionTypeExpr{
			Facts:  database.NewFacts(p.joinSpans(token.span, result)),
			Params: params,
			Result: result,
		}
		p.db.Register(ty)
		return ty, nil
	default:
		return nil, p.unexpected(token, "a type")
	}
}

func (p *parser) current() *Token {
	return p.peek(0)
}

func (p *parser) peek(offset int) *Token {
	if p.pos+offset >= len(p.tokens) {
		return nil
	}

	return p.tokens[p.pos+offset]
}

func (p *parser) advance() {
	p.pos++
}

func (p *parser) skipLineBreaks() {
	for {
		token := p.current()
		if token == nil || token.kind != "LineBreak" {
			return
		}

		p.advance()
	}
}

func (p *parser) expect(kind string) (*Token, *Error) {
	token := p.current()
	if token == nil || token.kind != kind {
		return nil, p.unexpected(token, tokenNames[kind])
	}

	p.advance()
	return token, nil
}

func (p *parser) unexpected(token *Token, expected string) *Error {
	if token == nil {
		span := database.Span{Path: p.path, Start: database.NullLocation(), End: database.NullLocation()}
		if len(p.tokens) > 0 {
			span = p.tokens[len(p.tokens)-1].span
		}

		return &Error{
			Message: fmt.Sprintf("expected %s, found the end of the file", expected),
			Span:    span,
		}
	}

	return &Error{
		Message: fmt.Sprintf("expected %s, found %s", expected, tokenNames[token.kind]),
		Span:    token.span,
	}
}

func (p *parser) joinSpans(start database.Span, end database.Node) database.Span {
	return database.JoinSpans(start, database.GetSpanFact(end), p.source)
}
