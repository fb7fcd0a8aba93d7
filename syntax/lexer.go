package syntax

import (
	"tycho/database"

	lex "github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type Token struct {
	kind  string
	value string
	span  database.Span
}

type tokenRule struct {
	kind    string
	pattern string
	name    string
	skip    bool
	trim    func(s string) string
}

var rules = []tokenRule{
	{kind: "Space", pattern: `[ \t]+`, name: "", skip: true},
	{kind: "LineBreak", pattern: `\n+`, name: "a line break"},
	{kind: "Comment", pattern: `--[^\n]*`, name: "a comment", trim: func(s string) string { return s[2:] }},
	{kind: "AnnotateOperator", pattern: `::`, name: "`::`"},
	{kind: "FunctionOperator", pattern: `->`, name: "`->`"},
	{kind: "EqualOperator", pattern: `==`, name: "`==`"},
	{kind: "NotEqualOperator", pattern: `/=`, name: "`/=`"},
	{kind: "LessThanOrEqualOperator", pattern: `<=`, name: "`<=`"},
	{kind: "GreaterThanOrEqualOperator", pattern: `>=`, name: "`>=`"},
	{kind: "LessThanOperator", pattern: `<`, name: "`<`"},
	{kind: "GreaterThanOperator", pattern: `>`, name: "`>`"},
	{kind: "AddOperator", pattern: `\+`, name: "`+`"},
	{kind: "SubtractOperator", pattern: `-`, name: "`-`"},
	{kind: "MultiplyOperator", pattern: `\*`, name: "`*`"},
	{kind: "DivideOperator", pattern: `/`, name: "`/`"},
	{kind: "AssignOperator", pattern: `=`, name: "`=`"},
	{kind: "MemberOperator", pattern: `\.`, name: "`.`"},
	{kind: "CommaOperator", pattern: `,`, name: "`,`"},
	{kind: "LeftParenthesis", pattern: `\(`, name: "`(`"},
	{kind: "RightParenthesis", pattern: `\)`, name: "`)`"},
	{kind: "AsKeyword", pattern: `as`, name: "`as`"},
	{kind: "TrueKeyword", pattern: `true`, name: "`true`"},
	{kind: "FalseKeyword", pattern: `false`, name: "`false`"},
	{kind: "Number", pattern: `\d+(\.\d+)?`, name: "a number"},
	{kind: "String", pattern: `"[^"]*"`, name: "a string", trim: func(s string) string { return s[1 : len(s)-1] }},
	{kind: "CapitalName", pattern: `[A-Z][A-Za-z0-9_]*`, name: "a capital name"},
	{kind: "LowercaseName", pattern: `[a-z_][A-Za-z0-9_]*`, name: "a lowercase name"},
}

var lexer *lex.Lexer

var tokenIds = make(map[string]int, len(rules))
var tokenKinds = make([]string, 0, len(rules))
var tokenNames = make(map[string]string, len(rules))

func token(name string, trim func(s string) string) lex.Action {
	return func(s *lex.Scanner, m *machines.Match) (any, error) {
		if _, ok := tokenIds[name]; !ok {
			tokenIds[name] = len(tokenIds)
			tokenKinds = append(tokenKinds, name)
		}

		tokenString := string(m.Bytes)
		if trim != nil {
			tokenString = trim(tokenString)
		}

		return s.Token(tokenIds[name], tokenString, m), nil
	}
}

func skip(*lex.Scanner, *machines.Match) (any, error) {
	return nil, nil
}

func init() {
	lexer = lex.NewLexer()

	for _, rule := range rules {
		f := skip
		if !rule.skip {
			f = token(rule.kind, rule.trim)
		}

		lexer.Add([]byte(rule.pattern), f)
		tokenNames[rule.kind] = rule.name
	}

	err := lexer.CompileNFA()
	if err != nil {
		panic(err)
	}
}

func Tokenize(path string, source string) ([]*Token, *Error) {
	scanner, err := lexer.Scanner([]byte(source))
	if err != nil {
		panic(err)
	}

	var tokens []*Token
	for token, err, eof := scanner.Next(); !eof; token, err, eof = scanner.Next() {
		if err != nil {
			if unconsumed, ok := err.(*machines.UnconsumedInput); ok {
				return nil, &Error{
					Message: "Unexpected character",
					Span: database.Span{
						Path: path,
						Start: database.Location{
							Index:  unconsumed.StartTC,
							Line:   unconsumed.StartLine,
							Column: unconsumed.StartColumn,
						},
						End: database.Location{
							Index:  unconsumed.FailTC,
							Line:   unconsumed.FailLine,
							Column: unconsumed.FailColumn,
						},
						Source: source[unconsumed.StartTC:min(unconsumed.FailTC+1, len(source))],
					},
				}
			}

			return nil, &Error{Message: err.Error(), Span: database.NullSpan()}
		}

		token := token.(*lex.Token)
		startIndex := token.TC
		endIndex := scanner.TC

		span := database.Span{
			Path: path,
			Start: database.Location{
				Index:  startIndex,
				Line:   token.StartLine,
				Column: token.StartColumn,
			},
			End: database.Location{
				Index:  endIndex,
				Line:   token.EndLine,
				Column: token.EndColumn,
			},
			Source: source[startIndex:endIndex],
		}

		tokens = append(tokens, &Token{
			kind:  tokenKinds[token.Type],
			value: token.Value.(string),
			span:  span,
		})
	}

	return tokens, nil
}
