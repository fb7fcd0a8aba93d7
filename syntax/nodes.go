package syntax

import "tycho/database"

// File is one parsed source file: a sequence of statements.
type File struct {
	Facts      *database.Facts
	Path       string
	Statements []Statement
}

func (node *File) GetFacts() *database.Facts {
	return node.Facts
}

func init() {
	database.HideNode[*File]()
}

type Statement interface {
	database.Node
	isStatement()
}

// AssignStatement binds a name to the value of an expression.
type AssignStatement struct {
	Facts *database.Facts
	Name  string
	Value Expr
}

func (node *AssignStatement) GetFacts() *database.Facts { return node.Facts }
func (*AssignStatement) isStatement()                   {}

// ExprStatement evaluates an expression for its value.
type ExprStatement struct {
	Facts *database.Facts
	Expr  Expr
}

func (node *ExprStatement) GetFacts() *database.Facts { return node.Facts }
func (*ExprStatement) isStatement()                   {}

type Expr interface {
	database.Node
	isExpr()
}

type NumberExpr struct {
	Facts   *database.Facts
	Value   string
	IsFloat bool
}

func (node *NumberExpr) GetFacts() *database.Facts { return node.Facts }
func (*NumberExpr) isExpr()                        {}

type StringExpr struct {
	Facts *database.Facts
	Value string
}

func (node *StringExpr) GetFacts() *database.Facts { return node.Facts }
func (*StringExpr) isExpr()                        {}

type BoolExpr struct {
	Facts *database.Facts
	Value bool
}

func (node *BoolExpr) GetFacts() *database.Facts { return node.Facts }
func (*BoolExpr) isExpr()                        {}

// NameExpr references a value by name. Operators are parsed into name
// references so overload resolution treats them uniformly.
type NameExpr struct {
	Facts *database.Facts
	Name  string
}

func (node *NameExpr) GetFacts() *database.Facts { return node.Facts }
func (*NameExpr) isExpr()                        {}

type CallExpr struct {
	Facts  *database.Facts
	Callee Expr
	Args   []Expr
}

func (node *CallExpr) GetFacts() *database.Facts { return node.Facts }
func (*CallExpr) isExpr()                        {}

type MemberExpr struct {
	Facts *database.Facts
	Base  Expr
	Name  string
}

func (node *MemberExpr) GetFacts() *database.Facts { return node.Facts }
func (*MemberExpr) isExpr()                        {}

// LambdaExpr is a single-parameter function literal, `x -> body`.
type LambdaExpr struct {
	Facts *database.Facts
	Param *NameExpr
	Body  Expr
}

func (node *LambdaExpr) GetFacts() *database.Facts { return node.Facts }
func (*LambdaExpr) isExpr()                        {}

// AscribeExpr asserts an expression's type, `value :: Type`.
type AscribeExpr struct {
	Facts *database.Facts
	Value Expr
	Type  TypeExpr
}

func (node *AscribeExpr) GetFacts() *database.Facts { return node.Facts }
func (*AscribeExpr) isExpr()                        {}

// ConvertExpr converts an expression to a type, `value as Type`.
type ConvertExpr struct {
	Facts *database.Facts
	Value Expr
	Type  TypeExpr
}

func (node *ConvertExpr) GetFacts() *database.Facts { return node.Facts }
func (*ConvertExpr) isExpr()                        {}

type TypeExpr interface {
	database.Node
	isTypeExpr()
}

type TypeNameExpr struct {
	Facts *database.Facts
	Name  string
}

func (node *TypeNameExpr) GetFacts() *database.Facts { return node.Facts }
func (*TypeNameExpr) isTypeExpr()                    {}

// FunctionTypeExpr is a written function type, `(Int, Int) -> Int`.
type FunctionTypeExpr struct {
	Facts  *database.Facts
	Params []TypeExpr
	Result TypeExpr
}

func (node *FunctionTypeExpr) GetFacts() *database.Facts { return node.Facts }
func (*FunctionTypeExpr) isTypeExpr()                    {}
