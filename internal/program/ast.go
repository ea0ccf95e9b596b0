package program

// DataDecl declares one observed variable in the data block. Len is the
// declared element count; 0 means scalar.
type DataDecl struct {
	Name string
	Len  int
}

// Arg is one distribution argument: either a literal number or a reference
// to a declared parameter.
type Arg struct {
	Ref   string
	Lit   float64
	IsRef bool
}

// SampleStmt is one `target ~ dist(args...)` statement in the model block.
type SampleStmt struct {
	Target string
	Dist   string
	Args   []Arg
	Line   int
}

// ast is the raw parse result before compilation checks.
type ast struct {
	data   []DataDecl
	params []string
	stmts  []SampleStmt
}
