package sql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mashdb/MashDB/core"
)

// Parser turns one query string into a Statement in a single pass.
type Parser struct {
	input   string
	lexer   *Lexer
	current Token
}

func NewParser(input string) *Parser {
	parser := &Parser{input: input, lexer: NewLexer(input)}
	parser.advance()
	return parser
}

func (parser *Parser) advance() {
	parser.current = parser.lexer.NextToken()
}

func (parser *Parser) expect(expected TokenType, what string) (Token, error) {
	if parser.current.Type != expected {
		return Token{}, syntaxErrorf("expected %s, found %s", what, parser.current)
	}
	token := parser.current
	parser.advance()
	return token, nil
}

func syntaxErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

// Parse consumes the whole input and returns exactly one statement. A
// trailing semicolon is accepted; any text beyond it is a syntax error.
func (parser *Parser) Parse() (Statement, error) {
	if strings.TrimSpace(parser.input) == "" {
		return nil, ErrEmptyQuery
	}

	var statement Statement
	var err error

	switch parser.current.Type {
	case Create:
		statement, err = parser.parseCreate()
	case Change:
		statement, err = parser.parseChangeDatabase()
	case Insert:
		statement, err = parser.parseInsert()
	case Select:
		statement, err = parser.parseSelect()
	case Update:
		statement, err = parser.parseUpdate()
	case Delete:
		statement, err = parser.parseDelete()
	default:
		return nil, fmt.Errorf("%w: unrecognized statement %q", ErrInvalidQuery, parser.current.Value)
	}
	if err != nil {
		return nil, err
	}

	if err := parser.expectEnd(); err != nil {
		return nil, err
	}
	return statement, nil
}

func (parser *Parser) expectEnd() error {
	if parser.current.Type == Semicolon {
		parser.advance()
	}
	if parser.current.Type != EOF {
		return syntaxErrorf("unexpected trailing input %s", parser.current)
	}
	return nil
}

func (parser *Parser) parseCreate() (Statement, error) {
	parser.advance()
	switch parser.current.Type {
	case Database:
		parser.advance()
		name, err := parser.expect(Identifier, "database name")
		if err != nil {
			return nil, err
		}
		return CreateDatabaseStatement{Name: name.Value}, nil
	case TableKeyword:
		parser.advance()
		return parser.parseCreateTable()
	default:
		return nil, fmt.Errorf("%w: CREATE must be followed by DATABASE or TABLE", ErrInvalidQuery)
	}
}

func (parser *Parser) parseChangeDatabase() (Statement, error) {
	parser.advance()
	if _, err := parser.expect(Database, "DATABASE"); err != nil {
		return nil, err
	}
	name, err := parser.expect(Identifier, "database name")
	if err != nil {
		return nil, err
	}
	return ChangeDatabaseStatement{Name: name.Value}, nil
}

func (parser *Parser) parseCreateTable() (Statement, error) {
	table, err := parser.expect(Identifier, "table name")
	if err != nil {
		return nil, err
	}
	if _, err := parser.expect(ParenOpen, "("); err != nil {
		return nil, err
	}

	var columns []core.ColumnDef
	for {
		column, err := parser.parseColumnDef()
		if err != nil {
			return nil, err
		}
		columns = append(columns, column)

		if parser.current.Type == Comma {
			parser.advance()
			continue
		}
		break
	}

	if _, err := parser.expect(ParenClose, ")"); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, syntaxErrorf("table %s has no columns", table.Value)
	}
	return CreateTableStatement{Table: table.Value, Columns: columns}, nil
}

// parseColumnDef reads one "<name> [type tokens] [UNIQUE] [NOT NULL]"
// definition. Constraint keywords may appear in any order relative to the
// type; a missing type defaults to TEXT.
func (parser *Parser) parseColumnDef() (core.ColumnDef, error) {
	name, err := parser.expect(Identifier, "column name")
	if err != nil {
		return core.ColumnDef{}, err
	}

	column := core.ColumnDef{Name: name.Value}
	var typeTokens []string

	for parser.current.Type != Comma && parser.current.Type != ParenClose {
		switch parser.current.Type {
		case Unique:
			column.Unique = true
			parser.advance()
		case Not:
			parser.advance()
			if _, err := parser.expect(Null, "NULL after NOT"); err != nil {
				return core.ColumnDef{}, err
			}
			column.NotNull = true
		case Identifier:
			typeTokens = append(typeTokens, parser.current.Value)
			parser.advance()
		case EOF:
			return core.ColumnDef{}, syntaxErrorf("unterminated column list")
		default:
			return core.ColumnDef{}, syntaxErrorf("unexpected %s in column definition", parser.current)
		}
	}

	columnType, err := core.ParseColumnType(strings.Join(typeTokens, " "))
	if err != nil {
		return core.ColumnDef{}, syntaxErrorf("%v", err)
	}
	column.Type = columnType
	return column, nil
}

func (parser *Parser) parseInsert() (Statement, error) {
	parser.advance()
	if _, err := parser.expect(Into, "INTO"); err != nil {
		return nil, err
	}
	table, err := parser.expect(Identifier, "table name")
	if err != nil {
		return nil, err
	}

	statement := InsertStatement{Table: table.Value}

	if parser.current.Type == ParenOpen {
		columns, err := parser.parseNameList()
		if err != nil {
			return nil, err
		}
		statement.Columns = columns
	}

	if _, err := parser.expect(Values, "VALUES"); err != nil {
		return nil, err
	}
	if _, err := parser.expect(ParenOpen, "("); err != nil {
		return nil, err
	}
	for {
		value, err := parser.parseLiteral()
		if err != nil {
			return nil, err
		}
		statement.Values = append(statement.Values, value)

		if parser.current.Type == Comma {
			parser.advance()
			continue
		}
		break
	}
	if _, err := parser.expect(ParenClose, ")"); err != nil {
		return nil, err
	}
	return statement, nil
}

func (parser *Parser) parseSelect() (Statement, error) {
	parser.advance()

	statement := SelectStatement{}

	if parser.current.Type == Wildcard {
		parser.advance()
	} else {
		for {
			column, err := parser.expect(Identifier, "column name")
			if err != nil {
				return nil, err
			}
			statement.Columns = append(statement.Columns, column.Value)

			if parser.current.Type == Comma {
				parser.advance()
				continue
			}
			break
		}
	}

	if _, err := parser.expect(From, "FROM"); err != nil {
		return nil, err
	}
	table, err := parser.expect(Identifier, "table name")
	if err != nil {
		return nil, err
	}
	statement.Table = table.Value

	if parser.current.Type == Where {
		condition, err := parser.parseWhere()
		if err != nil {
			return nil, err
		}
		statement.Where = condition
	}

	if parser.current.Type == Order {
		parser.advance()
		if _, err := parser.expect(By, "BY"); err != nil {
			return nil, err
		}
		column, err := parser.expect(Identifier, "ORDER BY column")
		if err != nil {
			return nil, err
		}
		statement.OrderBy = column.Value
		switch parser.current.Type {
		case Asc:
			parser.advance()
		case Desc:
			statement.Descending = true
			parser.advance()
		}
	}

	if parser.current.Type == Limit {
		parser.advance()
		limit, err := parser.parseCount("LIMIT")
		if err != nil {
			return nil, err
		}
		statement.Limit = &limit
	}

	if parser.current.Type == Offset {
		parser.advance()
		offset, err := parser.parseCount("OFFSET")
		if err != nil {
			return nil, err
		}
		statement.Offset = offset
	}

	return statement, nil
}

func (parser *Parser) parseUpdate() (Statement, error) {
	parser.advance()
	table, err := parser.expect(Identifier, "table name")
	if err != nil {
		return nil, err
	}
	if _, err := parser.expect(Set, "SET"); err != nil {
		return nil, err
	}

	statement := UpdateStatement{Table: table.Value}
	for {
		column, err := parser.expect(Identifier, "column name")
		if err != nil {
			return nil, err
		}
		if _, err := parser.expect(Equals, "="); err != nil {
			return nil, err
		}
		value, err := parser.parseLiteral()
		if err != nil {
			return nil, err
		}
		statement.Sets = append(statement.Sets, SetClause{Column: column.Value, Value: value})

		if parser.current.Type == Comma {
			parser.advance()
			continue
		}
		break
	}

	if parser.current.Type == Where {
		condition, err := parser.parseWhere()
		if err != nil {
			return nil, err
		}
		statement.Where = condition
	}
	return statement, nil
}

func (parser *Parser) parseDelete() (Statement, error) {
	parser.advance()
	if _, err := parser.expect(From, "FROM"); err != nil {
		return nil, err
	}
	table, err := parser.expect(Identifier, "table name")
	if err != nil {
		return nil, err
	}

	statement := DeleteStatement{Table: table.Value}
	if parser.current.Type == Where {
		condition, err := parser.parseWhere()
		if err != nil {
			return nil, err
		}
		statement.Where = condition
	}
	return statement, nil
}

func (parser *Parser) parseWhere() (*Condition, error) {
	parser.advance()
	condition, err := parser.parseCondition()
	if err != nil {
		return nil, err
	}
	return &condition, nil
}

// parseCondition reads a single "<column> <op> <literal>" predicate.
func (parser *Parser) parseCondition() (Condition, error) {
	column, err := parser.expect(Identifier, "condition column")
	if err != nil {
		return Condition{}, err
	}

	var operator ConditionOperator
	switch parser.current.Type {
	case Equals:
		operator = Eq
	case NotEquals:
		operator = Ne
	case GreaterThan:
		operator = Gt
	case LessThan:
		operator = Lt
	case GreaterThanOrEqual:
		operator = Ge
	case LessThanOrEqual:
		operator = Le
	case Like:
		operator = LikeOp
	default:
		return Condition{}, fmt.Errorf("%w: %q", ErrUnsupportedOperator, parser.current.Value)
	}
	parser.advance()

	literal := parser.current
	switch literal.Type {
	case String, Int, Float, Identifier, Null, True, False:
		parser.advance()
	default:
		return Condition{}, syntaxErrorf("expected condition literal, found %s", literal)
	}

	return Condition{Column: column.Value, Operator: operator, Value: literal.Value}, nil
}

func (parser *Parser) parseNameList() ([]string, error) {
	if _, err := parser.expect(ParenOpen, "("); err != nil {
		return nil, err
	}
	var names []string
	for {
		name, err := parser.expect(Identifier, "column name")
		if err != nil {
			return nil, err
		}
		names = append(names, name.Value)

		if parser.current.Type == Comma {
			parser.advance()
			continue
		}
		break
	}
	if _, err := parser.expect(ParenClose, ")"); err != nil {
		return nil, err
	}
	return names, nil
}

func (parser *Parser) parseCount(clause string) (int, error) {
	token, err := parser.expect(Int, clause+" count")
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(token.Value)
	if err != nil || count < 0 {
		return 0, syntaxErrorf("%s expects a non-negative integer, found %q", clause, token.Value)
	}
	return count, nil
}

// parseLiteral converts the current token into a typed value, mirroring the
// classification used for bare text literals.
func (parser *Parser) parseLiteral() (core.Value, error) {
	token := parser.current
	switch token.Type {
	case Null:
		parser.advance()
		return core.Null(), nil
	case True:
		parser.advance()
		return core.NewBool(true), nil
	case False:
		parser.advance()
		return core.NewBool(false), nil
	case String:
		parser.advance()
		return core.NewText(token.Value), nil
	case Int:
		parser.advance()
		i, err := strconv.ParseInt(token.Value, 10, 64)
		if err != nil {
			return core.Value{}, syntaxErrorf("invalid integer literal %q", token.Value)
		}
		return core.NewInt(i), nil
	case Float:
		parser.advance()
		f, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return core.Value{}, syntaxErrorf("invalid float literal %q", token.Value)
		}
		return core.NewFloat(f), nil
	case Identifier:
		parser.advance()
		return core.ParseLiteral(token.Value), nil
	default:
		return core.Value{}, syntaxErrorf("expected literal, found %s", token)
	}
}
