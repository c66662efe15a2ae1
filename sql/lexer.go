package sql

type Token struct {
	Type  TokenType
	Value string
}

type TokenType int

const (
	Identifier TokenType = iota
	String
	Int
	Float
	Wildcard
	Comma
	Semicolon
	ParenOpen
	ParenClose
	Equals
	NotEquals
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	Create
	Change
	Database
	TableKeyword
	Insert
	Into
	Values
	Select
	From
	Where
	Order
	By
	Asc
	Desc
	Limit
	Offset
	Update
	Set
	Delete
	Like
	Null
	True
	False
	Unique
	Not
	EOF
	Unknown
)

func (token Token) String() string {
	switch token.Type {
	case Identifier:
		return "Identifier(" + token.Value + ")"
	case String:
		return "String(" + token.Value + ")"
	case Int:
		return "Int(" + token.Value + ")"
	case Float:
		return "Float(" + token.Value + ")"
	case Wildcard:
		return "Wildcard"
	case Comma:
		return "Comma"
	case Semicolon:
		return "Semicolon"
	case ParenOpen:
		return "ParenOpen"
	case ParenClose:
		return "ParenClose"
	case Equals:
		return "Equals"
	case NotEquals:
		return "NotEquals"
	case LessThan:
		return "LessThan"
	case GreaterThan:
		return "GreaterThan"
	case LessThanOrEqual:
		return "LessThanOrEqual"
	case GreaterThanOrEqual:
		return "GreaterThanOrEqual"
	case EOF:
		return "EOF"
	case Unknown:
		return "Unknown(" + token.Value + ")"
	default:
		return "Keyword(" + token.Value + ")"
	}
}

type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
}

func NewLexer(input string) *Lexer {
	lexer := &Lexer{input: input}
	lexer.readChar()
	return lexer
}

func (lexer *Lexer) readChar() {
	if lexer.readPosition >= len(lexer.input) {
		lexer.ch = 0
	} else {
		lexer.ch = lexer.input[lexer.readPosition]
	}
	lexer.position = lexer.readPosition
	lexer.readPosition++
}

func (lexer *Lexer) peekChar() byte {
	if lexer.readPosition >= len(lexer.input) {
		return 0
	}
	return lexer.input[lexer.readPosition]
}

func (lexer *Lexer) NextToken() Token {
	var token Token

	lexer.skipWhitespace()

	switch lexer.ch {
	case ',':
		token = Token{Type: Comma, Value: string(lexer.ch)}
	case ';':
		token = Token{Type: Semicolon, Value: string(lexer.ch)}
	case '(':
		token = Token{Type: ParenOpen, Value: string(lexer.ch)}
	case ')':
		token = Token{Type: ParenClose, Value: string(lexer.ch)}
	case '*':
		token = Token{Type: Wildcard, Value: string(lexer.ch)}
	case 0:
		token = Token{Type: EOF, Value: ""}
	case '\'', '"':
		value, terminated := lexer.readString(lexer.ch)
		if terminated {
			token = Token{Type: String, Value: value}
		} else {
			token = Token{Type: Unknown, Value: value}
		}
	case '-':
		if isDigit(lexer.peekChar()) {
			return lexer.readNumberToken()
		}
		token = Token{Type: Unknown, Value: string(lexer.ch)}
	default:
		if isOperator(lexer.ch) {
			operator := lexer.readOperator()
			switch operator {
			case "=", "==":
				// == normalizes to =
				return Token{Type: Equals, Value: "="}
			case "!=", "<>":
				return Token{Type: NotEquals, Value: operator}
			case "<":
				return Token{Type: LessThan, Value: operator}
			case ">":
				return Token{Type: GreaterThan, Value: operator}
			case "<=":
				return Token{Type: LessThanOrEqual, Value: operator}
			case ">=":
				return Token{Type: GreaterThanOrEqual, Value: operator}
			default:
				return Token{Type: Unknown, Value: operator}
			}
		} else if isDigit(lexer.ch) {
			return lexer.readNumberToken()
		} else if isIdentifierChar(lexer.ch) {
			literal := lexer.readIdentifier()
			return Token{Type: lookupIdentifier(literal), Value: literal}
		} else {
			token = Token{Type: Unknown, Value: string(lexer.ch)}
		}
	}

	lexer.readChar()
	return token
}

func (lexer *Lexer) PeekToken() Token {
	savedPosition := lexer.position
	savedReadPosition := lexer.readPosition
	savedCh := lexer.ch

	token := lexer.NextToken()

	lexer.position = savedPosition
	lexer.readPosition = savedReadPosition
	lexer.ch = savedCh

	return token
}

func (lexer *Lexer) skipWhitespace() {
	for lexer.ch == ' ' || lexer.ch == '\t' || lexer.ch == '\n' || lexer.ch == '\r' {
		lexer.readChar()
	}
}

func (lexer *Lexer) readIdentifier() string {
	position := lexer.position
	for isIdentifierChar(lexer.ch) || isDigit(lexer.ch) {
		lexer.readChar()
	}
	return lexer.input[position:lexer.position]
}

// readString consumes a quoted span up to the matching quote character.
// No escape processing is applied. Reports whether the closing quote was
// found before end of input.
func (lexer *Lexer) readString(quote byte) (string, bool) {
	lexer.readChar()
	position := lexer.position
	for lexer.ch != quote && lexer.ch != 0 {
		lexer.readChar()
	}
	return lexer.input[position:lexer.position], lexer.ch == quote
}

func (lexer *Lexer) readNumberToken() Token {
	position := lexer.position
	if lexer.ch == '-' {
		lexer.readChar()
	}
	for isDigit(lexer.ch) {
		lexer.readChar()
	}
	if lexer.ch == '.' && isDigit(lexer.peekChar()) {
		lexer.readChar()
		for isDigit(lexer.ch) {
			lexer.readChar()
		}
		return Token{Type: Float, Value: lexer.input[position:lexer.position]}
	}
	return Token{Type: Int, Value: lexer.input[position:lexer.position]}
}

func (lexer *Lexer) readOperator() string {
	position := lexer.position
	for isOperator(lexer.ch) {
		lexer.readChar()
	}
	return lexer.input[position:lexer.position]
}

func isIdentifierChar(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' || ch == '$'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isOperator(ch byte) bool {
	return ch == '=' || ch == '!' || ch == '<' || ch == '>'
}

func lookupIdentifier(id string) TokenType {
	switch toUpper(id) {
	case "CREATE":
		return Create
	case "CHANGE":
		return Change
	case "DATABASE":
		return Database
	case "TABLE":
		return TableKeyword
	case "INSERT":
		return Insert
	case "INTO":
		return Into
	case "VALUES":
		return Values
	case "SELECT":
		return Select
	case "FROM":
		return From
	case "WHERE":
		return Where
	case "ORDER":
		return Order
	case "BY":
		return By
	case "ASC":
		return Asc
	case "DESC":
		return Desc
	case "LIMIT":
		return Limit
	case "OFFSET":
		return Offset
	case "UPDATE":
		return Update
	case "SET":
		return Set
	case "DELETE":
		return Delete
	case "LIKE":
		return Like
	case "NULL":
		return Null
	case "TRUE":
		return True
	case "FALSE":
		return False
	case "UNIQUE":
		return Unique
	case "NOT":
		return Not
	default:
		return Identifier
	}
}

// toUpper converts a string to uppercase without allocating for ASCII
// strings that are already uppercase.
func toUpper(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			b := make([]byte, len(s))
			for j := 0; j < len(s); j++ {
				if s[j] >= 'a' && s[j] <= 'z' {
					b[j] = s[j] - 32
				} else {
					b[j] = s[j]
				}
			}
			return string(b)
		}
	}
	return s
}
