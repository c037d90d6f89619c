package token

// Kind identifies a token or a syntax node.
type Kind uint16

const (
	// Invalid is the zero value and never produced by the lexer.
	Invalid Kind = iota
	EOF
	// Error is an unrecognised run of input.
	Error

	// trivia
	Whitespace
	LineComment
	BlockComment
	PreprocIfdef
	PreprocIfndef
	PreprocElse
	PreprocEndif
	PreprocDefineImportPath

	PreprocImport // #import

	Ident
	IntLiteral
	UintLiteral
	DecimalFloatLiteral
	HexFloatLiteral
	StringLiteral

	// punctuation
	ParenLeft
	ParenRight
	BraceLeft
	BraceRight
	BracketLeft
	BracketRight
	Comma
	Semicolon
	Colon
	ColonColon
	Period
	At
	Arrow
	Equal
	EqualEqual
	NotEqual
	LessThan
	LessThanEqual
	GreaterThan
	GreaterThanEqual
	Plus
	Minus
	Star
	ForwardSlash
	Modulo
	And
	AndAnd
	Or
	OrOr
	Xor
	Bang
	Tilde
	PlusPlus
	MinusMinus
	PlusEqual
	MinusEqual
	TimesEqual
	DivisionEqual
	ModuloEqual
	AndEqual
	OrEqual
	XorEqual
	ShiftLeftEqual
	ShiftRightEqual

	keywordStart
	KwAlias
	KwAs
	KwBitcast
	KwBreak
	KwCase
	KwConst
	KwConstAssert
	KwContinue
	KwContinuing
	KwDefault
	KwDiscard
	KwElse
	KwEnable
	KwFallthrough
	KwFalse
	KwFn
	KwFor
	KwFunction
	KwHandle
	KwIf
	KwImport
	KwLet
	KwLoop
	KwOverride
	KwPackage
	KwPrivate
	KwPushConstant
	KwRead
	KwReadWrite
	KwReturn
	KwStorage
	KwStruct
	KwSuper
	KwSwitch
	KwTrue
	KwType
	KwUniform
	KwVar
	KwWhile
	KwWorkgroup
	KwWrite

	typeKeywordStart
	TyArray
	TyAtomic
	TyBindingArray
	TyBool
	TyF16
	TyF32
	TyI32
	TyU32
	TyPtr
	TySampler
	TySamplerComparison
	TyVec2
	TyVec3
	TyVec4
	TyMat2x2
	TyMat2x3
	TyMat2x4
	TyMat3x2
	TyMat3x3
	TyMat3x4
	TyMat4x2
	TyMat4x3
	TyMat4x4
	TyTexture1d
	TyTexture2d
	TyTexture2dArray
	TyTexture3d
	TyTextureCube
	TyTextureCubeArray
	TyTextureMultisampled2d
	TyTextureExternal
	TyTextureStorage1d
	TyTextureStorage2d
	TyTextureStorage2dArray
	TyTextureStorage3d
	TyTextureDepth2d
	TyTextureDepth2dArray
	TyTextureDepthCube
	TyTextureDepthCubeArray
	TyTextureDepthMultisampled2d
	typeKeywordEnd

	nodeStart
	SourceFile
	Name
	NameRef
	Function
	ParamList
	Param
	ReturnType
	VariableIdentDecl
	StructDecl
	StructDeclBody
	StructDeclField
	GlobalVariableDecl
	VariableQualifier
	GlobalConstantDecl
	OverrideDecl
	TypeAliasDecl
	ConstAssertStatement
	EnableDirective
	AttributeList
	Attribute
	AttributeParameters
	GenericArgList
	PathType

	ImportStatement
	ImportPackageRelative
	ImportSuperRelative
	ImportTreePath
	ImportTreeItem
	ImportTreeCollection
	PreprocessorImport
	ImportCustomPath

	CompoundStatement
	VariableStatement
	ExprStatement
	ReturnStmt
	AssignmentStmt
	CompoundAssignmentStmt
	IncrDecrStatement
	IfStatement
	ElseIfBlock
	ElseBlock
	SwitchStatement
	SwitchBlock
	SwitchBodyCase
	SwitchCaseSelectors
	SwitchBodyDefault
	LoopStatement
	ContinuingStatement
	WhileStatement
	ForStatement
	ForInitializer
	ForCondition
	ForContinuingPart
	BreakStatement
	BreakIfStatement
	ContinueStatement
	DiscardStatement
	FallthroughStatement

	InfixExpr
	PrefixExpr
	Literal
	PathExpr
	ParenExpr
	FieldExpr
	FunctionCall
	FunctionParamList
	IndexExpr
	TypeInitializer
	BitcastExpr
	ShiftLeft
	ShiftRight
	AttrLeft // '[[' built from two brackets

	ErrorNode
	kindEnd
)

// IsNode reports whether k is a composite node kind. Type keywords double
// as node kinds for type references; IsTypeKeyword covers those.
func (k Kind) IsNode() bool { return k > nodeStart && k < kindEnd }

func (k Kind) IsTrivia() bool { return k >= Whitespace && k <= PreprocDefineImportPath }

func (k Kind) IsKeyword() bool { return k > keywordStart && k < typeKeywordStart }

func (k Kind) IsTypeKeyword() bool { return k > typeKeywordStart && k < typeKeywordEnd }

func (k Kind) IsPunct() bool { return k >= ParenLeft && k <= ShiftRightEqual }

func (k Kind) IsLiteral() bool {
	switch k {
	case IntLiteral, UintLiteral, DecimalFloatLiteral, HexFloatLiteral, KwTrue, KwFalse:
		return true
	}
	return false
}

// IsCompoundAssign reports whether k is one of the op-assign tokens.
func (k Kind) IsCompoundAssign() bool { return k >= PlusEqual && k <= ShiftRightEqual }

// IsAssignOp reports `=` and the op-assign tokens.
func (k Kind) IsAssignOp() bool { return k == Equal || k.IsCompoundAssign() }

func (k Kind) IsTexture() bool { return k >= TyTexture1d && k <= TyTextureDepthMultisampled2d }

func (k Kind) IsVector() bool { return k >= TyVec2 && k <= TyVec4 }

func (k Kind) IsMatrix() bool { return k >= TyMat2x2 && k <= TyMat4x4 }

// Count returns the number of kinds, for tables indexed by Kind.
func Count() int { return int(kindEnd) }
