package token

var kindNames = [...]string{
	Invalid: "Invalid",
	EOF: "EOF",
	Error: "Error",
	Whitespace: "Whitespace",
	LineComment: "LineComment",
	BlockComment: "BlockComment",
	PreprocIfdef: "PreprocIfdef",
	PreprocIfndef: "PreprocIfndef",
	PreprocElse: "PreprocElse",
	PreprocEndif: "PreprocEndif",
	PreprocDefineImportPath: "PreprocDefineImportPath",
	PreprocImport: "PreprocImport",
	Ident: "Ident",
	IntLiteral: "IntLiteral",
	UintLiteral: "UintLiteral",
	DecimalFloatLiteral: "DecimalFloatLiteral",
	HexFloatLiteral: "HexFloatLiteral",
	StringLiteral: "StringLiteral",
	ParenLeft: "ParenLeft",
	ParenRight: "ParenRight",
	BraceLeft: "BraceLeft",
	BraceRight: "BraceRight",
	BracketLeft: "BracketLeft",
	BracketRight: "BracketRight",
	Comma: "Comma",
	Semicolon: "Semicolon",
	Colon: "Colon",
	ColonColon: "ColonColon",
	Period: "Period",
	At: "At",
	Arrow: "Arrow",
	Equal: "Equal",
	EqualEqual: "EqualEqual",
	NotEqual: "NotEqual",
	LessThan: "LessThan",
	LessThanEqual: "LessThanEqual",
	GreaterThan: "GreaterThan",
	GreaterThanEqual: "GreaterThanEqual",
	Plus: "Plus",
	Minus: "Minus",
	Star: "Star",
	ForwardSlash: "ForwardSlash",
	Modulo: "Modulo",
	And: "And",
	AndAnd: "AndAnd",
	Or: "Or",
	OrOr: "OrOr",
	Xor: "Xor",
	Bang: "Bang",
	Tilde: "Tilde",
	PlusPlus: "PlusPlus",
	MinusMinus: "MinusMinus",
	PlusEqual: "PlusEqual",
	MinusEqual: "MinusEqual",
	TimesEqual: "TimesEqual",
	DivisionEqual: "DivisionEqual",
	ModuloEqual: "ModuloEqual",
	AndEqual: "AndEqual",
	OrEqual: "OrEqual",
	XorEqual: "XorEqual",
	ShiftLeftEqual: "ShiftLeftEqual",
	ShiftRightEqual: "ShiftRightEqual",
	KwAlias: "Alias",
	KwAs: "As",
	KwBitcast: "Bitcast",
	KwBreak: "Break",
	KwCase: "Case",
	KwConst: "Const",
	KwConstAssert: "ConstAssert",
	KwContinue: "Continue",
	KwContinuing: "Continuing",
	KwDefault: "Default",
	KwDiscard: "Discard",
	KwElse: "Else",
	KwEnable: "Enable",
	KwFallthrough: "Fallthrough",
	KwFalse: "False",
	KwFn: "Fn",
	KwFor: "For",
	KwFunction: "Function",
	KwHandle: "Handle",
	KwIf: "If",
	KwImport: "Import",
	KwLet: "Let",
	KwLoop: "Loop",
	KwOverride: "Override",
	KwPackage: "Package",
	KwPrivate: "Private",
	KwPushConstant: "PushConstant",
	KwRead: "Read",
	KwReadWrite: "ReadWrite",
	KwReturn: "Return",
	KwStorage: "Storage",
	KwStruct: "Struct",
	KwSuper: "Super",
	KwSwitch: "Switch",
	KwTrue: "True",
	KwType: "Type",
	KwUniform: "Uniform",
	KwVar: "Var",
	KwWhile: "While",
	KwWorkgroup: "Workgroup",
	KwWrite: "Write",
	TyArray: "Array",
	TyAtomic: "Atomic",
	TyBindingArray: "BindingArray",
	TyBool: "Bool",
	TyF16: "F16",
	TyF32: "F32",
	TyI32: "I32",
	TyU32: "U32",
	TyPtr: "Ptr",
	TySampler: "Sampler",
	TySamplerComparison: "SamplerComparison",
	TyVec2: "Vec2",
	TyVec3: "Vec3",
	TyVec4: "Vec4",
	TyMat2x2: "Mat2x2",
	TyMat2x3: "Mat2x3",
	TyMat2x4: "Mat2x4",
	TyMat3x2: "Mat3x2",
	TyMat3x3: "Mat3x3",
	TyMat3x4: "Mat3x4",
	TyMat4x2: "Mat4x2",
	TyMat4x3: "Mat4x3",
	TyMat4x4: "Mat4x4",
	TyTexture1d: "Texture1d",
	TyTexture2d: "Texture2d",
	TyTexture2dArray: "Texture2dArray",
	TyTexture3d: "Texture3d",
	TyTextureCube: "TextureCube",
	TyTextureCubeArray: "TextureCubeArray",
	TyTextureMultisampled2d: "TextureMultisampled2d",
	TyTextureExternal: "TextureExternal",
	TyTextureStorage1d: "TextureStorage1d",
	TyTextureStorage2d: "TextureStorage2d",
	TyTextureStorage2dArray: "TextureStorage2dArray",
	TyTextureStorage3d: "TextureStorage3d",
	TyTextureDepth2d: "TextureDepth2d",
	TyTextureDepth2dArray: "TextureDepth2dArray",
	TyTextureDepthCube: "TextureDepthCube",
	TyTextureDepthCubeArray: "TextureDepthCubeArray",
	TyTextureDepthMultisampled2d: "TextureDepthMultisampled2d",
	SourceFile: "SourceFile",
	Name: "Name",
	NameRef: "NameRef",
	Function: "Function",
	ParamList: "ParamList",
	Param: "Param",
	ReturnType: "ReturnType",
	VariableIdentDecl: "VariableIdentDecl",
	StructDecl: "StructDecl",
	StructDeclBody: "StructDeclBody",
	StructDeclField: "StructDeclField",
	GlobalVariableDecl: "GlobalVariableDecl",
	VariableQualifier: "VariableQualifier",
	GlobalConstantDecl: "GlobalConstantDecl",
	OverrideDecl: "OverrideDecl",
	TypeAliasDecl: "TypeAliasDecl",
	ConstAssertStatement: "ConstAssertStatement",
	EnableDirective: "EnableDirective",
	AttributeList: "AttributeList",
	Attribute: "Attribute",
	AttributeParameters: "AttributeParameters",
	GenericArgList: "GenericArgList",
	PathType: "PathType",
	ImportStatement: "ImportStatement",
	ImportPackageRelative: "ImportPackageRelative",
	ImportSuperRelative: "ImportSuperRelative",
	ImportTreePath: "ImportTreePath",
	ImportTreeItem: "ImportTreeItem",
	ImportTreeCollection: "ImportTreeCollection",
	PreprocessorImport: "PreprocessorImport",
	ImportCustomPath: "ImportCustomPath",
	CompoundStatement: "CompoundStatement",
	VariableStatement: "VariableStatement",
	ExprStatement: "ExprStatement",
	ReturnStmt: "ReturnStmt",
	AssignmentStmt: "AssignmentStmt",
	CompoundAssignmentStmt: "CompoundAssignmentStmt",
	IncrDecrStatement: "IncrDecrStatement",
	IfStatement: "IfStatement",
	ElseIfBlock: "ElseIfBlock",
	ElseBlock: "ElseBlock",
	SwitchStatement: "SwitchStatement",
	SwitchBlock: "SwitchBlock",
	SwitchBodyCase: "SwitchBodyCase",
	SwitchCaseSelectors: "SwitchCaseSelectors",
	SwitchBodyDefault: "SwitchBodyDefault",
	LoopStatement: "LoopStatement",
	ContinuingStatement: "ContinuingStatement",
	WhileStatement: "WhileStatement",
	ForStatement: "ForStatement",
	ForInitializer: "ForInitializer",
	ForCondition: "ForCondition",
	ForContinuingPart: "ForContinuingPart",
	BreakStatement: "BreakStatement",
	BreakIfStatement: "BreakIfStatement",
	ContinueStatement: "ContinueStatement",
	DiscardStatement: "DiscardStatement",
	FallthroughStatement: "FallthroughStatement",
	InfixExpr: "InfixExpr",
	PrefixExpr: "PrefixExpr",
	Literal: "Literal",
	PathExpr: "PathExpr",
	ParenExpr: "ParenExpr",
	FieldExpr: "FieldExpr",
	FunctionCall: "FunctionCall",
	FunctionParamList: "FunctionParamList",
	IndexExpr: "IndexExpr",
	TypeInitializer: "TypeInitializer",
	BitcastExpr: "BitcastExpr",
	ShiftLeft: "ShiftLeft",
	ShiftRight: "ShiftRight",
	AttrLeft: "AttrLeft",
	ErrorNode: "ErrorNode",
}

// spellings of fixed-text tokens, used in diagnostics and by the formatter
var kindText = [...]string{
	PreprocImport: "#import",
	ParenLeft: "(",
	ParenRight: ")",
	BraceLeft: "{",
	BraceRight: "}",
	BracketLeft: "[",
	BracketRight: "]",
	Comma: ",",
	Semicolon: ";",
	Colon: ":",
	ColonColon: "::",
	Period: ".",
	At: "@",
	Arrow: "->",
	Equal: "=",
	EqualEqual: "==",
	NotEqual: "!=",
	LessThan: "<",
	LessThanEqual: "<=",
	GreaterThan: ">",
	GreaterThanEqual: ">=",
	Plus: "+",
	Minus: "-",
	Star: "*",
	ForwardSlash: "/",
	Modulo: "%",
	And: "&",
	AndAnd: "&&",
	Or: "|",
	OrOr: "||",
	Xor: "^",
	Bang: "!",
	Tilde: "~",
	PlusPlus: "++",
	MinusMinus: "--",
	PlusEqual: "+=",
	MinusEqual: "-=",
	TimesEqual: "*=",
	DivisionEqual: "/=",
	ModuloEqual: "%=",
	AndEqual: "&=",
	OrEqual: "|=",
	XorEqual: "^=",
	ShiftLeftEqual: "<<=",
	ShiftRightEqual: ">>=",
	KwAlias: "alias",
	KwAs: "as",
	KwBitcast: "bitcast",
	KwBreak: "break",
	KwCase: "case",
	KwConst: "const",
	KwConstAssert: "const_assert",
	KwContinue: "continue",
	KwContinuing: "continuing",
	KwDefault: "default",
	KwDiscard: "discard",
	KwElse: "else",
	KwEnable: "enable",
	KwFallthrough: "fallthrough",
	KwFalse: "false",
	KwFn: "fn",
	KwFor: "for",
	KwFunction: "function",
	KwHandle: "handle",
	KwIf: "if",
	KwImport: "import",
	KwLet: "let",
	KwLoop: "loop",
	KwOverride: "override",
	KwPackage: "package",
	KwPrivate: "private",
	KwPushConstant: "push_constant",
	KwRead: "read",
	KwReadWrite: "read_write",
	KwReturn: "return",
	KwStorage: "storage",
	KwStruct: "struct",
	KwSuper: "super",
	KwSwitch: "switch",
	KwTrue: "true",
	KwType: "type",
	KwUniform: "uniform",
	KwVar: "var",
	KwWhile: "while",
	KwWorkgroup: "workgroup",
	KwWrite: "write",
	TyArray: "array",
	TyAtomic: "atomic",
	TyBindingArray: "binding_array",
	TyBool: "bool",
	TyF16: "f16",
	TyF32: "f32",
	TyI32: "i32",
	TyU32: "u32",
	TyPtr: "ptr",
	TySampler: "sampler",
	TySamplerComparison: "sampler_comparison",
	TyVec2: "vec2",
	TyVec3: "vec3",
	TyVec4: "vec4",
	TyMat2x2: "mat2x2",
	TyMat2x3: "mat2x3",
	TyMat2x4: "mat2x4",
	TyMat3x2: "mat3x2",
	TyMat3x3: "mat3x3",
	TyMat3x4: "mat3x4",
	TyMat4x2: "mat4x2",
	TyMat4x3: "mat4x3",
	TyMat4x4: "mat4x4",
	TyTexture1d: "texture_1d",
	TyTexture2d: "texture_2d",
	TyTexture2dArray: "texture_2d_array",
	TyTexture3d: "texture_3d",
	TyTextureCube: "texture_cube",
	TyTextureCubeArray: "texture_cube_array",
	TyTextureMultisampled2d: "texture_multisampled_2d",
	TyTextureExternal: "texture_external",
	TyTextureStorage1d: "texture_storage_1d",
	TyTextureStorage2d: "texture_storage_2d",
	TyTextureStorage2dArray: "texture_storage_2d_array",
	TyTextureStorage3d: "texture_storage_3d",
	TyTextureDepth2d: "texture_depth_2d",
	TyTextureDepth2dArray: "texture_depth_2d_array",
	TyTextureDepthCube: "texture_depth_cube",
	TyTextureDepthCubeArray: "texture_depth_cube_array",
	TyTextureDepthMultisampled2d: "texture_depth_multisampled_2d",
}
