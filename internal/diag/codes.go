package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynImportNeedsWESL   Code = 2002
	SynUnbalancedPreproc Code = 2003

	// name resolution
	SemaUnresolvedImport    Code = 3001
	SemaTooManySupers       Code = 3002
	SemaUnresolvedModule    Code = 3003
	SemaDuplicateDefinition Code = 3004
	SemaUnresolvedName      Code = 3005

	// types
	SemaTypeMismatch                 Code = 3100
	SemaAssignmentNotAReference      Code = 3101
	SemaNoSuchField                  Code = 3102
	SemaArrayAccessInvalidType       Code = 3103
	SemaInvalidConstructionType      Code = 3104
	SemaFunctionCallArgCountMismatch Code = 3105
	SemaNoBuiltinOverload            Code = 3106
	SemaNoConstructor                Code = 3107
	SemaAddressOfNotReference        Code = 3108
	SemaDerefNotAPointer             Code = 3109
	SemaInvalidType                  Code = 3110
	SemaCyclicType                   Code = 3111
	SemaUnexpectedTemplateArgument   Code = 3112
	SemaExpectedLoweredKind          Code = 3113
	SemaInvalidCallType              Code = 3114
	SemaMissingReturnValue           Code = 3115

	// shader validation
	SemaMissingStorageClass   Code = 3200
	SemaMissingBlockAttribute Code = 3201
	SemaStorageClassError     Code = 3202
	SemaBracesRequired        Code = 3203
	SemaMixedBitwiseOps       Code = 3204
	SemaMixedLogicalOps       Code = 3205
	SemaChainedComparison     Code = 3206

	// io and project
	IOLoadFileError       Code = 4001
	ProjInfo              Code = 5000
	ProjManifestInvalid   Code = 5001
	ProjMissingDependency Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:                      "Unknown error",
	LexInfo:                          "Lexical information",
	LexUnknownChar:                   "Unknown character",
	LexUnterminatedString:            "Unterminated string",
	LexUnterminatedBlockComment:      "Unterminated block comment",
	LexBadNumber:                     "Malformed number literal",
	SynInfo:                          "Syntax information",
	SynUnexpectedToken:               "Unexpected token",
	SynImportNeedsWESL:               "Import statement requires the WESL edition",
	SynUnbalancedPreproc:             "Unbalanced preprocessor directive",
	SemaUnresolvedImport:             "Unresolved import",
	SemaTooManySupers:                "Too many super segments",
	SemaUnresolvedModule:             "Unresolved module",
	SemaDuplicateDefinition:          "Duplicate definition",
	SemaUnresolvedName:               "Unresolved name",
	SemaTypeMismatch:                 "Type mismatch",
	SemaAssignmentNotAReference:      "Assignment target is not a reference",
	SemaNoSuchField:                  "No such field",
	SemaArrayAccessInvalidType:       "Indexing a non-indexable type",
	SemaInvalidConstructionType:      "Type cannot be constructed",
	SemaFunctionCallArgCountMismatch: "Wrong number of call arguments",
	SemaNoBuiltinOverload:            "No matching builtin overload",
	SemaNoConstructor:                "No matching constructor",
	SemaAddressOfNotReference:        "Address-of requires a reference",
	SemaDerefNotAPointer:             "Dereference requires a pointer",
	SemaInvalidType:                  "Invalid type",
	SemaCyclicType:                   "Cyclic type",
	SemaUnexpectedTemplateArgument:   "Unexpected template argument",
	SemaExpectedLoweredKind:          "Wrong kind of template argument",
	SemaInvalidCallType:              "Expression is not callable",
	SemaMissingReturnValue:           "Missing return value",
	SemaMissingStorageClass:          "Missing storage class",
	SemaMissingBlockAttribute:        "Missing block attribute",
	SemaStorageClassError:            "Invalid storage class usage",
	SemaBracesRequired:               "Parentheses required",
	SemaMixedBitwiseOps:              "Mixed bitwise operators",
	SemaMixedLogicalOps:              "Mixed logical operators",
	SemaChainedComparison:            "Chained comparison",
	IOLoadFileError:                  "I/O load file error",
	ProjInfo:                         "Project information",
	ProjManifestInvalid:              "Invalid manifest",
	ProjMissingDependency:            "Missing dependency",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
