package parser

// MethodInfo holds what a Javadoc block needs from one method or constructor header.
type MethodInfo struct {
	// ReturnType is "void" for constructors and void methods.
	ReturnType string `json:"returnType"`
	// Params are bare parameter names in declaration order.
	Params []string `json:"params"`
}

const voidType = "void"

// declarationModifiers are the keywords that may precede a return type.
var declarationModifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"static":    true,
	"final":     true,
	"abstract":  true,
}

// accessModifiers left as the return type mean the declaration had none.
var accessModifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
}
