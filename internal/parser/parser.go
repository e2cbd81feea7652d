// Package parser recovers parameter names and return types from raw Java
// method and constructor declarations without a Java front end.
//
// The scanner is a heuristic: generic type arguments are tracked with a
// single angle-bracket depth counter, and string or character literals that
// contain braces, semicolons or comment delimiters are not understood.
package parser

import "strings"

// Parser extracts method metadata from declaration text.
type Parser interface {
	Parse(text string) MethodInfo
}

type parserImpl struct{}

// New returns default parser.
func New() Parser {
	return &parserImpl{}
}

func (p *parserImpl) Parse(text string) MethodInfo {
	return ParseMethodSignature(text)
}

// ParseMethodSignature parses one method or constructor declaration. The text
// may span several lines and may run into the body; everything after the first
// '{' or ';' is ignored. It never fails: unrecognizable input yields no
// parameters and a "void" return type.
func ParseMethodSignature(text string) MethodInfo {
	info := MethodInfo{
		ReturnType: voidType,
		Params:     []string{},
	}

	header := ExtractSignatureHeader(text)

	// Last parens so that annotations on the declaration do not win.
	open := strings.LastIndexByte(header, '(')
	closing := strings.LastIndexByte(header, ')')
	if open >= 0 && closing > open {
		info.Params = ParseParameters(header[open+1 : closing])
	}
	if open < 0 {
		return info
	}

	modifiersAndReturn, _, ok := SplitReturnAndName(header[:open])
	if !ok {
		return info
	}
	info.ReturnType = ExtractReturnType(modifiersAndReturn)
	return info
}
