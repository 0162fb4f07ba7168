package models

// GenerateCodeRequest is the body sent to the code generator
type GenerateCodeRequest struct {
	Mappings []Mapping `json:"mappings"`
	BoardID  string    `json:"boardId"`
}

// GeneratedCode is the code generator's response
// Example: {"code": "#include <Arduino.h>...", "fileExtension": "ino"}
type GeneratedCode struct {
	Code          string `json:"code"`
	FileExtension string `json:"fileExtension"`
}
