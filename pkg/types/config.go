// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LogConfig controls the zap logger.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects "json" (production encoder) or "console" (development encoder).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// SourceBackend identifies the tool that turns a PDF into plain text.
type SourceBackend string

const (
	BackendPdftotext SourceBackend = "pdftotext"
	BackendNative    SourceBackend = "native"
)

// SourceConfig holds settings for document-to-text conversion.
type SourceConfig struct {
	// Backend selects the PDF text backend: pdftotext or native.
	Backend SourceBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// PdftotextPath is the binary name or absolute path of pdftotext.
	PdftotextPath string `json:"pdftotext_path" yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
}

// OutputFormat selects how extracted records are written by the CLI.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// ExtractConfig holds settings for the extract command.
type ExtractConfig struct {
	// Concurrency bounds how many documents are processed at once (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// Format is the output encoding: json or yaml.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// ServerConfig holds settings for the HTTP upload endpoint.
type ServerConfig struct {
	// Addr is the listen address (default ":5000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// UploadDir is where uploaded documents are stored while they are processed.
	// Files are removed after each request.
	UploadDir string `json:"upload_dir" yaml:"upload_dir" mapstructure:"upload_dir"`

	// MaxUploadBytes caps the multipart request body.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`

	// AllowedOrigins lists CORS origins permitted to call the API.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// Config groups all settings for the tool.
type Config struct {
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Source  SourceConfig  `json:"source" yaml:"source" mapstructure:"source"`
	Extract ExtractConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}
