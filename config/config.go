package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gbsyi/swagger-codegen-bin/apperr"
	"github.com/Gbsyi/swagger-codegen-bin/logger"
)

// DefaultPath is where the config file is looked up when no path is given
const DefaultPath = "src/codegen.config"

// Recognized keys
const (
	KeyAPIURL  = "api_url"
	KeyLang    = "lang"
	KeyGenType = "gen_type"
	KeyFolder  = "folder"
)

// maxLineSize bounds a single config line; api_url may carry long query strings
const maxLineSize = 1 << 20

// Config holds the values of one codegen.config file
type Config struct {
	APIURL  string // URL of the API specification document
	Lang    string // generator language, e.g. "typescript-fetch"
	GenType string // generation type, e.g. "client"
	Folder  string // output folder, removed and recreated on every run
}

// Load reads and parses the config file at path
func Load(path string) (*Config, error) {
	logger.Debug("reading config file", "path", path)

	content, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, apperr.Newf(apperr.ConfigNotFound, err, "Can't find %q file", filepath.Base(path))
		case errors.Is(err, fs.ErrPermission):
			return nil, apperr.New(apperr.ConfigPermissionDenied, err)
		default:
			return nil, apperr.New(apperr.ConfigIOError, err)
		}
	}

	cfg, err := Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	logger.Debug("parsed config", "api_url", cfg.APIURL, "lang", cfg.Lang, "gen_type", cfg.GenType, "folder", cfg.Folder)
	return cfg, nil
}

// Parse reads key=value lines. Values are kept verbatim after the first '='.
// Empty lines are skipped; any other key aborts with ConfigUnknownKey.
func Parse(r io.Reader) (*Config, error) {
	var cfg Config

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found || !applyConfig(&cfg, key, value) {
			logger.Debug("unknown config entry", "line", lineNo, "key", key)
			return nil, apperr.New(apperr.ConfigUnknownKey, fmt.Errorf("line %d: unknown key %q", lineNo, key))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.New(apperr.ConfigIOError, err)
	}

	return &cfg, nil
}

// applyConfig sets config field based on key/value, reporting whether key is known
func applyConfig(cfg *Config, key, value string) bool {
	switch key {
	case KeyAPIURL:
		cfg.APIURL = value
	case KeyLang:
		cfg.Lang = value
	case KeyGenType:
		cfg.GenType = value
	case KeyFolder:
		cfg.Folder = value
	default:
		return false
	}
	return true
}

// Missing returns the recognized keys whose value is empty
func (c *Config) Missing() []string {
	var missing []string
	if c.APIURL == "" {
		missing = append(missing, KeyAPIURL)
	}
	if c.Lang == "" {
		missing = append(missing, KeyLang)
	}
	if c.GenType == "" {
		missing = append(missing, KeyGenType)
	}
	if c.Folder == "" {
		missing = append(missing, KeyFolder)
	}
	return missing
}
