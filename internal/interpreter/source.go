package interpreter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sourceExt = ".js"

// ValidateModuleID checks that id is a dotted identifier that cannot escape
// a search path directory.
func ValidateModuleID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidModuleID)
	}
	if strings.ContainsAny(id, `/\`) || filepath.IsAbs(id) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidModuleID, id)
	}
	for _, part := range strings.Split(id, ".") {
		if part == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidModuleID, id)
		}
	}
	return nil
}

// resolve finds the source file for id in the given directories.
func resolve(dirs []string, id string) (string, error) {
	rel := filepath.Join(strings.Split(id, ".")...)

	for _, dir := range dirs {
		if dir == "" {
			dir = "."
		}
		candidates := []string{
			filepath.Join(dir, rel+sourceExt),
			filepath.Join(dir, rel, "index"+sourceExt),
		}
		for _, candidate := range candidates {
			info, err := os.Stat(candidate)
			if err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
		}
	}

	return "", ErrModuleNotFound
}

// readSource loads a module file as UTF-8 text. A UTF-8 or UTF-16 byte order
// mark selects the decoding. Without one, valid UTF-8 is used as is and
// anything else is decoded from the detected legacy charset.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if !isText(mimetype.Detect(data)) {
		return "", ErrNotText
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("decode source: %w", err)
	}
	if hasBOM(data) || utf8.Valid(data) {
		return string(decoded), nil
	}

	name := detectCharset(data)
	enc, _ := charset.Lookup(name)
	if enc == nil {
		return "", fmt.Errorf("decode source: unsupported charset %q", name)
	}
	decoded, _, err = transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode source as %s: %w", name, err)
	}
	return string(decoded), nil
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}

// detectCharset guesses the charset of non-UTF-8 source, defaulting to
// windows-1252.
func detectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil || result.Charset == "" {
		return "windows-1252"
	}
	return strings.ToLower(result.Charset)
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") || strings.HasPrefix(m.String(), "text/") {
			return true
		}
	}
	return false
}
