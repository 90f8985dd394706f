package sysfs

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// Anything that is not a word character or ASCII whitespace
	nonWordRe = regexp.MustCompile(`[^0-9A-Za-z_ \t\n\v\f\r]+`)
	spaceRe   = regexp.MustCompile(`[ \t\n\v\f\r]+`)
)

// Sanitize normalizes kernel-formatted attribute content: punctuation and
// control bytes are dropped, whitespace runs become a single space and the
// result is trimmed.
func Sanitize(s string) string {
	s = nonWordRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Reader reads sysfs attribute files. A missing or unreadable attribute is
// an expected outcome and yields nil rather than an error.
type Reader struct {
	log logrus.FieldLogger
}

// NewReader creates a Reader reporting unreadable attributes to log
func NewReader(log logrus.FieldLogger) *Reader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reader{log: log}
}

// Read returns the sanitized content of dataPath/name, or nil when the file
// cannot be read or sanitizes to an empty string.
func (r *Reader) Read(dataPath, name string) *string {
	itemPath := filepath.Join(dataPath, name)
	r.log.WithField("path", itemPath).Debug("Reading attribute")

	data, err := os.ReadFile(itemPath)
	if err != nil {
		r.log.WithFields(logrus.Fields{"attribute": name, "path": dataPath}).
			WithError(err).Warn("Unable to read attribute")
		return nil
	}

	value := Sanitize(string(data))
	if value == "" {
		r.log.WithFields(logrus.Fields{"attribute": name, "path": dataPath}).Debug("Attribute is empty")
		return nil
	}
	return &value
}
