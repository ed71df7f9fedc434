// Package metadata signs generated markdown reports with a hashed provenance block.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- REPORT_META_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "REPORT_META_END -->"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata describes where a report came from.
type Metadata struct {
	GeneratedAt time.Time
	RunID       string
	Source      string
	Hash        string
	Rows        int
}

// metadataRegex matches the entire metadata block including tags.
var metadataRegex = regexp.MustCompile(`(?s)<!--\s*REPORT_META_START\s*\n(.*?)\n\s*REPORT_META_END\s*-->`)

// Extract removes the metadata block from content and returns both the metadata and the cleaned content.
// The cleaned content is what gets hashed.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	cleanContent := metadataRegex.ReplaceAllString(content, "")
	// Trailing newlines are not part of the hashed content.
	cleanContent = strings.TrimRight(cleanContent, "\n")

	if len(match) < 2 {
		return nil, cleanContent
	}

	meta := &Metadata{}

	for _, line := range strings.Split(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "GENERATED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.GeneratedAt = t
			}
		case "RUN":
			meta.RunID = val
		case "SOURCE":
			meta.Source = val
		case "ROWS":
			if n, err := strconv.Atoi(val); err == nil {
				meta.Rows = n
			}
		case "HASH":
			meta.Hash = val
		}
	}

	return meta, cleanContent
}

// CalculateHash computes the SHA-256 hash of the content (excluding metadata).
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign replaces any metadata block with a fresh one carrying meta and the content hash.
// A zero GeneratedAt is set to the current time.
func Sign(content string, meta Metadata) string {
	_, clean := Extract(content)

	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now()
	}

	block := fmt.Sprintf("\n\n%s\nGENERATED_AT: %s\nRUN: %s\nSOURCE: %s\nROWS: %d\nHASH: %s\n%s",
		TagStart, meta.GeneratedAt.UTC().Format(time.RFC3339), meta.RunID, meta.Source, meta.Rows,
		CalculateHash(clean), TagEnd)

	return clean + block
}

// Verify checks if the content matches the hash in its metadata.
func Verify(content string) (bool, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return false, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != meta.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return true, nil
}
