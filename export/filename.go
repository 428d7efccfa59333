package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

const timestampLayout = "20060102_150405"

// SafeName strips characters that are unsafe in filenames, keeping
// letters, digits, spaces, dashes, and underscores.
func SafeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// BuildFilename renders the export filename for a venue, season, and
// timestamp.
func BuildFilename(venueName, season string, t time.Time) string {
	return fmt.Sprintf("%s_%s_Games_%s.xlsx", SafeName(venueName), season, t.Format(timestampLayout))
}

// UniquePath joins dir with the export filename, advancing the
// timestamp one second at a time until the path does not collide with
// an existing file.
func UniquePath(dir, venueName, season string, now time.Time) string {
	for {
		path := filepath.Join(dir, BuildFilename(venueName, season, now))
		if _, err := os.Stat(path); err != nil {
			return path
		}
		now = now.Add(time.Second)
	}
}
