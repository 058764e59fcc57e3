package internal

import (
	"fmt"
	"path/filepath"
	"strings"
)

// BronzePath returns where a legislature's raw JSON dump for a dataset lives:
// <dir>/<dataset>_<legislature>.json with the legislature lowercased. The
// silver layer mirrors this naming with a .parquet suffix.
func BronzePath(dir, dataset, legislature string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.json", dataset, strings.ToLower(legislature)))
}
