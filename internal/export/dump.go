package export

import (
	"encoding/json"
	"os"

	"github.com/spigell/hiring-slate/internal/selection"
)

// DumpToTmpFile writes result as indented JSON into a new temp file and
// returns its name.
func DumpToTmpFile(result selection.Result) (string, error) {
	file, err := os.CreateTemp("", "hiring_slate_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return "", err
	}
	return file.Name(), nil
}
