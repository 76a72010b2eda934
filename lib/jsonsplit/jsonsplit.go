package jsonsplit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

type Options struct {
	// name of the id field in each object, "id" when empty
	IDKey string
	// delete and recreate the destination directory first
	Clean bool
}

// Split explodes the array under key in the named JSON document into
// one pretty-printed `<id>.json` file per element, overwriting
// existing files silently. elements missing the id field are skipped
// with a warning. progress and warning lines go to out; fatal input
// problems come back as errors.
func Split(out io.Writer, jsonFile, key, destDir string, opts Options) error {
	idKey := opts.IDKey
	if idKey == "" {
		idKey = "id"
	}

	if opts.Clean {
		if _, err := os.Stat(destDir); err == nil {
			fmt.Fprintf(out, "Cleaning destination directory: %s\n", destDir)
			err = os.RemoveAll(destDir)
			if err != nil {
				return err
			}
		}
	}
	err := os.MkdirAll(destDir, 0755)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(jsonFile)
	if err != nil {
		return err
	}
	if !json.Valid(raw) {
		return fmt.Errorf("'%s' is not a valid JSON file", jsonFile)
	}

	// valid JSON that isn't an object at the top level has no keys
	var top map[string]json.RawMessage
	err = json.Unmarshal(raw, &top)
	if err != nil {
		return fmt.Errorf("key '%s' not found in the JSON file", key)
	}
	rawItems, ok := top[key]
	if !ok {
		return fmt.Errorf("key '%s' not found in the JSON file", key)
	}

	var items []json.RawMessage
	err = json.Unmarshal(rawItems, &items)
	if err != nil {
		return fmt.Errorf("'%s' does not contain a list of objects", key)
	}

	for i, item := range items {
		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil {
			fmt.Fprintf(out, "Warning: Item at index %d does not have '%s' key. Skipping.\n", i, idKey)
			continue
		}
		idVal, ok := obj[idKey]
		if !ok {
			fmt.Fprintf(out, "Warning: Item at index %d does not have '%s' key. Skipping.\n", i, idKey)
			continue
		}

		// re-indent the raw element so its key order survives
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, item, "", "  "); err != nil {
			return err
		}

		path := filepath.Join(destDir, formatID(idVal)+".json")
		if err := os.WriteFile(path, pretty.Bytes(), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "Created: %s\n", path)
	}

	fmt.Fprintf(out, "Processed %d items from '%s'\n", len(items), key)
	return nil
}

func formatID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", id)
	}
}
