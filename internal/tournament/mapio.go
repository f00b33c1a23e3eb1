package tournament

import (
	"fmt"
	"os"
)

func openMapFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tournament: open map %q: %w", path, err)
	}
	return f, nil
}
