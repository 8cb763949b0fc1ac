package repository

import (
	"context"
	"strings"

	"github.com/viant/afs"
)

// HasFileWithSuffixes checks if a directory directly contains a file matching inclusion but not exclusion suffixes
func HasFileWithSuffixes(ctx context.Context, fs afs.Service, dirURL string, inclusionSuffix, exclusionSuffix []string) (bool, error) {
	objects, err := fs.List(ctx, dirURL)
	if err != nil {
		return false, err
	}

outer:
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		for _, suffix := range inclusionSuffix {
			if strings.HasSuffix(object.Name(), suffix) {
				for _, exclusion := range exclusionSuffix {
					if strings.HasSuffix(object.Name(), exclusion) {
						continue outer
					}
				}
				return true, nil
			}
		}
	}
	return false, nil
}
