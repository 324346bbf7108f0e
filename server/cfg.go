package server

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/invasion/model"
)

var errBadMapName = errors.New("bad map name")

// mapPath keeps lookups inside the maps directory.
func mapPath(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", errBadMapName
	}
	return filepath.Join(dir, name), nil
}

// loadMap resolves name under dir and answers with the matching response code.
func loadMap(dir, name string) (*model.Registry, ResponseCode, error) {
	path, err := mapPath(dir, name)
	if err != nil {
		return nil, SIM_INVALID, err
	}
	reg, err := model.LoadMap(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, SIM_MAP_NOT_FOUND, err
		}
		return nil, SIM_INVALID, err
	}
	return reg, SIM_READY, nil
}

// listMaps returns the regular files of dir, sorted.
func listMaps(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	log.Debugf("listMaps %s: %d maps", dir, len(names))
	return names, nil
}
