package model

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// LoadMap reads a map file from disk.
func LoadMap(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	reg, err := ReadMap(file)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded map %s with %d cities", path, reg.Len())
	return reg, nil
}

func ParseMap(text string) (*Registry, error) {
	return ReadMap(strings.NewReader(text))
}

// ReadMap builds a registry from lines of the form
//
//	CityName [direction=Destination]...
//
// Tokens without exactly one '=' are logged and skipped. An unknown direction
// or a road clashing with an existing one aborts the load.
func ReadMap(reader io.Reader) (*Registry, error) {
	reg := NewRegistry()
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		city := fields[0]
		reg.AddCity(city)
		for _, token := range fields[1:] {
			if err := readRoute(reg, city, token); err != nil {
				if errors.Is(err, ErrMalformedRouteToken) {
					log.WithFields(log.Fields{"line": line, "city": city}).
						Warnf("Invalid route: %s", token)
					continue
				}
				return nil, &LoadError{Line: line, Token: token, Err: err}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Debugf("ReadMap %d lines, %d cities", line, reg.Len())
	return reg, nil
}

func readRoute(reg *Registry, city, token string) error {
	parts := strings.Split(token, "=")
	if len(parts) != 2 || parts[1] == "" {
		return ErrMalformedRouteToken
	}
	d, err := ParseDirection(parts[0])
	if err != nil {
		return err
	}
	return reg.Link(city, d, parts[1])
}
