package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// LoadAirports reads the airport relation from the file at path.
func LoadAirports(path string, opts Options) (*Airports, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAirports(f, opts)
}

// LoadRoutes reads the route relation from the file at path.
func LoadRoutes(path string, opts Options) (*Routes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRoutes(f, opts)
}

// Digest returns the hex SHA-256 of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
