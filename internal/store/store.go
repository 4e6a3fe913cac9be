// Package store persists registry snapshots as JSON files. Writes are
// atomic (temp file then rename) so a crash mid-save never corrupts the
// previous file. Loading an absent file is a normal first run; loading a
// corrupt file is a PersistenceError and the caller starts empty.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/viosson/agentorg/internal/errors"
)

// writeFileAtomic marshals v and replaces path in one rename.
func writeFileAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewPersistenceError("save", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewPersistenceError("save", path, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewPersistenceError("save", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewPersistenceError("save", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewPersistenceError("save", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewPersistenceError("save", path, err)
	}
	return nil
}

// readFile unmarshals path into v. A missing file returns (false, nil);
// anything else wrong is a PersistenceError.
func readFile(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.NewPersistenceError("load", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.NewPersistenceError("load", path, err)
	}
	return true, nil
}
