package misc

import (
	"os"

	"github.com/pkg/errors"
)

func IsFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// CheckDirWritable returns nil when a file can be created inside dir.
// It probes by creating and removing a temporary file.
func CheckDirWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("[" + dir + "] is not a directory")
	}

	probe, err := os.CreateTemp(dir, ".whisperer-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}
