//go:build !unix && !windows

package config

import "os"

func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }
