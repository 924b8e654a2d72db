package main

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

func ValidTempo(input, min, max int) bool {
	return input >= min && input <= max
}

func runCmd(name string, arg ...string) error {
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running %s", name)
	}
	return nil
}

func ClearTerminal() error {
	switch runtime.GOOS {
	case "windows":
		return runCmd("cmd", "/c", "cls")
	default:
		return runCmd("clear")
	}
}

func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
