//go:build ignore

// build.go - filmeda build helper
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: all, build, test, cover, clean

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

const (
	version = "1.0.0"
	binary  = "filmeda"
)

var (
	rootDir string
	distDir string

	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func init() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(fmt.Sprintf("Failed to get current directory: %v", err))
	}
	rootDir = cwd
	distDir = filepath.Join(rootDir, "dist")

	if _, err := os.Stat(filepath.Join(rootDir, "go.mod")); os.IsNotExist(err) {
		panic(fmt.Sprintf("go.mod not found in %s, run from the module root", rootDir))
	}
}

func main() {
	target := flag.String("target", "all", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if runtime.GOOS == "windows" {
		colorReset, colorRed, colorGreen, colorYellow, colorCyan = "", "", "", "", ""
	}

	fmt.Printf("%sfilmeda build %s%s\n", colorCyan, version, colorReset)
	startTime := time.Now()

	var err error
	switch *target {
	case "all":
		if err = runTests(*verbose, false); err == nil {
			err = buildBinary(*verbose)
		}
	case "build":
		err = buildBinary(*verbose)
	case "test":
		err = runTests(*verbose, false)
	case "cover":
		err = runTests(*verbose, true)
	case "clean":
		err = clean()
	default:
		showHelp()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("%s✗ %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
	fmt.Printf("%s✓ Build completed in %s%s\n", colorGreen, time.Since(startTime).Round(time.Millisecond), colorReset)
}

func buildBinary(verbose bool) error {
	name := binary
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	out := filepath.Join(distDir, name)
	if err := os.MkdirAll(distDir, 0755); err != nil {
		return fmt.Errorf("failed to create dist directory: %w", err)
	}

	ldflags := fmt.Sprintf("-s -w -X main.buildTime=%s", time.Now().UTC().Format(time.RFC3339))
	args := []string{"build", "-trimpath", "-ldflags", ldflags, "-o", out, "./cmd/filmeda"}
	if verbose {
		args = append(args[:1], append([]string{"-v"}, args[1:]...)...)
	}
	fmt.Printf("%s→ Building %s%s\n", colorYellow, out, colorReset)
	return runCommand("go", args...)
}

func runTests(verbose, cover bool) error {
	args := []string{"test"}
	if verbose {
		args = append(args, "-v")
	}
	if cover {
		args = append(args, "-coverprofile", filepath.Join(distDir, "coverage.out"))
		if err := os.MkdirAll(distDir, 0755); err != nil {
			return err
		}
	}
	args = append(args, "./...")
	fmt.Printf("%s→ Running tests%s\n", colorYellow, colorReset)
	return runCommand("go", args...)
}

func clean() error {
	fmt.Printf("%s→ Removing %s%s\n", colorYellow, distDir, colorReset)
	return os.RemoveAll(distDir)
}

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = rootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", name, args, err)
	}
	return nil
}

func showHelp() {
	fmt.Println(`Usage: go run build.go -target=TARGET [-v]

Targets:
  all     run tests, then build dist/filmeda
  build   build dist/filmeda
  test    run all tests
  cover   run tests with a coverage profile in dist/
  clean   remove dist/`)
}
