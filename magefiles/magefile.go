//go:build mage

// Package main provides build targets for the storefront project using Mage.
//
// Usage:
//
//	mage build       Compile the storefront binary to bin/
//	mage install     Install storefront to GOPATH/bin
//	mage test:all    Run every test
//	mage test:unit   Run tests in short mode, skipping sqlite round trips
//	mage test:race   Run every test with the race detector
//	mage test:redis  Run the redis backend tests against $STOREFRONT_TEST_REDIS_ADDR
//	mage lint        Run golangci-lint
//	mage clean       Remove build artifacts
//	mage stats       Print Go line counts per package
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "storefront"
	binaryDir  = "bin"
	cmdDir     = "./cmd/storefront"

	redisAddrEnv = "STOREFRONT_TEST_REDIS_ADDR"
)

// Test groups the test targets.
type Test mg.Namespace

// Build compiles the storefront binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Unit runs tests in short mode.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-short", "./...")
}

// Race runs every test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Redis runs the redis backend tests. The address comes from the
// environment, defaulting to a local server.
func (Test) Redis() error {
	addr := os.Getenv(redisAddrEnv)
	if addr == "" {
		addr = "localhost:6379"
	}
	env := map[string]string{redisAddrEnv: addr}
	return sh.RunWithV(env, binGo, "test", "-run", "Redis", "./internal/docstore/...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Stats prints production and test line counts per package directory.
func Stats() error {
	counts, err := countGoLines(".")
	if err != nil {
		return err
	}
	var prod, test int
	for _, dir := range sortedKeys(counts) {
		c := counts[dir]
		fmt.Printf("%-32s %6d %6d\n", dir, c.prod, c.test)
		prod += c.prod
		test += c.test
	}
	fmt.Printf("%-32s %6d %6d\n", "total", prod, test)
	return nil
}
