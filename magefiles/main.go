//go:build mage

package main

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"

	action "github.com/Bedrock-OSS/regolith-action"
)

var a = action.New(
	action.WithPreExecFunc(
		func(ctx context.Context) error { // ensure go mod download is run before any task
			return action.Run(ctx, "go", action.WithArgs("mod", "download"))
		},
	),
)

// format codebase using gofmt
func Format(ctx context.Context) error {
	return a.Execute(
		ctx,
		gotask("fmt", "./..."),
	).Err
}

// lint the code using gofmt, go vet and go mod tidy
func Lint(ctx context.Context) error {
	return a.Execute(
		ctx,
		gofmtcheck,
		gotask("mod", "tidy"),
		gotask("vet", "./..."),
	).Err
}

// run unit tests
func Test(ctx context.Context) error {
	return a.Execute(
		ctx,
		gotask("test", "-race", "-cover", "./..."),
	).Err
}

// build the action binary into ./bin
func Build(ctx context.Context) error {
	out := "bin/regolith-action"
	if runtime.GOOS == "windows" {
		out += ".exe"
	}

	return a.Execute(
		ctx,
		func(ctx context.Context) error {
			return action.Run(
				ctx,
				"go",
				action.WithArgs("build", "-trimpath", "-o", out, "./cmd/regolith-action"),
				action.WithEnv("CGO_ENABLED=0"),
			)
		},
	).Err
}

// gofmtcheck fails when any file isn't formatted.
func gofmtcheck(ctx context.Context) error {
	var out bytes.Buffer
	if err := action.Run(ctx, "gofmt", action.WithArgs("-l", "."), action.WithStdOut(&out)); err != nil {
		return err
	}

	if files := strings.Fields(out.String()); len(files) > 0 {
		return fmt.Errorf("files not formatted: %s", strings.Join(files, ", "))
	}
	return nil
}

func gotask(args ...string) action.Task {
	return func(ctx context.Context) error {
		return action.Run(ctx, "go", action.WithArgs(args...))
	}
}
