// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

// Package ops declares the external collaborators that sit outside the
// dependency-resolution subsystem: the CLI dispatcher, compile/jar/javadoc
// operations, the template engine, archive creation, publishing, and the
// project bootstrap wrapper. None of these are implemented here; they are
// represented only as interfaces so the resolver's output
// (resolve.DependencyScopes, download paths) has somewhere to feed into.
// A real implementation lives outside this module.
package ops

import (
	"context"

	"github.com/kiln-build/kiln/resolve"
)

// Dispatcher runs a named build operation against a resolved dependency
// closure, the way a CLI's subcommand table hands off to compile/jar/test.
type Dispatcher interface {
	// Dispatch runs op (e.g. "compile", "jar", "test") with the resolved
	// classpath closure and any extra arguments.
	Dispatch(ctx context.Context, op string, closure *resolve.Closure, args []string) error
}

// Compiler turns source files into class files using the compile-scope
// closure for its classpath.
type Compiler interface {
	Compile(ctx context.Context, sources []string, classpath *resolve.Closure, outDir string) error
}

// Jarer packages compiled classes and resources into a single archive.
type Jarer interface {
	Jar(ctx context.Context, classDir string, resources []string, outFile string) error
}

// JavadocGenerator renders API documentation for a source set.
type JavadocGenerator interface {
	Javadoc(ctx context.Context, sources []string, classpath *resolve.Closure, outDir string) error
}

// Publisher uploads a built artifact (and its POM) to a remote repository.
type Publisher interface {
	Publish(ctx context.Context, groupID, artifactID, version string, files map[string]string) error
}

// TemplateEngine renders a project skeleton from a named template into a
// target directory, the way a bootstrap command scaffolds a new module.
type TemplateEngine interface {
	Render(ctx context.Context, template string, vars map[string]string, outDir string) error
}

// GrammarCompiler compiles a grammar definition (e.g. ANTLR) into generated
// parser sources.
type GrammarCompiler interface {
	CompileGrammar(ctx context.Context, grammarFile, outDir string) error
}

// ArchiveBuilder builds a distributable archive (zip/tar) from a directory
// tree, independent of the jar-specific packaging Jarer performs.
type ArchiveBuilder interface {
	BuildArchive(ctx context.Context, srcDir, outFile string) error
}

// TestReporter renders a pass/fail badge or summary from test results,
// independent of the test runner itself.
type TestReporter interface {
	ReportTests(ctx context.Context, resultsFile string) (badgeURL string, err error)
}

// Bootstrapper scaffolds a brand-new project, wiring in a starter
// dependency declaration for the resolver to pick up on first build.
type Bootstrapper interface {
	Bootstrap(ctx context.Context, projectDir, groupID, artifactID string) error
}
