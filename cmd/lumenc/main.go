package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/lumenlang/lumenc/internal/ansi"
	"github.com/lumenlang/lumenc/internal/config"
	"github.com/lumenlang/lumenc/internal/driver"
	"github.com/lumenlang/lumenc/internal/lexer"
)

type args struct {
	manifestPath *string

	lexOnly       *bool
	parseOnly     *bool
	outputHeaders *bool
	testOutput    *bool
	runAfter      *bool

	outputKind *string
	outputName *string
	arch       *string
	goos       *string
	libDir     *string
}

func readArgs() *args {
	a := &args{
		manifestPath: flag.String("manifest", "lumenc.yaml", "Path to the build-target manifest"),

		lexOnly:       flag.Bool("lex-only", false, "Print lexical tokens for each source and exit"),
		parseOnly:     flag.Bool("parse-only", false, "Parse each source, dump the analysis context, and exit"),
		outputHeaders: flag.Bool("output-headers", false, "Emit header files per module and exit"),
		testOutput:    flag.Bool("test-output", false, "Compile only, never link or run"),
		runAfter:      flag.Bool("run", false, "Run the produced executable after a successful link"),

		outputKind: flag.String("output-kind", "", "executable | test | object | headers"),
		outputName: flag.String("output", "", "Path of the produced executable or object"),
		arch:       flag.String("arch", "", "Target architecture"),
		goos:       flag.String("os", "", "Target operating system"),
		libDir:     flag.String("lib-dir", "", "Standard library directory"),
	}
	flag.Parse()
	return a
}

// applyOverrides layers command-line overrides onto a loaded manifest.
// Positional source arguments, if given, replace the manifest's source
// list entirely.
func applyOverrides(m *Manifest, a *args, positional []string) {
	if len(positional) > 0 {
		m.Sources = positional
	}
	if *a.outputKind != "" {
		m.OutputKind = *a.outputKind
	}
	if *a.outputName != "" {
		m.OutputName = *a.outputName
	}
	if *a.arch != "" {
		m.Arch = *a.arch
	}
	if *a.goos != "" {
		m.OS = *a.goos
	}
	if *a.libDir != "" {
		m.LibDir = *a.libDir
	}
	m.OutputHeaders = m.OutputHeaders || *a.outputHeaders
	m.TestOutput = m.TestOutput || *a.testOutput
	m.RunAfterCompile = m.RunAfterCompile || *a.runAfter
	m.LexOnly = m.LexOnly || *a.lexOnly
	m.ParseOnly = m.ParseOnly || *a.parseOnly
}

// resolveSources implements the source-name expansion and implicit
// standard-library prepending of §6, returning the fatal
// "No files to compile." error (not calling driver.Fatal directly) so
// the empty-input scenario is testable without exiting the process.
func resolveSources(m *Manifest) ([]string, error) {
	sources, err := driver.ExpandSourceNames(driver.OSFS{}, m.Sources)
	if err != nil {
		return nil, err
	}
	sources = driver.PrependStdlib(m.LibDir, sources)
	if len(sources) == 0 {
		return nil, driver.NewFatalConfigError("No files to compile.")
	}
	return sources, nil
}

func main() {
	a := readArgs()
	m, err := LoadManifest(*a.manifestPath)
	if err != nil {
		driver.Fatal("%s", err)
	}
	applyOverrides(m, a, flag.Args())

	sources, err := resolveSources(m)
	if err != nil {
		driver.Fatal("%s", err)
	}

	if m.LexOnly {
		if err := runLexOnly(os.Stdout, sources); err != nil {
			driver.Fatal("%s", err)
		}
		return
	}

	if err := runPipeline(os.Stdout, m, sources); err != nil {
		fmt.Fprintln(os.Stderr, err)
		driver.Exit(driver.ExitCode(err))
	}
}

// runLexOnly implements the --lex-only CLI surface of §6: it bypasses
// the Context/Scheduler entirely, since lexing alone never registers
// modules or declarations.
func runLexOnly(out io.Writer, sources []string) error {
	for _, src := range sources {
		content, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		toks, err := lexer.Lex(string(content))
		if err != nil {
			return fmt.Errorf("%s: %w", src, err)
		}

		abs, err := filepath.Abs(src)
		if err != nil {
			abs = src
		}

		names := make([]string, len(toks))
		for i, t := range toks {
			names[i] = string(t.Type)
		}

		fmt.Fprintf(out, "# %s\n", abs)
		fmt.Fprintln(out, strings.Join(names, " "))
	}
	return nil
}

// formatDiagnostic renders a front-end diagnostic with the severity
// coloring the teacher's own debug printers apply unconditionally
// (DefaultTheme, no TTY check).
func formatDiagnostic(d driver.Diagnostic) string {
	color := ansi.DefaultTheme.Error
	if d.Severity == driver.SeverityWarning {
		color = ansi.DefaultTheme.Warning
	}
	return ansi.Color(color, "%s", d.Error())
}

// runPipeline drives parsing, the fixed analysis pipeline, and (unless
// --parse-only) codegen, matching the default branch of §6's CLI
// surface plus the output_headers/test_output/run_after_compile build
// options.
func runPipeline(out io.Writer, m *Manifest, sources []string) error {
	cfg := config.NewDefault()
	ctx := driver.NewContext(cfg,
		driver.NewArena[struct{}](cfg.GetInt("arena.ast_capacity")),
		driver.NewArena[struct{}](cfg.GetInt("arena.expr_capacity")),
		driver.NewArena[struct{}](cfg.GetInt("arena.typeinfo_capacity")),
	)
	loader := driver.NewFileSourceLoader()
	parser := fileParser{}

	analyses := make([]driver.AnalysisContext, 0, len(sources))
	parsedSources := make([]string, 0, len(sources))
	for _, src := range sources {
		file, already, err := loader.Load(src)
		if err != nil {
			return err
		}
		if already {
			continue
		}
		ac, err := parser.Parse(ctx, file)
		if err != nil {
			return err
		}
		analyses = append(analyses, ac)
		parsedSources = append(parsedSources, src)
	}

	if m.ParseOnly {
		for i, ac := range analyses {
			fmt.Fprintf(out, "# %s\n", parsedSources[i])
			spew.Fdump(out, ac)
		}
		return nil
	}

	sched := driver.NewScheduler(ctx, defaultPasses())
	if err := sched.Driver(); err != nil {
		for _, d := range ctx.Diagnostics() {
			fmt.Fprintln(out, formatDiagnostic(d))
		}
		return err
	}

	target, err := m.ToBuildTarget(runtime.GOARCH)
	if err != nil {
		return err
	}

	cgd := driver.NewCodegenDriver(ctx, target, &stubBackend{}, &stubHeaderEmitter{}, stubLinker{}, stubRunner{})
	objPaths, err := cgd.Run()
	if err != nil {
		return err
	}
	if !m.OutputHeaders {
		fmt.Fprintln(out, cgd.LastStats())
	}
	if objPaths != nil {
		fmt.Fprintln(out, strings.Join(objPaths, "\n"))
	}
	return nil
}
