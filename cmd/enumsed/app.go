// # cmd/enumsed/app.go
package main

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"enumsed/internal/config"
	"enumsed/internal/errors"
	"enumsed/internal/extract"
	"enumsed/internal/parser"
	"enumsed/internal/sedgen"
	"enumsed/internal/watcher"
)

type App struct {
	Config  *config.Config
	parser  *parser.Parser
	renames []sedgen.Rename
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		parser: parser.NewParser(parser.NewGrammarLoader()),
	}

	for _, b := range cfg.Bindings {
		old, updated, _ := strings.Cut(b, ",")
		app.renames = append(app.renames, sedgen.Rename{Old: old, New: updated})
	}

	return app, nil
}

// GenerateScript parses every stub file, extracts the enum member pairs, and
// compiles them into the ordered sed script. Binding rename rules come
// first so the rest of the script operates on the new import names.
func (a *App) GenerateScript() ([]string, []sedgen.Conflict, error) {
	files, err := a.collectFiles()
	if err != nil {
		return nil, nil, err
	}

	// MidButton never appears in the stubs; PySide6 renamed it outright.
	// https://doc.qt.io/qtforpython-6/faq/porting_from2.html
	subs := []sedgen.Substitution{
		{Member: "MidButton", QualName: "QtCore.Qt.MouseButton.MiddleButton"},
	}
	for _, s := range a.Config.Seed {
		subs = append(subs, sedgen.Substitution{Member: s.Member, QualName: s.QualName})
	}

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}

		module, err := a.parser.ParseFile(path, content)
		if err != nil {
			return nil, nil, err
		}

		pairs := extract.Enums(module)
		slog.Debug("extracted enum members", "path", path, "module", module.Name, "members", len(pairs))
		subs = append(subs, pairs...)
	}

	rules, conflicts := sedgen.Compile(subs, a.Config.PreferredModules)

	script := make([]string, 0, len(rules)+2*len(a.renames))
	for _, r := range a.renames {
		script = append(script, r.Rules()...)
	}
	script = append(script, rules...)

	return script, conflicts, nil
}

// Run generates the script once and writes it to the configured output
// (stdout by default). Conflicts go to the diagnostics output (stderr by
// default) so the script stream stays valid sed.
func (a *App) Run() error {
	script, conflicts, err := a.GenerateScript()
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if a.Config.Output.Sed != "" {
		f, err := os.Create(a.Config.Output.Sed)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := writeLines(out, script); err != nil {
		return err
	}

	diag := io.Writer(os.Stderr)
	if a.Config.Output.Conflicts != "" {
		f, err := os.Create(a.Config.Output.Conflicts)
		if err != nil {
			return err
		}
		defer f.Close()
		diag = f
	}
	for _, c := range conflicts {
		if _, err := fmt.Fprintln(diag, c.String()); err != nil {
			return err
		}
	}

	return nil
}

// StartWatcher regenerates the whole script whenever a watched stub file
// changes. Regeneration errors are logged, not fatal.
func (a *App) StartWatcher() (*watcher.Watcher, error) {
	w, err := watcher.NewWatcher(a.Config.Watch.Debounce, a.Config.Exclude.Dirs, a.Config.Exclude.Files,
		func(paths []string) {
			slog.Info("stub change detected", "files", len(paths))
			if err := a.Run(); err != nil {
				slog.Error("regeneration failed", "error", err)
			}
		})
	if err != nil {
		return nil, err
	}

	if err := w.Watch(a.Config.StubPaths); err != nil {
		w.Close()
		return nil, err
	}

	return w, nil
}

// collectFiles expands the configured paths: explicit files are taken as
// given, directories are walked recursively for .pyi files, honoring the
// exclude globs.
func (a *App) collectFiles() ([]string, error) {
	if len(a.Config.StubPaths) == 0 {
		return nil, errors.New(errors.CodeValidation, "no stub paths configured")
	}

	dirGlobs, err := compileGlobs(a.Config.Exclude.Dirs)
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compileGlobs(a.Config.Exclude.Files)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, root := range a.Config.StubPaths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !a.parser.IsStubPath(path) {
				return nil
			}

			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, (&errors.DomainError{
				Code:    errors.CodeValidation,
				Message: "invalid exclude pattern",
				Err:     err,
			}).WithContext(errors.CtxPattern, p)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
