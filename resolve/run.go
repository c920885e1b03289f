// Package resolve implements the resolve and tokenize commands.
package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"nativestyle/archive"
	"nativestyle/config"
	"nativestyle/css"
	"nativestyle/render"
	"nativestyle/state"
	"nativestyle/style"
)

// options are per-run settings collected from the command line.
type options struct {
	format config.OutputFormat
	indent int
	base   style.Context
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("resolve")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	opts := options{
		format: env.Cfg.Output.Format,
		indent: env.Cfg.Output.Indent,
		base:   env.BaseContext(),
	}
	if cmd.IsSet("format") {
		if opts.format, err = config.ParseOutputFormat(cmd.String("format")); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", env.Cfg.Output.Format))
			opts.format = env.Cfg.Output.Format
		}
	}
	if w, h := cmd.Float("width"), cmd.Float("height"); w > 0 || h > 0 {
		if w <= 0 || h <= 0 {
			return errors.New("both --width and --height must be specified")
		}
		opts.base = opts.base.With(style.WithViewport(w, h))
	}
	if cmd.Bool("hover") {
		opts.base = opts.base.With(style.WithHover(true))
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", opts.format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, env, src, dst, opts, log)
}

// process resolves a single document, every document under a directory or
// every document bundled into a zip archive.
func process(ctx context.Context, env *state.LocalEnv, src, dst string, opts options, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if fi.IsDir() || isArchiveFile(src) {
		if len(dst) == 0 {
			if dst, err = os.Getwd(); err != nil {
				return fmt.Errorf("unable to get working directory: %w", err)
			}
		}
		if fi.IsDir() {
			return processDir(ctx, env, src, dst, opts, log)
		}
		return processArchive(ctx, env, src, dst, opts, log)
	}

	name := filepath.Base(src)
	if len(dst) == 0 {
		return processFile(env, src, name, os.Stdout, opts, log)
	}
	if di, err := os.Stat(dst); err == nil && di.IsDir() {
		dst = filepath.Join(dst, outputName(name, opts.format))
	}
	return writeFile(env, src, name, dst, opts, log)
}

func processDir(ctx context.Context, env *state.LocalEnv, dir, dst string, opts options, log *zap.Logger) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && isDocumentName(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to scan directory (%s): %w", dir, err)
	}
	sort.Sort(natural.StringSlice(files))

	var failed int
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, outputName(rel, opts.format))
		if err := writeFile(env, path, filepath.ToSlash(rel), target, opts, log); err != nil {
			log.Error("Unable to process document", zap.String("file", path), zap.Error(err))
			failed++
		}
	}
	log.Info("Directory processed", zap.Int("documents", len(files)), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(files))
	}
	return nil
}

func processArchive(ctx context.Context, env *state.LocalEnv, src, dst string, opts options, log *zap.Logger) error {
	env.Rpt.Store("source/"+config.CleanFileName(filepath.Base(src)), src)

	var total, failed int
	err := archive.Walk(src, "", isDocumentName, func(name string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		total++
		target := filepath.Join(dst, filepath.FromSlash(outputName(name, opts.format)))
		if err := writeData(env, name, data, target, opts, log); err != nil {
			log.Error("Unable to process document", zap.String("archive", src), zap.String("entry", name), zap.Error(err))
			failed++
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("unable to read archive (%s): %w", src, err)
	}
	log.Info("Archive processed", zap.Int("documents", total), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, total)
	}
	return nil
}

// writeFile resolves document src and writes result to dst. name is used
// for the debug report entries.
func writeFile(env *state.LocalEnv, src, name, dst string, opts options, log *zap.Logger) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read document: %w", err)
	}
	env.Rpt.Store("source/"+name, src)
	return writeData(env, name, data, dst, opts, log)
}

func writeData(env *state.LocalEnv, name string, data []byte, dst string, opts options, log *zap.Logger) error {
	var buf bytes.Buffer
	if err := resolveData(env, name, data, &buf, opts, log); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write result (%s): %w", dst, err)
	}
	log.Debug("Document resolved", zap.String("document", name), zap.String("destination", dst))
	return nil
}

func processFile(env *state.LocalEnv, src, name string, out io.Writer, opts options, log *zap.Logger) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read document: %w", err)
	}
	env.Rpt.Store("source/"+name, src)
	return resolveData(env, name, data, out, opts, log)
}

// resolveData loads the document from data, resolves it and writes the
// encoded tree to out. The result is also kept in the debug report.
func resolveData(env *state.LocalEnv, name string, data []byte, out io.Writer, opts options, log *zap.Logger) error {
	doc, err := render.LoadDocument(data, opts.base, log)
	if err != nil {
		return fmt.Errorf("unable to load document (%s): %w", name, err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, env.Resolver().ResolveDocument(doc), opts.format, opts.indent); err != nil {
		return err
	}
	env.Rpt.StoreData("result/"+outputName(name, opts.format), buf.Bytes())
	if doc.Stylesheet != nil {
		env.Rpt.StoreData("stylesheet/"+strings.TrimSuffix(name, filepath.Ext(name))+".css", []byte(doc.Stylesheet.String()))
	}

	_, err = out.Write(buf.Bytes())
	return err
}

// Encode writes a resolved tree in the requested format.
func Encode(w io.Writer, el *render.Element, format config.OutputFormat, indent int) error {
	switch format {
	case config.OutputFormatJson:
		enc := json.NewEncoder(w)
		enc.SetIndent("", strings.Repeat(" ", indent))
		if err := enc.Encode(el); err != nil {
			return fmt.Errorf("unable to encode json: %w", err)
		}
	case config.OutputFormatTree:
		if _, err := io.WriteString(w, el.Dump()); err != nil {
			return err
		}
	default:
		enc := yaml.NewEncoder(w)
		if indent > 0 {
			enc.SetIndent(indent)
		}
		if err := enc.Encode(el); err != nil {
			return fmt.Errorf("unable to encode yaml: %w", err)
		}
		return enc.Close()
	}
	return nil
}

func isArchiveFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	return archive.IsArchive(f)
}

func isDocumentName(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// outputName replaces the document extension with the one of format.
func outputName(name string, format config.OutputFormat) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + format.Ext()
}

// Tokenize prints the value AST of every argument.
func Tokenize(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cmd.Args().Len() == 0 {
		return errors.New("no value has been specified")
	}
	return tokenize(cmd.Root().Writer, cmd.Args().Slice())
}

func tokenize(w io.Writer, values []string) error {
	for i, v := range values {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%q\n%s", v, css.ParseValue(v).Dump()); err != nil {
			return err
		}
	}
	return nil
}
