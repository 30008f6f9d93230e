// Package translate imports translated resource XML downloaded from
// translation service into language files loaded by the client.
package translate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"sdgen/config"
	"sdgen/state"
	"sdgen/strdefs"
)

// Request describes single import.
type Request struct {
	Source      string
	Destination string
	// HeaderDir when not empty points to directory with header, its string
	// table filters and orders translations.
	HeaderDir string
	Force     bool
}

// Result describes what has been done.
type Result struct {
	Written []string
	Reused  []string
	Skipped []string
}

// Run is the action of "translations" command.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("translations")

	if cmd.Args().Len() < 2 {
		return errors.New("both source and destination have to be specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	env.Force = cmd.Bool("force")

	req := Request{
		Source:      cmd.Args().Get(0),
		Destination: cmd.Args().Get(1),
		HeaderDir:   cmd.String("header"),
		Force:       env.Force,
	}

	res, err := Import(ctx, env.Cfg, env.Rpt, req, log)
	if res != nil {
		env.Status(log, "Translations imported",
			zap.Int("written", len(res.Written)),
			zap.Int("reused", len(res.Reused)),
			zap.Int("skipped", len(res.Skipped)))
	}
	return err
}

// Import converts every resource XML found in source into language file in
// destination directory. Failure of a single file does not stop processing,
// all failures are returned together.
func Import(ctx context.Context, cfg *config.Config, rpt *config.Report, req Request, log *zap.Logger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var order *strdefs.Table
	if len(req.HeaderDir) > 0 {
		opts, err := strdefs.OptionsFromConfig(&cfg.Generator)
		if err != nil {
			return nil, err
		}
		if order, err = strdefs.ParseFile(filepath.Join(req.HeaderDir, cfg.Generator.HeaderName), opts, log); err != nil {
			return nil, err
		}
	}

	docs, err := collect(req.Source)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no resource files found in %s", req.Source)
	}
	if err := os.MkdirAll(req.Destination, 0755); err != nil {
		return nil, fmt.Errorf("unable to create destination: %w", err)
	}

	byName := make(map[string]document, len(docs))
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		byName[d.name] = d
		names = append(names, d.name)
	}
	sort.Sort(natural.StringSlice(names))

	var errs error
	res := &Result{}
	seen := make(map[string]string)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, multierr.Append(errs, err)
		}

		loc, err := localeFromPath(name)
		if err != nil {
			log.Warn("Unable to detect language, skipping", zap.String("source", name), zap.Error(err))
			res.Skipped = append(res.Skipped, name)
			continue
		}
		if prev, ok := seen[loc.Code()]; ok {
			log.Error("Duplicate language", zap.String("source", name), zap.String("previous", prev), zap.String("code", loc.Code()))
			errs = multierr.Append(errs, fmt.Errorf("%s: language %s already imported from %s", name, loc.Code(), prev))
			res.Skipped = append(res.Skipped, name)
			continue
		}
		seen[loc.Code()] = name

		out, written, err := importOne(cfg, req, byName[name], loc, order, log)
		if err != nil {
			log.Error("Unable to import translation", zap.String("source", name), zap.Error(err))
			errs = multierr.Append(errs, err)
			res.Skipped = append(res.Skipped, name)
			continue
		}
		if written {
			res.Written = append(res.Written, out)
			rpt.Store(path.Join("translations", filepath.Base(out)), out)
		} else {
			res.Reused = append(res.Reused, out)
		}
	}
	return res, errs
}

// importOne produces language file for a single resource XML. It returns
// output path and whether file has been (re)written.
func importOne(cfg *config.Config, req Request, doc document, loc Locale, order *strdefs.Table, log *zap.Logger) (string, bool, error) {
	log = log.With(zap.String("source", doc.name), zap.String("code", loc.Code()))

	translated, err := parseResources(doc.name, doc.data, log)
	if err != nil {
		return "", false, err
	}
	if order != nil {
		translated = reorder(translated, order, log)
	}

	out := filepath.Join(req.Destination, config.CleanFileName(loc.Code())+".xml")
	old, err := readLanguage(out)
	if err != nil {
		return "", false, err
	}

	lang := &Language{
		Name:     loc.Name,
		Native:   loc.Native,
		Code:     loc.Code(),
		Author:   cfg.Translations.Author,
		Revision: 1,
		Strings:  translated,
	}
	if old != nil {
		if len(lang.Author) == 0 {
			lang.Author = old.Author
		}
		if lang.sameContent(old) {
			if !req.Force {
				log.Debug("Language file is up to date", zap.String("file", out), zap.Int("revision", old.Revision))
				return out, false, nil
			}
			lang.Revision = old.Revision
		} else {
			lang.Revision = old.Revision + 1
		}
	}

	if err := lang.write(out); err != nil {
		return "", false, err
	}
	log.Debug("Language file written", zap.String("file", out), zap.Int("strings", translated.Len()), zap.Int("revision", lang.Revision))
	return out, true, nil
}

// reorder keeps only translations of known strings in header order.
func reorder(translated, order *strdefs.Table, log *zap.Logger) *strdefs.Table {
	out := strdefs.NewTable()
	var missing int
	for name := range order.All() {
		if text, ok := translated.Get(name); ok {
			out.Set(name, text)
		} else {
			missing++
		}
	}

	var unknown []string
	for name := range translated.All() {
		if _, ok := order.Get(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		log.Warn("Translations for unknown strings dropped", zap.Strings("names", unknown))
	}
	if missing > 0 {
		log.Info("Language is incomplete", zap.Int("missing", missing), zap.Int("total", order.Len()))
	}
	return out
}
