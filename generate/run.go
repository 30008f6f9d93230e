// Package generate produces StringDefs.cpp and translation template from the
// string table declared in StringDefs.h.
package generate

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"sdgen/config"
	"sdgen/strdefs"
	"sdgen/state"
)

// Request describes single generation.
type Request struct {
	// Dir holds both header and definitions file.
	Dir string
	// XMLOutput is path of translation template, empty when not requested.
	XMLOutput string
	// Force regenerates outputs even if they are up to date.
	Force bool
}

// Result describes what has been done.
type Result struct {
	Header      string
	Definitions string
	Resources   string
	Entries     int
	// Reused is set when existing outputs were up to date and nothing was written.
	Reused bool
}

// Run is the action of "generate" command.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	dir := cmd.Args().Get(0)
	if len(dir) == 0 {
		return errors.New("no input directory has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many directories", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	env.Force, env.Quiet = cmd.Bool("force"), cmd.Bool("quiet")

	req := Request{
		Dir:       dir,
		XMLOutput: cmd.String("xml_output_path"),
		Force:     env.Force,
	}

	defer func(start time.Time) {
		log.Debug("Generation completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	res, err := Generate(ctx, &env.Cfg.Generator, env.Rpt, req, log)
	if err != nil {
		return err
	}

	name := filepath.Base(res.Definitions)
	if res.Reused {
		env.Status(log, name+" is up to date, reusing old file", zap.String("file", res.Definitions))
		return nil
	}
	fields := []zap.Field{zap.String("file", res.Definitions), zap.Int("strings", res.Entries)}
	if len(res.Resources) > 0 {
		fields = append(fields, zap.String("xml", res.Resources))
	}
	env.Status(log, name+" generated", fields...)
	return nil
}

// Generate parses header and writes outputs. Nothing is written unless
// header has been parsed and all outputs rendered.
func Generate(ctx context.Context, conf *config.GeneratorConfig, rpt *config.Report, req Request, log *zap.Logger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(req.Dir)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Header:      filepath.Join(dir, conf.HeaderName),
		Definitions: filepath.Join(dir, conf.DefinitionsName),
		Resources:   req.XMLOutput,
	}

	if !req.Force {
		fresh, err := res.upToDate()
		if err != nil {
			return nil, fmt.Errorf("unable to check outputs: %w", err)
		}
		if fresh {
			res.Reused = true
			return res, nil
		}
	}

	opts, err := strdefs.OptionsFromConfig(conf)
	if err != nil {
		return nil, err
	}
	if err := rpt.StoreCopy(path.Join("input", conf.HeaderName), res.Header); err != nil {
		log.Debug("Unable to store header in debug report", zap.Error(err))
	}

	tbl, err := strdefs.ParseFile(res.Header, opts, log)
	if err != nil {
		return nil, err
	}
	res.Entries = tbl.Len()
	rpt.StoreData("table.txt", []byte(tbl.String()))
	log.Debug("Header parsed", zap.String("header", res.Header), zap.Int("strings", tbl.Len()))

	tmpl, err := loadTemplate(conf.TemplatePath)
	if err != nil {
		return nil, err
	}
	defs, err := renderDefinitions(tmpl, conf.HeaderName, tbl)
	if err != nil {
		return nil, err
	}

	var xml []byte
	if len(res.Resources) > 0 {
		if xml, err = renderResources(tbl); err != nil {
			return nil, fmt.Errorf("unable to prepare resource XML: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := WriteFile(res.Definitions, defs); err != nil {
		return nil, err
	}
	rpt.Store(path.Join("output", filepath.Base(res.Definitions)), res.Definitions)

	if xml != nil {
		if err := WriteFile(res.Resources, xml); err != nil {
			return nil, err
		}
		rpt.Store(path.Join("output", filepath.Base(res.Resources)), res.Resources)
	}
	return res, nil
}

// upToDate checks every requested output against header modification time.
func (r *Result) upToDate() (bool, error) {
	outputs := []string{r.Definitions}
	if len(r.Resources) > 0 {
		outputs = append(outputs, r.Resources)
	}
	for _, out := range outputs {
		fresh, err := upToDate(r.Header, out)
		if err != nil || !fresh {
			return false, err
		}
	}
	return true, nil
}
