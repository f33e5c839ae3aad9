package pipeline

import (
	"context"

	"github.com/matzehuels/seqdiag/pkg/diagram"
)

// Write stores the rendered artifacts of result under dir and returns the
// written paths: diagram formats first, then overview formats, each in the
// order they were requested.
func Write(ctx context.Context, dir, baseName string, opts Options, result *Result) ([]string, error) {
	var files []string
	write := func(path string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := diagram.WriteFile(path, data); err != nil {
			return err
		}
		files = append(files, path)
		return nil
	}

	for _, f := range opts.Formats {
		data, ok := result.Artifacts[f]
		if !ok {
			continue
		}
		if err := write(OutputPath(dir, baseName, f), data); err != nil {
			return files, err
		}
	}
	for _, f := range opts.OverviewFormats {
		data, ok := result.Overview[f]
		if !ok {
			continue
		}
		if err := write(OverviewPath(dir, baseName, f), data); err != nil {
			return files, err
		}
	}
	return files, nil
}
