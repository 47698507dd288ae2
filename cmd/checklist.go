package main

import (
	"bytes"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/esg-research/internal/model"
)

// stdio is the path that stands for stdin or stdout.
const stdio = "-"

// defaultFormat is the configured checklist format, JSON when unset.
func defaultFormat() model.Format {
	if cfg == nil {
		return model.FormatJSON
	}
	f, err := model.ParseFormat(cfg.Research.Format)
	if err != nil {
		return model.FormatJSON
	}
	return f
}

// formatFor picks the format for path: an explicit flag value wins, then the
// file extension, then the configured default.
func formatFor(path, flag string) (model.Format, error) {
	if flag != "" {
		return model.ParseFormat(flag)
	}
	return model.FormatFromPath(path, defaultFormat()), nil
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == stdio {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	return f, nil
}

// readChecklist loads a checklist from path ("-" for stdin).
func readChecklist(cmd *cobra.Command, path string, format model.Format) (model.ResearchScopes, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return model.ResearchScopes{}, err
	}
	defer in.Close() //nolint:errcheck

	s, err := model.Decode(in, format)
	if err != nil {
		return model.ResearchScopes{}, eris.Wrapf(err, "read checklist %s", path)
	}
	return s, nil
}

// readDocument loads a partial document from path ("-" for stdin).
func readDocument(cmd *cobra.Command, path string, format model.Format) (model.Document, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close() //nolint:errcheck

	doc, err := model.DecodeDocument(in, format)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	return doc, nil
}

// writeChecklist encodes s to path, or to the command's output when path is
// empty or "-". Files are written only after encoding succeeds.
func writeChecklist(cmd *cobra.Command, path string, s *model.ResearchScopes, format model.Format) error {
	if path == "" || path == stdio {
		return model.Encode(cmd.OutOrStdout(), s, format)
	}

	var buf bytes.Buffer
	if err := model.Encode(&buf, s, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "write checklist %s", path)
	}
	return nil
}
