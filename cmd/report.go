package main

import (
	"fmt"
	"os"

	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/promptgen/errutil"
)

func writeErrorReport(filePath string, f *flaw.Flaw) error {
	b, err := errutil.FlawToYAML(f)
	if nil != err {
		return err
	}
	if err := os.WriteFile(filePath, b, 0o0644); nil != err {
		flawP := flaw.P{"file_path": filePath, "err_debug_tree": errutil.Tree(err).FlawP()}
		return flaw.From(fmt.Errorf("failed to write error report: %v", err)).Append(flawP)
	}
	return nil
}
