package translate

import (
	"io"

	"github.com/pkg/errors"

	"motion2constatus/constatus"
	"motion2constatus/libconfig"
	"motion2constatus/util"
)

// OutputSuffix replaces the extension of a motion file to name its output.
const OutputSuffix = "-constatus.cfg"

// OutputPath returns where the translation of a motion file is written.
func OutputPath(src string) string {
	base, _ := util.SplitExt(src)
	return base + OutputSuffix
}

// Render returns the libconfig text of a document.
func Render(doc *constatus.Document) ([]byte, error) {
	b, err := libconfig.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "render constatus configuration")
	}
	return b, nil
}

// Emit writes doc to path, replacing any existing file.
func Emit(path string, doc *constatus.Document) error {
	b, err := Render(doc)
	if err != nil {
		return err
	}
	if err := util.WriteFileAtomic(path, b, 0644); err != nil {
		return errors.Wrapf(ErrWrite, "%s: %v", path, err)
	}
	return nil
}

// EmitTo writes doc to w, labelled with the path it would have been written to.
func EmitTo(w io.Writer, path string, doc *constatus.Document) error {
	b, err := Render(doc)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "# "+path+"\n"); err != nil {
		return errors.Wrapf(ErrWrite, "%s: %v", path, err)
	}
	if _, err := w.Write(b); err != nil {
		return errors.Wrapf(ErrWrite, "%s: %v", path, err)
	}
	return nil
}
