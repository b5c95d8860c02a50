package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/poojapathak0/vyra/pkg/expr"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

// Any mode other than json is treated as text.
const fileModeJSON = "json"

// readFile binds the file's contents to variable. Failures are reported on
// the output stream and execution continues with the variable untouched.
func (i *Interpreter) readFile(pathExpr expr.Expr, variable, mode string) error {
	pathValue, err := i.evaluate(pathExpr)
	if err != nil {
		return err
	}
	path := runtime.ToString(pathValue)
	value, err := loadFile(path, mode)
	if err != nil {
		return i.reportIOFailure(wrapError(CategoryIO, err, "Error reading file %s", path))
	}
	i.ctx.Set(variable, value)
	return nil
}

func (i *Interpreter) writeFile(pathExpr, contentExpr expr.Expr, mode string) error {
	pathValue, err := i.evaluate(pathExpr)
	if err != nil {
		return err
	}
	content, err := i.evaluate(contentExpr)
	if err != nil {
		return err
	}
	path := runtime.ToString(pathValue)
	if err := storeFile(path, content, mode); err != nil {
		return i.reportIOFailure(wrapError(CategoryIO, err, "Error writing file %s", path))
	}
	return nil
}

func (i *Interpreter) reportIOFailure(failure *RuntimeError) error {
	i.log.Debug("File operation failed", "err", failure.Err)
	if _, err := fmt.Fprintln(i.out, failure.Message); err != nil {
		return wrapError(CategoryIO, err, "write output")
	}
	return nil
}

func loadFile(path, mode string) (runtime.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if mode == fileModeJSON {
		return runtime.DecodeJSON(f)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return runtime.String(string(data)), nil
}

// storeFile writes JSON with two-space indentation in json mode; any other
// mode writes the display form of content.
func storeFile(path string, content runtime.Value, mode string) (err error) {
	var data []byte
	if mode == fileModeJSON {
		if data, err = runtime.EncodeJSON(content); err != nil {
			return err
		}
	} else {
		data = []byte(runtime.ToString(content))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(data)
	return err
}
